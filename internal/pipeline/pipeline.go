package pipeline

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/nekores/compressifypro/internal/concurrency"
	"github.com/nekores/compressifypro/internal/engine"
	"github.com/nekores/compressifypro/internal/profile"
)

// Strategy identifies which candidate produced the returned bytes
type Strategy string

const (
	// StrategyRasterized means every page was re-rendered as a lossy raster image
	StrategyRasterized Strategy = "rasterized"
	// StrategyStructural means the document was only rewritten losslessly
	StrategyStructural Strategy = "structural"
	// StrategyOriginal means no candidate shrank the file; input returned verbatim
	StrategyOriginal Strategy = "original"
)

// Result is the outcome of one compression call. CompressedSize never
// exceeds OriginalSize.
type Result struct {
	Data           []byte
	OriginalSize   int64
	CompressedSize int64
	Ratio          float64
	Strategy       Strategy
}

// Compressor runs the adaptive recompression pipeline: structural cleanup
// first, rasterized recompression when the level calls for it, and a strict
// smaller-than-original selector over the candidates.
type Compressor struct {
	engine    engine.Engine
	optimizer engine.Optimizer
	encoder   engine.ImageEncoder
	logger    *slog.Logger
	workers   int
}

// NewCompressor creates a new pipeline instance
func NewCompressor(eng engine.Engine, opt engine.Optimizer, enc engine.ImageEncoder, logger *slog.Logger, workers int) *Compressor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compressor{
		engine:    eng,
		optimizer: opt,
		encoder:   enc,
		logger:    logger,
		workers:   workers,
	}
}

// Compress reduces the input document according to the compression level.
// "No strategy improved on the source" is a success with ratio 0, not an
// error; any engine failure aborts the whole call.
func (c *Compressor) Compress(ctx context.Context, input []byte, level int) (*Result, error) {
	originalSize := int64(len(input))
	if originalSize == 0 {
		return nil, NewEngineError("document parsing", 0, ErrEmptyInput)
	}

	doc, err := c.engine.Open(input)
	if err != nil {
		return nil, NewEngineError("document parsing", originalSize, err)
	}
	defer doc.Close()

	// The structural candidate is computed up front: it is the result for
	// level 1 when it shrinks the file and the fallback candidate for every
	// other level.
	optimized, err := c.optimizer.Optimize(input)
	if err != nil {
		return nil, NewEngineError("structural optimization", originalSize, err)
	}
	optimizedSize := int64(len(optimized))

	if level == 1 && optimizedSize < originalSize {
		c.logger.Info("structural optimization selected",
			"original_size", originalSize,
			"optimized_size", optimizedSize)
		return c.newResult(originalSize, optimized, StrategyStructural), nil
	}
	if level == 1 {
		c.logger.Info("structural optimization did not shrink the file, falling back to rasterization",
			"original_size", originalSize,
			"optimized_size", optimizedSize)
	}

	prof := profile.Resolve(level)
	rasterized, err := c.rasterize(ctx, doc, prof, originalSize)
	if err != nil {
		return nil, err
	}
	rasterizedSize := int64(len(rasterized))

	switch {
	case rasterizedSize < originalSize:
		return c.newResult(originalSize, rasterized, StrategyRasterized), nil
	case optimizedSize < originalSize:
		c.logger.Info("rasterization did not shrink the file, falling back to structural candidate",
			"original_size", originalSize,
			"rasterized_size", rasterizedSize,
			"optimized_size", optimizedSize)
		return c.newResult(originalSize, optimized, StrategyStructural), nil
	default:
		c.logger.Info("no strategy improved on the source, returning original bytes",
			"original_size", originalSize,
			"rasterized_size", rasterizedSize,
			"optimized_size", optimizedSize)
		return c.newResult(originalSize, input, StrategyOriginal), nil
	}
}

// rasterize rebuilds the document as a sequence of full-bleed JPEG pages.
// Page order and count are preserved 1:1 with the source.
func (c *Compressor) rasterize(ctx context.Context, doc engine.Document, prof profile.Profile, originalSize int64) ([]byte, error) {
	pageCount, err := doc.PageCount()
	if err != nil {
		return nil, NewEngineError("page enumeration", originalSize, err)
	}

	builder, err := c.engine.NewBuilder()
	if err != nil {
		return nil, NewEngineError("output document creation", originalSize, err)
	}
	defer builder.Close()

	type pageGeometry struct {
		width, height float64
	}
	geometries := make([]pageGeometry, pageCount)
	images := make([]image.Image, pageCount)

	// The engine instance is single threaded, so pages render strictly in
	// index order; only the lossy encode fans out to the pool below.
	for i := 0; i < pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, NewEngineError(fmt.Sprintf("page %d render", i), originalSize, err)
		}

		width, height, err := doc.PageSize(i)
		if err != nil {
			return nil, NewEngineError(fmt.Sprintf("page %d geometry", i), originalSize, err)
		}
		// Scaled dimensions go to the engine as computed, degenerate or not;
		// a page the engine rejects fails the whole call.
		geometries[i] = pageGeometry{width: width * prof.Scale, height: height * prof.Scale}

		img, err := doc.RenderPage(i, prof.DPI)
		if err != nil {
			return nil, NewEngineError(fmt.Sprintf("page %d render", i), originalSize, err)
		}
		images[i] = img
	}

	pool := concurrency.NewEncodePool(ctx, c.encoder, c.workers)
	encoded, err := pool.EncodeAll(images, prof.Quality)
	if err != nil {
		return nil, NewEngineError("page encoding", originalSize, err)
	}

	for i := 0; i < pageCount; i++ {
		if err := builder.AddImagePage(geometries[i].width, geometries[i].height, encoded[i]); err != nil {
			return nil, NewEngineError(fmt.Sprintf("page %d assembly", i), originalSize, err)
		}
	}

	data, err := builder.Bytes()
	if err != nil {
		return nil, NewEngineError("output serialization", originalSize, err)
	}

	// A page-less document has nothing to clean, and the optimizer rejects
	// documents without pages.
	if pageCount == 0 {
		return data, nil
	}

	// Same maximal cleanup pass as the structural candidate.
	cleaned, err := c.optimizer.Optimize(data)
	if err != nil {
		return nil, NewEngineError("output optimization", originalSize, err)
	}
	return cleaned, nil
}

// newResult computes sizes and the reduction ratio for the chosen candidate
func (c *Compressor) newResult(originalSize int64, data []byte, strategy Strategy) *Result {
	compressedSize := int64(len(data))
	var ratio float64
	if originalSize > 0 {
		ratio = float64(originalSize-compressedSize) / float64(originalSize) * 100
	}
	return &Result{
		Data:           data,
		OriginalSize:   originalSize,
		CompressedSize: compressedSize,
		Ratio:          ratio,
		Strategy:       strategy,
	}
}
