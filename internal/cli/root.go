package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nekores/compressifypro/internal/common"
	"github.com/nekores/compressifypro/internal/config"
	"github.com/nekores/compressifypro/internal/engine"
	"github.com/nekores/compressifypro/internal/envelope"
	"github.com/nekores/compressifypro/internal/history"
	"github.com/nekores/compressifypro/internal/pipeline"
)

// Compressor is the pipeline surface the CLI drives
type Compressor interface {
	Compress(ctx context.Context, input []byte, level int) (*pipeline.Result, error)
}

// compressorFactory builds a compressor and returns a release function that
// must run once the call is finished
type compressorFactory func(cfg *config.Config, logger *slog.Logger) (Compressor, func() error, error)

// Execute runs the root command and returns the process exit code.
func Execute() int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cmd := newRootCmd(logger, newPDFiumCompressor)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(logger *slog.Logger, factory compressorFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "compressify",
		Short: "Reduce PDF size with level-driven adaptive recompression",
		Long: `compressify reads one JSON envelope {"data": <base64 pdf>, "level": <int>}
from stdin, recompresses the document, and writes a single result envelope to
stdout. Level 1 prefers lossless structural cleanup; higher levels rasterize
pages at decreasing quality, scale and resolution. The output is never larger
than the input: when no strategy shrinks the file the original bytes are
returned with a zero ratio.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompress(cmd, logger, factory)
		},
	}

	root.AddCommand(newHistoryCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// runCompress is the one-shot stdin to stdout compression path. Every
// failure is reported through the failure envelope before the non-zero exit.
func runCompress(cmd *cobra.Command, logger *slog.Logger, factory compressorFactory) error {
	cfg := config.New()

	request, err := envelope.Read(cmd.InOrStdin())
	if err != nil {
		envelope.WriteFailure(cmd.OutOrStdout(), err)
		return err
	}

	compressor, release, err := factory(cfg, logger)
	if err != nil {
		envelope.WriteFailure(cmd.OutOrStdout(), err)
		return err
	}
	defer release()

	result, err := compressor.Compress(cmd.Context(), request.Data, request.Level)
	if err != nil {
		envelope.WriteFailure(cmd.OutOrStdout(), err)
		return err
	}

	if err := envelope.WriteSuccess(cmd.OutOrStdout(), result.Data, result.OriginalSize, result.CompressedSize, result.Ratio); err != nil {
		return err
	}

	recordRun(cfg, logger, request.Level, result)
	return nil
}

// recordRun is best effort: history problems are logged, never surfaced
func recordRun(cfg *config.Config, logger *slog.Logger, level int, result *pipeline.Result) {
	if !cfg.HistoryEnabled {
		return
	}

	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		logger.Warn("history store unavailable", "path", cfg.HistoryPath, "error", err)
		return
	}

	record := &history.Record{
		JobID:            common.GenerateUUID(),
		Level:            level,
		Strategy:         string(result.Strategy),
		OriginalSize:     result.OriginalSize,
		CompressedSize:   result.CompressedSize,
		CompressionRatio: result.Ratio,
	}
	if err := store.Add(record); err != nil {
		logger.Warn("failed to record compression run", "error", err)
	}
}

// newPDFiumCompressor wires the production engine stack
func newPDFiumCompressor(cfg *config.Config, logger *slog.Logger) (Compressor, func() error, error) {
	eng, err := engine.NewPDFium(cfg.EngineTimeout)
	if err != nil {
		return nil, nil, err
	}

	compressor := pipeline.NewCompressor(
		eng,
		engine.NewStructuralOptimizer(),
		engine.JPEGEncoder{},
		logger,
		cfg.EncodeWorkers,
	)

	return compressor, eng.Close, nil
}
