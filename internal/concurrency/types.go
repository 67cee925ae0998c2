package concurrency

import (
	"context"
	"image"

	"github.com/nekores/compressifypro/internal/engine"
)

// PageJob is one rendered page awaiting lossy encoding
type PageJob struct {
	Index int
	Image image.Image
}

// PageResult is the encoded output for one page
type PageResult struct {
	Index int
	Data  []byte
	Err   error
}

// EncodePool fans page encoding out across workers while keeping results
// addressable by page index, so output order never depends on scheduling
type EncodePool struct {
	ctx        context.Context
	encoder    engine.ImageEncoder
	maxWorkers int
	workChan   chan PageJob
	resultChan chan PageResult
}
