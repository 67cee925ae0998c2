package concurrency

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/nekores/compressifypro/internal/common"
	"github.com/nekores/compressifypro/internal/engine"
)

// NewEncodePool creates a new encode pool instance. maxWorkers <= 0 means
// one worker per CPU, capped at common.MaxConcurrencyLimit.
func NewEncodePool(ctx context.Context, encoder engine.ImageEncoder, maxWorkers int) *EncodePool {
	return &EncodePool{
		ctx:        ctx,
		encoder:    encoder,
		maxWorkers: maxWorkers,
	}
}

// EncodeAll encodes every page image at the given quality and returns the
// results in page order. The first page failure fails the whole batch; no
// partial output is returned.
func (p *EncodePool) EncodeAll(images []image.Image, quality int) ([][]byte, error) {
	if len(images) == 0 {
		return nil, nil
	}

	workers := p.workerCount(len(images))

	p.workChan = make(chan PageJob, len(images))
	p.resultChan = make(chan PageResult, len(images))

	for i, img := range images {
		p.workChan <- PageJob{Index: i, Image: img}
	}
	close(p.workChan)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go p.worker(&wg, quality)
	}

	go func() {
		wg.Wait()
		close(p.resultChan)
	}()

	return p.collectResults(len(images))
}

// worker encodes pages from the work channel
func (p *EncodePool) worker(wg *sync.WaitGroup, quality int) {
	defer wg.Done()

	for job := range p.workChan {
		select {
		case <-p.ctx.Done():
			p.resultChan <- PageResult{Index: job.Index, Err: p.ctx.Err()}
			continue
		default:
		}

		data, err := p.encoder.Encode(job.Image, quality)
		p.resultChan <- PageResult{Index: job.Index, Data: data, Err: err}
	}
}

// collectResults drains the result channel into an index-ordered slice
func (p *EncodePool) collectResults(total int) ([][]byte, error) {
	out := make([][]byte, total)
	var firstErr error

	for result := range p.resultChan {
		if result.Err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("page %d: %w", result.Index, result.Err)
			}
			continue
		}
		out[result.Index] = result.Data
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// workerCount determines the number of workers for a batch
func (p *EncodePool) workerCount(jobs int) int {
	workers := p.maxWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > common.MaxConcurrencyLimit {
		workers = common.MaxConcurrencyLimit
	}
	if workers > jobs {
		workers = jobs
	}
	return workers
}
