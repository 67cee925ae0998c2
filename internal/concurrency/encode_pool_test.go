package concurrency

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"
)

// indexEncoder stamps the page index into the output so order can be checked
type indexEncoder struct {
	failIndex int // -1 disables failure injection
	seen      map[int]bool
}

func (e *indexEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	index := img.Bounds().Min.X
	if index == e.failIndex {
		return nil, errors.New("encode exploded")
	}
	return []byte(fmt.Sprintf("page-%d-q%d", index, quality)), nil
}

// pageImage builds an image whose bounds encode the page index
func pageImage(index int) image.Image {
	return image.NewRGBA(image.Rect(index, 0, index+1, 1))
}

func TestEncodeAllPreservesPageOrder(t *testing.T) {
	const pages = 25

	images := make([]image.Image, pages)
	for i := range images {
		images[i] = pageImage(i)
	}

	pool := NewEncodePool(context.Background(), &indexEncoder{failIndex: -1}, 4)

	results, err := pool.EncodeAll(images, 40)
	if err != nil {
		t.Fatalf("EncodeAll failed: %v", err)
	}

	if len(results) != pages {
		t.Fatalf("Expected %d results, got %d", pages, len(results))
	}

	for i, data := range results {
		expected := fmt.Sprintf("page-%d-q40", i)
		if string(data) != expected {
			t.Errorf("results[%d] = %q, want %q", i, data, expected)
		}
	}
}

func TestEncodeAllEmptyBatch(t *testing.T) {
	pool := NewEncodePool(context.Background(), &indexEncoder{failIndex: -1}, 4)

	results, err := pool.EncodeAll(nil, 40)
	if err != nil {
		t.Fatalf("Expected no error for empty batch, got %v", err)
	}
	if results != nil {
		t.Errorf("Expected nil results for empty batch, got %v", results)
	}
}

func TestEncodeAllSinglePageFailureFailsBatch(t *testing.T) {
	images := make([]image.Image, 10)
	for i := range images {
		images[i] = pageImage(i)
	}

	pool := NewEncodePool(context.Background(), &indexEncoder{failIndex: 7}, 4)

	results, err := pool.EncodeAll(images, 40)
	if err == nil {
		t.Fatal("Expected error when one page fails to encode")
	}
	if results != nil {
		t.Error("Expected no partial results on failure")
	}
	if !strings.Contains(err.Error(), "page 7") {
		t.Errorf("Expected error to name the failed page, got %q", err.Error())
	}
}

func TestEncodeAllCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	images := make([]image.Image, 5)
	for i := range images {
		images[i] = pageImage(i)
	}

	pool := NewEncodePool(ctx, &indexEncoder{failIndex: -1}, 2)

	if _, err := pool.EncodeAll(images, 40); err == nil {
		t.Fatal("Expected error for cancelled context")
	}
}

func TestWorkerCount(t *testing.T) {
	tests := []struct {
		name       string
		maxWorkers int
		jobs       int
		expected   int
	}{
		{"capped by job count", 8, 3, 3},
		{"capped by configured maximum", 2, 10, 2},
		{"capped by concurrency limit", 64, 100, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewEncodePool(context.Background(), &indexEncoder{failIndex: -1}, tt.maxWorkers)
			got := pool.workerCount(tt.jobs)
			if got != tt.expected {
				t.Errorf("workerCount(%d) with max %d = %d, want %d", tt.jobs, tt.maxWorkers, got, tt.expected)
			}
		})
	}
}
