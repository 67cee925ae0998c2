package engine

import "image"

// Document is an open handle to a parsed PDF. Handles may wrap native
// resources; Close must be called exactly once on every path.
type Document interface {
	PageCount() (int, error)
	PageSize(index int) (width, height float64, err error)
	RenderPage(index int, dpi int) (image.Image, error)
	Close() error
}

// Builder assembles a new PDF out of full-bleed raster pages, in the order
// AddImagePage is called.
type Builder interface {
	AddImagePage(width, height float64, jpegData []byte) error
	Bytes() ([]byte, error)
	Close() error
}

// Engine is the PDF collaborator the pipeline drives.
type Engine interface {
	Open(data []byte) (Document, error)
	NewBuilder() (Builder, error)
}

// Optimizer losslessly rewrites a PDF with maximal structural cleanup:
// unreachable objects dropped, streams recompressed, cross references
// compacted. Page content is untouched.
type Optimizer interface {
	Optimize(data []byte) ([]byte, error)
}

// ImageEncoder encodes a rendered page as lossy image bytes. Lower quality
// means smaller, lossier output.
type ImageEncoder interface {
	Encode(img image.Image, quality int) ([]byte, error)
}
