package engine

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/single_threaded"
	"github.com/klippa-app/go-pdfium/structs"
)

// PDFium implements Engine on top of a single-threaded PDFium worker. The
// worker instance is not safe for concurrent use; callers must serialize
// access, which the pipeline does by rendering pages in index order.
type PDFium struct {
	pool     pdfium.Pool
	instance pdfium.Pdfium
}

// NewPDFium initializes the PDFium library and claims one worker instance.
func NewPDFium(instanceTimeout time.Duration) (*PDFium, error) {
	pool := single_threaded.Init(single_threaded.Config{})

	instance, err := pool.GetInstance(instanceTimeout)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to acquire pdfium instance: %w", err)
	}

	return &PDFium{pool: pool, instance: instance}, nil
}

// Close releases the worker instance and shuts the library down.
func (e *PDFium) Close() error {
	instErr := e.instance.Close()
	poolErr := e.pool.Close()
	if instErr != nil {
		return instErr
	}
	return poolErr
}

// Open parses raw PDF bytes into a document handle. Malformed input is
// rejected here with PDFium's diagnostic.
func (e *PDFium) Open(data []byte) (Document, error) {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{File: &data})
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}

	return &pdfiumDocument{instance: e.instance, ref: doc.Document}, nil
}

// NewBuilder starts an empty output document.
func (e *PDFium) NewBuilder() (Builder, error) {
	doc, err := e.instance.FPDF_CreateNewDocument(&requests.FPDF_CreateNewDocument{})
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	return &pdfiumBuilder{instance: e.instance, ref: doc.Document}, nil
}

type pdfiumDocument struct {
	instance pdfium.Pdfium
	ref      references.FPDF_DOCUMENT
}

func (d *pdfiumDocument) PageCount() (int, error) {
	res, err := d.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{Document: d.ref})
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return res.PageCount, nil
}

func (d *pdfiumDocument) PageSize(index int) (float64, float64, error) {
	res, err := d.instance.FPDF_GetPageSizeByIndex(&requests.FPDF_GetPageSizeByIndex{
		Document: d.ref,
		Index:    index,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read page %d geometry: %w", index, err)
	}
	return res.Width, res.Height, nil
}

func (d *pdfiumDocument) RenderPage(index int, dpi int) (image.Image, error) {
	res, err := d.instance.RenderPageInDPI(&requests.RenderPageInDPI{
		DPI: dpi,
		Page: requests.Page{
			ByIndex: &requests.PageByIndex{Document: d.ref, Index: index},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", index, err)
	}
	return res.Result.Image, nil
}

func (d *pdfiumDocument) Close() error {
	_, err := d.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: d.ref})
	return err
}

type pdfiumBuilder struct {
	instance pdfium.Pdfium
	ref      references.FPDF_DOCUMENT
	pages    int
}

// AddImagePage appends a page of the given size whose only content is the
// JPEG stretched across the full page rectangle.
func (b *pdfiumBuilder) AddImagePage(width, height float64, jpegData []byte) error {
	page, err := b.instance.FPDFPage_New(&requests.FPDFPage_New{
		Document:  b.ref,
		PageIndex: b.pages,
		Width:     width,
		Height:    height,
	})
	if err != nil {
		return fmt.Errorf("failed to create page %d (%gx%g): %w", b.pages, width, height, err)
	}

	imgObj, err := b.instance.FPDFPageObj_NewImageObj(&requests.FPDFPageObj_NewImageObj{
		Document: b.ref,
	})
	if err != nil {
		return fmt.Errorf("failed to create image object for page %d: %w", b.pages, err)
	}

	if _, err := b.instance.FPDFImageObj_LoadJpegFileInline(&requests.FPDFImageObj_LoadJpegFileInline{
		ImageObject: imgObj.PageObject,
		FileData:    jpegData,
	}); err != nil {
		return fmt.Errorf("failed to load page %d image data: %w", b.pages, err)
	}

	// The image object's unit square maps onto the page through this matrix,
	// so scaling by the page size makes the image full bleed.
	if _, err := b.instance.FPDFPageObj_SetMatrix(&requests.FPDFPageObj_SetMatrix{
		PageObject: imgObj.PageObject,
		Transform:  structs.FPDF_FS_MATRIX{A: float32(width), D: float32(height)},
	}); err != nil {
		return fmt.Errorf("failed to place page %d image: %w", b.pages, err)
	}

	if _, err := b.instance.FPDFPage_InsertObject(&requests.FPDFPage_InsertObject{
		Page:       requests.Page{ByReference: &page.Page},
		PageObject: imgObj.PageObject,
	}); err != nil {
		return fmt.Errorf("failed to insert page %d image: %w", b.pages, err)
	}

	if _, err := b.instance.FPDFPage_GenerateContent(&requests.FPDFPage_GenerateContent{
		Page: requests.Page{ByReference: &page.Page},
	}); err != nil {
		return fmt.Errorf("failed to generate page %d content: %w", b.pages, err)
	}

	b.pages++
	return nil
}

func (b *pdfiumBuilder) Bytes() ([]byte, error) {
	res, err := b.instance.FPDF_SaveAsCopy(&requests.FPDF_SaveAsCopy{
		Document: b.ref,
		Flags:    requests.SaveFlagNoIncremental,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	if res.FileBytes == nil {
		return nil, errors.New("serialization produced no bytes")
	}
	return *res.FileBytes, nil
}

func (b *pdfiumBuilder) Close() error {
	_, err := b.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: b.ref})
	return err
}
