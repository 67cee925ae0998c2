package engine

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// StructuralOptimizer implements Optimizer with pdfcpu: dead objects are
// elided, streams recompressed and the cross reference table compacted,
// without touching page content.
type StructuralOptimizer struct {
	conf *model.Configuration
}

// NewStructuralOptimizer returns an optimizer with relaxed validation, so
// documents with common standard violations still get rewritten instead of
// rejected.
func NewStructuralOptimizer() *StructuralOptimizer {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &StructuralOptimizer{conf: conf}
}

// Optimize rewrites the document and returns the cleaned bytes. The result is
// not guaranteed to be smaller; callers compare sizes themselves.
func (o *StructuralOptimizer) Optimize(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := api.Optimize(bytes.NewReader(data), &buf, o.conf); err != nil {
		return nil, fmt.Errorf("structural optimization failed: %w", err)
	}
	return buf.Bytes(), nil
}
