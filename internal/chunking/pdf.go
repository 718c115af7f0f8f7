package chunking

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDFSource adapts an in-memory PDF to the Source interface using pdfcpu.
type PDFSource struct {
	data  []byte
	pages int
}

// NewPDFSource validates the document and counts its pages.
func NewPDFSource(data []byte) (*PDFSource, error) {
	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}
	return &PDFSource{data: data, pages: count}, nil
}

func (s *PDFSource) PageCount() int { return s.pages }

// SlicePages extracts pages [start, end) into a standalone PDF.
func (s *PDFSource) SlicePages(start, end int) ([]byte, error) {
	if start < 0 || end > s.pages || start >= end {
		return nil, fmt.Errorf("page range [%d,%d) out of bounds for %d pages", start, end, s.pages)
	}

	var out bytes.Buffer
	// pdfcpu page selections are 1-based and inclusive.
	sel := []string{fmt.Sprintf("%d-%d", start+1, end)}
	if err := api.Trim(bytes.NewReader(s.data), &out, sel, nil); err != nil {
		return nil, fmt.Errorf("trimming pages %s: %w", sel[0], err)
	}
	return out.Bytes(), nil
}
