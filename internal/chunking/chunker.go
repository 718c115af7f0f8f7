// Package chunking splits a multi-page slide document into ordered
// fixed-size page windows suitable for submission to the findings inference
// service.
package chunking

import (
	"fmt"

	"github.com/flightdeck-app/flightdeck/internal/models"
)

// Source provides page-level access to a slide document. Implementations
// must be safe for sequential use; Split reads them single-threaded.
type Source interface {
	// PageCount returns the total number of pages in the document.
	PageCount() int

	// SlicePages serializes the half-open page range [start, end) into a
	// standalone document payload.
	SlicePages(start, end int) ([]byte, error)
}

// Split produces ceil(P/batchSize) chunks covering the document in order.
// The last chunk may be shorter. Each chunk retains its start page so results
// can be resequenced after concurrent inference calls complete out of order.
func Split(src Source, batchSize int) ([]models.SlideChunk, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}

	total := src.PageCount()
	if total == 0 {
		return nil, models.ErrEmptyDocument
	}

	chunks := make([]models.SlideChunk, 0, (total+batchSize-1)/batchSize)
	for start := 0; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}

		payload, err := src.SlicePages(start, end)
		if err != nil {
			return nil, fmt.Errorf("slicing pages [%d,%d): %w", start, end, err)
		}

		chunks = append(chunks, models.SlideChunk{
			StartPage: start,
			EndPage:   end,
			// The hint always names the nominal window, even when the last
			// chunk is shorter.
			Filename: fmt.Sprintf("slides_%d_to_%d.pdf", start+1, start+batchSize),
			Payload:  payload,
		})
	}

	return chunks, nil
}
