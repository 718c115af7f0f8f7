package findings

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/flightdeck-app/flightdeck/internal/chunking"
	"github.com/flightdeck-app/flightdeck/internal/config"
	"github.com/flightdeck-app/flightdeck/internal/inference"
	"github.com/flightdeck-app/flightdeck/internal/models"
)

// Result is the outcome of a full content analysis: the merged, filtered
// findings document and the category scores computed from it.
type Result struct {
	Document *models.FindingsDocument
	Scores   models.ContentScoreSet
}

// Analyzer runs the content channel end to end: split the slide document
// into chunks, classify every chunk concurrently, resequence the results by
// start page, remap chunk-relative pages to absolute ones, filter by signal,
// and score the survivors.
type Analyzer struct {
	cfg    *config.ScoreConfig
	engine inference.FindingsEngine
}

// NewAnalyzer creates an Analyzer backed by the given findings engine.
func NewAnalyzer(cfg *config.ScoreConfig, engine inference.FindingsEngine) *Analyzer {
	return &Analyzer{
		cfg:    cfg,
		engine: engine,
	}
}

// Analyze classifies and scores the slide document in src. Any chunk
// failure fails the whole analysis; a partial document is never scored.
func (a *Analyzer) Analyze(ctx context.Context, src chunking.Source, description string) (*Result, error) {
	chunks, err := chunking.Split(src, a.cfg.ChunkBatchSize)
	if err != nil {
		return nil, err
	}

	slog.Debug("content analysis starting",
		"pages", src.PageCount(),
		"chunks", len(chunks),
		"workers", a.cfg.MaxChunkWorkers)

	results, err := a.classifyConcurrent(ctx, chunks, description)
	if err != nil {
		return nil, err
	}

	merged, err := mergeChunkResults(chunks, results)
	if err != nil {
		return nil, err
	}

	filtered := Filter(merged)
	return &Result{
		Document: filtered,
		Scores:   Scores(filtered, a.cfg.ContentWeights),
	}, nil
}

// chunkResult pairs one chunk's classifier output with the chunk's start
// page so the merge can restore document order after out-of-order
// completion.
type chunkResult struct {
	startPage int
	doc       *models.FindingsDocument
}

func (a *Analyzer) classifyConcurrent(ctx context.Context, chunks []models.SlideChunk, description string) ([]chunkResult, error) {
	workers := a.cfg.MaxChunkWorkers
	if workers <= 0 {
		workers = config.DefaultMaxChunkWorkers
	}

	type outcome struct {
		result chunkResult
		err    error
	}

	resultChan := make(chan outcome, len(chunks))
	semaphore := make(chan struct{}, workers)

	var wg sync.WaitGroup

	for _, chunk := range chunks {
		wg.Add(1)
		go func(c models.SlideChunk) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := ctx.Err(); err != nil {
				resultChan <- outcome{err: err}
				return
			}

			doc, err := a.engine.Findings(ctx, &inference.FindingsRequest{
				Payload:     c.Payload,
				Filename:    c.Filename,
				Description: description,
			})
			if err != nil {
				resultChan <- outcome{err: fmt.Errorf("classifying pages %d-%d: %w", c.StartPage+1, c.EndPage, err)}
				return
			}
			resultChan <- outcome{result: chunkResult{startPage: c.StartPage, doc: doc}}
		}(chunk)
	}

	wg.Wait()
	close(resultChan)

	var results []chunkResult
	for o := range resultChan {
		if o.err != nil {
			return nil, o.err
		}
		results = append(results, o.result)
	}
	return results, nil
}

// mergeChunkResults resequences per-chunk output into a single document in
// ascending page order. Each chunk's slides arrive with chunk-relative page
// indices and are remapped to absolute pages here. The merge is strict: a
// result for an unsubmitted start page, a duplicate, or a missing chunk is a
// ResequencingError, and a chunk whose slide count differs from its page
// count is an inference contract violation.
func mergeChunkResults(chunks []models.SlideChunk, results []chunkResult) (*models.FindingsDocument, error) {
	expected := make(map[int]models.SlideChunk, len(chunks))
	for _, c := range chunks {
		expected[c.StartPage] = c
	}

	seen := make(map[int]bool, len(results))
	for _, r := range results {
		if _, ok := expected[r.startPage]; !ok || seen[r.startPage] {
			return nil, &models.ResequencingError{StartPage: r.startPage}
		}
		seen[r.startPage] = true
	}
	for start := range expected {
		if !seen[start] {
			return nil, &models.ResequencingError{StartPage: start}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].startPage < results[j].startPage
	})

	merged := &models.FindingsDocument{}
	for _, r := range results {
		chunk := expected[r.startPage]
		if len(r.doc.Slides) != chunk.PageCount() {
			return nil, &models.InferenceContractError{
				Stage: "findings",
				Reason: fmt.Sprintf("chunk starting at page %d returned %d slides for %d pages",
					chunk.StartPage+1, len(r.doc.Slides), chunk.PageCount()),
			}
		}
		for i, slide := range r.doc.Slides {
			merged.Slides = append(merged.Slides, models.SlideFindings{
				Page:     chunk.StartPage + i,
				Findings: slide.Findings,
			})
		}
	}
	return merged, nil
}
