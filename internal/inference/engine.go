// Package inference holds the boundary adapters for the three external
// inference contracts the engine depends on: slide findings classification,
// speech transcription, and qualitative audio feedback. Adapters validate
// responses strictly; a non-conforming response is an
// [models.InferenceContractError] and is never silently dropped.
package inference

import (
	"context"

	"github.com/flightdeck-app/flightdeck/internal/models"
)

// FindingsRequest is one chunk's inference submission.
type FindingsRequest struct {
	// Payload is the serialized page-range document.
	Payload []byte
	// Filename is a hint passed through to the service.
	Filename string
	// Description is the caller-supplied presentation description.
	Description string
}

// FindingsEngine classifies slide findings for one chunk. Page numbers in the
// returned document are chunk-relative (0-based within the chunk); remapping
// to absolute pages is the orchestrator's responsibility.
type FindingsEngine interface {
	Findings(ctx context.Context, req *FindingsRequest) (*models.FindingsDocument, error)
}

// TranscriptResult is the transcription service's response for one recording.
type TranscriptResult struct {
	Text     string
	Words    []models.TranscriptWord
	Duration float64 // seconds
}

// TranscriptEngine extracts a word-timed transcript from a recording file.
type TranscriptEngine interface {
	Transcribe(ctx context.Context, path string) (*TranscriptResult, error)
}

// FeedbackEngine produces qualitative delivery feedback for a transcript.
type FeedbackEngine interface {
	Feedback(ctx context.Context, transcript string) (*models.QualitativeFeedback, error)
}
