package models

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument indicates a slide document with zero pages was submitted
// for analysis.
var ErrEmptyDocument = errors.New("slide document has no pages")

// InferenceContractError indicates an external inference service returned a
// response that violates its schema contract. It is never retried and never
// recovered: a single malformed chunk fails the whole document-scoring
// operation rather than producing a misleadingly clean score.
type InferenceContractError struct {
	Stage  string // "findings", "transcript" or "feedback"
	Reason string
	Err    error
}

func (e *InferenceContractError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s inference contract violation: %s: %v", e.Stage, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s inference contract violation: %s", e.Stage, e.Reason)
}

func (e *InferenceContractError) Unwrap() error { return e.Err }

// ResequencingError indicates a chunk result carried a start page that does
// not correspond to any submitted chunk. This is a programming-logic
// invariant violation and is treated as fatal.
type ResequencingError struct {
	StartPage int
}

func (e *ResequencingError) Error() string {
	return fmt.Sprintf("chunk result for unknown start page %d", e.StartPage)
}
