package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// SlideChunk is one contiguous page window of a slide document, submitted as
// a single findings inference request. StartPage is retained so results can
// be resequenced after out-of-order completion.
type SlideChunk struct {
	StartPage int    // inclusive, 0-based
	EndPage   int    // exclusive
	Filename  string // filename hint passed to the inference service
	Payload   []byte // serialized page-range document
}

// PageCount returns the number of pages covered by the chunk.
func (c SlideChunk) PageCount() int {
	return c.EndPage - c.StartPage
}

// SessionScore combines the three channel totals for one finished training
// session. TotalScore is the unweighted mean of the three, with the
// engagement score scaled from [0,1] to [0,100] first.
type SessionScore struct {
	ContentScore    float64 `json:"content_score"`
	AudioScore      float64 `json:"audio_score"`
	EngagementScore float64 `json:"engagement_score"` // [0,1]
	TotalScore      float64 `json:"total_score"`
}

// ContentSnapshot is a persisted ContentScoreSet for a presentation. At most
// one snapshot per presentation is active at a time; the store enforces this
// when a snapshot is activated.
type ContentSnapshot struct {
	ID             uuid.UUID        `json:"id"`
	PresentationID uuid.UUID        `json:"presentation_id"`
	Document       FindingsDocument `json:"findings"`
	Scores         ContentScoreSet  `json:"scores"`
	Active         bool             `json:"is_active"`
	CreatedAt      time.Time        `json:"created_at"`
}

// Training is one finished session's persisted score.
type Training struct {
	ID             uuid.UUID `json:"id"`
	PresentationID uuid.UUID `json:"presentation_id"`
	TotalScore     float64   `json:"total_score"`
	Date           time.Time `json:"date"`
}

// Round2 rounds to 2 decimal places. All user-facing scores are reported at
// this precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to 1 decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// RoundN rounds to n decimal places.
func RoundN(v float64, n int) float64 {
	p := math.Pow(10, float64(n))
	return math.Round(v*p) / p
}
