package inference

import (
	"testing"

	"github.com/flightdeck-app/flightdeck/internal/models"
	"github.com/stretchr/testify/require"
)

const validFindingsJSON = `{
  "slides": [
    {"page": 0, "findings": [
      {"type": 1, "text_excerpt": "undestand", "suggestion": "understand",
       "explanation": "spelling mistake", "confidence": 10, "importance": 8, "severity": 12}
    ]},
    {"page": 1, "findings": []}
  ]
}`

func TestDecodeFindingsResponse_Valid(t *testing.T) {
	doc, err := DecodeFindingsResponse(validFindingsJSON)
	require.NoError(t, err)
	require.Len(t, doc.Slides, 2)

	f := doc.Slides[0].Findings[0]
	require.Equal(t, models.CategoryTextualCorrectness, f.Category)
	require.Equal(t, "undestand", f.TextExcerpt)
	require.Equal(t, 12, f.Severity)
	require.Empty(t, doc.Slides[1].Findings)
}

func TestDecodeFindingsResponse_ContractViolations(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `not json at all`},
		{"missing slides", `{"pages": []}`},
		{"invalid category", `{"slides": [{"page": 0, "findings": [
			{"type": 5, "text_excerpt": "x", "suggestion": "y", "explanation": "z",
			 "confidence": 5, "importance": 5, "severity": 50}]}]}`},
		{"confidence out of range", `{"slides": [{"page": 0, "findings": [
			{"type": 1, "text_excerpt": "x", "suggestion": "y", "explanation": "z",
			 "confidence": 11, "importance": 5, "severity": 50}]}]}`},
		{"severity out of range", `{"slides": [{"page": 0, "findings": [
			{"type": 1, "text_excerpt": "x", "suggestion": "y", "explanation": "z",
			 "confidence": 5, "importance": 5, "severity": 101}]}]}`},
		{"missing required field", `{"slides": [{"page": 0, "findings": [
			{"type": 1, "suggestion": "y", "explanation": "z",
			 "confidence": 5, "importance": 5, "severity": 50}]}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeFindingsResponse(tc.raw)
			require.Error(t, err)

			var contractErr *models.InferenceContractError
			require.ErrorAs(t, err, &contractErr)
			require.Equal(t, "findings", contractErr.Stage)
		})
	}
}

func TestDecodeFeedbackResponse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		fb, err := DecodeFeedbackResponse(`{
			"fillers": [{"word": "um", "count": 4}],
			"questions": ["q1", "q2", "q3", "q4", "q5"],
			"formulation_aids": [{"original": "a", "suggestion": "b", "explanation": "c"}],
			"clarity_score": 80,
			"engagement_rating": 65
		}`)
		require.NoError(t, err)
		require.Equal(t, 80, fb.ClarityScore)
		require.Equal(t, 65, fb.EngagementRating)
		require.Len(t, fb.Questions, 5)
		require.Equal(t, models.FillerWord{Word: "um", Count: 4}, fb.Fillers[0])
	})

	t.Run("clarity out of range", func(t *testing.T) {
		_, err := DecodeFeedbackResponse(`{"fillers": [], "questions": [], "formulation_aids": [], "clarity_score": 120, "engagement_rating": 50}`)
		var contractErr *models.InferenceContractError
		require.ErrorAs(t, err, &contractErr)
		require.Equal(t, "feedback", contractErr.Stage)
	})

	t.Run("negative filler count", func(t *testing.T) {
		_, err := DecodeFeedbackResponse(`{"fillers": [{"word": "um", "count": -1}], "questions": [], "formulation_aids": [], "clarity_score": 50, "engagement_rating": 50}`)
		require.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := DecodeFeedbackResponse(`<html>`)
		require.Error(t, err)
	})
}
