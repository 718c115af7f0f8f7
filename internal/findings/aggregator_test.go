package findings

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flightdeck-app/flightdeck/internal/config"
	"github.com/flightdeck-app/flightdeck/internal/models"
)

func finding(cat models.FindingCategory, confidence, importance, severity int) models.Finding {
	return models.Finding{
		Category:    cat,
		TextExcerpt: "excerpt",
		Suggestion:  "suggestion",
		Explanation: "explanation",
		Confidence:  confidence,
		Importance:  importance,
		Severity:    severity,
	}
}

func TestFilterThreshold(t *testing.T) {
	doc := &models.FindingsDocument{
		Slides: []models.SlideFindings{
			{
				Page: 0,
				Findings: []models.Finding{
					finding(models.CategoryTextualCorrectness, 9, 9, 50), // 18, kept
					finding(models.CategoryTopicalDepth, 9, 8, 50),       // 17, dropped
				},
			},
		},
	}

	filtered := Filter(doc)
	require.Len(t, filtered.Slides, 1)
	require.Len(t, filtered.Slides[0].Findings, 1)
	require.Equal(t, models.CategoryTextualCorrectness, filtered.Slides[0].Findings[0].Category)
}

func TestFilterDropsEmptiedSlides(t *testing.T) {
	doc := &models.FindingsDocument{
		Slides: []models.SlideFindings{
			{Page: 0, Findings: []models.Finding{finding(models.CategoryVisualDesign, 5, 5, 10)}},
			{Page: 1, Findings: []models.Finding{finding(models.CategoryVisualDesign, 10, 10, 10)}},
		},
	}

	filtered := Filter(doc)
	require.Len(t, filtered.Slides, 1)
	require.Equal(t, 1, filtered.Slides[0].Page)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	doc := &models.FindingsDocument{
		Slides: []models.SlideFindings{
			{Page: 0, Findings: []models.Finding{
				finding(models.CategoryStructuralFlow, 0, 0, 99),
				finding(models.CategoryStructuralFlow, 10, 10, 1),
			}},
		},
	}

	_ = Filter(doc)
	require.Len(t, doc.Slides[0].Findings, 2)
}

func TestScoresEmptyCategoriesScoreFull(t *testing.T) {
	weights := config.New().ContentWeights

	scores := Scores(&models.FindingsDocument{}, weights)
	require.Equal(t, 100.0, scores.TextualCorrectness)
	require.Equal(t, 100.0, scores.TopicalDepth)
	require.Equal(t, 100.0, scores.StructuralFlow)
	require.Equal(t, 100.0, scores.VisualDesign)
	require.Equal(t, 100.0, scores.TotalScore)
}

func TestScoresMeanSeverityPerCategory(t *testing.T) {
	doc := &models.FindingsDocument{
		Slides: []models.SlideFindings{
			{Page: 0, Findings: []models.Finding{
				finding(models.CategoryTextualCorrectness, 10, 10, 20),
				finding(models.CategoryTextualCorrectness, 10, 10, 40),
				finding(models.CategoryTopicalDepth, 10, 10, 90),
			}},
		},
	}

	scores := Scores(doc, config.New().ContentWeights)
	require.Equal(t, 70.0, scores.TextualCorrectness) // 100 - mean(20,40)
	require.Equal(t, 10.0, scores.TopicalDepth)
	require.Equal(t, 100.0, scores.StructuralFlow)
	require.Equal(t, 100.0, scores.VisualDesign)
}

func TestScoresClampAtZero(t *testing.T) {
	doc := &models.FindingsDocument{
		Slides: []models.SlideFindings{
			{Page: 0, Findings: []models.Finding{
				finding(models.CategoryVisualDesign, 10, 10, 100),
				finding(models.CategoryVisualDesign, 10, 10, 100),
			}},
		},
	}

	scores := Scores(doc, config.New().ContentWeights)
	require.Equal(t, 0.0, scores.VisualDesign)
}

func TestScoresWeightedTotal(t *testing.T) {
	doc := &models.FindingsDocument{
		Slides: []models.SlideFindings{
			{Page: 0, Findings: []models.Finding{
				finding(models.CategoryTextualCorrectness, 10, 10, 10),
			}},
		},
	}
	weights := config.ContentWeights{Textual: 0.5, Topical: 0.2, Structure: 0.2, Visual: 0.1}

	scores := Scores(doc, weights)
	require.Equal(t, 90.0, scores.TextualCorrectness)
	require.Equal(t, 100.0, scores.TopicalDepth)
	require.Equal(t, 100.0, scores.StructuralFlow)
	require.Equal(t, 100.0, scores.VisualDesign)
	// 90*0.5 + 100*0.2 + 100*0.2 + 100*0.1
	require.Equal(t, 95.0, scores.TotalScore)
}

func TestScoresUnnormalizedWeightsNotRescaled(t *testing.T) {
	weights := config.ContentWeights{Textual: 1, Topical: 1, Structure: 1, Visual: 1}

	scores := Scores(&models.FindingsDocument{}, weights)
	require.Equal(t, 400.0, scores.TotalScore)
}

func TestScoresIdempotent(t *testing.T) {
	doc := &models.FindingsDocument{
		Slides: []models.SlideFindings{
			{Page: 0, Findings: []models.Finding{
				finding(models.CategoryTextualCorrectness, 9, 9, 33),
				finding(models.CategoryStructuralFlow, 10, 8, 67),
			}},
		},
	}
	weights := config.New().ContentWeights

	first := Scores(doc, weights)
	second := Scores(doc, weights)
	require.Equal(t, first, second)
}
