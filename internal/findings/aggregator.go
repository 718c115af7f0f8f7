// Package findings implements the content channel: fan-out of slide chunks
// to the findings inference service, deterministic resequencing and merging
// of the results, signal filtering, and category scoring.
package findings

import (
	"github.com/flightdeck-app/flightdeck/internal/config"
	"github.com/flightdeck-app/flightdeck/internal/models"
)

// RetentionThreshold is the minimum combined importance+confidence a finding
// needs to survive filtering. Both inputs are on 0-10 scales.
const RetentionThreshold = 18

// Filter returns a new document containing only findings at or above the
// retention threshold. Slides left without findings are dropped entirely;
// findings are discarded, never down-weighted.
func Filter(doc *models.FindingsDocument) *models.FindingsDocument {
	out := &models.FindingsDocument{}
	for _, slide := range doc.Slides {
		var kept []models.Finding
		for _, f := range slide.Findings {
			if f.Signal() >= RetentionThreshold {
				kept = append(kept, f)
			}
		}
		if len(kept) > 0 {
			out.Slides = append(out.Slides, models.SlideFindings{
				Page:     slide.Page,
				Findings: kept,
			})
		}
	}
	return out
}

// Scores computes the four category sub-scores and the weighted total for a
// filtered document. A category with no findings scores 100; otherwise the
// sub-score is max(0, 100 - mean severity). Weights are applied as-is; they
// are not required to sum to 1.
func Scores(doc *models.FindingsDocument, weights config.ContentWeights) models.ContentScoreSet {
	byCategory := map[models.FindingCategory][]models.Finding{}
	for _, slide := range doc.Slides {
		for _, f := range slide.Findings {
			byCategory[f.Category] = append(byCategory[f.Category], f)
		}
	}

	scoreFor := func(c models.FindingCategory) float64 {
		items := byCategory[c]
		if len(items) == 0 {
			return 100.0
		}
		total := 0
		for _, f := range items {
			total += f.Severity
		}
		avg := float64(total) / float64(len(items))
		score := 100.0 - avg
		if score < 0 {
			score = 0
		}
		return models.Round2(score)
	}

	set := models.ContentScoreSet{
		TextualCorrectness: scoreFor(models.CategoryTextualCorrectness),
		TopicalDepth:       scoreFor(models.CategoryTopicalDepth),
		StructuralFlow:     scoreFor(models.CategoryStructuralFlow),
		VisualDesign:       scoreFor(models.CategoryVisualDesign),
	}
	set.TotalScore = models.Round2(
		set.TextualCorrectness*weights.Textual +
			set.TopicalDepth*weights.Topical +
			set.StructuralFlow*weights.Structure +
			set.VisualDesign*weights.Visual,
	)
	return set
}
