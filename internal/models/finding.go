package models

import "fmt"

// FindingCategory identifies one of the four fixed content axes a finding
// can be filed under. The integer values are part of the inference wire
// contract and must not be renumbered.
type FindingCategory int

const (
	CategoryTextualCorrectness FindingCategory = 1
	CategoryTopicalDepth       FindingCategory = 2
	CategoryStructuralFlow     FindingCategory = 3
	CategoryVisualDesign       FindingCategory = 4
)

// Categories lists all valid finding categories in wire order.
var Categories = []FindingCategory{
	CategoryTextualCorrectness,
	CategoryTopicalDepth,
	CategoryStructuralFlow,
	CategoryVisualDesign,
}

func (c FindingCategory) String() string {
	switch c {
	case CategoryTextualCorrectness:
		return "textual-correctness"
	case CategoryTopicalDepth:
		return "topical-depth"
	case CategoryStructuralFlow:
		return "structural-flow"
	case CategoryVisualDesign:
		return "visual-design"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Valid reports whether c is one of the four wire categories.
func (c FindingCategory) Valid() bool {
	return c >= CategoryTextualCorrectness && c <= CategoryVisualDesign
}

// Finding is one detected issue on a slide page. Findings are produced by the
// findings inference service and never mutated afterwards; the aggregator
// filters them but does not edit them.
type Finding struct {
	Category    FindingCategory `json:"type"`
	TextExcerpt string          `json:"text_excerpt"`
	Suggestion  string          `json:"suggestion"`
	Explanation string          `json:"explanation"`
	Confidence  int             `json:"confidence"` // 0-10
	Importance  int             `json:"importance"` // 0-10
	Severity    int             `json:"severity"`   // 0-100
}

// Signal is the combined confidence+importance value the aggregator's
// retention threshold is applied to.
func (f Finding) Signal() int {
	return f.Confidence + f.Importance
}

// SlideFindings holds the findings for a single page. Page numbers are
// chunk-relative in inference responses and absolute in a merged document.
type SlideFindings struct {
	Page     int       `json:"page"`
	Findings []Finding `json:"findings"`
}

// FindingsDocument is an ordered sequence of per-page finding lists. A merged
// document is always in ascending absolute page order.
type FindingsDocument struct {
	Slides []SlideFindings `json:"slides"`
}

// ContentScoreSet holds the four category sub-scores and the weighted total
// for one slide document. A category without findings scores 100.
type ContentScoreSet struct {
	TextualCorrectness float64 `json:"textual_correctness_score"`
	TopicalDepth       float64 `json:"topical_depth_score"`
	StructuralFlow     float64 `json:"structural_flow_score"`
	VisualDesign       float64 `json:"visual_design_score"`
	TotalScore         float64 `json:"total_score"`
}

// Category returns the sub-score for the given category.
func (s ContentScoreSet) Category(c FindingCategory) float64 {
	switch c {
	case CategoryTextualCorrectness:
		return s.TextualCorrectness
	case CategoryTopicalDepth:
		return s.TopicalDepth
	case CategoryStructuralFlow:
		return s.StructuralFlow
	case CategoryVisualDesign:
		return s.VisualDesign
	default:
		return 0
	}
}
