package inference

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/flightdeck-app/flightdeck/internal/models"
)

// findingsResponseSchema is the strict wire contract for findings inference
// responses. Category integers, the 0-10 confidence/importance range, and the
// 0-100 severity range are enforced here, before any scoring runs.
const findingsResponseSchema = `{
  "type": "object",
  "required": ["slides"],
  "properties": {
    "slides": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["page", "findings"],
        "properties": {
          "page": {"type": "integer", "minimum": 0},
          "findings": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["type", "text_excerpt", "suggestion", "explanation", "confidence", "importance", "severity"],
              "properties": {
                "type": {"type": "integer", "enum": [1, 2, 3, 4]},
                "text_excerpt": {"type": "string"},
                "suggestion": {"type": "string"},
                "explanation": {"type": "string"},
                "confidence": {"type": "integer", "minimum": 0, "maximum": 10},
                "importance": {"type": "integer", "minimum": 0, "maximum": 10},
                "severity": {"type": "integer", "minimum": 0, "maximum": 100}
              }
            }
          }
        }
      }
    }
  }
}`

var (
	compileFindingsSchemaOnce sync.Once
	compiledFindingsSchema    *jsonschema.Schema
	compileFindingsSchemaErr  error
)

func findingsSchema() (*jsonschema.Schema, error) {
	compileFindingsSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(findingsResponseSchema))
		if err != nil {
			compileFindingsSchemaErr = fmt.Errorf("parsing findings schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("findings.json", doc); err != nil {
			compileFindingsSchemaErr = fmt.Errorf("adding findings schema resource: %w", err)
			return
		}
		compiledFindingsSchema, compileFindingsSchemaErr = compiler.Compile("findings.json")
	})
	return compiledFindingsSchema, compileFindingsSchemaErr
}

// DecodeFindingsResponse validates raw response JSON against the findings
// contract and decodes it. Any violation is an InferenceContractError.
func DecodeFindingsResponse(raw string) (*models.FindingsDocument, error) {
	schema, err := findingsSchema()
	if err != nil {
		return nil, err
	}

	value, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return nil, &models.InferenceContractError{
			Stage:  "findings",
			Reason: "response is not valid JSON",
			Err:    err,
		}
	}

	if err := schema.Validate(value); err != nil {
		return nil, &models.InferenceContractError{
			Stage:  "findings",
			Reason: "response violates schema",
			Err:    err,
		}
	}

	var doc models.FindingsDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &models.InferenceContractError{
			Stage:  "findings",
			Reason: "response does not decode",
			Err:    err,
		}
	}
	return &doc, nil
}

// DecodeFeedbackResponse decodes and bounds-checks a qualitative feedback
// response.
func DecodeFeedbackResponse(raw string) (*models.QualitativeFeedback, error) {
	var fb models.QualitativeFeedback
	if err := json.Unmarshal([]byte(raw), &fb); err != nil {
		return nil, &models.InferenceContractError{
			Stage:  "feedback",
			Reason: "response is not valid JSON",
			Err:    err,
		}
	}

	if fb.ClarityScore < 0 || fb.ClarityScore > 100 {
		return nil, &models.InferenceContractError{
			Stage:  "feedback",
			Reason: fmt.Sprintf("clarity_score %d out of [0,100]", fb.ClarityScore),
		}
	}
	if fb.EngagementRating < 0 || fb.EngagementRating > 100 {
		return nil, &models.InferenceContractError{
			Stage:  "feedback",
			Reason: fmt.Sprintf("engagement_rating %d out of [0,100]", fb.EngagementRating),
		}
	}
	for _, f := range fb.Fillers {
		if f.Count < 0 {
			return nil, &models.InferenceContractError{
				Stage:  "feedback",
				Reason: fmt.Sprintf("negative count for filler %q", f.Word),
			}
		}
	}
	return &fb, nil
}
