package inference

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/flightdeck-app/flightdeck/internal/models"
)

// DefaultModel is the inference model used when none is configured.
const DefaultModel = "gpt-4.1-mini"

// OpenAIEngine implements FindingsEngine and FeedbackEngine against the
// OpenAI Responses API with structured outputs.
type OpenAIEngine struct {
	client *openai.Client
	model  string
}

// NewOpenAIEngine builds an engine for the given API key and model. An empty
// model selects DefaultModel.
func NewOpenAIEngine(apiKey, model string) *OpenAIEngine {
	if model == "" {
		model = DefaultModel
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIEngine{client: &client, model: model}
}

// wire structs for reflected response schemas; they mirror the models types
// but stay local so the wire contract cannot drift silently with model
// refactors.
type findingsWire struct {
	Slides []struct {
		Page     int `json:"page" jsonschema:"required"`
		Findings []struct {
			Type        int    `json:"type" jsonschema:"required"`
			TextExcerpt string `json:"text_excerpt" jsonschema:"required"`
			Suggestion  string `json:"suggestion" jsonschema:"required"`
			Explanation string `json:"explanation" jsonschema:"required"`
			Confidence  int    `json:"confidence" jsonschema:"required"`
			Importance  int    `json:"importance" jsonschema:"required"`
			Severity    int    `json:"severity" jsonschema:"required"`
		} `json:"findings" jsonschema:"required"`
	} `json:"slides" jsonschema:"required"`
}

type feedbackWire struct {
	Fillers []struct {
		Word  string `json:"word" jsonschema:"required"`
		Count int    `json:"count" jsonschema:"required"`
	} `json:"fillers" jsonschema:"required"`
	Questions       []string `json:"questions" jsonschema:"required"`
	FormulationAids []struct {
		Original    string `json:"original" jsonschema:"required"`
		Suggestion  string `json:"suggestion" jsonschema:"required"`
		Explanation string `json:"explanation" jsonschema:"required"`
	} `json:"formulation_aids" jsonschema:"required"`
	ClarityScore     int `json:"clarity_score" jsonschema:"required"`
	EngagementRating int `json:"engagement_rating" jsonschema:"required"`
}

var (
	findingsWireSchema = generateSchema[findingsWire]()
	feedbackWireSchema = generateSchema[feedbackWire]()
)

// Findings submits one chunk payload and returns its chunk-relative findings
// document.
func (e *OpenAIEngine) Findings(ctx context.Context, req *FindingsRequest) (*models.FindingsDocument, error) {
	encoded := base64.StdEncoding.EncodeToString(req.Payload)
	userText := fmt.Sprintf(
		"Analyze these slides and report findings. This is a presentation about: %s. Follow the instructions strictly and return findings in the required JSON format.",
		req.Description,
	)

	items := responses.ResponseInputParam{
		responses.ResponseInputItemUnionParam{
			OfMessage: &responses.EasyInputMessageParam{
				Role: responses.EasyInputMessageRoleUser,
				Content: responses.EasyInputMessageContentUnionParam{
					OfInputItemContentList: responses.ResponseInputMessageContentListParam{
						responses.ResponseInputContentUnionParam{
							OfInputText: &responses.ResponseInputTextParam{Text: userText},
						},
						responses.ResponseInputContentUnionParam{
							OfInputFile: &responses.ResponseInputFileParam{
								Filename: openai.String(req.Filename),
								FileData: openai.String("data:application/pdf;base64," + encoded),
							},
						},
					},
				},
			},
		},
	}

	params := responses.ResponseNewParams{
		Model:           e.model,
		MaxOutputTokens: openai.Int(2048),
		Temperature:     openai.Float(0),
		Instructions:    openai.String(findingsSystemPrompt),
		Input:           responses.ResponseNewParamsInputUnion{OfInputItemList: items},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:        "Findings",
					Schema:      findingsWireSchema,
					Strict:      openai.Bool(true),
					Description: openai.String("Per-slide findings JSON"),
					Type:        "json_schema",
				},
			},
		},
	}

	resp, err := callWithRetry(ctx, e.client, params)
	if err != nil {
		return nil, fmt.Errorf("findings inference: %w", err)
	}

	return DecodeFindingsResponse(resp.OutputText())
}

// Feedback submits a transcript and returns qualitative delivery feedback.
func (e *OpenAIEngine) Feedback(ctx context.Context, transcript string) (*models.QualitativeFeedback, error) {
	params := responses.ResponseNewParams{
		Model:           e.model,
		MaxOutputTokens: openai.Int(2048),
		Temperature:     openai.Float(0),
		Instructions:    openai.String(feedbackSystemPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(transcript, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:        "Feedback",
					Schema:      feedbackWireSchema,
					Strict:      openai.Bool(true),
					Description: openai.String("Qualitative delivery feedback JSON"),
					Type:        "json_schema",
				},
			},
		},
	}

	resp, err := callWithRetry(ctx, e.client, params)
	if err != nil {
		return nil, fmt.Errorf("feedback inference: %w", err)
	}

	return DecodeFeedbackResponse(resp.OutputText())
}

func generateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)
	b, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	out := map[string]any{}
	if err := jsonUnmarshal(b, &out); err != nil {
		panic(err)
	}
	return out
}
