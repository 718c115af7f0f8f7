package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/flightdeck-app/flightdeck/internal/models"
)

// WhisperEngine implements TranscriptEngine against a whisper-compatible
// transcription service over HTTP. The recording file is uploaded as
// multipart form data to <baseURL>/transcribe.
type WhisperEngine struct {
	baseURL string
	client  *http.Client
}

// NewWhisperEngine builds a transcript engine for the given service URL. The
// client timeout bounds the whole call; expiry surfaces as a hard failure
// rather than an indefinitely blocked analysis.
func NewWhisperEngine(baseURL string, timeout time.Duration) *WhisperEngine {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &WhisperEngine{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type whisperWord struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

type whisperSegment struct {
	Start float64       `json:"start"`
	End   float64       `json:"end"`
	Text  string        `json:"text"`
	Words []whisperWord `json:"words"`
}

type whisperResponse struct {
	Segments []whisperSegment `json:"segments"`
	Duration float64          `json:"duration"`
	Language string           `json:"language"`
}

// Transcribe uploads the recording and assembles the full transcript with
// word-level timing. Word tokens are stripped of leading/trailing
// whitespace and sentence punctuation.
func (e *WhisperEngine) Transcribe(ctx context.Context, path string) (*TranscriptResult, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fw, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	if _, err := io.Copy(fw, fd); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/transcribe", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcript inference: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("transcript inference %s: %s", resp.Status, string(msg))
	}

	var out whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &models.InferenceContractError{
			Stage:  "transcript",
			Reason: "response does not decode",
			Err:    err,
		}
	}

	return assembleTranscript(&out), nil
}

func assembleTranscript(resp *whisperResponse) *TranscriptResult {
	var parts []string
	var words []models.TranscriptWord

	for _, seg := range resp.Segments {
		parts = append(parts, strings.TrimSpace(seg.Text))
		for _, word := range seg.Words {
			words = append(words, models.TranscriptWord{
				Start: word.Start,
				End:   word.End,
				Word:  strings.Trim(strings.TrimSpace(word.Word), ".,?!"),
			})
		}
	}

	duration := resp.Duration
	if duration == 0 && len(resp.Segments) > 0 {
		duration = resp.Segments[len(resp.Segments)-1].End
	}

	return &TranscriptResult{
		Text:     strings.Join(parts, " "),
		Words:    words,
		Duration: duration,
	}
}
