package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/flightdeck-app/flightdeck/internal/audio"
	"github.com/flightdeck-app/flightdeck/internal/gaze"
	"github.com/flightdeck-app/flightdeck/internal/inference"
	"github.com/flightdeck-app/flightdeck/internal/models"
	"github.com/flightdeck-app/flightdeck/internal/session"
	"github.com/flightdeck-app/flightdeck/internal/store"
)

var (
	sessionPresentation string
	sessionRecording    string
	sessionGazeFile     string
	sessionASRURL       string
	sessionModel        string
	sessionOutput       string
)

func newSessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Finalize a training session",
		Long: `Finalize a training session.

The recording and gaze capture are analyzed, the presentation's active
content snapshot is looked up, and the three channel totals are combined
into one session score, which is recorded in the training history. A
presentation without an active snapshot can still finish a session; its
content term counts as zero.`,
		RunE: sessionCommandE,
	}

	cmd.Flags().StringVarP(&sessionPresentation, "presentation", "p", "", "Presentation name or ID (required)")
	cmd.Flags().StringVar(&sessionRecording, "recording", "", "Recorded delivery WAV file (required)")
	cmd.Flags().StringVar(&sessionGazeFile, "gaze", "", "Gaze capture JSON file (optional)")
	cmd.Flags().StringVar(&sessionASRURL, "asr-url", defaultASRURL, "Base URL of the transcription service")
	cmd.Flags().StringVar(&sessionModel, "model", inference.DefaultModel, "Inference model for qualitative feedback")
	cmd.Flags().StringVarP(&sessionOutput, "output", "o", "", "Write the session result to a JSON file")
	_ = cmd.MarkFlagRequired("recording")

	return cmd
}

// sessionResult is the JSON shape written by --output.
type sessionResult struct {
	Presentation string               `json:"presentation"`
	Score        models.SessionScore  `json:"score"`
	Audio        *audio.Result        `json:"audio"`
	Gaze         *models.GazeAnalysis `json:"gaze,omitempty"`
}

func sessionCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ref, err := resolveRef(sessionPresentation)
	if err != nil {
		return err
	}
	p, err := s.ResolvePresentation(cmd.Context(), ref)
	if err != nil {
		return err
	}

	engine, err := newInferenceEngine(sessionModel)
	if err != nil {
		return err
	}
	transcriber := inference.NewWhisperEngine(sessionASRURL, 5*time.Minute)

	fmt.Printf("Analyzing recording %s...\n", sessionRecording)
	audioResult, err := audio.NewAnalyzer(cfg, transcriber, engine).Analyze(cmd.Context(), sessionRecording)
	if err != nil {
		return err
	}

	var gazeAnalysis *models.GazeAnalysis
	engagement := 0.0
	if sessionGazeFile != "" {
		samples, err := loadGazeSamples(sessionGazeFile)
		if err != nil {
			return err
		}
		gazeAnalysis = gaze.Analyze(samples, cfg)
		engagement = gazeAnalysis.AttentionScore
	}

	var content *models.ContentScoreSet
	snap, err := s.ActiveSnapshot(cmd.Context(), p.ID)
	switch {
	case err == nil:
		content = &snap.Scores
	case errors.Is(err, store.ErrNoActiveSnapshot):
		fmt.Println("No active content snapshot; content counts as zero.")
	default:
		return err
	}

	score := session.Combine(session.Inputs{
		Content:    content,
		Audio:      audioResult.Scores,
		Engagement: engagement,
	})

	training, err := s.RecordTraining(cmd.Context(), p.ID, score.TotalScore, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("\nSession for %q:\n", p.Name)
	fmt.Printf("  Content:    %.2f\n", score.ContentScore)
	fmt.Printf("  Delivery:   %.0f\n", score.AudioScore)
	fmt.Printf("  Engagement: %.3f\n", score.EngagementScore)
	fmt.Printf("  Total:      %.2f\n", score.TotalScore)
	fmt.Printf("Recorded training %s\n", training.ID)

	if sessionOutput != "" {
		return writeJSON(sessionOutput, sessionResult{
			Presentation: p.Name,
			Score:        score,
			Audio:        audioResult,
			Gaze:         gazeAnalysis,
		})
	}
	return nil
}
