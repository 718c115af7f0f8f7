package audio

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/flightdeck-app/flightdeck/internal/config"
	"github.com/flightdeck-app/flightdeck/internal/inference"
	"github.com/flightdeck-app/flightdeck/internal/models"
)

// Result is the outcome of one recording analysis.
type Result struct {
	Measurement models.AudioMeasurement
	Scores      models.AudioScoreSet
}

// Analyzer runs the delivery channel for one recording: transcription and
// loudness extraction run concurrently, qualitative feedback runs on the
// finished transcript, then everything is measured and scored.
type Analyzer struct {
	cfg        *config.ScoreConfig
	transcript inference.TranscriptEngine
	feedback   inference.FeedbackEngine
	volume     func(path string) *VolumeResult
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithVolumeExtractor replaces the WAV loudness extractor. Used in tests.
func WithVolumeExtractor(fn func(path string) *VolumeResult) AnalyzerOption {
	return func(a *Analyzer) { a.volume = fn }
}

// NewAnalyzer creates an Analyzer backed by the given inference engines.
func NewAnalyzer(cfg *config.ScoreConfig, transcript inference.TranscriptEngine, feedback inference.FeedbackEngine, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		cfg:        cfg,
		transcript: transcript,
		feedback:   feedback,
		volume:     ExtractVolume,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze measures and scores the recording at path. Transcription failure
// fails the analysis; loudness-extraction failure only degrades it.
func (a *Analyzer) Analyze(ctx context.Context, path string) (*Result, error) {
	var (
		tr  *inference.TranscriptResult
		vol *VolumeResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tr, err = a.transcript.Transcribe(gctx, path)
		if err != nil {
			return fmt.Errorf("transcribing %s: %w", path, err)
		}
		return nil
	})
	g.Go(func() error {
		vol = a.volume(path)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	feedback, err := a.feedback.Feedback(ctx, tr.Text)
	if err != nil {
		return nil, fmt.Errorf("qualitative feedback for %s: %w", path, err)
	}

	totalWords := len(tr.Words)
	m := models.AudioMeasurement{
		Transcript: models.Transcript{
			FullText: tr.Text,
			Words:    tr.Words,
		},
		TotalWords:     totalWords,
		Duration:       models.Round2(tr.Duration),
		WPM:            models.Round1(WPM(totalWords, tr.Duration)),
		AvgVolumeDBFS:  vol.AvgDBFS,
		VolumeTimeline: vol.Timeline,
		VolumeDegraded: vol.Degraded,
		Feedback:       *feedback,
		FillerRatio:    models.RoundN(FillerRatio(feedback.Fillers, totalWords), 3),
	}

	scores := Scores(&m, a.cfg)
	slog.Debug("recording analyzed",
		"path", path,
		"words", totalWords,
		"wpm", m.WPM,
		"volume_degraded", m.VolumeDegraded,
		"total_score", scores.TotalScore)

	return &Result{Measurement: m, Scores: scores}, nil
}
