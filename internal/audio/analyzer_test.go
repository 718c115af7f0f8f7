package audio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flightdeck-app/flightdeck/internal/config"
	"github.com/flightdeck-app/flightdeck/internal/inference"
	"github.com/flightdeck-app/flightdeck/internal/models"
)

type stubTranscriber struct {
	result *inference.TranscriptResult
	err    error
}

func (s *stubTranscriber) Transcribe(ctx context.Context, path string) (*inference.TranscriptResult, error) {
	return s.result, s.err
}

type stubFeedback struct {
	feedback *models.QualitativeFeedback
	err      error
	gotText  string
}

func (s *stubFeedback) Feedback(ctx context.Context, transcript string) (*models.QualitativeFeedback, error) {
	s.gotText = transcript
	return s.feedback, s.err
}

func words(n int) []models.TranscriptWord {
	out := make([]models.TranscriptWord, n)
	for i := range out {
		out[i] = models.TranscriptWord{Start: float64(i), End: float64(i) + 0.5, Word: "word"}
	}
	return out
}

func TestAnalyzeMeasurement(t *testing.T) {
	cfg := config.New()
	transcriber := &stubTranscriber{result: &inference.TranscriptResult{
		Text:     "the full transcript",
		Words:    words(150),
		Duration: 60.004,
	}}
	feedback := &stubFeedback{feedback: &models.QualitativeFeedback{
		Fillers:          []models.FillerWord{{Word: "um", Count: 3}},
		ClarityScore:     80,
		EngagementRating: 70,
	}}
	extractor := func(path string) *VolumeResult {
		return &VolumeResult{
			AvgDBFS:  -21.0,
			Timeline: []models.VolumeBucket{{T: 0, RMS: 0.5, DBFS: -6.0}},
		}
	}

	a := NewAnalyzer(cfg, transcriber, feedback, WithVolumeExtractor(extractor))
	res, err := a.Analyze(context.Background(), "talk.wav")
	require.NoError(t, err)

	m := res.Measurement
	require.Equal(t, "the full transcript", m.Transcript.FullText)
	require.Equal(t, "the full transcript", feedback.gotText)
	require.Equal(t, 150, m.TotalWords)
	require.Equal(t, 60.0, m.Duration)
	require.Equal(t, 150.0, m.WPM)
	require.Equal(t, -21.0, m.AvgVolumeDBFS)
	require.False(t, m.VolumeDegraded)
	require.Equal(t, 0.02, m.FillerRatio)

	require.Equal(t, 100, res.Scores.SpeakingPace)
	require.Equal(t, 100, res.Scores.Volume)
	require.Equal(t, 60, res.Scores.Filler) // 1 - 0.02/0.05
	require.Equal(t, 80, res.Scores.Clarity)
	require.Equal(t, 70, res.Scores.Engagement)
	require.Equal(t, 82, res.Scores.TotalScore)
}

func TestAnalyzeEmptyRecording(t *testing.T) {
	cfg := config.New()
	transcriber := &stubTranscriber{result: &inference.TranscriptResult{}}
	feedback := &stubFeedback{feedback: &models.QualitativeFeedback{}}

	a := NewAnalyzer(cfg, transcriber, feedback, WithVolumeExtractor(func(string) *VolumeResult {
		return &VolumeResult{AvgDBFS: SilenceFloorDBFS}
	}))
	res, err := a.Analyze(context.Background(), "empty.wav")
	require.NoError(t, err)

	require.Equal(t, 0.0, res.Measurement.WPM)
	require.Equal(t, 0.0, res.Measurement.FillerRatio)
	require.Equal(t, 0, res.Scores.SpeakingPace)
}

func TestAnalyzeDegradedVolume(t *testing.T) {
	cfg := config.New()
	transcriber := &stubTranscriber{result: &inference.TranscriptResult{
		Text:     "short talk",
		Words:    words(10),
		Duration: 4,
	}}
	feedback := &stubFeedback{feedback: &models.QualitativeFeedback{ClarityScore: 50, EngagementRating: 50}}

	a := NewAnalyzer(cfg, transcriber, feedback, WithVolumeExtractor(func(path string) *VolumeResult {
		return degradedVolume(path, errors.New("ffmpeg exploded"))
	}))
	res, err := a.Analyze(context.Background(), "talk.wav")
	require.NoError(t, err)

	require.True(t, res.Measurement.VolumeDegraded)
	require.Equal(t, DegradedDBFS, res.Measurement.AvgVolumeDBFS)
	require.Empty(t, res.Measurement.VolumeTimeline)
	require.Equal(t, 0, res.Scores.Volume)
}

func TestAnalyzeTranscriptionFailureIsFatal(t *testing.T) {
	cfg := config.New()
	transcriber := &stubTranscriber{err: errors.New("asr service down")}
	feedback := &stubFeedback{feedback: &models.QualitativeFeedback{}}

	a := NewAnalyzer(cfg, transcriber, feedback, WithVolumeExtractor(func(string) *VolumeResult {
		return &VolumeResult{}
	}))
	_, err := a.Analyze(context.Background(), "talk.wav")
	require.Error(t, err)
	require.Contains(t, err.Error(), "asr service down")
}

func TestAnalyzeFeedbackFailureIsFatal(t *testing.T) {
	cfg := config.New()
	transcriber := &stubTranscriber{result: &inference.TranscriptResult{Text: "hi", Duration: 1}}
	feedback := &stubFeedback{err: errors.New("feedback model refused")}

	a := NewAnalyzer(cfg, transcriber, feedback, WithVolumeExtractor(func(string) *VolumeResult {
		return &VolumeResult{}
	}))
	_, err := a.Analyze(context.Background(), "talk.wav")
	require.Error(t, err)
	require.Contains(t, err.Error(), "feedback model refused")
}
