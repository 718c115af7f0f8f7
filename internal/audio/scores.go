// Package audio implements the delivery channel: transcript and loudness
// measurement of a recording, qualitative feedback, and the normalized
// delivery sub-scores.
package audio

import (
	"math"

	"github.com/flightdeck-app/flightdeck/internal/config"
	"github.com/flightdeck-app/flightdeck/internal/models"
)

// proximityScore maps a measured value's distance from an ideal target onto
// [0,100]: 100 at the target, falling linearly to 0 at or beyond the limit.
func proximityScore(measured, ideal, limit float64) int {
	if limit <= 0 {
		return 0
	}
	diff := math.Abs(measured - ideal)
	if diff >= limit {
		return 0
	}
	return int(math.Round((1 - diff/limit) * 100))
}

// SpeakingPaceScore scores words-per-minute against the ideal pace. Both too
// fast and too slow lose points symmetrically.
func SpeakingPaceScore(wpm float64, cfg *config.ScoreConfig) int {
	return proximityScore(wpm, cfg.IdealWPM, cfg.MaxWPMDeviation)
}

// VolumeScore scores average loudness in dBFS against the ideal level.
func VolumeScore(avgDBFS float64, cfg *config.ScoreConfig) int {
	return proximityScore(avgDBFS, cfg.IdealDBFS, cfg.DBFSMargin)
}

// FillerScore scores the filler-word ratio: 100 at zero fillers, 0 at or
// beyond the configured threshold.
func FillerScore(ratio float64, cfg *config.ScoreConfig) int {
	return proximityScore(ratio, 0, cfg.FillerRatioThreshold)
}

// Scores derives the full delivery score set from a measurement. The
// clarity and engagement sub-scores pass through from the qualitative
// feedback; the total is the weighted sum rounded to the nearest integer.
func Scores(m *models.AudioMeasurement, cfg *config.ScoreConfig) models.AudioScoreSet {
	set := models.AudioScoreSet{
		SpeakingPace: SpeakingPaceScore(m.WPM, cfg),
		Volume:       VolumeScore(m.AvgVolumeDBFS, cfg),
		Filler:       FillerScore(m.FillerRatio, cfg),
		Clarity:      m.Feedback.ClarityScore,
		Engagement:   m.Feedback.EngagementRating,
	}

	w := cfg.AudioWeights
	total := float64(set.SpeakingPace)*w.Speaking +
		float64(set.Volume)*w.Volume +
		float64(set.Filler)*w.Filler +
		float64(set.Clarity)*w.Clarity +
		float64(set.Engagement)*w.Engagement
	set.TotalScore = int(math.Round(total))
	return set
}

// WPM computes words per minute; a zero or negative duration yields 0.
func WPM(words int, durationSeconds float64) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return float64(words) / (durationSeconds / 60)
}

// FillerRatio computes the fraction of transcript words that are fillers. A
// transcript with no words yields 0.
func FillerRatio(fillers []models.FillerWord, totalWords int) float64 {
	if totalWords <= 0 {
		return 0
	}
	count := 0
	for _, f := range fillers {
		count += f.Count
	}
	return float64(count) / float64(totalWords)
}
