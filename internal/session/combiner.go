// Package session combines the three channel results of a finished training
// session into one session score.
package session

import (
	"github.com/flightdeck-app/flightdeck/internal/models"
)

// Inputs carries the per-channel results for one finished session. Content
// is nil when the presentation has no active content snapshot; the session
// can still be scored, with the content term contributing zero.
type Inputs struct {
	Content    *models.ContentScoreSet
	Audio      models.AudioScoreSet
	Engagement float64 // attention score in [0, 1]
}

// Combine folds the channel totals into the session score: the unweighted
// mean of engagement (scaled to [0, 100]), the delivery total, and the
// content total. A missing content snapshot contributes 0, not a neutral
// 100, so an unscored deck visibly drags the session down.
func Combine(in Inputs) models.SessionScore {
	content := 0.0
	if in.Content != nil {
		content = in.Content.TotalScore
	}

	score := models.SessionScore{
		ContentScore:    content,
		AudioScore:      float64(in.Audio.TotalScore),
		EngagementScore: in.Engagement,
	}
	score.TotalScore = models.Round2((in.Engagement*100 + score.AudioScore + content) / 3)
	return score
}
