package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flightdeck-app/flightdeck/internal/models"
)

func TestCombine(t *testing.T) {
	content := &models.ContentScoreSet{TotalScore: 90}

	score := Combine(Inputs{
		Content:    content,
		Audio:      models.AudioScoreSet{TotalScore: 80},
		Engagement: 0.7,
	})

	require.Equal(t, 90.0, score.ContentScore)
	require.Equal(t, 80.0, score.AudioScore)
	require.Equal(t, 0.7, score.EngagementScore)
	require.Equal(t, 80.0, score.TotalScore) // (70 + 80 + 90) / 3
}

func TestCombineWithoutContentSnapshot(t *testing.T) {
	score := Combine(Inputs{
		Audio:      models.AudioScoreSet{TotalScore: 90},
		Engagement: 0.9,
	})

	require.Equal(t, 0.0, score.ContentScore)
	require.Equal(t, 60.0, score.TotalScore) // (90 + 90 + 0) / 3
}

func TestCombineRounding(t *testing.T) {
	score := Combine(Inputs{
		Content:    &models.ContentScoreSet{TotalScore: 100},
		Audio:      models.AudioScoreSet{TotalScore: 100},
		Engagement: 0.5,
	})

	require.Equal(t, 83.33, score.TotalScore) // 250 / 3
}

func TestCombineAllZero(t *testing.T) {
	score := Combine(Inputs{})
	require.Equal(t, 0.0, score.TotalScore)
}
