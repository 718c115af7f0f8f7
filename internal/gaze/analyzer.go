// Package gaze reduces facial blendshape samples into a gaze-direction
// heatmap and a composite attention score.
package gaze

import (
	"fmt"
	"math"

	"github.com/flightdeck-app/flightdeck/internal/config"
	"github.com/flightdeck-app/flightdeck/internal/models"
)

// maxGazeMagnitude is the largest possible gaze vector length, sqrt(2), used
// to normalize the focus term.
const maxGazeMagnitude = 1.414

// channels is the per-sample blendshape map keyed by category name.
type channels map[string]float64

func (c channels) get(name string) float64 { return c[name] }

func (c channels) mean(names ...string) float64 {
	sum := 0.0
	for _, n := range names {
		sum += c[n]
	}
	return sum / float64(len(names))
}

func indexSample(s models.GazeSample) channels {
	c := make(channels, len(s.Scores))
	for _, b := range s.Scores {
		c[b.CategoryName] = b.Score
	}
	return c
}

// direction reduces the eight eye-look channels to a signed (x, y) gaze
// vector. Positive x looks right, positive y looks up, both nominally in
// [-1, 1].
func direction(c channels) (x, y float64) {
	up := c.mean("eyeLookUpLeft", "eyeLookUpRight")
	down := c.mean("eyeLookDownLeft", "eyeLookDownRight")
	left := c.mean("eyeLookOutLeft", "eyeLookInRight")
	right := c.mean("eyeLookInLeft", "eyeLookOutRight")
	return right - left, up - down
}

// cell quantizes one [-1, 1] axis value onto a grid of the given size.
func cell(v float64, grid int) int {
	norm := (v + 1) / 2
	g := int(norm * float64(grid-1))
	if g < 0 {
		g = 0
	}
	if g > grid-1 {
		g = grid - 1
	}
	return g
}

// attention scores a single sample in [0, 1]: a focus term from gaze
// centeredness and a positive-expression term, damped by negative
// expression.
func attention(c channels) float64 {
	x, y := direction(c)
	focus := 1 - math.Min(1, math.Sqrt(x*x+y*y)/maxGazeMagnitude)

	positive := math.Min(1,
		0.5*c.mean("mouthSmileLeft", "mouthSmileRight")+
			0.25*c.get("browInnerUp")+
			0.25*c.mean("eyeSquintLeft", "eyeSquintRight"))

	negative := math.Min(1,
		0.5*c.mean("mouthFrownLeft", "mouthFrownRight")+
			0.3*c.mean("browDownLeft", "browDownRight")+
			0.2*c.get("jawOpen"))

	return (0.6*focus + 0.4*positive) * (1 - negative)
}

// Analyze reduces a session's gaze samples to a heatmap and the mean
// per-frame attention score. Samples without blendshape scores are skipped;
// a session with no usable samples scores 0 with an empty heatmap.
func Analyze(samples []models.GazeSample, cfg *config.ScoreConfig) *models.GazeAnalysis {
	analysis := &models.GazeAnalysis{
		Heatmap: map[string]int{},
	}

	valid := 0
	sum := 0.0
	for _, s := range samples {
		if len(s.Scores) == 0 {
			continue
		}
		c := indexSample(s)

		x, y := direction(c)
		key := fmt.Sprintf("%d,%d", cell(x, cfg.GazeGridSize), cell(y, cfg.GazeGridSize))
		analysis.Heatmap[key]++

		sum += attention(c)
		valid++
	}

	if valid > 0 {
		analysis.AttentionScore = sum / float64(valid)
	}
	return analysis
}
