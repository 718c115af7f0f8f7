package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flightdeck-app/flightdeck/internal/models"
)

func writeGazeCapture(t *testing.T, samples []models.GazeSample) string {
	t.Helper()
	data, err := json.Marshal(samples)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "gaze.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestGazeCommand(t *testing.T) {
	dir := t.TempDir()

	samples := []models.GazeSample{
		{Timestamp: 0, Scores: []models.BlendshapeScore{
			{Index: 0, Score: 0, CategoryName: "eyeLookUpLeft"},
			{Index: 1, Score: 0, CategoryName: "eyeLookUpRight"},
		}},
	}
	capture := writeGazeCapture(t, samples)
	out := filepath.Join(dir, "analysis.json")

	cmd := newRootCommand()
	cmd.SetArgs([]string{
		"gaze", capture,
		"--config", filepath.Join(dir, ".flightdeck.yaml"),
		"--output", out,
	})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var analysis models.GazeAnalysis
	require.NoError(t, json.Unmarshal(data, &analysis))
	require.InDelta(t, 0.6, analysis.AttentionScore, 1e-9)
	require.Len(t, analysis.Heatmap, 1)
}

func TestGazeCommandMissingFile(t *testing.T) {
	dir := t.TempDir()

	cmd := newRootCommand()
	cmd.SetArgs([]string{
		"gaze", filepath.Join(dir, "nope.json"),
		"--config", filepath.Join(dir, ".flightdeck.yaml"),
	})
	require.Error(t, cmd.Execute())
}

func TestPresentationCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "flightdeck.db")
	run := func(args ...string) error {
		cmd := newRootCommand()
		cmd.SetArgs(append(args, "--db", db))
		return cmd.Execute()
	}

	require.NoError(t, run("presentation", "new", "demo deck"))
	require.Error(t, run("presentation", "new", "demo deck"), "duplicate name must fail")
	require.NoError(t, run("presentation", "list"))
}
