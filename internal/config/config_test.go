package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	require.Equal(t, DefaultChunkBatchSize, cfg.ChunkBatchSize)
	require.Equal(t, DefaultMaxChunkWorkers, cfg.MaxChunkWorkers)
	require.Equal(t, DefaultIdealWPM, cfg.IdealWPM)
	require.Equal(t, DefaultMaxWPMDeviation, cfg.MaxWPMDeviation)
	require.Equal(t, DefaultGazeGridSize, cfg.GazeGridSize)

	warnings, err := cfg.Validate()
	require.NoError(t, err)
	require.Empty(t, warnings)
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, New(), cfg)
}

func TestLoadFrom_OverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".flightdeck.yaml")
	content := `
chunk_batch_size: 4
ideal_wpm: 140
content_weights:
  textual: 0.5
  topical: 0.2
  structure: 0.2
  visual: 0.1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	require.Equal(t, 4, cfg.ChunkBatchSize)
	require.Equal(t, 140.0, cfg.IdealWPM)
	require.Equal(t, 0.5, cfg.ContentWeights.Textual)
	// untouched keys keep their defaults
	require.Equal(t, DefaultMaxChunkWorkers, cfg.MaxChunkWorkers)
	require.Equal(t, DefaultDBFSMargin, cfg.DBFSMargin)
}

func TestLoadFrom_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk_batch_size: [not an int"), 0o644))

	_, err := LoadFrom(path)
	require.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	t.Run("dotted keys", func(t *testing.T) {
		cfg := New()
		err := cfg.ApplyOverrides([]string{
			"ideal_wpm=160",
			"content_weights.textual=0.4",
			"max_chunk_workers=8",
		})
		require.NoError(t, err)
		require.Equal(t, 160.0, cfg.IdealWPM)
		require.Equal(t, 0.4, cfg.ContentWeights.Textual)
		require.Equal(t, 8, cfg.MaxChunkWorkers)
	})

	t.Run("missing equals sign", func(t *testing.T) {
		cfg := New()
		require.Error(t, cfg.ApplyOverrides([]string{"ideal_wpm"}))
	})

	t.Run("unknown key", func(t *testing.T) {
		cfg := New()
		require.Error(t, cfg.ApplyOverrides([]string{"no_such_key=1"}))
	})
}

func TestValidate(t *testing.T) {
	t.Run("rejects non-positive batch size", func(t *testing.T) {
		cfg := New()
		cfg.ChunkBatchSize = 0
		_, err := cfg.Validate()
		require.Error(t, err)
	})

	t.Run("rejects degenerate grid", func(t *testing.T) {
		cfg := New()
		cfg.GazeGridSize = 1
		_, err := cfg.Validate()
		require.Error(t, err)
	})

	t.Run("warns on unnormalized weights without rescaling", func(t *testing.T) {
		cfg := New()
		cfg.ContentWeights.Textual = 0.9 // sum now 1.65
		warnings, err := cfg.Validate()
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		require.Contains(t, warnings[0], "content weights")
		require.Equal(t, 0.9, cfg.ContentWeights.Textual)
	})
}
