// Package config provides the process-wide ScoreConfig: ideal targets,
// tolerance margins, and channel weights for content and audio scoring. The
// config is built once at startup and treated as read-only afterwards; every
// scoring function receives it explicitly.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// Default values for scoring configuration. New() references them; no other
// code should duplicate them.
const (
	DefaultConfigFile = ".flightdeck.yaml"

	DefaultChunkBatchSize  = 2
	DefaultMaxChunkWorkers = 4

	DefaultWeightTextual   = 0.25
	DefaultWeightTopical   = 0.25
	DefaultWeightStructure = 0.25
	DefaultWeightVisual    = 0.25

	DefaultWeightSpeaking   = 0.2
	DefaultWeightVolume     = 0.2
	DefaultWeightFiller     = 0.2
	DefaultWeightClarity    = 0.2
	DefaultWeightEngagement = 0.2

	DefaultIdealWPM        = 150.0
	DefaultMaxWPMDeviation = 30.0

	DefaultIdealDBFS  = -21.0
	DefaultDBFSMargin = 18.0

	DefaultFillerRatioThreshold = 0.05

	DefaultGazeGridSize = 40
)

// ContentWeights holds the per-category weights for the content total. The
// weights are not required to sum to 1; Validate warns but does not rescale.
type ContentWeights struct {
	Textual   float64 `yaml:"textual,omitempty"`
	Topical   float64 `yaml:"topical,omitempty"`
	Structure float64 `yaml:"structure,omitempty"`
	Visual    float64 `yaml:"visual,omitempty"`
}

// AudioWeights holds the five weights for the delivery total.
type AudioWeights struct {
	Speaking   float64 `yaml:"speaking,omitempty"`
	Volume     float64 `yaml:"volume,omitempty"`
	Filler     float64 `yaml:"filler,omitempty"`
	Clarity    float64 `yaml:"clarity,omitempty"`
	Engagement float64 `yaml:"engagement,omitempty"`
}

// ScoreConfig is the top-level scoring configuration, loaded once at process
// start from defaults, an optional YAML file, and CLI overrides, in that
// order.
type ScoreConfig struct {
	ChunkBatchSize  int `yaml:"chunk_batch_size,omitempty" mapstructure:"chunk_batch_size"`
	MaxChunkWorkers int `yaml:"max_chunk_workers,omitempty" mapstructure:"max_chunk_workers"`

	ContentWeights ContentWeights `yaml:"content_weights,omitempty" mapstructure:"content_weights"`
	AudioWeights   AudioWeights   `yaml:"audio_weights,omitempty" mapstructure:"audio_weights"`

	IdealWPM        float64 `yaml:"ideal_wpm,omitempty" mapstructure:"ideal_wpm"`
	MaxWPMDeviation float64 `yaml:"max_wpm_deviation,omitempty" mapstructure:"max_wpm_deviation"`

	IdealDBFS  float64 `yaml:"ideal_dbfs,omitempty" mapstructure:"ideal_dbfs"`
	DBFSMargin float64 `yaml:"dbfs_margin,omitempty" mapstructure:"dbfs_margin"`

	FillerRatioThreshold float64 `yaml:"filler_ratio_threshold,omitempty" mapstructure:"filler_ratio_threshold"`

	GazeGridSize int `yaml:"gaze_grid_size,omitempty" mapstructure:"gaze_grid_size"`
}

// New returns a ScoreConfig with all hard-coded defaults populated.
func New() *ScoreConfig {
	return &ScoreConfig{
		ChunkBatchSize:  DefaultChunkBatchSize,
		MaxChunkWorkers: DefaultMaxChunkWorkers,
		ContentWeights: ContentWeights{
			Textual:   DefaultWeightTextual,
			Topical:   DefaultWeightTopical,
			Structure: DefaultWeightStructure,
			Visual:    DefaultWeightVisual,
		},
		AudioWeights: AudioWeights{
			Speaking:   DefaultWeightSpeaking,
			Volume:     DefaultWeightVolume,
			Filler:     DefaultWeightFiller,
			Clarity:    DefaultWeightClarity,
			Engagement: DefaultWeightEngagement,
		},
		IdealWPM:             DefaultIdealWPM,
		MaxWPMDeviation:      DefaultMaxWPMDeviation,
		IdealDBFS:            DefaultIdealDBFS,
		DBFSMargin:           DefaultDBFSMargin,
		FillerRatioThreshold: DefaultFillerRatioThreshold,
		GazeGridSize:         DefaultGazeGridSize,
	}
}

// Load returns the configuration from DefaultConfigFile in the current
// directory, overlaid on defaults. A missing file is not an error.
func Load() (*ScoreConfig, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom reads the YAML file at path and overlays it on the defaults. A
// missing file yields the pure defaults.
func LoadFrom(path string) (*ScoreConfig, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyOverrides applies "dotted.key=value" overrides (from --set flags) on
// top of the loaded configuration.
func (c *ScoreConfig) ApplyOverrides(overrides []string) error {
	if len(overrides) == 0 {
		return nil
	}

	tree := map[string]any{}
	for _, ov := range overrides {
		key, value, ok := strings.Cut(ov, "=")
		if !ok {
			return fmt.Errorf("invalid override %q: expected key=value", ov)
		}
		setNested(tree, strings.Split(strings.TrimSpace(key), "."), strings.TrimSpace(value))
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(tree); err != nil {
		return fmt.Errorf("applying overrides: %w", err)
	}
	return nil
}

func setNested(tree map[string]any, path []string, value string) {
	for i, part := range path {
		if i == len(path)-1 {
			tree[part] = value
			return
		}
		next, ok := tree[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			tree[part] = next
		}
		tree = next
	}
}

// Validate checks structural constraints and returns warnings for suspicious
// but permitted settings (weights that do not sum to 1).
func (c *ScoreConfig) Validate() ([]string, error) {
	if c.ChunkBatchSize <= 0 {
		return nil, fmt.Errorf("chunk_batch_size must be positive, got %d", c.ChunkBatchSize)
	}
	if c.MaxChunkWorkers <= 0 {
		return nil, fmt.Errorf("max_chunk_workers must be positive, got %d", c.MaxChunkWorkers)
	}
	if c.MaxWPMDeviation <= 0 {
		return nil, fmt.Errorf("max_wpm_deviation must be positive, got %v", c.MaxWPMDeviation)
	}
	if c.DBFSMargin <= 0 {
		return nil, fmt.Errorf("dbfs_margin must be positive, got %v", c.DBFSMargin)
	}
	if c.FillerRatioThreshold <= 0 {
		return nil, fmt.Errorf("filler_ratio_threshold must be positive, got %v", c.FillerRatioThreshold)
	}
	if c.GazeGridSize <= 1 {
		return nil, fmt.Errorf("gaze_grid_size must be at least 2, got %d", c.GazeGridSize)
	}

	var warnings []string
	cw := c.ContentWeights
	if sum := cw.Textual + cw.Topical + cw.Structure + cw.Visual; math.Abs(sum-1.0) > 0.01 {
		warnings = append(warnings, fmt.Sprintf("content weights sum to %.2f, not 1.0; totals are raw weighted sums", sum))
	}
	aw := c.AudioWeights
	if sum := aw.Speaking + aw.Volume + aw.Filler + aw.Clarity + aw.Engagement; math.Abs(sum-1.0) > 0.01 {
		warnings = append(warnings, fmt.Sprintf("audio weights sum to %.2f, not 1.0; totals are raw weighted sums", sum))
	}
	return warnings, nil
}
