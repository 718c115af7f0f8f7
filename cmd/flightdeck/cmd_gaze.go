package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flightdeck-app/flightdeck/internal/gaze"
	"github.com/flightdeck-app/flightdeck/internal/models"
)

var gazeOutput string

func newGazeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gaze <samples.json>",
		Short: "Score a gaze capture",
		Long: `Score a gaze capture.

The input is a JSON array of time-stamped blendshape samples. The samples
are reduced to a gaze-direction heatmap and a composite attention score in
[0, 1].`,
		Args: cobra.ExactArgs(1),
		RunE: gazeCommandE,
	}

	cmd.Flags().StringVarP(&gazeOutput, "output", "o", "", "Write the analysis to a JSON file")

	return cmd
}

func gazeCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	samples, err := loadGazeSamples(args[0])
	if err != nil {
		return err
	}

	analysis := gaze.Analyze(samples, cfg)
	fmt.Printf("Samples:   %d\n", len(samples))
	fmt.Printf("Attention: %.3f\n", analysis.AttentionScore)
	fmt.Printf("Heatmap:   %d occupied cells\n", len(analysis.Heatmap))

	if gazeOutput != "" {
		return writeJSON(gazeOutput, analysis)
	}
	return nil
}

func loadGazeSamples(path string) ([]models.GazeSample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading gaze capture: %w", err)
	}
	var samples []models.GazeSample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("parsing gaze capture %s: %w", path, err)
	}
	return samples, nil
}
