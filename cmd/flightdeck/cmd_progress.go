package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/flightdeck-app/flightdeck/internal/statistics"
)

var (
	progressPresentation string
	progressSince        time.Duration
	progressConfidence   float64
	progressOutput       string
)

func newProgressCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Summarize a presentation's training history",
		Long: `Summarize a presentation's training history.

Prints descriptive statistics over the recorded session scores plus a
bootstrap test of whether recent sessions improved on earlier ones.`,
		RunE: progressCommandE,
	}

	cmd.Flags().StringVarP(&progressPresentation, "presentation", "p", "", "Presentation name or ID (required)")
	cmd.Flags().DurationVar(&progressSince, "since", 0, "Only consider trainings within this window (e.g. 720h); 0 means all")
	cmd.Flags().Float64Var(&progressConfidence, "confidence", 0.95, "Confidence level for the improvement interval")
	cmd.Flags().StringVarP(&progressOutput, "output", "o", "", "Write the summary to a JSON file")

	return cmd
}

func progressCommandE(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ref, err := resolveRef(progressPresentation)
	if err != nil {
		return err
	}
	p, err := s.ResolvePresentation(cmd.Context(), ref)
	if err != nil {
		return err
	}

	var cutoff time.Time
	if progressSince > 0 {
		cutoff = time.Now().Add(-progressSince)
	}
	scores, err := s.TrainingScores(cmd.Context(), p.ID, cutoff)
	if err != nil {
		return err
	}

	summary := statistics.Summarize(scores, progressConfidence, -1)

	fmt.Printf("Training history for %q:\n", p.Name)
	fmt.Printf("  Sessions: %d\n", summary.Sessions)
	if summary.Sessions > 0 {
		fmt.Printf("  Mean:     %.2f\n", summary.Mean)
		fmt.Printf("  Best:     %.2f\n", summary.Best)
		fmt.Printf("  Latest:   %.2f\n", summary.Latest)
	}
	if summary.Improvement.Resamples > 0 {
		fmt.Printf("  Improvement: %+.2f [%.2f, %.2f] at %.0f%% confidence\n",
			summary.Improvement.Mean, summary.Improvement.Lower, summary.Improvement.Upper,
			summary.Improvement.ConfidenceLevel*100)
		if summary.Significant {
			fmt.Println("  Recent sessions are significantly different from earlier ones.")
		} else {
			fmt.Println("  No significant trend yet.")
		}
	} else if summary.Sessions > 0 {
		fmt.Println("  Not enough sessions for a trend test (need 4).")
	}

	if progressOutput != "" {
		return writeJSON(progressOutput, summary)
	}
	return nil
}
