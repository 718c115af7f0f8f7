package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flightdeck-app/flightdeck/internal/chunking"
	"github.com/flightdeck-app/flightdeck/internal/findings"
	"github.com/flightdeck-app/flightdeck/internal/inference"
)

var (
	slidesPresentation string
	slidesDescription  string
	slidesModel        string
	slidesOutput       string
	slidesNoStore      bool
)

func newSlidesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slides <deck.pdf>",
		Short: "Score a slide deck's content",
		Long: `Score a slide deck's content.

The deck is split into page chunks, each chunk is classified by the findings
inference service, and the merged findings are filtered and scored across
the four content categories. The result is saved as the presentation's
active content snapshot unless --no-store is given.`,
		Args: cobra.ExactArgs(1),
		RunE: slidesCommandE,
	}

	cmd.Flags().StringVarP(&slidesPresentation, "presentation", "p", "", "Presentation name or ID (created if the name is new)")
	cmd.Flags().StringVar(&slidesDescription, "description", "", "Short description of the talk, passed to the classifier")
	cmd.Flags().StringVar(&slidesModel, "model", inference.DefaultModel, "Inference model for findings classification")
	cmd.Flags().StringVarP(&slidesOutput, "output", "o", "", "Write the scored findings document to a JSON file")
	cmd.Flags().BoolVar(&slidesNoStore, "no-store", false, "Score only, do not persist a content snapshot")

	return cmd
}

func slidesCommandE(cmd *cobra.Command, args []string) error {
	deckPath := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(deckPath)
	if err != nil {
		return fmt.Errorf("reading deck: %w", err)
	}
	src, err := chunking.NewPDFSource(data)
	if err != nil {
		return fmt.Errorf("parsing deck: %w", err)
	}

	engine, err := newInferenceEngine(slidesModel)
	if err != nil {
		return err
	}

	fmt.Printf("Scoring %s (%d pages)...\n", deckPath, src.PageCount())
	result, err := findings.NewAnalyzer(cfg, engine).Analyze(cmd.Context(), src, slidesDescription)
	if err != nil {
		return err
	}

	printContentScores(result)

	if !slidesNoStore {
		if slidesPresentation == "" {
			return fmt.Errorf("--presentation is required to store the snapshot (or pass --no-store)")
		}
		if err := storeSnapshot(cmd, result); err != nil {
			return err
		}
	}

	if slidesOutput != "" {
		return writeJSON(slidesOutput, result)
	}
	return nil
}

func printContentScores(result *findings.Result) {
	total := 0
	for _, slide := range result.Document.Slides {
		total += len(slide.Findings)
	}
	fmt.Printf("\nFindings: %d across %d slides\n", total, len(result.Document.Slides))
	fmt.Printf("  Textual correctness: %.2f\n", result.Scores.TextualCorrectness)
	fmt.Printf("  Topical depth:       %.2f\n", result.Scores.TopicalDepth)
	fmt.Printf("  Structural flow:     %.2f\n", result.Scores.StructuralFlow)
	fmt.Printf("  Visual design:       %.2f\n", result.Scores.VisualDesign)
	fmt.Printf("  Total:               %.2f\n", result.Scores.TotalScore)
}

func storeSnapshot(cmd *cobra.Command, result *findings.Result) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ref, err := resolveRef(slidesPresentation)
	if err != nil {
		return err
	}
	p, err := s.ResolvePresentation(cmd.Context(), ref)
	if err != nil && ref.Name != "" {
		// Unknown name: register it on the fly.
		p, err = s.CreatePresentation(cmd.Context(), ref.Name)
	}
	if err != nil {
		return err
	}

	snap, err := s.SaveSnapshot(cmd.Context(), p.ID, result.Document, result.Scores)
	if err != nil {
		return err
	}
	fmt.Printf("\nActive snapshot %s saved for presentation %q\n", snap.ID, p.Name)
	return nil
}
