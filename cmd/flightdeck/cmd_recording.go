package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/flightdeck-app/flightdeck/internal/audio"
	"github.com/flightdeck-app/flightdeck/internal/inference"
)

const defaultASRURL = "http://localhost:8973"

var (
	recordingASRURL  string
	recordingModel   string
	recordingTimeout time.Duration
	recordingOutput  string
)

func newRecordingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recording <talk.wav>",
		Short: "Analyze a recorded delivery",
		Long: `Analyze a recorded delivery.

The recording is transcribed with word timing, its loudness is measured, and
a qualitative feedback pass runs over the transcript. The delivery sub-scores
(pace, volume, fillers, clarity, engagement) are printed with the weighted
total.`,
		Args: cobra.ExactArgs(1),
		RunE: recordingCommandE,
	}

	cmd.Flags().StringVar(&recordingASRURL, "asr-url", defaultASRURL, "Base URL of the transcription service")
	cmd.Flags().StringVar(&recordingModel, "model", inference.DefaultModel, "Inference model for qualitative feedback")
	cmd.Flags().DurationVar(&recordingTimeout, "asr-timeout", 5*time.Minute, "Transcription request timeout")
	cmd.Flags().StringVarP(&recordingOutput, "output", "o", "", "Write measurement and scores to a JSON file")

	return cmd
}

func recordingCommandE(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	feedback, err := newInferenceEngine(recordingModel)
	if err != nil {
		return err
	}
	transcriber := inference.NewWhisperEngine(recordingASRURL, recordingTimeout)

	fmt.Printf("Analyzing %s...\n", path)
	result, err := audio.NewAnalyzer(cfg, transcriber, feedback).Analyze(cmd.Context(), path)
	if err != nil {
		return err
	}

	printAudioResult(result)

	if recordingOutput != "" {
		return writeJSON(recordingOutput, result)
	}
	return nil
}

func printAudioResult(result *audio.Result) {
	m := result.Measurement
	fmt.Printf("\nTranscript: %d words in %.2fs (%.1f wpm)\n", m.TotalWords, m.Duration, m.WPM)
	if m.VolumeDegraded {
		fmt.Println("Volume:     unavailable (extraction failed)")
	} else {
		fmt.Printf("Volume:     %.1f dBFS average\n", m.AvgVolumeDBFS)
	}
	fmt.Printf("Fillers:    %.1f%% of words\n", m.FillerRatio*100)

	fmt.Printf("\n  Speaking pace: %d\n", result.Scores.SpeakingPace)
	fmt.Printf("  Volume:        %d\n", result.Scores.Volume)
	fmt.Printf("  Fillers:       %d\n", result.Scores.Filler)
	fmt.Printf("  Clarity:       %d\n", result.Scores.Clarity)
	fmt.Printf("  Engagement:    %d\n", result.Scores.Engagement)
	fmt.Printf("  Total:         %d\n", result.Scores.TotalScore)
}
