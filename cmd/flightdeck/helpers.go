package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/flightdeck-app/flightdeck/internal/inference"
	"github.com/flightdeck-app/flightdeck/internal/store"
)

func openStore() (*store.Store, error) {
	return store.Open(dbPath)
}

// resolveRef builds a PresentationRef from a --presentation flag that may
// hold a UUID or a name.
func resolveRef(value string) (store.PresentationRef, error) {
	if value == "" {
		return store.PresentationRef{}, errors.New("--presentation is required")
	}
	if id, err := uuid.Parse(value); err == nil {
		return store.PresentationRef{ID: id}, nil
	}
	return store.PresentationRef{Name: value}, nil
}

func newInferenceEngine(model string) (*inference.OpenAIEngine, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, errors.New("OPENAI_API_KEY is not set (flag, environment, or .env)")
	}
	return inference.NewOpenAIEngine(key, model), nil
}

// writeJSON writes v as indented JSON to path, or to stdout when path is
// empty.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("Results written to %s\n", path)
	return nil
}
