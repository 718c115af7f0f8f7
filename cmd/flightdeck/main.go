package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/flightdeck-app/flightdeck/internal/models"
)

// Exit codes for different failure modes
const (
	ExitSuccess  = 0 // Analysis completed
	ExitContract = 1 // An inference service broke its response contract
	ExitError    = 2 // Configuration or runtime error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var contractErr *models.InferenceContractError
		if errors.As(err, &contractErr) {
			os.Exit(ExitContract)
		}

		os.Exit(ExitError)
	}
}
