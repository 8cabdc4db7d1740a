package util

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/thushan/restate-client/internal/core/constants"
)

/*
   references:
   - https://no-color.org/
*/

// IsTerminal checks if stdout is a terminal using go-isatty
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// ShouldUseColors determines if coloured output should be used
func ShouldUseColors() bool {
	if noColor := os.Getenv("NO_COLOR"); noColor != "" {
		return false
	}

	if forceColor := os.Getenv("FORCE_COLOR"); forceColor != "" {
		return forceColor != "0"
	}

	if clientColors := os.Getenv(constants.EnvForceColors); clientColors != "" {
		return strings.ToLower(clientColors) == "true"
	}

	return IsTerminal()
}
