package theme

import (
	"github.com/pterm/pterm"
)

// Theme defines the colour scheme used by the terminal logger
type Theme struct {
	// Log level colours
	Debug *pterm.Style
	Info  *pterm.Style
	Warn  *pterm.Style
	Error *pterm.Style

	Muted *pterm.Style

	// highlighted fragments in log messages (urls, targets)
	Endpoint pterm.Color
	Key      pterm.Color
}

// Default returns the default theme
func Default() *Theme {
	return &Theme{
		Debug: pterm.NewStyle(pterm.FgLightBlue),
		Info:  pterm.NewStyle(pterm.FgGreen),
		Warn:  pterm.NewStyle(pterm.FgYellow, pterm.Bold),
		Error: pterm.NewStyle(pterm.FgRed, pterm.Bold),
		Muted: pterm.NewStyle(pterm.FgGray),

		Endpoint: pterm.FgCyan,
		Key:      pterm.FgMagenta,
	}
}

// Dark returns a dark theme variant
func Dark() *Theme {
	return &Theme{
		Debug: pterm.NewStyle(pterm.FgLightBlue),
		Info:  pterm.NewStyle(pterm.FgLightGreen),
		Warn:  pterm.NewStyle(pterm.FgLightYellow, pterm.Bold),
		Error: pterm.NewStyle(pterm.FgLightRed, pterm.Bold),
		Muted: pterm.NewStyle(pterm.FgGray),

		Endpoint: pterm.FgLightCyan,
		Key:      pterm.FgLightMagenta,
	}
}

// Light returns a light theme variant
func Light() *Theme {
	return &Theme{
		Debug: pterm.NewStyle(pterm.FgBlue),
		Info:  pterm.NewStyle(pterm.FgBlack),
		Warn:  pterm.NewStyle(pterm.FgRed, pterm.Bold),
		Error: pterm.NewStyle(pterm.FgRed, pterm.Bold),
		Muted: pterm.NewStyle(pterm.FgGray),

		Endpoint: pterm.FgBlue,
		Key:      pterm.FgMagenta,
	}
}

// GetTheme returns the named theme, falling back to Default
func GetTheme(name string) *Theme {
	switch name {
	case "dark":
		return Dark()
	case "light":
		return Light()
	default:
		return Default()
	}
}
