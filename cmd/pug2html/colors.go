package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// colorize reddens a diagnostic when the color mode and terminal allow
// it.
func colorize(cfg *MainConfig, msg string) string {
	switch cfg.Color {
	case "always":
	case "never":
		return msg
	default: // auto
		if !isatty.IsTerminal(os.Stderr.Fd()) {
			return msg
		}
	}
	return color.RedString(msg)
}
