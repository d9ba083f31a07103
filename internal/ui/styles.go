package ui

import (
	"fmt"

	"github.com/pterm/pterm"
)

func PrintL1Title(format string, a ...any) {
	style := pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	style.Println(fmt.Sprintf(" %s   ", text))
}

func PrintL2Title(format string, a ...any) {
	style := pterm.NewStyle(pterm.FgCyan, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	style.Println(fmt.Sprintf("# %s   ", text))
}

func Separator() {
	pterm.Println(pterm.Gray("──────────────────────────────────────────"))
}

// LevelColor paints an authorization level name.
func LevelColor(level string) string {
	switch level {
	case "DEVELOPER":
		return pterm.Magenta(level)
	case "ADMIN":
		return pterm.Yellow(level)
	default:
		return level
	}
}
