package errhandler

import (
	"errors"
	"os"
	"unicode"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
)

// IsCancelled reports whether err comes from the user aborting a prompt.
func IsCancelled(err error) bool {
	return errors.Is(err, terminal.InterruptErr) || errors.Is(err, huh.ErrUserAborted)
}

// HandleError prints err and exits. A cancelled prompt is not a failure.
func HandleError(err error) {
	if IsCancelled(err) {
		pterm.Warning.Println("Operation Cancelled")
		os.Exit(0)
	}

	pterm.Error.Println(Capitalize(err.Error()))
	os.Exit(1)
}

func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
