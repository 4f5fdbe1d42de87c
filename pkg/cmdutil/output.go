package cmdutil

import (
	"errors"
	"os"

	"golang.org/x/term"
)

var ErrRawToTerminal = errors.New("refusing to write raw binary output to a terminal, use --force to override")

// CheckRawOutput fails when f is a terminal, unless force is set.
func CheckRawOutput(f *os.File, force bool) error {
	if !force && term.IsTerminal(int(f.Fd())) {
		return ErrRawToTerminal
	}
	return nil
}
