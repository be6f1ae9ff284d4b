package tui

import (
	"os"

	"golang.org/x/term"
)

// widthHeight is the terminal size, or 80x24 when stdout is not a terminal.
func widthHeight() (int, int) {
	w, h := 80, 24
	if tw, th, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 && th > 0 {
		w, h = tw, th
	}
	return w, h
}
