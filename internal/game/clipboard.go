package game

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/dyvoker/isomap/internal/iso"
)

var (
	errNothingSelected      = errors.New("nothing selected")
	errClipboardUnsupported = errors.New("clipboard unsupported on this platform")
)

// clipboardWriter is swapped out in tests.
var clipboardWriter = func(s string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(s)
}

// selectionText formats a cell for pasting, e.g. "3,7".
func selectionText(c iso.GridCoord) string {
	return fmt.Sprintf("%d,%d", c.Col, c.Row)
}

// copySelection writes the selected cell to the system clipboard.
func copySelection(c iso.GridCoord, ok bool) error {
	if !ok {
		return fmt.Errorf("copy selection: %w", errNothingSelected)
	}
	if err := clipboardWriter(selectionText(c)); err != nil {
		return fmt.Errorf("copy selection: %w", err)
	}
	return nil
}
