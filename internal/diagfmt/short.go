package diagfmt

import (
	"io"

	"diagdeck/internal/diag"
)

// Short writes one line per entry: "<group> <label> <path>:<line>:<col> <text>".
func Short(w io.Writer, bag *diag.Bag) error {
	out := diag.FormatShortEntries(bag.Items())
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
