package diag

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FormatShortEntries renders entries one per line in the order given:
//
//	<group> <severity> <path>:<line>:<col> <text>
//
// Lines and columns are 1-based. File-level messages print line and column 0.
// The result has no trailing newline and is empty for an empty input.
func FormatShortEntries(entries []Entry) string {
	var b strings.Builder
	for i := range entries {
		e := &entries[i]
		line, col := 0, 0
		if e.Message.Range != nil {
			line = e.Message.Range.Start.Line + 1
			col = e.Message.Range.Start.Column + 1
		}
		path := normalizePath(e.Message.FilePath)
		if path == "" {
			path = "-"
		}
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", e.Group, severityLabel(e), path, line, col, sanitizeText(e.Message.Text))
		if i < len(entries)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func severityLabel(e *Entry) string {
	if e.Message.Kind == KindReview {
		return "review"
	}
	switch e.Message.Type {
	case TypeError:
		return "error"
	case TypeWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeText(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
