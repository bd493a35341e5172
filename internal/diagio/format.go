// Package diagio reads diagnostic messages from files and streams.
//
// Supported encodings are JSON and YAML (a list of messages or an object
// with a "messages" list), msgpack (a list of wire messages) and LSP
// JSON-RPC streams of textDocument/publishDiagnostics notifications.
package diagio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an input encoding.
type Format uint8

const (
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
	FormatMsgpack
	FormatLSP
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatMsgpack:
		return "msgpack"
	case FormatLSP:
		return "lsp"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// ParseFormat converts a flag value to Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	case "lsp", "jsonrpc":
		return FormatLSP, nil
	}
	return FormatAuto, fmt.Errorf("unknown input format %q (expected auto|json|yaml|msgpack|lsp)", s)
}

// DetectFormat picks a format from the file extension; unknown extensions
// and stdin ("-") fall back to JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".mp", ".msgpack":
		return FormatMsgpack
	case ".lsp", ".jsonrpc":
		return FormatLSP
	default:
		return FormatJSON
	}
}

// knownExtensions are picked up when a directory is given as input.
var knownExtensions = []string{".json", ".yaml", ".yml", ".mp", ".msgpack", ".lsp", ".jsonrpc"}

func hasKnownExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, known := range knownExtensions {
		if ext == known {
			return true
		}
	}
	return false
}
