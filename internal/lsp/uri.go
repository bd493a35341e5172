package lsp

import (
	"net/url"
	"path/filepath"
)

// URIToPath converts a file:// URI to a local path. Non-file URIs are
// returned unchanged so remote documents still get a stable key.
func URIToPath(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	if parsed.Scheme != "" && parsed.Scheme != "file" {
		return uri
	}
	path := parsed.Path
	if parsed.Scheme == "" {
		path = uri
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	return filepath.FromSlash(path)
}

// PathToURI converts a local path to an absolute file:// URI.
func PathToURI(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
