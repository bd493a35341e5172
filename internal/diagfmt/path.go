package diagfmt

import (
	"path/filepath"
	"strings"
)

// formatPath renders a message path according to mode. Empty paths stay empty.
func formatPath(path string, mode PathMode, baseDir string) string {
	if path == "" {
		return ""
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if rel, ok := relativeTo(path, baseDir); ok {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAuto:
		// относительный путь, только если файл внутри baseDir
		if rel, ok := relativeTo(path, baseDir); ok && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return filepath.ToSlash(path)
}

func relativeTo(path, baseDir string) (string, bool) {
	if baseDir == "" || !filepath.IsAbs(path) {
		return "", false
	}
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
