package diagio

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Stdin is the input name that reads standard input.
const Stdin = "-"

// Expand turns command-line inputs into a list of files. Directories are
// walked for known extensions, patterns with glob meta characters (including
// "**") are matched with doublestar, plain paths are kept as given. The result
// keeps argument order and drops duplicates.
func Expand(args []string) ([]string, error) {
	seen := make(map[string]struct{}, len(args))
	out := make([]string, 0, len(args))
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, arg := range args {
		if arg == Stdin {
			add(arg)
			continue
		}
		if isPattern(arg) {
			matches, err := globFiles(arg)
			if err != nil {
				return nil, err
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no inputs match %q", arg)
			}
			for _, m := range matches {
				add(m)
			}
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		files, err := listInputFiles(arg)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}

func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// globFiles matches pattern relative to its static prefix and returns sorted
// regular files.
func globFiles(pattern string) ([]string, error) {
	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
	if !doublestar.ValidatePattern(rest) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}
	fsys := os.DirFS(filepath.FromSlash(base))
	matches, err := doublestar.Glob(fsys, rest)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	files := make([]string, 0, len(matches))
	for _, m := range matches {
		full := filepath.FromSlash(path.Join(base, m))
		info, statErr := os.Stat(full)
		if statErr != nil || info.IsDir() {
			continue
		}
		files = append(files, full)
	}
	sort.Strings(files)
	return files, nil
}

// listInputFiles возвращает отсортированный список файлов с известными расширениями
func listInputFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasKnownExtension(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
