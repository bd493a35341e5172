package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"diagdeck/internal/diag"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("Find = %q, want %q", got, want)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[display]
format = "json"
max = 20
show_empty = true

[filter]
groups = ["errors", "review"]
fail_on = []

[load]
jobs = 4
cache = false

[rename]
normalize = false
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Display.Format != "json" || cfg.Display.Max != 20 || !cfg.Display.ShowEmpty {
		t.Fatalf("display: %+v", cfg.Display)
	}
	if cfg.Display.Color != "auto" || cfg.Load.Format != "auto" {
		t.Fatalf("defaults lost: %+v %+v", cfg.Display, cfg.Load)
	}
	if cfg.Load.Jobs != 4 || cfg.Load.Cache || cfg.Rename.Normalize {
		t.Fatalf("load/rename: %+v %+v", cfg.Load, cfg.Rename)
	}
	set, err := cfg.Groups()
	if err != nil {
		t.Fatal(err)
	}
	if !set.Has(diag.GroupErrors) || set.Has(diag.GroupWarnings) || !set.Has(diag.GroupReview) {
		t.Fatalf("groups = %v", set)
	}
	failOn, err := cfg.FailOn()
	if err != nil || len(failOn.Members()) != 0 {
		t.Fatalf("fail_on = %v, err %v", failOn, err)
	}
	if cfg.Path != path {
		t.Fatalf("Path = %q", cfg.Path)
	}
}

func TestLoadFileErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[display\n", "failed to parse TOML"},
		{"unknown key", "[display]\nfont = \"mono\"\n", "unknown key display.font"},
		{"format", "[display]\nformat = \"xml\"\n", "[display].format"},
		{"color", "[display]\ncolor = \"always\"\n", "[display].color"},
		{"max", "[display]\nmax = -1\n", "[display].max"},
		{"group", "[filter]\ngroups = [\"hints\"]\n", "[filter].groups"},
		{"empty groups", "[filter]\ngroups = []\n", "must not be empty"},
		{"load format", "[load]\nformat = \"csv\"\n", "[load].format"},
		{"jobs", "[load]\njobs = -2\n", "[load].jobs"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tc.content)
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) || !strings.HasPrefix(err.Error(), path) {
				t.Fatalf("error %q should start with the path and mention %q", err, tc.want)
			}
		})
	}
}

func TestInvalidGroupIsEnumError(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[filter]\nfail_on = [\"everything\"]\n")
	_, err := LoadFile(path)
	if !errors.Is(err, diag.ErrInvalidEnumValue) {
		t.Fatalf("expected ErrInvalidEnumValue, got %v", err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	set, _ := cfg.Groups()
	if set != diag.AllGroupSet {
		t.Fatalf("default groups = %v", set)
	}
}

func TestFailOnNone(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[filter]\nfail_on = [\"none\"]\n")
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	set, err := cfg.FailOn()
	if err != nil || len(set.Members()) != 0 {
		t.Fatalf("fail_on none = %v, err %v", set, err)
	}
}
