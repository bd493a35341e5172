package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"diagdeck/internal/diag"
	"diagdeck/internal/diagfmt"
	"diagdeck/internal/rename"
)

func TestParseKindAndTypeFlags(t *testing.T) {
	for _, in := range []string{"", "null", "unset", " unset "} {
		k, err := parseKindFlag(in)
		if err != nil || k != diag.KindUnset {
			t.Errorf("parseKindFlag(%q) = %v, %v", in, k, err)
		}
	}
	if k, err := parseKindFlag("review"); err != nil || k != diag.KindReview {
		t.Errorf("parseKindFlag(review) = %v, %v", k, err)
	}
	if _, err := parseKindFlag("hint"); !errors.Is(err, diag.ErrInvalidEnumValue) {
		t.Errorf("expected ErrInvalidEnumValue, got %v", err)
	}
	if typ, err := parseTypeFlag(""); err != nil || typ != diag.TypeUnknown {
		t.Errorf("parseTypeFlag(\"\") = %v, %v", typ, err)
	}
	if _, err := parseTypeFlag("warning"); !errors.Is(err, diag.ErrInvalidEnumValue) {
		t.Errorf("expected case-sensitive type parsing, got %v", err)
	}
}

func TestWriteGroupInfos(t *testing.T) {
	info, err := describeGroup(diag.GroupWarnings)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeGroupInfos(&buf, "json", []groupInfo{info}, false); err != nil {
		t.Fatal(err)
	}
	var single map[string]string
	if err := json.Unmarshal(buf.Bytes(), &single); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if single["group"] != "warnings" || single["label"] != "Warnings & Info" || single["icon"] != "nuclicon-warning" {
		t.Fatalf("unexpected object %v", single)
	}

	buf.Reset()
	if err := writeGroupInfos(&buf, "json", []groupInfo{info}, true); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "[") {
		t.Fatalf("expected a JSON array, got %q", buf.String())
	}

	buf.Reset()
	if err := writeGroupInfos(&buf, "pretty", []groupInfo{info}, false); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); !strings.Contains(got, "warnings") || !strings.Contains(got, "nuclicon-warning") {
		t.Fatalf("unexpected table %q", got)
	}

	if err := writeGroupInfos(&buf, "xml", nil, false); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParsePathModeAndUIMode(t *testing.T) {
	if m, err := parsePathMode("Basename"); err != nil || m != diagfmt.PathModeBasename {
		t.Errorf("parsePathMode = %v, %v", m, err)
	}
	if _, err := parsePathMode("short"); err == nil {
		t.Error("expected error for unknown path mode")
	}
	if m, err := readUIMode("ui", " ON "); err != nil || m != uiModeOn {
		t.Errorf("readUIMode = %v, %v", m, err)
	}
	if m, err := readUIMode("filter-bar", "false"); err != nil || m != uiModeOff {
		t.Errorf("readUIMode = %v, %v", m, err)
	}
	if _, err := readUIMode("ui", "maybe"); err == nil {
		t.Error("expected error for unknown ui mode")
	}
	if uiModeOff.enabled(os.Stdin) || !uiModeOn.enabled() || uiModeAuto.enabled() {
		t.Error("explicit ui modes must win over terminal detection")
	}
}

func TestPromptLine(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"new name", "total\n", "total", true},
		{"crlf", "total\r\n", "total", true},
		{"no trailing newline", "  total  ", "total", true},
		{"unchanged", "count\n", "", false},
		{"empty line", "\n", "", false},
		{"eof", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var prompt bytes.Buffer
			name, ok, err := promptLine(context.Background(), "count", strings.NewReader(tc.input), &prompt, false)
			if err != nil {
				t.Fatal(err)
			}
			if name != tc.want || ok != tc.wantOK {
				t.Fatalf("promptLine = (%q, %v), want (%q, %v)", name, ok, tc.want, tc.wantOK)
			}
			if prompt.String() != "rename count to: " {
				t.Fatalf("unexpected prompt %q", prompt.String())
			}
		})
	}
}

func TestPromptLineQuietAndNormalization(t *testing.T) {
	var prompt bytes.Buffer
	name, ok, err := promptLine(context.Background(), "x", strings.NewReader("cafe\u0301\n"), &prompt, true, rename.WithNormalization(true))
	if err != nil || !ok {
		t.Fatalf("promptLine: ok=%v err=%v", ok, err)
	}
	if name != "caf\u00e9" {
		t.Fatalf("expected NFC name, got %q", name)
	}
	if prompt.Len() != 0 {
		t.Fatalf("quiet mode printed %q", prompt.String())
	}
}

func TestPromptLineCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := promptLine(ctx, "x", strings.NewReader("y\n"), &bytes.Buffer{}, true)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRenderGroupsFormats(t *testing.T) {
	all := diag.NewBag(0)
	for _, m := range []diag.Message{
		{Type: diag.TypeError, FilePath: "a.go", Range: &diag.Range{}, Text: "boom"},
		{Kind: diag.KindReview, FilePath: "a.go", Text: "nit"},
	} {
		if _, err := all.Add(m); err != nil {
			t.Fatal(err)
		}
	}
	shown := all.Filter(diag.NewGroupSet(diag.GroupErrors))

	var buf bytes.Buffer
	opts := groupOptions{format: "short", groups: diag.NewGroupSet(diag.GroupErrors)}
	if err := renderGroups(&buf, all, shown, opts, nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "errors error a.go:1:1 boom" {
		t.Fatalf("short output %q", got)
	}

	buf.Reset()
	opts.format = "pretty"
	opts.filterBar = true
	if err := renderGroups(&buf, all, shown, opts, nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Errors 1", "Review 1", "Errors (1)", "a.go:1:1"} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "nit") {
		t.Errorf("filtered message rendered:\n%s", out)
	}

	buf.Reset()
	opts.format = "sarif"
	if err := renderGroups(&buf, all, shown, opts, []string{"in.json"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"version": "2.1.0"`) || !strings.Contains(buf.String(), "in.json") {
		t.Fatalf("unexpected sarif:\n%s", buf.String())
	}
}

func TestRenderGroupsEmpty(t *testing.T) {
	var buf bytes.Buffer
	empty := diag.NewBag(0)
	if err := renderGroups(&buf, empty, empty, groupOptions{format: "pretty"}, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "no diagnostics\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRenderVersion(t *testing.T) {
	info := versionInfo{Version: "1.2.3", GitCommit: "abc"}
	var buf bytes.Buffer
	if err := renderVersionPretty(&buf, info, versionOptions{showHash: true}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "diagdeck 1.2.3: "+versionTagline+"\ncommit: abc\n" {
		t.Fatalf("unexpected pretty version %q", got)
	}

	buf.Reset()
	if err := renderVersionJSON(&buf, info, versionOptions{showDate: true}); err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "diagdeck" || payload.BuildDate != "unknown" || payload.GitCommit != "" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}
