package diagio

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"diagdeck/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.json"), "[]")
	writeFile(t, filepath.Join(dir, "sub", "b.yaml"), "[]")
	writeFile(t, filepath.Join(dir, "sub", "deep", "c.json"), "[]")
	writeFile(t, filepath.Join(dir, "sub", "notes.txt"), "x")

	got, err := Expand([]string{filepath.Join(dir, "sub"), filepath.Join(dir, "**", "*.json"), "-"})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	want := []string{
		filepath.Join(dir, "sub", "b.yaml"),
		filepath.Join(dir, "sub", "deep", "c.json"),
		filepath.Join(dir, "a.json"),
		"-",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("expand mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestExpandErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Expand([]string{filepath.Join(dir, "*.json")}); err == nil {
		t.Fatal("expected error for pattern without matches")
	}
	if _, err := Expand([]string{filepath.Join(dir, "missing.json")}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestLoaderKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "1.json"),
		filepath.Join(dir, "2.yaml"),
		filepath.Join(dir, "3.json"),
	}
	writeFile(t, paths[0], `[{"type":"Error","text":"one"}]`)
	writeFile(t, paths[1], "- kind: review\n  text: two\n")
	writeFile(t, paths[2], `{"messages":[{"type":"Info","text":"three"}]}`)

	l := &Loader{Jobs: 2}
	results, err := l.Load(context.Background(), paths)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for i, want := range []string{"one", "two", "three"} {
		if results[i].Path != paths[i] || results[i].Messages[0].Text != want {
			t.Fatalf("result %d: %+v", i, results[i])
		}
	}

	bag, err := Collect(results, 0)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if tally := bag.Tally(); tally.Errors != 1 || tally.Warnings != 1 || tally.Review != 1 {
		t.Fatalf("unexpected tally %+v", tally)
	}
}

func TestLoaderWrapsPath(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, `[{"kind":"nope"}]`)
	_, err := (&Loader{}).Load(context.Background(), []string{bad})
	if !errors.Is(err, diag.ErrInvalidEnumValue) {
		t.Fatalf("expected ErrInvalidEnumValue, got %v", err)
	}
	if !strings.Contains(err.Error(), "bad.json") {
		t.Fatalf("error should name the file: %v", err)
	}
}

func TestCollectRejectsMissingType(t *testing.T) {
	results := []Result{{Path: Stdin, Messages: []diag.Message{{Kind: diag.KindLint}}}}
	_, err := Collect(results, 0)
	if !errors.Is(err, diag.ErrInvalidEnumValue) {
		t.Fatalf("expected ErrInvalidEnumValue, got %v", err)
	}
	if !strings.Contains(err.Error(), "<stdin>") {
		t.Fatalf("error should name stdin: %v", err)
	}
}

func TestLoaderStdin(t *testing.T) {
	l := &Loader{Stdin: bytes.NewBufferString(`[{"kind":"review"}]`)}
	results, err := l.Load(context.Background(), []string{Stdin})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(results) != 1 || results[0].Format != FormatJSON || len(results[0].Messages) != 1 {
		t.Fatalf("unexpected results %+v", results)
	}
}

func TestLoaderCancelled(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.json")
	writeFile(t, p, "[]")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (&Loader{}).Load(ctx, []string{p}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoaderUsesCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, "a.json")
	writeFile(t, p, `[{"type":"Warning","text":"w"}]`)

	l := &Loader{Cache: cache}
	first, err := l.Load(context.Background(), []string{p})
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if first[0].Cached {
		t.Fatal("first load must miss the cache")
	}
	second, err := l.Load(context.Background(), []string{p})
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !second[0].Cached || second[0].Messages[0].Type != diag.TypeWarning {
		t.Fatalf("second load should hit the cache: %+v", second[0])
	}
}

func TestDiskCacheKeyedByFormat(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	data := []byte("[]")
	if DigestOf(data, FormatJSON) == DigestOf(data, FormatYAML) {
		t.Fatal("digest must depend on the format")
	}
	msgs := []diag.Message{{Kind: diag.KindReview, Text: "r"}}
	if err := cache.Put(DigestOf(data, FormatJSON), FormatJSON, msgs); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok, err := cache.Get(DigestOf(data, FormatYAML)); err != nil || ok {
		t.Fatalf("unexpected hit: ok=%v err=%v", ok, err)
	}
	got, ok, err := cache.Get(DigestOf(data, FormatJSON))
	if err != nil || !ok || len(got) != 1 || got[0].Kind != diag.KindReview {
		t.Fatalf("get: %+v ok=%v err=%v", got, ok, err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, ok, _ := cache.Get(DigestOf(data, FormatJSON)); ok {
		t.Fatal("entry survived DropAll")
	}
}

func TestNilDiskCache(t *testing.T) {
	var c *DiskCache
	if err := c.Put(Digest{}, FormatJSON, nil); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(Digest{}); ok || err != nil {
		t.Fatalf("nil cache Get: ok=%v err=%v", ok, err)
	}
}
