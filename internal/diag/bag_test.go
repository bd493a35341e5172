package diag

import (
	"errors"
	"testing"
)

func rng(line, col int) *Range {
	return &Range{Start: Position{Line: line, Column: col}, End: Position{Line: line, Column: col + 1}}
}

func TestBagAddRespectsLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		ok, err := b.Add(Message{Type: TypeError, Text: "e"})
		if err != nil {
			t.Fatal(err)
		}
		if want := i < 2; ok != want {
			t.Fatalf("add #%d: ok=%v want %v", i, ok, want)
		}
	}
	if b.Len() != 2 || b.Dropped() != 1 || b.Cap() != 2 {
		t.Fatalf("len=%d dropped=%d cap=%d", b.Len(), b.Dropped(), b.Cap())
	}
}

func TestBagAddRejectsInvalid(t *testing.T) {
	b := NewBag(0)
	if _, err := b.Add(Message{Kind: Kind(5)}); !errors.Is(err, ErrInvalidEnumValue) {
		t.Fatalf("expected ErrInvalidEnumValue, got %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("invalid message must not be stored")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	msgs := []Message{
		{Kind: KindReview, FilePath: "b.go", Range: rng(1, 0), Text: "looks odd"},
		{Type: TypeWarning, FilePath: "a.go", Range: rng(3, 2), Text: "unused"},
		{Type: TypeError, FilePath: "a.go", Range: rng(3, 2), Text: "broken"},
		{Type: TypeError, FilePath: "a.go", Range: rng(3, 2), Text: "broken"},
		{Type: TypeInfo, FilePath: "a.go", Text: "file note"},
	}
	for _, m := range msgs {
		if _, err := b.Add(m); err != nil {
			t.Fatal(err)
		}
	}
	b.Sort()
	b.Dedup()

	want := "warnings info a.go:0:0 file note\n" +
		"errors error a.go:4:3 broken\n" +
		"warnings warning a.go:4:3 unused\n" +
		"review review b.go:2:1 looks odd"
	if got := FormatShortEntries(b.Items()); got != want {
		t.Fatalf("unexpected order:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestBagFilterPartitionTally(t *testing.T) {
	b := NewBag(0)
	for _, m := range []Message{
		{Type: TypeError},
		{Type: TypeInfo},
		{Type: TypeWarning},
		{Kind: KindReview},
	} {
		if _, err := b.Add(m); err != nil {
			t.Fatal(err)
		}
	}
	tally := b.Tally()
	if tally != (Tally{Errors: 1, Warnings: 2, Review: 1}) {
		t.Fatalf("tally = %+v", tally)
	}
	if !b.HasErrors() {
		t.Fatal("expected HasErrors")
	}

	filtered := b.Filter(NewGroupSet(GroupWarnings, GroupReview))
	if filtered.Len() != 3 || filtered.HasErrors() {
		t.Fatalf("filter kept %d entries", filtered.Len())
	}

	parts := b.Partition()
	if len(parts[GroupWarnings]) != 2 || len(parts[GroupErrors]) != 1 || len(parts[GroupReview]) != 1 {
		t.Fatalf("partition = %v", parts)
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	other := NewBag(1)
	_, _ = a.Add(Message{Type: TypeError})
	_, _ = other.Add(Message{Type: TypeInfo})
	a.Merge(other)
	if a.Len() != 2 || a.Cap() != 2 {
		t.Fatalf("len=%d cap=%d", a.Len(), a.Cap())
	}
}

func TestCountStopsOnInvalid(t *testing.T) {
	_, err := Count([]Message{{Type: TypeError}, {Kind: Kind(8)}})
	if !errors.Is(err, ErrInvalidEnumValue) {
		t.Fatalf("expected ErrInvalidEnumValue, got %v", err)
	}
	tally, err := Count([]Message{{Type: TypeError}, {Kind: KindReview}})
	if err != nil || tally.Total() != 2 || tally.Of(GroupReview) != 1 {
		t.Fatalf("tally=%+v err=%v", tally, err)
	}
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: b})
	m := Message{Type: TypeWarning, FilePath: "x.go", Range: rng(0, 0), Text: "dup"}
	for i := 0; i < 3; i++ {
		if err := r.Report(m); err != nil {
			t.Fatal(err)
		}
	}
	if b.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", b.Len())
	}
	if err := r.Report(Message{Type: Type(0), Text: "bad"}); !errors.Is(err, ErrInvalidEnumValue) {
		t.Fatalf("expected classification error to propagate, got %v", err)
	}
}

func TestBagTruncate(t *testing.T) {
	b := NewBag(0)
	for _, typ := range []Type{TypeError, TypeWarning, TypeInfo} {
		if _, err := b.Add(Message{Type: typ}); err != nil {
			t.Fatal(err)
		}
	}
	b.Truncate(0)
	if b.Len() != 3 {
		t.Fatalf("Truncate(0) must keep everything, len=%d", b.Len())
	}
	b.Truncate(1)
	if b.Len() != 1 || b.Dropped() != 2 {
		t.Fatalf("len=%d dropped=%d", b.Len(), b.Dropped())
	}
	if b.Items()[0].Group != GroupErrors {
		t.Fatalf("kept %v", b.Items()[0].Group)
	}
}
