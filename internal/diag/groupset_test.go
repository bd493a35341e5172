package diag

import (
	"errors"
	"testing"
)

func TestParseGroupSet(t *testing.T) {
	tests := []struct {
		in   string
		want GroupSet
	}{
		{"", AllGroupSet},
		{"all", AllGroupSet},
		{"errors", NewGroupSet(GroupErrors)},
		{"review, warnings", NewGroupSet(GroupWarnings, GroupReview)},
		{"errors,,errors", NewGroupSet(GroupErrors)},
	}
	for _, tt := range tests {
		got, err := ParseGroupSet(tt.in)
		if err != nil {
			t.Fatalf("ParseGroupSet(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseGroupSet(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := ParseGroupSet("errors,info"); !errors.Is(err, ErrInvalidEnumValue) {
		t.Fatalf("expected ErrInvalidEnumValue, got %v", err)
	}
}

func TestGroupSetToggle(t *testing.T) {
	s := AllGroupSet.Toggle(GroupWarnings)
	if s.Has(GroupWarnings) || !s.Has(GroupErrors) || !s.Has(GroupReview) {
		t.Fatalf("toggle off failed: %s", s)
	}
	if got := s.String(); got != "errors,review" {
		t.Fatalf("String() = %q", got)
	}
	s = s.Toggle(GroupWarnings)
	if s != AllGroupSet || s.String() != "all" {
		t.Fatalf("toggle on failed: %s", s)
	}
	if s.Has(Group(0)) || s.With(Group(9)) != s {
		t.Fatal("invalid groups must be ignored")
	}
}
