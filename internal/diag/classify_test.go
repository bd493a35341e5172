package diag

import (
	"errors"
	"testing"
)

func TestClassifyLintLike(t *testing.T) {
	for _, kind := range []Kind{KindUnset, KindLint} {
		tests := []struct {
			typ  Type
			want Group
		}{
			{TypeError, GroupErrors},
			{TypeWarning, GroupWarnings},
			{TypeInfo, GroupWarnings},
		}
		for _, tt := range tests {
			got, err := Classify(Message{Kind: kind, Type: tt.typ})
			if err != nil {
				t.Fatalf("Classify(kind=%q, type=%s): unexpected error %v", kind, tt.typ, err)
			}
			if got != tt.want {
				t.Errorf("Classify(kind=%q, type=%s) = %s, want %s", kind, tt.typ, got, tt.want)
			}
		}
	}
}

func TestClassifyReviewIgnoresType(t *testing.T) {
	for _, typ := range []Type{TypeUnknown, TypeError, TypeWarning, TypeInfo, Type(42)} {
		got, err := Classify(Message{Kind: KindReview, Type: typ})
		if err != nil {
			t.Fatalf("Classify(review, %s): %v", typ, err)
		}
		if got != GroupReview {
			t.Errorf("Classify(review, %s) = %s, want review", typ, got)
		}
	}
}

func TestClassifyInvalidKind(t *testing.T) {
	_, err := Classify(Message{Kind: Kind(7), Type: TypeError})
	if !errors.Is(err, ErrInvalidEnumValue) {
		t.Fatalf("expected ErrInvalidEnumValue, got %v", err)
	}
	var enumErr *InvalidEnumValueError
	if !errors.As(err, &enumErr) || enumErr.Enum != "kind" {
		t.Fatalf("expected kind InvalidEnumValueError, got %#v", err)
	}
}

func TestClassifyInvalidType(t *testing.T) {
	for _, typ := range []Type{TypeUnknown, Type(9)} {
		_, err := Classify(Message{Kind: KindUnset, Type: typ})
		var enumErr *InvalidEnumValueError
		if !errors.As(err, &enumErr) || enumErr.Enum != "type" {
			t.Fatalf("type %d: expected type InvalidEnumValueError, got %v", typ, err)
		}
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	msg := Message{Kind: KindLint, Type: TypeInfo, Text: "x"}
	first := MustClassify(msg)
	for i := 0; i < 10; i++ {
		if got := MustClassify(msg); got != first {
			t.Fatalf("iteration %d: got %s, want %s", i, got, first)
		}
	}
}

func TestMustClassifyPanicsWithEnumError(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvalidEnumValue) {
			t.Fatalf("expected InvalidEnumValue panic, got %v", r)
		}
	}()
	MustClassify(Message{Kind: Kind(3)})
}

func TestClassifyRoundTripNeverFails(t *testing.T) {
	kinds := []Kind{KindUnset, KindLint, KindReview}
	types := []Type{TypeError, TypeWarning, TypeInfo}
	for _, k := range kinds {
		for _, typ := range types {
			g, err := Classify(Message{Kind: k, Type: typ})
			if err != nil {
				t.Fatalf("Classify(%q,%s): %v", k, typ, err)
			}
			if _, err := DisplayName(g); err != nil {
				t.Errorf("DisplayName(%s): %v", g, err)
			}
			if _, err := IconFor(g); err != nil {
				t.Errorf("IconFor(%s): %v", g, err)
			}
		}
	}
}

func TestClassifyScenarios(t *testing.T) {
	tests := []struct {
		name      string
		msg       Message
		wantGroup Group
		wantLabel string
	}{
		{"unset error", Message{Type: TypeError}, GroupErrors, "Errors"},
		{"lint info", Message{Kind: KindLint, Type: TypeInfo}, GroupWarnings, "Warnings & Info"},
		{"review error", Message{Kind: KindReview, Type: TypeError}, GroupReview, "Review"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MustClassify(tt.msg)
			if g != tt.wantGroup {
				t.Fatalf("group = %s, want %s", g, tt.wantGroup)
			}
			if label := MustDisplayName(g); label != tt.wantLabel {
				t.Fatalf("label = %q, want %q", label, tt.wantLabel)
			}
		})
	}
}
