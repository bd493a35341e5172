package diag

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestMessageJSONKindAbsentOrNull(t *testing.T) {
	inputs := []string{
		`{"type":"Error","text":"boom"}`,
		`{"kind":null,"type":"Error","text":"boom"}`,
		`{"kind":"lint","type":"Error","text":"boom"}`,
	}
	for _, in := range inputs {
		var m Message
		if err := json.Unmarshal([]byte(in), &m); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if g := MustClassify(m); g != GroupErrors {
			t.Errorf("%s: group %s, want errors", in, g)
		}
	}
}

func TestMessageJSONRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		in   string
		enum string
	}{
		{`{"kind":"bogus","type":"Error"}`, "kind"},
		{`{"kind":null,"type":"bogus"}`, "type"},
		{`{"type":"error"}`, "type"},
		{`{"kind":""}`, "kind"},
	}
	for _, tt := range tests {
		var m Message
		err := json.Unmarshal([]byte(tt.in), &m)
		var enumErr *InvalidEnumValueError
		if !errors.As(err, &enumErr) {
			t.Fatalf("%s: expected InvalidEnumValueError, got %v", tt.in, err)
		}
		if enumErr.Enum != tt.enum {
			t.Errorf("%s: enum = %q, want %q", tt.in, enumErr.Enum, tt.enum)
		}
	}
}

func TestMessageJSONOmitsUnsetKind(t *testing.T) {
	data, err := json.Marshal(Message{Type: TypeWarning, Text: "w"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `{"type":"Warning","text":"w"}`; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestKindMarshalRejectsInvalid(t *testing.T) {
	if _, err := Kind(9).MarshalText(); !errors.Is(err, ErrInvalidEnumValue) {
		t.Fatalf("expected ErrInvalidEnumValue, got %v", err)
	}
	if _, err := Type(9).MarshalText(); !errors.Is(err, ErrInvalidEnumValue) {
		t.Fatalf("expected ErrInvalidEnumValue, got %v", err)
	}
}
