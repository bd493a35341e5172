package diag

import "fmt"

// Kind separates static-analysis findings from human review comments.
type Kind uint8

const (
	// KindUnset is a message without kind (null or missing); treated as lint.
	KindUnset Kind = iota
	// KindLint is a static-analysis finding.
	KindLint
	// KindReview is a review comment.
	KindReview
)

func (k Kind) String() string {
	switch k {
	case KindUnset:
		return ""
	case KindLint:
		return "lint"
	case KindReview:
		return "review"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k <= KindReview
}

// ParseKind maps a wire value to Kind. The empty string is not accepted:
// absence is expressed by null or by omitting the field.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "lint":
		return KindLint, nil
	case "review":
		return KindReview, nil
	}
	return KindUnset, invalidEnum("kind", s)
}

// MarshalText renders the wire form; KindUnset renders as empty text.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, invalidEnum("kind", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText parses the wire form. JSON/YAML null never reaches here and
// leaves the zero value (KindUnset) in place.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Type is the severity of a lint-like message.
type Type uint8

const (
	// TypeUnknown is the zero value; it never classifies.
	TypeUnknown Type = iota
	TypeError
	TypeWarning
	TypeInfo
)

func (t Type) String() string {
	switch t {
	case TypeError:
		return "Error"
	case TypeWarning:
		return "Warning"
	case TypeInfo:
		return "Info"
	case TypeUnknown:
		return ""
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Valid reports whether t is Error, Warning or Info.
func (t Type) Valid() bool {
	return t >= TypeError && t <= TypeInfo
}

// ParseType maps a wire value ("Error", "Warning", "Info") to Type.
// Matching is case-sensitive.
func ParseType(s string) (Type, error) {
	switch s {
	case "Error":
		return TypeError, nil
	case "Warning":
		return TypeWarning, nil
	case "Info":
		return TypeInfo, nil
	}
	return TypeUnknown, invalidEnum("type", s)
}

// MarshalText renders the wire form; TypeUnknown renders as empty text so
// review messages without a severity round-trip.
func (t Type) MarshalText() ([]byte, error) {
	if t != TypeUnknown && !t.Valid() {
		return nil, invalidEnum("type", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText parses the wire form.
func (t *Type) UnmarshalText(text []byte) error {
	v, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
