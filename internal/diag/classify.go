package diag

// Classify maps a message to its display group.
//
// Review comments always land in GroupReview whatever their Type. Lint-like
// messages (KindUnset or KindLint) are split by severity: Error goes to
// GroupErrors, Warning and Info share GroupWarnings.
func Classify(msg Message) (Group, error) {
	switch msg.Kind {
	case KindUnset, KindLint:
		switch msg.Type {
		case TypeError:
			return GroupErrors, nil
		case TypeWarning, TypeInfo:
			return GroupWarnings, nil
		default:
			return 0, invalidEnum("type", msg.Type)
		}
	case KindReview:
		return GroupReview, nil
	default:
		return 0, invalidEnum("kind", msg.Kind)
	}
}

// MustClassify is Classify for callers that guarantee the input domain.
// It panics with an *InvalidEnumValueError otherwise.
func MustClassify(msg Message) Group {
	g, err := Classify(msg)
	if err != nil {
		panic(err)
	}
	return g
}
