package diag

import "fmt"

// Group is the filter bucket a message is displayed under.
type Group uint8

const (
	GroupErrors Group = iota + 1
	GroupWarnings
	GroupReview
)

// Icon is a stable icon identifier understood by the rendering layer.
type Icon string

const (
	IconError      Icon = "nuclicon-error"
	IconWarning    Icon = "nuclicon-warning"
	IconDiscussion Icon = "nuclicon-comment-discussion"
)

var allGroups = [...]Group{GroupErrors, GroupWarnings, GroupReview}

// Groups returns every group in display order.
func Groups() []Group {
	out := make([]Group, len(allGroups))
	copy(out, allGroups[:])
	return out
}

// String returns the wire name ("errors", "warnings", "review").
func (g Group) String() string {
	switch g {
	case GroupErrors:
		return "errors"
	case GroupWarnings:
		return "warnings"
	case GroupReview:
		return "review"
	}
	return fmt.Sprintf("Group(%d)", uint8(g))
}

// Valid reports whether g is one of the three groups.
func (g Group) Valid() bool {
	return g >= GroupErrors && g <= GroupReview
}

// ParseGroup maps a wire name to Group.
func ParseGroup(s string) (Group, error) {
	switch s {
	case "errors":
		return GroupErrors, nil
	case "warnings":
		return GroupWarnings, nil
	case "review":
		return GroupReview, nil
	}
	return 0, invalidEnum("group", s)
}

func (g Group) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, invalidEnum("group", g)
	}
	return []byte(g.String()), nil
}

func (g *Group) UnmarshalText(text []byte) error {
	v, err := ParseGroup(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// DisplayName returns the human-readable label of a group.
func DisplayName(g Group) (string, error) {
	switch g {
	case GroupErrors:
		return "Errors", nil
	case GroupWarnings:
		return "Warnings & Info", nil
	case GroupReview:
		return "Review", nil
	}
	return "", invalidEnum("group", g)
}

// IconFor returns the icon identifier of a group.
func IconFor(g Group) (Icon, error) {
	switch g {
	case GroupErrors:
		return IconError, nil
	case GroupWarnings:
		return IconWarning, nil
	case GroupReview:
		return IconDiscussion, nil
	}
	return "", invalidEnum("group", g)
}

// MustDisplayName is DisplayName for callers that hold a valid group.
// It panics with an *InvalidEnumValueError otherwise.
func MustDisplayName(g Group) string {
	name, err := DisplayName(g)
	if err != nil {
		panic(err)
	}
	return name
}

// MustIcon is IconFor for callers that hold a valid group.
func MustIcon(g Group) Icon {
	icon, err := IconFor(g)
	if err != nil {
		panic(err)
	}
	return icon
}
