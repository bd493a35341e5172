package diag

import "strings"

// GroupSet is the toggle state of the group filter buttons.
type GroupSet uint8

// AllGroupSet has every group enabled.
const AllGroupSet = GroupSet(1<<GroupErrors | 1<<GroupWarnings | 1<<GroupReview)

// NewGroupSet returns a set holding the given groups. Invalid groups are
// ignored; use ParseGroupSet to validate user input.
func NewGroupSet(groups ...Group) GroupSet {
	var s GroupSet
	for _, g := range groups {
		s = s.With(g)
	}
	return s
}

// ParseGroupSet parses a comma-separated list such as "errors,review".
// "all" and the empty string select every group.
func ParseGroupSet(s string) (GroupSet, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return AllGroupSet, nil
	}
	var set GroupSet
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		g, err := ParseGroup(part)
		if err != nil {
			return 0, err
		}
		set = set.With(g)
	}
	return set, nil
}

// Has reports whether g is enabled.
func (s GroupSet) Has(g Group) bool {
	return g.Valid() && s&(1<<g) != 0
}

// With returns s with g enabled.
func (s GroupSet) With(g Group) GroupSet {
	if !g.Valid() {
		return s
	}
	return s | 1<<g
}

// Without returns s with g disabled.
func (s GroupSet) Without(g Group) GroupSet {
	if !g.Valid() {
		return s
	}
	return s &^ (1 << g)
}

// Toggle flips g, like clicking its filter button.
func (s GroupSet) Toggle(g Group) GroupSet {
	if s.Has(g) {
		return s.Without(g)
	}
	return s.With(g)
}

// Members lists enabled groups in display order.
func (s GroupSet) Members() []Group {
	out := make([]Group, 0, len(allGroups))
	for _, g := range allGroups {
		if s.Has(g) {
			out = append(out, g)
		}
	}
	return out
}

func (s GroupSet) String() string {
	if s&AllGroupSet == AllGroupSet {
		return "all"
	}
	members := s.Members()
	names := make([]string, len(members))
	for i, g := range members {
		names[i] = g.String()
	}
	return strings.Join(names, ",")
}
