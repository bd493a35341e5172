package diag

// Tally holds per-group counts for the filter button badges.
type Tally struct {
	Errors   int `json:"errors" yaml:"errors"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Review   int `json:"review" yaml:"review"`
}

// Count classifies every message and returns the counts. It stops at the
// first message outside the closed domain.
func Count(msgs []Message) (Tally, error) {
	var t Tally
	for i := range msgs {
		g, err := Classify(msgs[i])
		if err != nil {
			return Tally{}, err
		}
		t.add(g, 1)
	}
	return t, nil
}

func (t *Tally) add(g Group, n int) {
	switch g {
	case GroupErrors:
		t.Errors += n
	case GroupWarnings:
		t.Warnings += n
	case GroupReview:
		t.Review += n
	}
}

// Of returns the count for g (0 for invalid groups).
func (t Tally) Of(g Group) int {
	switch g {
	case GroupErrors:
		return t.Errors
	case GroupWarnings:
		return t.Warnings
	case GroupReview:
		return t.Review
	}
	return 0
}

// Total is the sum over all groups.
func (t Tally) Total() int {
	return t.Errors + t.Warnings + t.Review
}
