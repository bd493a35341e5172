package diag

// DedupReporter wraps another Reporter and suppresses messages identical in
// provider, kind, type, location and text.
type DedupReporter struct {
	next Reporter
	seen map[string]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique messages to next.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[string]struct{}),
	}
}

func (r *DedupReporter) Report(msg Message) error {
	if r == nil {
		return nil
	}
	key := dedupKeyOf(&msg)
	if _, ok := r.seen[key]; ok {
		return nil
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		return r.next.Report(msg)
	}
	return nil
}
