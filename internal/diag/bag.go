package diag

import (
	"fmt"
	"sort"
)

// Entry is a message together with its already computed group.
type Entry struct {
	Group   Group
	Message Message
}

type Bag struct {
	items   []Entry
	max     int
	dropped int
}

// NewBag creates a bag holding at most max entries; max <= 0 means unbounded.
func NewBag(max int) *Bag {
	capHint := max
	if capHint <= 0 || capHint > 1024 {
		capHint = 64
	}
	return &Bag{
		items: make([]Entry, 0, capHint),
		max:   max,
	}
}

// Add classifies msg and stores it. It returns false without error when the
// bag is full, and an *InvalidEnumValueError when msg cannot be classified.
func (b *Bag) Add(msg Message) (bool, error) {
	g, err := Classify(msg)
	if err != nil {
		return false, err
	}
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		return false, nil
	}
	b.items = append(b.items, Entry{Group: g, Message: msg})
	return true, nil
}

// Cap returns the configured bound (0 when unbounded).
func (b *Bag) Cap() int {
	if b.max <= 0 {
		return 0
	}
	return b.max
}

// Dropped counts messages rejected because the bag was full.
func (b *Bag) Dropped() int {
	return b.dropped
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает внутренний срез; не модифицируйте его.
func (b *Bag) Items() []Entry {
	return b.items
}

// Messages returns a copy of the stored messages in current order.
func (b *Bag) Messages() []Message {
	out := make([]Message, len(b.items))
	for i := range b.items {
		out[i] = b.items[i].Message
	}
	return out
}

// HasErrors reports whether the errors group is non-empty.
func (b *Bag) HasErrors() bool {
	return b.Has(GroupErrors)
}

// Has reports whether any stored entry belongs to g.
func (b *Bag) Has(g Group) bool {
	for i := range b.items {
		if b.items[i].Group == g {
			return true
		}
	}
	return false
}

// Merge appends other's entries, growing the bound when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if b.max > 0 && len(b.items)+len(other.items) > b.max {
		b.max = len(b.items) + len(other.items)
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
}

// Sort orders entries by file, start position, group, provider and text so
// output is stable across runs.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		ei, ej := &b.items[i], &b.items[j]
		mi, mj := &ei.Message, &ej.Message
		if mi.FilePath != mj.FilePath {
			return mi.FilePath < mj.FilePath
		}
		si, sj := mi.Start(), mj.Start()
		if si.Line != sj.Line {
			return si.Line < sj.Line
		}
		if si.Column != sj.Column {
			return si.Column < sj.Column
		}
		// errors first, then warnings, then review
		if ei.Group != ej.Group {
			return ei.Group < ej.Group
		}
		if mi.ProviderName != mj.ProviderName {
			return mi.ProviderName < mj.ProviderName
		}
		return mi.Text < mj.Text
	})
}

// Dedup drops entries identical in provider, kind, type, location and text.
func (b *Bag) Dedup() {
	seen := make(map[string]struct{}, len(b.items))
	kept := make([]Entry, 0, len(b.items))
	for _, e := range b.items {
		key := dedupKeyOf(&e.Message)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, e)
	}
	b.items = kept
}

func dedupKeyOf(m *Message) string {
	var r Range
	if m.Range != nil {
		r = *m.Range
	}
	return fmt.Sprintf("%s|%d|%d|%s|%d:%d-%d:%d|%s",
		m.ProviderName, m.Kind, m.Type, m.FilePath,
		r.Start.Line, r.Start.Column, r.End.Line, r.End.Column, m.Text)
}

// Filter returns a new unbounded bag with only the enabled groups.
func (b *Bag) Filter(set GroupSet) *Bag {
	out := NewBag(0)
	for _, e := range b.items {
		if set.Has(e.Group) {
			out.items = append(out.items, e)
		}
	}
	return out
}

// Partition splits messages by group, keeping the bag order inside each group.
func (b *Bag) Partition() map[Group][]Message {
	out := make(map[Group][]Message, len(allGroups))
	for _, e := range b.items {
		out[e.Group] = append(out[e.Group], e.Message)
	}
	return out
}

// Tally counts stored entries per group.
func (b *Bag) Tally() Tally {
	var t Tally
	for _, e := range b.items {
		t.add(e.Group, 1)
	}
	return t
}

// Truncate keeps the first n entries and counts the rest as dropped.
// n <= 0 leaves the bag unchanged.
func (b *Bag) Truncate(n int) {
	if n <= 0 || len(b.items) <= n {
		return
	}
	b.dropped += len(b.items) - n
	b.items = b.items[:n]
}
