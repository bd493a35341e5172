package diag

// Reporter receives messages from producers (decoders, LSP readers) without
// coupling them to storage. Report returns the classification error for
// messages outside the closed domain.
type Reporter interface {
	Report(msg Message) error
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(msg Message) error {
	if r.Bag == nil {
		return nil
	}
	_, err := r.Bag.Add(msg)
	return err
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Message) error

func (f ReporterFunc) Report(msg Message) error { return f(msg) }

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Message) error { return nil }
