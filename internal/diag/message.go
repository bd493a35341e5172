package diag

// Position is a 0-based line/column pair.
type Position struct {
	Line   int `json:"line" yaml:"line" msgpack:"line"`
	Column int `json:"column" yaml:"column" msgpack:"column"`
}

// Range is a half-open span inside a file.
type Range struct {
	Start Position `json:"start" yaml:"start" msgpack:"start"`
	End   Position `json:"end" yaml:"end" msgpack:"end"`
}

// Message is a diagnostic produced by an external provider.
// Kind and Type decide the group; the other fields are informational.
type Message struct {
	Kind         Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Type         Type   `json:"type,omitempty" yaml:"type,omitempty"`
	ProviderName string `json:"providerName,omitempty" yaml:"providerName,omitempty"`
	FilePath     string `json:"filePath,omitempty" yaml:"filePath,omitempty"`
	Range        *Range `json:"range,omitempty" yaml:"range,omitempty"`
	Text         string `json:"text,omitempty" yaml:"text,omitempty"`
	Stale        bool   `json:"stale,omitempty" yaml:"stale,omitempty"`
}

// Start returns the start position, or the zero position for file-level
// messages without a range.
func (m *Message) Start() Position {
	if m.Range == nil {
		return Position{}
	}
	return m.Range.Start
}
