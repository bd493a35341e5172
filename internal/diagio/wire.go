package diagio

import "diagdeck/internal/diag"

// wireMessage is the msgpack shape of a message. Kind and Type travel as
// strings so the closed enums are validated on decode; a nil Kind is the
// unset kind.
type wireMessage struct {
	Kind         *string     `msgpack:"kind"`
	Type         string      `msgpack:"type,omitempty"`
	ProviderName string      `msgpack:"providerName,omitempty"`
	FilePath     string      `msgpack:"filePath,omitempty"`
	Range        *diag.Range `msgpack:"range,omitempty"`
	Text         string      `msgpack:"text,omitempty"`
	Stale        bool        `msgpack:"stale,omitempty"`
}

func toWire(m *diag.Message) (wireMessage, error) {
	w := wireMessage{
		ProviderName: m.ProviderName,
		FilePath:     m.FilePath,
		Range:        m.Range,
		Text:         m.Text,
		Stale:        m.Stale,
	}
	if m.Kind != diag.KindUnset {
		kind, err := m.Kind.MarshalText()
		if err != nil {
			return wireMessage{}, err
		}
		s := string(kind)
		w.Kind = &s
	}
	typ, err := m.Type.MarshalText()
	if err != nil {
		return wireMessage{}, err
	}
	w.Type = string(typ)
	return w, nil
}

func (w *wireMessage) toMessage() (diag.Message, error) {
	m := diag.Message{
		ProviderName: w.ProviderName,
		FilePath:     w.FilePath,
		Range:        w.Range,
		Text:         w.Text,
		Stale:        w.Stale,
	}
	if w.Kind != nil {
		kind, err := diag.ParseKind(*w.Kind)
		if err != nil {
			return diag.Message{}, err
		}
		m.Kind = kind
	}
	if w.Type != "" {
		typ, err := diag.ParseType(w.Type)
		if err != nil {
			return diag.Message{}, err
		}
		m.Type = typ
	}
	return m, nil
}
