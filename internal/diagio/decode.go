package diagio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"diagdeck/internal/diag"
	"diagdeck/internal/lsp"
)

// envelope is the object form of a document: {"messages": [...]}.
type envelope struct {
	Messages []diag.Message `json:"messages" yaml:"messages"`
}

// Decode reads every message from r. Enum validation happens here: a kind or
// type outside the closed domain returns an error matching
// diag.ErrInvalidEnumValue.
func Decode(r io.Reader, format Format) ([]diag.Message, error) {
	if format == FormatLSP {
		var out []diag.Message
		// серверы нередко публикуют одну и ту же диагностику дважды
		rep := diag.NewDedupReporter(diag.ReporterFunc(func(m diag.Message) error {
			out = append(out, m)
			return nil
		}))
		err := lsp.ReadPublishedDiagnostics(r, rep)
		return out, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data, format)
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte, format Format) ([]diag.Message, error) {
	switch format {
	case FormatAuto, FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	case FormatMsgpack:
		return decodeMsgpack(data)
	case FormatLSP:
		return Decode(bytes.NewReader(data), FormatLSP)
	}
	return nil, fmt.Errorf("unsupported input format %s", format)
}

func decodeJSON(data []byte) ([]diag.Message, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	switch trimmed[0] {
	case '[':
		var msgs []diag.Message
		if err := json.Unmarshal(trimmed, &msgs); err != nil {
			return nil, unwrapEnum(err)
		}
		return msgs, nil
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, unwrapEnum(err)
		}
		return env.Messages, nil
	}
	return nil, errors.New("json: expected an array of messages or an object with \"messages\"")
}

func decodeYAML(data []byte) ([]diag.Message, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var msgs []diag.Message
		if err := root.Decode(&msgs); err != nil {
			return nil, unwrapEnum(err)
		}
		return msgs, nil
	case yaml.MappingNode:
		var env envelope
		if err := root.Decode(&env); err != nil {
			return nil, unwrapEnum(err)
		}
		return env.Messages, nil
	case yaml.ScalarNode:
		if root.Tag == "!!null" {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("yaml: line %d: expected a list of messages or a mapping with \"messages\"", root.Line)
}

func decodeMsgpack(data []byte) ([]diag.Message, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var wire []wireMessage
	if err := msgpack.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	msgs := make([]diag.Message, 0, len(wire))
	for i := range wire {
		m, err := wire[i].toMessage()
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// EncodeMsgpack writes msgs in the msgpack wire shape read by Decode.
func EncodeMsgpack(w io.Writer, msgs []diag.Message) error {
	wire := make([]wireMessage, 0, len(msgs))
	for i := range msgs {
		wm, err := toWire(&msgs[i])
		if err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		wire = append(wire, wm)
	}
	return msgpack.NewEncoder(w).Encode(wire)
}

// unwrapEnum surfaces an enum error buried in a decoder error so callers
// see the plain InvalidEnumValueError. Other errors pass through.
func unwrapEnum(err error) error {
	var enumErr *diag.InvalidEnumValueError
	if errors.As(err, &enumErr) {
		return enumErr
	}
	return err
}
