package lsp

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"fortio.org/safecast"

	"diagdeck/internal/diag"
)

const methodPublishDiagnostics = "textDocument/publishDiagnostics"

// TypeForSeverity maps an LSP DiagnosticSeverity to a message Type.
// A missing severity (0) is read as Error; Hint shares Info's bucket.
func TypeForSeverity(sev int) (diag.Type, error) {
	switch sev {
	case 0, SeverityError:
		return diag.TypeError, nil
	case SeverityWarning:
		return diag.TypeWarning, nil
	case SeverityInformation, SeverityHint:
		return diag.TypeInfo, nil
	}
	return diag.TypeUnknown, &diag.InvalidEnumValueError{Enum: "type", Value: "severity " + strconv.Itoa(sev)}
}

// SeverityForType is the inverse of TypeForSeverity for valid types.
func SeverityForType(t diag.Type) (int, error) {
	switch t {
	case diag.TypeError:
		return SeverityError, nil
	case diag.TypeWarning:
		return SeverityWarning, nil
	case diag.TypeInfo:
		return SeverityInformation, nil
	}
	return 0, &diag.InvalidEnumValueError{Enum: "type", Value: t.String()}
}

// ReadPublishedDiagnostics consumes a stream of framed JSON-RPC messages
// and reports the diagnostics of every textDocument/publishDiagnostics
// notification. A later publish for the same URI replaces the earlier one,
// as it does in an editor; documents keep the order of their first publish.
// Other methods are ignored.
func ReadPublishedDiagnostics(r io.Reader, rep diag.Reporter) error {
	br := bufio.NewReader(r)
	order := make([]string, 0, 8)
	latest := make(map[string][]lspDiagnostic)
	for {
		payload, err := ReadMessage(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			return fmt.Errorf("decode frame: %w", err)
		}
		if msg.Method != methodPublishDiagnostics {
			continue
		}
		var params publishDiagnosticsParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return fmt.Errorf("decode %s: %w", methodPublishDiagnostics, err)
		}
		if _, seen := latest[params.URI]; !seen {
			order = append(order, params.URI)
		}
		latest[params.URI] = params.Diagnostics
	}

	for _, uri := range order {
		path := URIToPath(uri)
		for i := range latest[uri] {
			m, err := toMessage(path, &latest[uri][i])
			if err != nil {
				return fmt.Errorf("%s: diagnostic %d: %w", uri, i, err)
			}
			if err := rep.Report(m); err != nil {
				return err
			}
		}
	}
	return nil
}

func toMessage(path string, d *lspDiagnostic) (diag.Message, error) {
	typ, err := TypeForSeverity(d.Severity)
	if err != nil {
		return diag.Message{}, err
	}
	r, err := fromLSPRange(d.Range)
	if err != nil {
		return diag.Message{}, err
	}
	return diag.Message{
		Kind:         diag.KindLint,
		Type:         typ,
		ProviderName: d.Source,
		FilePath:     path,
		Range:        &r,
		Text:         d.Message,
	}, nil
}

func fromLSPRange(r lspRange) (diag.Range, error) {
	sl, err := safecast.Conv[int](r.Start.Line)
	if err != nil {
		return diag.Range{}, err
	}
	sc, err := safecast.Conv[int](r.Start.Character)
	if err != nil {
		return diag.Range{}, err
	}
	el, err := safecast.Conv[int](r.End.Line)
	if err != nil {
		return diag.Range{}, err
	}
	ec, err := safecast.Conv[int](r.End.Character)
	if err != nil {
		return diag.Range{}, err
	}
	return diag.Range{
		Start: diag.Position{Line: sl, Column: sc},
		End:   diag.Position{Line: el, Column: ec},
	}, nil
}

func toLSPPosition(line, character int) (position, error) {
	l, err := safecast.Conv[uint32](line)
	if err != nil {
		return position{}, fmt.Errorf("line %d: %w", line, err)
	}
	c, err := safecast.Conv[uint32](character)
	if err != nil {
		return position{}, fmt.Errorf("character %d: %w", character, err)
	}
	return position{Line: l, Character: c}, nil
}

// WritePublishDiagnostics writes one publishDiagnostics notification per
// file for lint-like messages. Review messages have no LSP severity and
// are skipped.
func WritePublishDiagnostics(w io.Writer, msgs []diag.Message) error {
	order := make([]string, 0, 8)
	byPath := make(map[string][]lspDiagnostic)
	for i := range msgs {
		m := &msgs[i]
		if m.Kind == diag.KindReview {
			continue
		}
		sev, err := SeverityForType(m.Type)
		if err != nil {
			return err
		}
		var r lspRange
		if m.Range != nil {
			start, err := toLSPPosition(m.Range.Start.Line, m.Range.Start.Column)
			if err != nil {
				return err
			}
			end, err := toLSPPosition(m.Range.End.Line, m.Range.End.Column)
			if err != nil {
				return err
			}
			r = lspRange{Start: start, End: end}
		}
		if _, ok := byPath[m.FilePath]; !ok {
			order = append(order, m.FilePath)
		}
		byPath[m.FilePath] = append(byPath[m.FilePath], lspDiagnostic{
			Range:    r,
			Severity: sev,
			Source:   m.ProviderName,
			Message:  m.Text,
		})
	}
	for _, path := range order {
		payload, err := json.Marshal(map[string]any{
			"jsonrpc": "2.0",
			"method":  methodPublishDiagnostics,
			"params": publishDiagnosticsParams{
				URI:         PathToURI(path),
				Diagnostics: byPath[path],
			},
		})
		if err != nil {
			return err
		}
		if err := WriteMessage(w, payload); err != nil {
			return err
		}
	}
	return nil
}
