package diagfmt

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"diagdeck/internal/diag"
)

// GroupJSON is one filter group with its messages.
type GroupJSON struct {
	Group    diag.Group     `json:"group" yaml:"group"`
	Label    string         `json:"label" yaml:"label"`
	Icon     diag.Icon      `json:"icon" yaml:"icon"`
	Count    int            `json:"count" yaml:"count"`
	Messages []diag.Message `json:"messages" yaml:"messages"`
}

// DiagnosticsOutput представляет корневую структуру JSON/YAML вывода
type DiagnosticsOutput struct {
	Groups  []GroupJSON `json:"groups" yaml:"groups"`
	Tally   diag.Tally  `json:"tally" yaml:"tally"`
	Count   int         `json:"count" yaml:"count"`
	Dropped int         `json:"dropped,omitempty" yaml:"dropped,omitempty"`
}

// BuildDiagnosticsOutput формирует структуру вывода без сериализации.
// Groups follow the canonical order; Max caps the number of messages across
// all groups and the rest is reported as dropped.
func BuildDiagnosticsOutput(bag *diag.Bag, opts JSONOpts) (DiagnosticsOutput, error) {
	out := DiagnosticsOutput{
		Groups:  make([]GroupJSON, 0, len(diag.Groups())),
		Tally:   bag.Tally(),
		Dropped: bag.Dropped(),
	}
	parts := bag.Partition()
	budget := opts.Max

	for _, g := range diag.Groups() {
		msgs := parts[g]
		if len(msgs) == 0 && !opts.ShowEmpty {
			continue
		}
		label, err := diag.DisplayName(g)
		if err != nil {
			return DiagnosticsOutput{}, err
		}
		icon, err := diag.IconFor(g)
		if err != nil {
			return DiagnosticsOutput{}, err
		}
		if opts.Max > 0 {
			keep := min(budget, len(msgs))
			out.Dropped += len(msgs) - keep
			msgs = msgs[:keep]
			budget -= keep
		}
		gj := GroupJSON{
			Group:    g,
			Label:    label,
			Icon:     icon,
			Count:    len(msgs),
			Messages: make([]diag.Message, len(msgs)),
		}
		for i := range msgs {
			m := msgs[i]
			m.FilePath = formatPath(m.FilePath, opts.PathMode, opts.BaseDir)
			gj.Messages[i] = m
		}
		out.Count += gj.Count
		out.Groups = append(out.Groups, gj)
	}
	return out, nil
}

// JSON форматирует сгруппированные диагностики в JSON.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	output, err := BuildDiagnosticsOutput(bag, opts)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// YAML writes the same document as JSON in YAML form.
func YAML(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	output, err := BuildDiagnosticsOutput(bag, opts)
	if err != nil {
		return err
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(output); err != nil {
		return err
	}
	return encoder.Close()
}
