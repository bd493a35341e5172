package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"diagdeck/internal/diag"
)

// glyphs are the terminal stand-ins for the group icons.
var glyphs = map[diag.Icon]string{
	diag.IconError:      "✖",
	diag.IconWarning:    "▲",
	diag.IconDiscussion: "◆",
}

// Glyph returns the terminal symbol for an icon.
func Glyph(icon diag.Icon) string {
	if g, ok := glyphs[icon]; ok {
		return g
	}
	return "•"
}

type palette struct {
	heading map[diag.Group]*color.Color
	loc     *color.Color
	label   map[string]*color.Color
	dim     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		heading: map[diag.Group]*color.Color{
			diag.GroupErrors:   color.New(color.FgRed, color.Bold),
			diag.GroupWarnings: color.New(color.FgYellow, color.Bold),
			diag.GroupReview:   color.New(color.FgCyan, color.Bold),
		},
		loc: color.New(color.Bold),
		label: map[string]*color.Color{
			"error":   color.New(color.FgRed),
			"warning": color.New(color.FgYellow),
			"info":    color.New(color.FgBlue),
			"review":  color.New(color.FgCyan),
		},
		dim: color.New(color.Faint),
	}
	all := []*color.Color{p.loc, p.dim}
	for _, c := range p.heading {
		all = append(all, c)
	}
	for _, c := range p.label {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики по группам в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее). Для каждой группы
// печатает заголовок "<glyph> <Label> (<count>)", затем строки
// <path>:<line>:<col>  <label>  <text>
// с выравниванием колонки местоположения.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	parts := bag.Partition()

	first := true
	for _, g := range diag.Groups() {
		msgs := parts[g]
		if len(msgs) == 0 && !opts.ShowEmpty {
			continue
		}
		if !first {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		first = false

		label, err := diag.DisplayName(g)
		if err != nil {
			return err
		}
		icon, err := diag.IconFor(g)
		if err != nil {
			return err
		}
		heading := fmt.Sprintf("%s %s (%d)", Glyph(icon), label, len(msgs))
		if _, err := fmt.Fprintln(w, p.heading[g].Sprint(heading)); err != nil {
			return err
		}

		locs := make([]string, len(msgs))
		locWidth := 0
		for i := range msgs {
			locs[i] = location(&msgs[i], opts.PathMode, opts.BaseDir)
			locWidth = max(locWidth, runewidth.StringWidth(locs[i]))
		}
		for i := range msgs {
			if err := prettyLine(w, p, g, &msgs[i], locs[i], locWidth, opts); err != nil {
				return err
			}
		}
	}

	if dropped := bag.Dropped(); dropped > 0 {
		if !first {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		note := fmt.Sprintf("... %d more diagnostics not shown", dropped)
		if _, err := fmt.Fprintln(w, p.dim.Sprint(note)); err != nil {
			return err
		}
	}
	return nil
}

func prettyLine(w io.Writer, p palette, g diag.Group, m *diag.Message, loc string, locWidth int, opts PrettyOpts) error {
	var sb strings.Builder
	sb.WriteString("  ")
	sb.WriteString(p.loc.Sprint(loc))
	sb.WriteString(strings.Repeat(" ", locWidth-runewidth.StringWidth(loc)+2))

	label := entryLabel(g, m)
	sb.WriteString(p.label[label].Sprint(runewidth.FillRight(label, len("warning"))))
	sb.WriteString("  ")

	text := strings.ReplaceAll(m.Text, "\n", " ")
	if opts.Width > 0 {
		text = runewidth.Truncate(text, opts.Width, "…")
	}
	sb.WriteString(text)

	if opts.ShowProvider && m.ProviderName != "" {
		sb.WriteString(" ")
		sb.WriteString(p.dim.Sprint("[" + m.ProviderName + "]"))
	}
	if m.Stale {
		sb.WriteString(" ")
		sb.WriteString(p.dim.Sprint("(stale)"))
	}
	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// location renders "path:line:col" with 1-based numbers; file-level
// messages show only the path, messages without a path show "-".
func location(m *diag.Message, mode PathMode, baseDir string) string {
	path := formatPath(m.FilePath, mode, baseDir)
	if path == "" {
		path = "-"
	}
	if m.Range == nil {
		return path
	}
	start := m.Range.Start
	return path + ":" + strconv.Itoa(start.Line+1) + ":" + strconv.Itoa(start.Column+1)
}

// entryLabel is the per-line severity word.
func entryLabel(g diag.Group, m *diag.Message) string {
	if g == diag.GroupReview {
		return "review"
	}
	switch m.Type {
	case diag.TypeError:
		return "error"
	case diag.TypeInfo:
		return "info"
	default:
		return "warning"
	}
}
