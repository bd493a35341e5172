package diagfmt

import (
	"encoding/json"
	"io"

	"diagdeck/internal/diag"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID     string          `json:"ruleId"`
	RuleIndex  int             `json:"ruleIndex"`
	Level      string          `json:"level"`
	Message    sarifMessage    `json:"message"`
	Locations  []sarifLocation `json:"locations,omitempty"`
	Properties map[string]any  `json:"properties,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

// sarifLevel maps a group to the SARIF result level.
func sarifLevel(g diag.Group) string {
	switch g {
	case diag.GroupErrors:
		return "error"
	case diag.GroupWarnings:
		return "warning"
	default:
		return "note"
	}
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0).
// Each group becomes a rule; every entry becomes a result with 1-based
// region coordinates.
func Sarif(w io.Writer, bag *diag.Bag, meta SarifRunMeta) error {
	groups := diag.Groups()
	rules := make([]sarifRule, 0, len(groups))
	ruleIndex := make(map[diag.Group]int, len(groups))
	for _, g := range groups {
		label, err := diag.DisplayName(g)
		if err != nil {
			return err
		}
		ruleIndex[g] = len(rules)
		rules = append(rules, sarifRule{
			ID:               g.String(),
			Name:             label,
			ShortDescription: sarifMessage{Text: label},
		})
	}

	items := bag.Items()
	results := make([]sarifResult, 0, len(items))
	for i := range items {
		e := &items[i]
		m := &e.Message
		res := sarifResult{
			RuleID:    e.Group.String(),
			RuleIndex: ruleIndex[e.Group],
			Level:     sarifLevel(e.Group),
			Message:   sarifMessage{Text: m.Text},
		}
		if path := formatPath(m.FilePath, meta.PathMode, meta.BaseDir); path != "" {
			loc := sarifLocation{PhysicalLocation: sarifPhysicalLocation{
				ArtifactLocation: sarifArtifactLocation{URI: path},
			}}
			if m.Range != nil {
				loc.PhysicalLocation.Region = &sarifRegion{
					StartLine:   m.Range.Start.Line + 1,
					StartColumn: m.Range.Start.Column + 1,
					EndLine:     m.Range.End.Line + 1,
					EndColumn:   m.Range.End.Column + 1,
				}
			}
			res.Locations = []sarifLocation{loc}
		}
		props := map[string]any{}
		if m.ProviderName != "" {
			props["provider"] = m.ProviderName
		}
		if m.Type != diag.TypeUnknown {
			props["type"] = m.Type.String()
		}
		if m.Stale {
			props["stale"] = true
		}
		if len(props) > 0 {
			res.Properties = props
		}
		results = append(results, res)
	}

	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:    meta.ToolName,
			Version: meta.ToolVersion,
			Rules:   rules,
		}},
		Results: results,
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{
			Arguments:           meta.InvocationArgs,
			ExecutionSuccessful: true,
		}}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sarifLog{
		Version: sarifVersion,
		Schema:  sarifSchema,
		Runs:    []sarifRun{run},
	})
}
