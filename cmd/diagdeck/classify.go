package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"diagdeck/internal/diag"
	"diagdeck/internal/diagfmt"
)

var classifyCmd = &cobra.Command{
	Use:   "classify --kind <lint|review> --type <Error|Warning|Info>",
	Short: "Classify a single message and print its group, label and icon",
	Args:  cobra.NoArgs,
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().String("kind", "", "message kind (lint|review); empty or null means unset")
	classifyCmd.Flags().String("type", "", "message severity (Error|Warning|Info)")
	classifyCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

// groupInfo is the resolved presentation of a group.
type groupInfo struct {
	Group diag.Group `json:"group"`
	Label string     `json:"label"`
	Icon  diag.Icon  `json:"icon"`
}

func describeGroup(g diag.Group) (groupInfo, error) {
	label, err := diag.DisplayName(g)
	if err != nil {
		return groupInfo{}, err
	}
	icon, err := diag.IconFor(g)
	if err != nil {
		return groupInfo{}, err
	}
	return groupInfo{Group: g, Label: label, Icon: icon}, nil
}

// parseKindFlag accepts the wire names plus "", "null" and "unset" for the
// absent kind.
func parseKindFlag(s string) (diag.Kind, error) {
	switch strings.TrimSpace(s) {
	case "", "null", "unset":
		return diag.KindUnset, nil
	}
	return diag.ParseKind(strings.TrimSpace(s))
}

func parseTypeFlag(s string) (diag.Type, error) {
	if strings.TrimSpace(s) == "" {
		return diag.TypeUnknown, nil
	}
	return diag.ParseType(strings.TrimSpace(s))
}

func runClassify(cmd *cobra.Command, args []string) error {
	kindStr, err := cmd.Flags().GetString("kind")
	if err != nil {
		return fmt.Errorf("failed to get kind flag: %w", err)
	}
	typeStr, err := cmd.Flags().GetString("type")
	if err != nil {
		return fmt.Errorf("failed to get type flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	kind, err := parseKindFlag(kindStr)
	if err != nil {
		return err
	}
	typ, err := parseTypeFlag(typeStr)
	if err != nil {
		return err
	}
	g, err := diag.Classify(diag.Message{Kind: kind, Type: typ})
	if err != nil {
		return err
	}
	info, err := describeGroup(g)
	if err != nil {
		return err
	}
	return writeGroupInfos(cmd.OutOrStdout(), format, []groupInfo{info}, false)
}

// writeGroupInfos prints infos as a table or JSON; asList keeps the JSON
// array form for a single entry.
func writeGroupInfos(out io.Writer, format string, infos []groupInfo, asList bool) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if len(infos) == 1 && !asList {
			return enc.Encode(infos[0])
		}
		return enc.Encode(infos)
	case "pretty":
		for _, info := range infos {
			if _, err := fmt.Fprintf(out, "%s %-9s %-16s %s\n", diagfmt.Glyph(info.Icon), info.Group, info.Label, info.Icon); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
}
