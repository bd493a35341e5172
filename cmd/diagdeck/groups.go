package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"diagdeck/internal/diag"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List the filter groups with their labels and icons",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		groups := diag.Groups()
		infos := make([]groupInfo, 0, len(groups))
		for _, g := range groups {
			info, err := describeGroup(g)
			if err != nil {
				return err
			}
			infos = append(infos, info)
		}
		return writeGroupInfos(cmd.OutOrStdout(), format, infos, true)
	},
}

func init() {
	groupsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}
