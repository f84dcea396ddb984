/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var listFormsUsage = strings.TrimSpace(`
If you want to find out which forms your HubSpot portal has, and their IDs, use this command.
`)

var IncludeArchived bool

var listFormsCmd = &cobra.Command{
	Use:   "forms",
	Short: "Print list of HubSpot forms",
	Long:  listFormsUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, stop, err := newHubSpotAPI(false)
		if err != nil {
			return fmt.Errorf("list: %w", err)
		}
		defer stop()

		Logger.Info("listing HubSpot forms", zap.Bool("includeArchived", IncludeArchived))
		summaries, err := api.ListForms(cmd.Context(), IncludeArchived)
		if err != nil {
			return fmt.Errorf("list: %w", err)
		}

		sort.SliceStable(summaries, func(i, j int) bool {
			return strings.ToLower(summaries[i].Name) < strings.ToLower(summaries[j].Name)
		})

		fmt.Printf("forms:\n")
		for _, f := range summaries {
			archived := ""
			if f.Archived {
				archived = " (archived)"
			}
			fmt.Printf("  - %s: %s%s\n", f.ID, f.Name, archived)
		}

		return nil
	},
}

func init() {
	listCmd.AddCommand(listFormsCmd)

	listFormsCmd.Flags().BoolVar(&IncludeArchived, "include-archived", false, "list archived forms too")
}
