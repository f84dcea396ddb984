/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/toothbrush/site-routes/routing"
	"github.com/toothbrush/site-routes/sitebuild"
)

var listRoutesUsage = strings.TrimSpace(`
Print the routes from the last generated routing-cache.json, in routing table order.
`)

var listRoutesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the generated routes",
	Long:  listRoutesUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := homedir.Expand(OutputDir)
		if err != nil {
			return fmt.Errorf("list: couldn't expand homedir: %w", err)
		}

		table, err := sitebuild.ReadRoutingTable(dir)
		if err != nil {
			return fmt.Errorf("list: %w", err)
		}

		fmt.Print(renderRoutes(table))
		return nil
	},
}

func init() {
	listCmd.AddCommand(listRoutesCmd)

	listRoutesCmd.Flags().StringVar(&OutputDir, "output", "public", "directory the artifacts were written to")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	nestedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

func renderRoutes(table *routing.RoutingTable) string {
	headers := []string{"PATH", "TYPE", "TITLE", "PRIORITY"}
	rows := [][]string{}
	for _, r := range table.Routes() {
		rows = append(rows, []string{
			r.Path,
			string(r.ContentType),
			r.Title,
			fmt.Sprintf("%.1f", r.Priority),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("build %s, generated %s", table.BuildID, table.GeneratedAt.Format("2006-01-02 15:04:05 MST"))))
	sb.WriteString("\n\n")

	for i, h := range headers {
		sb.WriteString(cellStyle.Copy().Width(widths[i] + 2).Inherit(headerStyle).Render(h))
	}
	sb.WriteString("\n")

	routes := table.Routes()
	for n, row := range rows {
		for i, cell := range row {
			style := cellStyle.Copy().Width(widths[i] + 2)
			if i == 0 && routes[n].IsNested {
				style = style.Inherit(nestedStyle)
			}
			sb.WriteString(style.Render(cell))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("%d routes", len(rows))))
	sb.WriteString("\n")
	return sb.String()
}
