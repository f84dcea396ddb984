/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var configUsage = strings.TrimSpace(`
Inspect the site-routes config: the Contentful space, the HubSpot portal, the base URL and the
token commands.  Show the values in effect, or find out which file they were read from.
`)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the site-routes configuration",
	Long:  configUsage,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
