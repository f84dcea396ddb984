/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Output current config",
	Long: `
Is something not working for you?  Have a look whether your config is as you expect.
`,
	Args: cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		// Note, you can only talk about persistent flags here.  Command-specific ones won't be
		// visible.
		fmt.Printf("Dump current config state:\n\n")

		fmt.Printf("  Config file: %s (found: %v)\n", Config, ConfigFound)
		fmt.Printf("  Debug: %v\n", Debug)
		fmt.Println()
		fmt.Printf("  Parsed YAML:\n%#v\n", ParsedConfig)
		fmt.Println()
		fmt.Printf("  ContentfulSpace: %s\n", ContentfulSpace)
		fmt.Printf("  ContentfulEnvironment: %s\n", ContentfulEnvironment)
		fmt.Printf("  ContentfulTokenCmd: %v\n", ContentfulTokenCmd)
		fmt.Printf("  HubSpotTokenCmd: %v\n", HubSpotTokenCmd)
		fmt.Printf("  LocalStore: %s\n", LocalStore)
	},
}

func init() {
	configCmd.AddCommand(showCmd)
}
