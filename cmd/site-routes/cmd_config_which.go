/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whichCmd = &cobra.Command{
	Use:   "which",
	Short: "Tell me the resolved config path",
	Long: `
Output the filename that's being used to store your config.  An empty config is used when the file
doesn't exist.
`,
	Args: cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Config path: %s\n", Config)
		if !ConfigFound {
			fmt.Printf("  (not found, using flags and defaults only)\n")
		}
	},
}

func init() {
	configCmd.AddCommand(whichCmd)
}
