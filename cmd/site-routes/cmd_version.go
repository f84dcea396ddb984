/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var versionUsage = strings.TrimSpace(`
Show version information
`)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: versionUsage,
	Long:  versionUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return fmt.Errorf("version: could not read build info")
		}
		v := versionFromBuildInfo(info)
		fmt.Printf("site-routes version %s\n", v.String())
		if Debug {
			fmt.Printf("  built with %s", info.GoVersion)
			if !v.LastCommit.IsZero() {
				fmt.Printf(", last commit %s", v.LastCommit.Format(time.RFC3339))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Version will be the version tag if the binary is built with "go install url/tool@version".  It
// can also be set at build time with -ldflags "-X main.Version=...".
var Version = "unknown"

type buildVersion struct {
	Tag        string
	Revision   string
	LastCommit time.Time
	Dirty      bool
}

func versionFromBuildInfo(info *debug.BuildInfo) buildVersion {
	v := buildVersion{Tag: Version, Revision: "unknown", Dirty: true}
	if v.Tag == "unknown" {
		v.Tag = info.Main.Version
	}
	for _, kv := range info.Settings {
		switch kv.Key {
		case "vcs.revision":
			v.Revision = kv.Value
		case "vcs.time":
			v.LastCommit, _ = time.Parse(time.RFC3339, kv.Value)
		case "vcs.modified":
			v.Dirty = kv.Value == "true"
		}
	}
	return v
}

func (v buildVersion) String() string {
	parts := make([]string, 0, 4)
	if v.Tag != "" && v.Tag != "unknown" && v.Tag != "(devel)" {
		parts = append(parts, v.Tag)
	}
	if v.Revision != "unknown" && v.Revision != "" {
		parts = append(parts, "rev", v.Revision)
		if v.Dirty {
			parts = append(parts, "dirty")
		}
	}
	if len(parts) == 0 {
		return "devel"
	}
	return strings.Join(parts, "-")
}
