/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/toothbrush/site-routes/contentful"
	"github.com/toothbrush/site-routes/sitebuild"
)

var generateUsage = strings.TrimSpace(`
Crawl the Contentful space and write routing-cache.json, sitemap.xml and redirects.json to the
output directory.  With --offline the last crawl saved in --store is used instead of the CMS.
`)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the routing cache, sitemap and redirects",
	Long:  generateUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

var (
	OutputDir string
	BaseURL   string
	Workers   int
	Offline   bool
	DryRun    bool
	WithVCR   bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&OutputDir, "output", "public", "directory to write the artifacts to")
	generateCmd.Flags().StringVar(&BaseURL, "base-url", "", "public origin for sitemap URLs, e.g. https://www.example.com")
	generateCmd.Flags().IntVar(&Workers, "workers", 4, "number of concurrent CMS requests")
	generateCmd.Flags().BoolVar(&Offline, "offline", false, "build from the stored content snapshot instead of the CMS")
	generateCmd.Flags().BoolVar(&DryRun, "dry-run", false, "build everything but don't write any files")
	generateCmd.Flags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to cache responses")
}

func runGenerate(cmd *cobra.Command) error {
	if BaseURL == "" {
		return fmt.Errorf("generate: no base URL set.  Use --base-url or set it in your config file")
	}

	storePath, err := homedir.Expand(LocalStore)
	if err != nil {
		return fmt.Errorf("generate: couldn't expand homedir: %w", err)
	}
	outputDir, err := homedir.Expand(OutputDir)
	if err != nil {
		return fmt.Errorf("generate: couldn't expand homedir: %w", err)
	}

	builder := &sitebuild.Builder{
		StorePath:   storePath,
		OutputDir:   outputDir,
		BaseURL:     BaseURL,
		Offline:     Offline,
		DryRun:      DryRun,
		Space:       ContentfulSpace,
		Environment: ContentfulEnvironment,
		Logger:      Logger,
	}

	if !Offline {
		if err := os.MkdirAll(storePath, 0750); err != nil {
			return fmt.Errorf("generate: couldn't create directory %s: %w", storePath, err)
		}

		token, err := readToken(ContentfulTokenCmd, "CONTENTFUL_ACCESS_TOKEN")
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		api, err := contentful.NewAPI(ContentfulSpace, ContentfulEnvironment, token)
		if err != nil {
			return fmt.Errorf("generate: Contentful API creation failed: %w", err)
		}

		if WithVCR {
			r, err := newRecorder("contentful")
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			defer r.Stop() // Make sure recorder is stopped once done with it

			api.Client = r.GetDefaultClient()
		}

		builder.Crawler = &sitebuild.Crawler{
			Source:   api,
			Workers:  Workers,
			Progress: os.Stderr,
		}
	}

	report, err := builder.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	for _, d := range report.Dropped {
		fmt.Printf("  dropped %s (%s): %v\n", d.Route.Path, d.Route.ContentID, d.Reason)
	}

	verb := "Wrote"
	if !report.Written {
		verb = "Would write"
	}
	fmt.Printf("%s %d routes and %d redirects to %s (build %s).\n",
		verb, report.Routes, report.Redirects, outputDir, report.BuildID)
	return nil
}
