/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/fatih/structs"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

const defaultConfig = "~/.config/site-routes.yaml"

var (
	// Store the result of binding cobra flags
	Config string
	Debug  bool

	// ConfigFound is false when the default config file doesn't exist.
	ConfigFound bool

	ContentfulSpace       string
	ContentfulEnvironment string
	LocalStore            string

	// Commands to run to retrieve API access tokens
	ContentfulTokenCmd []string
	HubSpotTokenCmd    []string

	ParsedConfig YamlConfig

	Logger = zap.NewNop()
)

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "site-routes",
	Short: "Build the site routing table, sitemap and form steps from the CMS",
	Long: `
Crawls every routable entry in the Contentful space, resolves page-list containment into nested
URLs, and writes the routing cache, sitemap and redirects that the site is deployed with.  It can
also work out how a HubSpot form splits into steps.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("site-routes: failed to initialise config: %w", err)
		}

		logger, err := newLogger(Debug)
		if err != nil {
			return fmt.Errorf("site-routes: failed to set up logging: %w", err)
		}
		Logger = logger
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = Logger.Sync()
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "config file location (default: "+defaultConfig+", respects SITE_ROUTES_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")
	rootCmd.PersistentFlags().StringVar(&ContentfulSpace, "contentful-space", "", "Contentful space ID")
	rootCmd.PersistentFlags().StringVar(&ContentfulEnvironment, "contentful-environment", "master", "Contentful environment")
	rootCmd.PersistentFlags().StringSliceVar(&ContentfulTokenCmd, "contentful-token-cmd", []string{}, "shell command to retrieve the Contentful access token")
	rootCmd.PersistentFlags().StringSliceVar(&HubSpotTokenCmd, "hubspot-token-cmd", []string{}, "shell command to retrieve the HubSpot private app token")
	rootCmd.PersistentFlags().StringVar(&LocalStore, "store", "~/.local/share/site-routes", "location to keep the content snapshot")
}

func initializeConfig(cmd *cobra.Command) error {
	explicit := true
	if Config == "" {
		// Did the user provide an ENV?
		envConfig := os.Getenv("SITE_ROUTES_CONFIG")
		if envConfig != "" {
			Config = envConfig
		} else {
			// As fallback, search for config in home XDG-ish directory
			Config = defaultConfig
			explicit = false
		}
	}
	config, err := homedir.Expand(Config)
	if err != nil {
		return fmt.Errorf("site-routes: unable to expand homedir: %w", err)
	}
	Config = config

	if _, err := os.Stat(Config); errors.Is(err, os.ErrNotExist) {
		if explicit {
			fmt.Fprintf(os.Stderr, "Couldn't read config file %s, does it exist?  Override with --config.\n", Config)
			return fmt.Errorf("site-routes: specified config file does not exist: %w", err)
		}
		// Everything can be given as flags, so no config file is fine.
		ConfigFound = false
		return nil
	}
	ConfigFound = true

	yamlFile, err := os.ReadFile(Config)
	if err != nil {
		return fmt.Errorf("site-routes: error reading config file: %w", err)
	}

	// I'd like to bark if a user sets a flag we don't recognise:
	if err := yaml.UnmarshalStrict(yamlFile, &ParsedConfig); err != nil {
		return fmt.Errorf("site-routes: issue parsing config file: %w", err)
	}

	if err := bindFlags(cmd, ParsedConfig); err != nil {
		return fmt.Errorf("site-routes: failed to bind flags: %w", err)
	}

	return nil
}

type YamlConfig struct {
	WithVCR *bool `yaml:"with-vcr"`
	Offline *bool `yaml:"offline"`
	DryRun  *bool `yaml:"dry-run"`

	Workers int `yaml:"workers"`

	StorePath             string   `yaml:"store"`
	OutputDir             string   `yaml:"output"`
	BaseURL               string   `yaml:"base-url"`
	ContentfulSpace       string   `yaml:"contentful-space"`
	ContentfulEnvironment string   `yaml:"contentful-environment"`
	ContentfulTokenCmd    []string `yaml:"contentful-token-cmd"`
	HubSpotTokenCmd       []string `yaml:"hubspot-token-cmd"`
}

// Bind each cobra flag to its value from the config file, unless it was given on the command line.
func bindFlags(cmd *cobra.Command, v YamlConfig) error {
	for _, field := range structs.Fields(v) {
		key := field.Tag("yaml")
		if key == "" {
			return fmt.Errorf("site-routes: could not retrieve struct tag 'yaml'")
		}
		if flag := cmd.Flag(key); flag == nil {
			// The flag is unknown to this command, e.g. `list forms` has no --workers, but the
			// YAML file may still set it.
			continue
		}
		if cmd.Flags().Changed(key) {
			continue
		}

		switch field.Kind() {
		case reflect.Ptr:
			// YamlConfig only uses pointers for bools, so that false can be told apart from unset.
			b, ok := field.Value().(*bool)
			if !ok {
				return fmt.Errorf("site-routes: found unrecognised field: %+v", field)
			}
			if b != nil {
				if err := cmd.Flags().Set(key, strconv.FormatBool(*b)); err != nil {
					return fmt.Errorf("site-routes: couldn't set %s: %w", key, err)
				}
			}

		case reflect.Int:
			n, ok := field.Value().(int)
			if !ok {
				return fmt.Errorf("site-routes: found unrecognised field: %+v", field)
			}
			if n != 0 {
				if err := cmd.Flags().Set(key, strconv.Itoa(n)); err != nil {
					return fmt.Errorf("site-routes: couldn't set %s: %w", key, err)
				}
			}

		case reflect.String:
			s, ok := field.Value().(string)
			if !ok {
				return fmt.Errorf("site-routes: found unrecognised field: %+v", field)
			}
			if s != "" {
				if err := cmd.Flags().Set(key, s); err != nil {
					return fmt.Errorf("site-routes: couldn't set %s: %w", key, err)
				}
			}

		case reflect.Slice:
			ss, ok := field.Value().([]string)
			if !ok {
				return fmt.Errorf("site-routes: found unrecognised field: %+v", field)
			}
			for _, s := range ss {
				// yes, repeatedly calling Set() appends to the slice...
				if err := cmd.Flags().Set(key, s); err != nil {
					return fmt.Errorf("site-routes: couldn't set %s: %w", key, err)
				}
			}

		default:
			return fmt.Errorf("site-routes: found unrecognised field: %+v", field)
		}
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("site-routes: execution error: %w", err)
	}

	return nil
}
