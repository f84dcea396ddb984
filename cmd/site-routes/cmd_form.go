/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/toothbrush/site-routes/forms"
	"github.com/toothbrush/site-routes/hubspot"
)

var formUsage = strings.TrimSpace(`
Work out how a HubSpot form splits into steps and print the result as JSON.  The form is fetched
from both the v2 and v3 APIs and the richer one is used.  With --from-file a saved v2 or v3 API
response is read instead.
`)

var formCmd = &cobra.Command{
	Use:   "form [form-id]",
	Short: "Infer the steps of a HubSpot form",
	Long:  formUsage,
	Args: func(cmd *cobra.Command, args []string) error {
		if FormFromFile != "" {
			return cobra.ExactArgs(0)(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		form, err := loadForm(cmd, args)
		if err != nil {
			return err
		}

		engine := forms.Engine{Logger: Logger.Named("forms")}
		result := engine.Infer(form)

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("form: couldn't render result: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

var (
	FormFromFile string
	FormWithVCR  bool
)

func init() {
	rootCmd.AddCommand(formCmd)

	formCmd.Flags().StringVar(&FormFromFile, "from-file", "", "read a saved HubSpot form response instead of calling the API")
	formCmd.Flags().BoolVar(&FormWithVCR, "with-vcr", false, "use go-vcr to cache responses")
}

func loadForm(cmd *cobra.Command, args []string) (forms.Form, error) {
	if FormFromFile != "" {
		path, err := homedir.Expand(FormFromFile)
		if err != nil {
			return forms.Form{}, fmt.Errorf("form: couldn't expand homedir: %w", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return forms.Form{}, fmt.Errorf("form: couldn't read file %s: %w", path, err)
		}
		form, err := hubspot.DecodeForm(data)
		if err != nil {
			return forms.Form{}, fmt.Errorf("form: %s: %w", path, err)
		}
		return form, nil
	}

	api, stop, err := newHubSpotAPI(FormWithVCR)
	if err != nil {
		return forms.Form{}, fmt.Errorf("form: %w", err)
	}
	defer stop()

	form, err := api.FetchRichestForm(cmd.Context(), args[0])
	if err != nil {
		return forms.Form{}, fmt.Errorf("form: %w", err)
	}
	return form, nil
}
