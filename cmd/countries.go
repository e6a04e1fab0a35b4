package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/unirank-cli/internal/view"
)

var countriesFormat string

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "Count top universities per country",
	Long:  "Count universities per location, keep countries with at least --min-count of them, and list them largest first.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := viewParams(cmd)
		if err != nil {
			return err
		}
		sess, err := openSession()
		if err != nil {
			return err
		}
		spec := sess.Render(view.ByCountry, p)
		if err := specError(spec); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if ok, err := writeStructured(out, countriesFormat, spec.Categories); ok {
			return err
		}
		if countriesFormat != "table" {
			return fmt.Errorf("unsupported --format: %s (use table|json|yaml)", countriesFormat)
		}
		if len(spec.Categories) == 0 {
			fmt.Fprintf(out, "(no country has at least %d universities)\n", p.MinCount)
			return nil
		}
		countryTable(out, spec.Categories)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countriesCmd)
	addCountryFlags(countriesCmd)
	addFormatFlag(countriesCmd, &countriesFormat, "table", "json", "yaml")
}
