package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/unirank-cli/internal/view"
)

var topFormat string

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "List the top universities by overall score",
	Long:  "List the n highest (descending) or n lowest (ascending) universities by overall score, with rank, location and research score.",
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
		defaultTopN(cmd, &p, sess.Size())
		spec := sess.Render(view.ByScore, p)
		if err := specError(spec); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if ok, err := writeStructured(out, topFormat, spec.Points); ok {
			return err
		}
		if topFormat != "table" {
			return fmt.Errorf("unsupported --format: %s (use table|json|yaml)", topFormat)
		}
		recordTable(out, spec.Points)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topCmd)
	addScoreFlags(topCmd)
	addFormatFlag(topCmd, &topFormat, "table", "json", "yaml")
}
