package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/unirank-cli/internal/analysis"
)

var (
	summaryFormat string
	summaryTop    int
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Describe the loaded dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		opt := analysis.DefaultOptions()
		if summaryTop > 0 {
			opt.TopLocations = summaryTop
		}
		rep := analysis.Summarize(sess.Dataset, opt)
		out := cmd.OutOrStdout()
		if ok, err := writeStructured(out, summaryFormat, rep); ok {
			return err
		}
		if summaryFormat != "markdown" && summaryFormat != "md" {
			return fmt.Errorf("unsupported --format: %s (use markdown|json|yaml)", summaryFormat)
		}
		fmt.Fprint(out, rep.Markdown())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	addFormatFlag(summaryCmd, &summaryFormat, "markdown", "json", "yaml")
	summaryCmd.Flags().IntVar(&summaryTop, "top-locations", 0, "number of locations to list (default 8)")
}
