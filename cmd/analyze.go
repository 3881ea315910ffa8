package cmd

import (
	"fmt"
	"os"

	dirmeta "github.com/TFMV/dirmeta/internal/walk"
	"github.com/spf13/cobra"
)

var (
	// Analyze command options
	analyzeOutputFile string
	analyzeTop        int
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Summarize storage usage of a directory tree",
	Long: `Walk a directory tree and report totals, per-format statistics, error
categories and the largest, newest and oldest files.

Examples:
  dirmeta analyze /path/to/directory
  dirmeta analyze --top=20 /path/to/directory
  dirmeta analyze --output-file=report.json /path/to/directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get the directory to analyze
		var analyzeDir string
		if len(args) > 0 {
			analyzeDir = args[0]
		} else {
			var err error
			analyzeDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
		}

		meta, err := collect(analyzeDir, walkOptions())
		if err != nil {
			return err
		}
		report := dirmeta.Summarize(meta, analyzeTop)

		// Output the results
		if analyzeOutputFile != "" {
			if err := report.SaveToFile(analyzeOutputFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Analysis results saved to %s\n", analyzeOutputFile)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Define flags for the analyze command
	analyzeCmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "File to write output to (.json for JSON)")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 10, "Number of files listed in each ranking")
}
