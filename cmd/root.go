package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	dirmeta "github.com/TFMV/dirmeta/internal/walk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dirmeta [options] <path>",
	Short: "Collect metadata for a whole directory tree",
	Long: `dirmeta walks a directory tree and collects the name, size, timestamps,
permissions and detected format of every file, together with the list of
subdirectories and every error met on the way.

Examples:
  dirmeta /var/log
  dirmeta --format=json --detect-format=false /srv/data
  dirmeta --async --errors $HOME`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWalk(cmd.OutOrStdout(), args[0])
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is $HOME/.dirmeta.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("silent", false, "Disable all output except errors")

	// Flags
	rootCmd.Flags().Bool("async", false, "Use the cancellable walk (Ctrl+C stops it)")
	rootCmd.Flags().Bool("track-size", true, "Record file sizes")
	rootCmd.Flags().Bool("track-times", true, "Record created, accessed and modified times")
	rootCmd.Flags().Bool("detect-format", true, "Detect file formats from their content")
	rootCmd.Flags().IntP("workers", "w", 0, "Format detection workers for --async (0 = number of CPUs)")
	rootCmd.Flags().String("format", "text", "Output format (text|json)")
	rootCmd.Flags().Bool("errors", false, "List every traversal error")

	// Bind flags to viper
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("silent", rootCmd.PersistentFlags().Lookup("silent"))
	viper.BindPFlag("async", rootCmd.Flags().Lookup("async"))
	viper.BindPFlag("track-size", rootCmd.Flags().Lookup("track-size"))
	viper.BindPFlag("track-times", rootCmd.Flags().Lookup("track-times"))
	viper.BindPFlag("detect-format", rootCmd.Flags().Lookup("detect-format"))
	viper.BindPFlag("workers", rootCmd.Flags().Lookup("workers"))
	viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
	viper.BindPFlag("errors", rootCmd.Flags().Lookup("errors"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".dirmeta" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".dirmeta")
	}

	// DIRMETA_TRACK_SIZE, DIRMETA_FIND_LARGER_THAN, ...
	viper.SetEnvPrefix("dirmeta")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && !viper.GetBool("silent") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// walkOptions builds the walk options shared by every command.
func walkOptions() dirmeta.Options {
	opts := dirmeta.Options{
		TrackSize:     viper.GetBool("track-size"),
		TrackTimes:    viper.GetBool("track-times"),
		DetectFormat:  viper.GetBool("detect-format"),
		FormatWorkers: viper.GetInt("workers"),
		LogLevel:      logLevel(),
	}
	return opts
}

func logLevel() dirmeta.LogLevel {
	switch {
	case viper.GetBool("verbose"):
		return dirmeta.LogLevelDebug
	case viper.GetBool("silent"):
		return dirmeta.LogLevelError
	default:
		return dirmeta.LogLevelInfo
	}
}

// collect runs the blocking or the cancellable walk depending on --async.
func collect(root string, opts dirmeta.Options) (*dirmeta.DirectoryMetadata, error) {
	if !viper.GetBool("async") {
		return dirmeta.Walk(root, opts)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return dirmeta.WalkContext(ctx, root, opts)
}

func runWalk(out io.Writer, root string) error {
	format := viper.GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s", format)
	}

	meta, err := collect(root, walkOptions())
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}

	if !viper.GetBool("silent") {
		for _, f := range meta.Files {
			relPath, _ := filepath.Rel(root, f.Path)
			line := relPath
			if meta.Options.TrackSize {
				line += " (" + f.HumanSize() + ")"
			}
			if meta.Options.DetectFormat && !f.Format.IsUnknown() {
				line += " " + f.Format.String()
			}
			if elapsed, ok := f.ModifiedElapsed(); ok {
				line += ", modified " + elapsed
			}
			fmt.Fprintln(out, line)
		}
		fmt.Fprintln(out)
	}
	printSummary(out, meta, viper.GetBool("errors"))
	return nil
}

func printSummary(out io.Writer, meta *dirmeta.DirectoryMetadata, listErrors bool) {
	fmt.Fprintf(out, "%s: %d files, %d directories", meta.Path, meta.FileCount(), meta.DirCount())
	if meta.Options.TrackSize {
		fmt.Fprintf(out, ", %s", meta.HumanSize())
	}
	fmt.Fprintf(out, ", %d errors\n", len(meta.Errors))

	if listErrors {
		for _, e := range meta.Errors {
			fmt.Fprintf(out, "  [%s] %s\n", e.Kind, e.Error())
		}
	}
}
