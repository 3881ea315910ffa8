package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	dirmeta "github.com/TFMV/dirmeta/internal/walk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var findCmd = &cobra.Command{
	Use:   "find [options] <path>",
	Short: "Find files with advanced filtering",
	Long: `Walk a directory tree and print the files matching every given filter.
Supports pattern matching, time-based filtering, size constraints and
content format filtering.

Examples:
  dirmeta find /path/to/search --name="*.go"
  dirmeta find /path/to/search --regex=".*\\.txt$" --larger-than=1MB
  dirmeta find /path/to/search --mime=image/ --newer-than=7d
  dirmeta find /path/to/search --exact-name=README.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFind(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(findCmd)

	// Pattern matching options
	findCmd.Flags().StringP("name", "n", "", "Match by file name (supports wildcards)")
	findCmd.Flags().StringP("path", "p", "", "Match by path (supports wildcards)")
	findCmd.Flags().String("ignore", "", "Skip paths matching this pattern")
	findCmd.Flags().StringP("regex", "r", "", "Match by regular expression")
	findCmd.Flags().String("exact-name", "", "Match files whose name is exactly this")
	findCmd.Flags().String("exact-path", "", "Match the file whose path is exactly this")

	// Time-based filtering
	findCmd.Flags().String("older-than", "", "Files older than this duration (e.g. 7d, 24h, 30m)")
	findCmd.Flags().String("newer-than", "", "Files newer than this duration (e.g. 7d, 24h, 30m)")

	// Size-based filtering
	findCmd.Flags().String("larger-than", "", "Files larger than this size (e.g. 1MB, 500KB)")
	findCmd.Flags().String("smaller-than", "", "Files smaller than this size (e.g. 1MB, 500KB)")

	// Format filtering
	findCmd.Flags().String("mime", "", "Files whose detected format is or starts with this MIME type")

	// Output options
	findCmd.Flags().Bool("include-hidden", false, "Include hidden files")
	findCmd.Flags().Bool("json", false, "Print matches as JSON lines")

	// Bind flags to viper
	viper.BindPFlag("find.name", findCmd.Flags().Lookup("name"))
	viper.BindPFlag("find.path", findCmd.Flags().Lookup("path"))
	viper.BindPFlag("find.ignore", findCmd.Flags().Lookup("ignore"))
	viper.BindPFlag("find.regex", findCmd.Flags().Lookup("regex"))
	viper.BindPFlag("find.exact-name", findCmd.Flags().Lookup("exact-name"))
	viper.BindPFlag("find.exact-path", findCmd.Flags().Lookup("exact-path"))
	viper.BindPFlag("find.older-than", findCmd.Flags().Lookup("older-than"))
	viper.BindPFlag("find.newer-than", findCmd.Flags().Lookup("newer-than"))
	viper.BindPFlag("find.larger-than", findCmd.Flags().Lookup("larger-than"))
	viper.BindPFlag("find.smaller-than", findCmd.Flags().Lookup("smaller-than"))
	viper.BindPFlag("find.mime", findCmd.Flags().Lookup("mime"))
	viper.BindPFlag("find.include-hidden", findCmd.Flags().Lookup("include-hidden"))
	viper.BindPFlag("find.json", findCmd.Flags().Lookup("json"))
}

// findOptions builds the filter from the find.* settings.
func findOptions() (dirmeta.FindOptions, error) {
	opts := dirmeta.FindOptions{
		NamePattern:   viper.GetString("find.name"),
		PathPattern:   viper.GetString("find.path"),
		IgnorePattern: viper.GetString("find.ignore"),
		MIME:          viper.GetString("find.mime"),
		IncludeHidden: viper.GetBool("find.include-hidden"),
	}

	// Parse regex pattern
	if regexStr := viper.GetString("find.regex"); regexStr != "" {
		var err error
		opts.RegexPattern, err = regexp.Compile(regexStr)
		if err != nil {
			return opts, fmt.Errorf("invalid regex pattern: %w", err)
		}
	}

	// Parse time durations
	if olderThanStr := viper.GetString("find.older-than"); olderThanStr != "" {
		duration, err := parseDuration(olderThanStr)
		if err != nil {
			return opts, fmt.Errorf("invalid older-than value: %w", err)
		}
		opts.OlderThan = duration
	}

	if newerThanStr := viper.GetString("find.newer-than"); newerThanStr != "" {
		duration, err := parseDuration(newerThanStr)
		if err != nil {
			return opts, fmt.Errorf("invalid newer-than value: %w", err)
		}
		opts.NewerThan = duration
	}

	// Parse size constraints
	if largerThanStr := viper.GetString("find.larger-than"); largerThanStr != "" {
		size, err := parseSize(largerThanStr)
		if err != nil {
			return opts, fmt.Errorf("invalid larger-than value: %w", err)
		}
		opts.LargerSize = size
	}

	if smallerThanStr := viper.GetString("find.smaller-than"); smallerThanStr != "" {
		size, err := parseSize(smallerThanStr)
		if err != nil {
			return opts, fmt.Errorf("invalid smaller-than value: %w", err)
		}
		opts.SmallerSize = size
	}

	return opts, nil
}

func runFind(out io.Writer, root string) error {
	opts, err := findOptions()
	if err != nil {
		return err
	}

	meta, err := collect(root, walkOptions())
	if err != nil {
		return err
	}

	matches := dirmeta.Find(meta, opts)
	if name := viper.GetString("find.exact-name"); name != "" {
		matches = intersect(matches, meta.FindByName(name))
	}
	if path := viper.GetString("find.exact-path"); path != "" {
		var exact []*dirmeta.FileMetadata
		if f := meta.FindByPath(path); f != nil {
			exact = append(exact, f)
		}
		matches = intersect(matches, exact)
	}

	if viper.GetBool("find.json") {
		enc := json.NewEncoder(out)
		for _, f := range matches {
			if err := enc.Encode(f); err != nil {
				return err
			}
		}
		return nil
	}
	for _, f := range matches {
		fmt.Fprintln(out, f.Path)
	}
	return nil
}

// intersect keeps the entries of a that also appear in b, in the order of a.
func intersect(a, b []*dirmeta.FileMetadata) []*dirmeta.FileMetadata {
	keep := make(map[*dirmeta.FileMetadata]bool, len(b))
	for _, f := range b {
		keep[f] = true
	}
	var out []*dirmeta.FileMetadata
	for _, f := range a {
		if keep[f] {
			out = append(out, f)
		}
	}
	return out
}

// parseDuration parses a duration string with support for days (d)
func parseDuration(s string) (time.Duration, error) {
	// Handle days specially
	if strings.HasSuffix(s, "d") {
		days, err := parseFloat(s[:len(s)-1])
		if err != nil {
			return 0, err
		}
		return time.Duration(days * 24 * float64(time.Hour)), nil
	}

	// Use standard duration parsing for other units
	return time.ParseDuration(s)
}

// parseSize parses a size string with support for KB, MB, GB, TB
func parseSize(s string) (uint64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))

	multiplier := uint64(1)

	if strings.HasSuffix(s, "KB") {
		multiplier = 1024
		s = s[:len(s)-2]
	} else if strings.HasSuffix(s, "MB") {
		multiplier = 1024 * 1024
		s = s[:len(s)-2]
	} else if strings.HasSuffix(s, "GB") {
		multiplier = 1024 * 1024 * 1024
		s = s[:len(s)-2]
	} else if strings.HasSuffix(s, "TB") {
		multiplier = 1024 * 1024 * 1024 * 1024
		s = s[:len(s)-2]
	} else if strings.HasSuffix(s, "B") {
		s = s[:len(s)-1]
	}

	size, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if size < 0 {
		return 0, fmt.Errorf("negative size: %s", s)
	}

	return uint64(size * float64(multiplier)), nil
}

// parseFloat parses a float from a string
func parseFloat(s string) (float64, error) {
	var value float64
	_, err := fmt.Sscanf(s, "%f", &value)
	return value, err
}
