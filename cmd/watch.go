package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TFMV/dirmeta/walk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Watch command options
	watchEvents  []string
	watchBackend string
	watchFormat  string
	watchTimeout time.Duration
	watchBuffer  int
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Watch a path for filesystem changes",
	Long: `Watch a file or directory and print one line per filesystem event until
interrupted.

Examples:
  dirmeta watch /path/to/watch
  dirmeta watch --events=create,delete /path/to/watch
  dirmeta watch --events=all --format=json /path/to/watch
  dirmeta watch --backend=fsnotify --timeout=1h /path/to/watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get the directory to watch
		var watchDir string
		if len(args) > 0 {
			watchDir = args[0]
		} else {
			var err error
			watchDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
		}
		return runWatch(cmd.OutOrStdout(), cmd.ErrOrStderr(), watchDir)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	// Define flags for the watch command
	watchCmd.Flags().StringSliceVar(&watchEvents, "events", []string{"create", "modify", "delete", "move"},
		"Events to watch for (access, modify, attrib, close-write, close-nowrite, open, moved-from, moved-to, create, delete, delete-self, move-self, close, move, all, onlydir, dont-follow)")
	watchCmd.Flags().StringVar(&watchBackend, "backend", "default", "Notification backend (default|inotify|fsnotify)")
	watchCmd.Flags().StringVar(&watchFormat, "format", "text", "Output format (text|json)")
	watchCmd.Flags().DurationVar(&watchTimeout, "timeout", 0, "Duration to watch before exiting (e.g., 1h, 30m)")
	watchCmd.Flags().IntVar(&watchBuffer, "buffer", 64, "Events buffered between the watcher and the printer")

	viper.BindPFlag("watch.events", watchCmd.Flags().Lookup("events"))
	viper.BindPFlag("watch.backend", watchCmd.Flags().Lookup("backend"))
	viper.BindPFlag("watch.format", watchCmd.Flags().Lookup("format"))
	viper.BindPFlag("watch.timeout", watchCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("watch.buffer", watchCmd.Flags().Lookup("buffer"))
}

// watchLimits returns the watch.timeout and watch.buffer settings.
func watchLimits() (time.Duration, int) {
	return viper.GetDuration("watch.timeout"), viper.GetInt("watch.buffer")
}

func runWatch(out, errOut io.Writer, path string) error {
	mask, err := walk.ParseEventMask(viper.GetStringSlice("watch.events"))
	if err != nil {
		return err
	}
	backend, err := walk.ParseBackend(viper.GetString("watch.backend"))
	if err != nil {
		return err
	}
	format := viper.GetString("watch.format")
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s", format)
	}

	timeout, buffer := watchLimits()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ch := walk.NewChannel(buffer)
	defer ch.Close()

	watcher := walk.NewWatcher(ch).Path(path).WithOptions(walk.WatchOptions{
		Backend:  backend,
		LogLevel: logLevel(),
	})
	errc := watcher.Spawn(mask)

	if !viper.GetBool("silent") {
		fmt.Fprintf(errOut, "Watching %s for %s...\n", path, mask)
		fmt.Fprintln(errOut, "Press Ctrl+C to exit.")
	}

	enc := json.NewEncoder(out)
	for {
		select {
		case o := <-ch.Outcomes():
			if format == "json" {
				if err := enc.Encode(o); err != nil {
					return err
				}
				continue
			}
			printOutcome(out, o)
		case err := <-errc:
			if errors.Is(err, walk.ErrChannelClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			// The watcher notices the close on its next event; the process exits first.
			return nil
		}
	}
}

func printOutcome(out io.Writer, o walk.WatcherOutcome) {
	subject := "(self)"
	if o.HasName() {
		subject = o.Name
	}
	line := fmt.Sprintf("%s %-16s %s", time.Now().Format(time.RFC3339), o.Kind, subject)
	if o.IsDir {
		line += "/"
	}
	if o.Cookie != 0 {
		line += fmt.Sprintf(" cookie=%d", o.Cookie)
	}
	fmt.Fprintln(out, line)
}
