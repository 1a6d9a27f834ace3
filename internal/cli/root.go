package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vrognas/redmyne-sub005/internal/layout"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Database string
	Schedule string // YAML weekly schedule, empty means the default 8h Mon-Fri
	Zoom     string
	Today    string // YYYY-MM-DD override for reproducible renders
	Verbose  bool
	Format   string // "text" | "json"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

var validZooms = []string{"day", "week", "month", "quarter", "year"}

// NewRootCommand creates the root command for the redmyne CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "redmyne",
		Short: "Workload timeline for issue plans",
		Long: `Renders issue plans as a workload timeline: schedule-aware bars,
flexibility classification, dependency arrows, and a per-day
utilization heatmap.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !contains(ValidFormats, opts.Format) {
				return WrapExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats), nil)
			}
			if !contains(validZooms, opts.Zoom) {
				return WrapExitError(ExitCommandError,
					fmt.Sprintf("invalid zoom %q: must be one of %v", opts.Zoom, validZooms), nil)
			}
			if opts.Today != "" {
				if _, err := time.ParseInLocation("2006-01-02", opts.Today, time.UTC); err != nil {
					return WrapExitError(ExitCommandError,
						fmt.Sprintf("invalid --today %q: want YYYY-MM-DD", opts.Today), err)
				}
			}
			configureLogging(opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "redmyne.db", "path to SQLite issue database")
	cmd.PersistentFlags().StringVar(&opts.Schedule, "schedule", "", "path to YAML weekly schedule (default 8h Mon-Fri)")
	cmd.PersistentFlags().StringVar(&opts.Zoom, "zoom", "week", "zoom level (day|week|month|quarter|year)")
	cmd.PersistentFlags().StringVar(&opts.Today, "today", "", "override today's date (YYYY-MM-DD)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewDemoCommand(opts))
	cmd.AddCommand(NewTimelineCommand(opts))
	cmd.AddCommand(NewWorkloadCommand(opts))
	cmd.AddCommand(NewFlexCommand(opts))

	return cmd
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func configureLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// today resolves the effective current date: the --today override when
// given, otherwise the wall clock, normalized to UTC midnight.
func (o *RootOptions) today() time.Time {
	if o.Today != "" {
		d, _ := time.ParseInLocation("2006-01-02", o.Today, time.UTC)
		return d
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (o *RootOptions) zoom() layout.Zoom {
	return layout.ParseZoom(o.Zoom)
}
