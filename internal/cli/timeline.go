package cli

import (
	"github.com/spf13/cobra"
)

// NewTimelineCommand creates the timeline command: render the plan as a
// text Gantt chart.
func NewTimelineCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Render the workload timeline",
		Long: `Renders the plan as a text timeline: project headers, nested task
rows, bars with flexibility classification, and dependency arrows.

Example:
  redmyne timeline --db ./redmyne.db --zoom month --today 2026-03-10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, closeEngine, err := openEngine(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeEngine()

			scene := eng.Render()
			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if f.JSON() {
				return f.Emit(scene)
			}
			RenderTimeline(cmd.OutOrStdout(), scene, eng.Tasks())
			return nil
		},
	}
}
