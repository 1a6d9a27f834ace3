package cli

import (
	"github.com/spf13/cobra"
)

// NewWorkloadCommand creates the workload command: per-day utilization
// heatmap across the visible date range.
func NewWorkloadCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "workload",
		Short: "Print the per-day utilization heatmap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, closeEngine, err := openEngine(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeEngine()

			scene := eng.Render()
			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if f.JSON() {
				return f.Emit(map[string]any{
					"heatmap": scene.Heatmap,
					"bands":   bandCounts(scene.Heatmap),
				})
			}
			RenderHeatmap(cmd.OutOrStdout(), scene.Heatmap)
			return nil
		},
	}
}
