package cli

import (
	"github.com/spf13/cobra"

	"github.com/vrognas/redmyne-sub005/internal/plan"
)

// NewFlexCommand creates the flex command: tasks ranked by urgency with
// their flexibility classification.
func NewFlexCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "flex",
		Short: "List tasks by flexibility, most urgent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, closeEngine, err := openEngine(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeEngine()

			ranked := eng.RankTasks()
			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if f.JSON() {
				type entry struct {
					ID    int                    `json:"id"`
					Title string                 `json:"title"`
					Score *plan.FlexibilityScore `json:"score,omitempty"`
				}
				out := make([]entry, 0, len(ranked))
				for _, t := range ranked {
					out = append(out, entry{ID: t.ID, Title: t.Title, Score: eng.Classify(t)})
				}
				return f.Emit(out)
			}
			RenderFlexTable(cmd.OutOrStdout(), ranked, eng.Classify)
			return nil
		},
	}
}
