package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vrognas/redmyne-sub005/internal/plan"
	"github.com/vrognas/redmyne-sub005/internal/store"
)

// NewDemoCommand creates the demo command: seed a plan into the issue
// database. With no --plan flag it seeds the built-in sample plan.
func NewDemoCommand(opts *RootOptions) *cobra.Command {
	var planPath string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Seed a plan into the issue database",
		Long: `Seeds tasks and relations into the SQLite issue database, either
from a YAML plan file or, without --plan, a built-in sample plan.

Example:
  redmyne demo --db ./redmyne.db
  redmyne demo --db ./redmyne.db --plan ./plan.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := SamplePlan()
			if planPath != "" {
				loaded, err := LoadPlan(planPath)
				if err != nil {
					return WrapExitError(ExitCommandError, "load plan", err)
				}
				tasks = loaded
			}

			st, err := store.Open(opts.Database)
			if err != nil {
				return WrapExitError(ExitCommandError, "open database", err)
			}
			defer st.Close()

			if err := st.Seed(cmd.Context(), tasks); err != nil {
				return WrapExitError(ExitCommandError, "seed database", err)
			}
			slog.Debug("seeded database", "path", opts.Database, "tasks", len(tasks))

			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if f.JSON() {
				return f.Emit(map[string]any{"database": opts.Database, "tasks": len(tasks)})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d tasks into %s\n", len(tasks), opts.Database)
			return nil
		},
	}

	cmd.Flags().StringVar(&planPath, "plan", "", "path to YAML plan file (default: built-in sample)")
	return cmd
}

// SamplePlan returns the built-in demo plan: two projects, a summary
// task with subtasks, and a mix of relation types.
func SamplePlan() []plan.Task {
	parent := 1
	return []plan.Task{
		{
			ID: 1, Title: "Release 1.0", ProjectID: 10, ProjectName: "Core",
			Start: plan.DatePtr(2026, 3, 2), Due: plan.DatePtr(2026, 3, 27),
		},
		{
			ID: 2, Title: "Design review", ProjectID: 10, ProjectName: "Core",
			Start: plan.DatePtr(2026, 3, 2), Due: plan.DatePtr(2026, 3, 6),
			EstimatedHours: ptr(24.0), SpentHours: 12, DoneRatio: 50,
			ParentID: &parent,
			Relations: []plan.Relation{
				{Type: plan.RelationPrecedes, Source: 2, Target: 3},
			},
		},
		{
			ID: 3, Title: "Implementation", ProjectID: 10, ProjectName: "Core",
			Start: plan.DatePtr(2026, 3, 9), Due: plan.DatePtr(2026, 3, 20),
			EstimatedHours: ptr(80.0), SpentHours: 8, DoneRatio: 10,
			ParentID: &parent,
			Relations: []plan.Relation{
				{Type: plan.RelationBlocks, Source: 3, Target: 4},
			},
		},
		{
			ID: 4, Title: "Ship it", ProjectID: 10, ProjectName: "Core",
			Start: plan.DatePtr(2026, 3, 23), Due: plan.DatePtr(2026, 3, 27),
			EstimatedHours: ptr(16.0), ParentID: &parent,
		},
		{
			ID: 5, Title: "Update website", ProjectID: 20, ProjectName: "Marketing",
			Start: plan.DatePtr(2026, 3, 16), Due: plan.DatePtr(2026, 3, 18),
			EstimatedHours: ptr(12.0),
		},
	}
}

func ptr[T any](v T) *T { return &v }
