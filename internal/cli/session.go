package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/vrognas/redmyne-sub005/internal/engine"
	"github.com/vrognas/redmyne-sub005/internal/store"
)

// openEngine opens the issue database and builds a refreshed engine on
// top of it. The returned close function must be called when done.
func openEngine(ctx context.Context, opts *RootOptions) (*engine.Engine, func(), error) {
	ws, err := LoadSchedule(opts.Schedule)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "load schedule", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "open database", err)
	}
	closeStore := func() {
		if err := st.Close(); err != nil {
			slog.Error("closing database", "error", err)
		}
	}

	today := opts.today()
	eng := engine.New(st, st, ws,
		engine.WithZoom(opts.zoom()),
		engine.WithToday(func() time.Time { return today }),
	)
	if err := eng.Refresh(ctx); err != nil {
		closeStore()
		return nil, nil, WrapExitError(ExitCommandError, "load issues", err)
	}
	slog.Debug("engine ready", "tasks", len(eng.Tasks()), "zoom", opts.Zoom)
	return eng, closeStore, nil
}
