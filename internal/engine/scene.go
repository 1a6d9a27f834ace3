package engine

import (
	"time"

	"github.com/vrognas/redmyne-sub005/internal/layout"
	"github.com/vrognas/redmyne-sub005/internal/plan"
	"github.com/vrognas/redmyne-sub005/internal/router"
	"github.com/vrognas/redmyne-sub005/internal/workload"
)

// maxDisplayIntensity clamps per-day bar shading. Aggregation always
// uses the raw unclamped intensity.
const maxDisplayIntensity = 1.5

// Bar is one task bar's renderable geometry and coloring.
type Bar struct {
	TaskID    int
	Row       int // index into Scene.Rows
	X0, X1    float64
	Y         float64 // row top edge
	Summary   bool
	DoneRatio int

	// Score is nil when the task lacks a due date or estimate; the host
	// renders a neutral no-data bar.
	Score *plan.FlexibilityScore

	// Intensity is the task's daily workload ratio clamped to
	// maxDisplayIntensity for shading.
	Intensity float64
}

// HeatCell is one day of the aggregate workload heatmap.
type HeatCell struct {
	Date        time.Time
	Utilization float64
	Band        workload.Band
}

// Scene is the renderer-agnostic description of one render pass. The
// host surface owns translating it into actual drawing primitives and
// forwarding pointer/keyboard events back to the gesture controller.
type Scene struct {
	Rows        []layout.Row
	Bars        []Bar
	Arrows      []router.Arrow
	Heatmap     []HeatCell
	ColumnWidth float64
	Zoom        layout.Zoom
	MinDate     time.Time
	MaxDate     time.Time
}
