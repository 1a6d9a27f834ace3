package router

import (
	"github.com/vrognas/redmyne-sub005/internal/plan"
)

// Presentation tuning constants. The five routing cases and their
// selection order are load-bearing; these distances are not.
const (
	// nearThreshold is the horizontal distance under which two endpoints
	// on different rows count as aligned, triggering the S-curve instead
	// of a degenerate straight vertical drop.
	nearThreshold = 10.0

	// jog is the horizontal clearance added before a vertical segment.
	jog = 16.0

	// aboveOffset lifts a same-row backward path clear of the row band.
	aboveOffset = 22.0

	// arrowLen is the margin every path leaves before the target so the
	// arrowhead renders cleanly.
	arrowLen = 10.0
)

// Point is a pixel coordinate on the timeline surface.
type Point struct {
	X, Y float64
}

// Bar is the laid-out geometry of one task's bar.
type Bar struct {
	Row     int     // row index, used to detect same-row routing
	X0, X1  float64 // left and right pixel edges
	CenterY float64 // vertical midpoint of the row
}

func (b Bar) centerX() float64 {
	return (b.X0 + b.X1) / 2
}

// Path is a routed arrow: a polyline ending one arrow-length short of
// the head, plus the head point the arrowhead attaches to.
type Path struct {
	Points []Point
	Head   Point
}

// Arrow pairs a relation with its routed path.
type Arrow struct {
	Relation plan.Relation
	Path     Path
}

// Route computes the arrow path from source to target for one relation.
//
// Temporal types run end-edge to start-edge; non-temporal types run
// center to center. The five cases are tried in priority order.
func Route(source, target Bar, rt plan.RelationType) Path {
	var sx, hx float64
	if rt.Temporal() {
		sx, hx = source.X1, target.X0
	} else {
		sx, hx = source.centerX(), target.centerX()
	}
	sy, ty := source.CenterY, target.CenterY
	start := Point{sx, sy}
	head := Point{hx, ty}
	sameRow := source.Row == target.Row

	switch {
	case sameRow && hx > sx:
		// Straight horizontal shot.
		return Path{
			Points: []Point{start, {hx - arrowLen, ty}},
			Head:   head,
		}

	case !sameRow && abs(hx-sx) <= nearThreshold:
		// Near-aligned rows: a straight vertical line would read as
		// crossing unrelated bars, so jog right, cross at the row
		// midpoint, and come back to drop (or rise) into the target.
		midY := (sy + ty) / 2
		approach := ty - arrowLen
		if ty < sy {
			approach = ty + arrowLen
		}
		return Path{
			Points: []Point{
				start,
				{sx + jog, sy},
				{sx + jog, midY},
				{hx, midY},
				{hx, approach},
			},
			Head: head,
		}

	case !sameRow && hx > sx:
		// Forward elbow via the horizontal midpoint.
		mx := (sx + hx) / 2
		return Path{
			Points: []Point{
				start,
				{mx, sy},
				{mx, ty},
				{hx - arrowLen, ty},
			},
			Head: head,
		}

	case sameRow:
		// Backward on the same row: going straight would double back
		// through the bar itself, so route above the row.
		topY := sy - aboveOffset
		return Path{
			Points: []Point{
				start,
				{sx + jog, sy},
				{sx + jog, topY},
				{hx - jog, topY},
				{hx - jog, ty},
				{hx - arrowLen, ty},
			},
			Head: head,
		}

	default:
		// Backward across rows: use the inter-row gap at the vertical
		// midpoint between the two rows.
		midY := (sy + ty) / 2
		return Path{
			Points: []Point{
				start,
				{sx + jog, sy},
				{sx + jog, midY},
				{hx - jog, midY},
				{hx - jog, ty},
				{hx - arrowLen, ty},
			},
			Head: head,
		}
	}
}

// Routes computes arrows for all relations whose endpoints are laid out.
// Self-relations and relations referencing a task with no bar (filtered
// out of the current layout) are silently skipped.
func Routes(rels []plan.Relation, bars map[int]Bar) []Arrow {
	arrows := make([]Arrow, 0, len(rels))
	for _, r := range rels {
		if r.Source == r.Target {
			continue
		}
		src, ok := bars[r.Source]
		if !ok {
			continue
		}
		tgt, ok := bars[r.Target]
		if !ok {
			continue
		}
		arrows = append(arrows, Arrow{
			Relation: r,
			Path:     Route(src, tgt, r.Type),
		})
	}
	return arrows
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
