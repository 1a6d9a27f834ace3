package layout

import (
	"sort"

	"github.com/vrognas/redmyne-sub005/internal/plan"
)

// RowHeight is the vertical pixel size of every timeline row.
const RowHeight = 24.0

// RowKind distinguishes project header rows from task rows.
type RowKind int

const (
	RowProject RowKind = iota
	RowTask
)

// Row is one laid-out timeline row.
type Row struct {
	Kind  RowKind
	Depth int     // nesting depth; project headers are always 0
	Y     float64 // pixel offset of the row's top edge

	// Task rows only.
	Task      *plan.Task
	IsSummary bool

	// Set on every row for labeling.
	ProjectID   int
	ProjectName string
}

// CenterY returns the vertical midpoint of the row, where bars sit.
func (r Row) CenterY() float64 {
	return r.Y + RowHeight/2
}

type projectGroup struct {
	id    int
	name  string
	tasks []plan.Task
}

// Rows lays out tasks as a z-ordered row sequence: projects ordered by
// descending task count (stable on ties), a header row per project, then
// the project's tasks in pre-order depth-first nesting order.
func Rows(tasks []plan.Task) []Row {
	var groups []*projectGroup
	byProject := make(map[int]*projectGroup)
	for _, t := range tasks {
		g, ok := byProject[t.ProjectID]
		if !ok {
			g = &projectGroup{id: t.ProjectID, name: t.ProjectName}
			byProject[t.ProjectID] = g
			groups = append(groups, g)
		}
		g.tasks = append(g.tasks, t)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].tasks) > len(groups[j].tasks)
	})

	var rows []Row
	y := 0.0
	emit := func(r Row) {
		r.Y = y
		y += RowHeight
		rows = append(rows, r)
	}

	for _, g := range groups {
		emit(Row{Kind: RowProject, ProjectID: g.id, ProjectName: g.name})

		inProject := make(map[int]bool, len(g.tasks))
		for _, t := range g.tasks {
			inProject[t.ID] = true
		}
		children := make(map[int][]int, len(g.tasks))
		byID := make(map[int]*plan.Task, len(g.tasks))
		var roots []int
		for i := range g.tasks {
			t := &g.tasks[i]
			byID[t.ID] = t
			if t.ParentID != nil && inProject[*t.ParentID] {
				children[*t.ParentID] = append(children[*t.ParentID], t.ID)
			} else {
				roots = append(roots, t.ID)
			}
		}

		emitted := make(map[int]bool, len(g.tasks))
		var walk func(id, depth int)
		walk = func(id, depth int) {
			if emitted[id] {
				return
			}
			emitted[id] = true
			t := byID[id]
			emit(Row{
				Kind:        RowTask,
				Depth:       depth,
				Task:        t,
				IsSummary:   len(children[id]) > 0,
				ProjectID:   g.id,
				ProjectName: g.name,
			})
			for _, child := range children[id] {
				walk(child, depth+1)
			}
		}
		for _, root := range roots {
			walk(root, 1)
		}
		// A corrupt parent pointer (self-parent or a cycle) leaves a task
		// neither a root nor a reachable child. Surface such tasks as
		// roots instead of dropping their rows.
		for _, t := range g.tasks {
			walk(t.ID, 1)
		}
	}
	return rows
}
