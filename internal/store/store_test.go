package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrognas/redmyne-sub005/internal/plan"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "issues.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func hours(h float64) *float64 { return &h }

func TestSeedAndSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	parent := 1
	seed := []plan.Task{
		{
			ID: 1, Title: "Release", ProjectID: 10, ProjectName: "Core",
			Start: plan.DatePtr(2026, time.March, 2),
			Due:   plan.DatePtr(2026, time.March, 20),
		},
		{
			ID: 2, Title: "Write docs", ProjectID: 10, ProjectName: "Core",
			Start:          plan.DatePtr(2026, time.March, 2),
			Due:            plan.DatePtr(2026, time.March, 6),
			EstimatedHours: hours(16),
			SpentHours:     4,
			DoneRatio:      25,
			ParentID:       &parent,
			Relations: []plan.Relation{
				{Type: plan.RelationPrecedes, Source: 2, Target: 3},
			},
		},
		{
			ID: 3, Title: "Ship", ProjectID: 10, ProjectName: "Core",
			ParentID: &parent,
		},
	}
	require.NoError(t, s.Seed(ctx, seed))

	tasks, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	assert.Equal(t, 1, tasks[0].ID)
	assert.Nil(t, tasks[0].EstimatedHours)
	assert.Nil(t, tasks[0].ParentID)

	docs := tasks[1]
	assert.Equal(t, "Write docs", docs.Title)
	require.NotNil(t, docs.Start)
	assert.Equal(t, plan.Date(2026, time.March, 2), *docs.Start)
	require.NotNil(t, docs.EstimatedHours)
	assert.Equal(t, 16.0, *docs.EstimatedHours)
	assert.Equal(t, 4.0, docs.SpentHours)
	assert.Equal(t, 25, docs.DoneRatio)
	require.NotNil(t, docs.ParentID)
	assert.Equal(t, 1, *docs.ParentID)

	require.Len(t, docs.Relations, 1)
	rel := docs.Relations[0]
	assert.Equal(t, plan.RelationPrecedes, rel.Type)
	assert.Equal(t, 2, rel.Source)
	assert.Equal(t, 3, rel.Target)
	assert.Positive(t, rel.ID, "autoincrement assigns relation IDs")

	assert.Empty(t, tasks[2].Relations)
}

func TestSnapshotNormalizesTitles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// "café" with a combining acute accent (NFD form).
	require.NoError(t, s.Seed(ctx, []plan.Task{
		{ID: 1, Title: "café menu", ProjectID: 1, ProjectName: "P"},
	}))

	tasks, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "café menu", tasks[0].Title)
}

func TestUpdateDates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, []plan.Task{
		{ID: 1, Title: "Task", ProjectID: 1, ProjectName: "P",
			Start: plan.DatePtr(2026, time.April, 1),
			Due:   plan.DatePtr(2026, time.April, 3)},
	}))

	newStart := plan.Date(2026, time.April, 6)
	require.NoError(t, s.UpdateDates(ctx, 1, &newStart, nil))

	tasks, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, tasks[0].Start)
	assert.Equal(t, newStart, *tasks[0].Start)
	assert.Nil(t, tasks[0].Due, "nil clears the column")

	err = s.UpdateDates(ctx, 99, &newStart, nil)
	assert.ErrorContains(t, err, "not found")
}

func TestCreateRelationAssignsFreshIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, []plan.Task{
		{ID: 1, Title: "A", ProjectID: 1, ProjectName: "P"},
		{ID: 2, Title: "B", ProjectID: 1, ProjectName: "P"},
	}))

	first, err := s.CreateRelation(ctx, 1, 2, plan.RelationBlocks)
	require.NoError(t, err)

	require.NoError(t, s.DeleteRelation(ctx, first))

	second, err := s.CreateRelation(ctx, 1, 2, plan.RelationBlocks)
	require.NoError(t, err)
	assert.Greater(t, second, first, "re-creating a deleted relation yields a fresh ID")
}

func TestCreateRelationRejectsSelfAndSubtasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	parent := 1
	grand := 2
	require.NoError(t, s.Seed(ctx, []plan.Task{
		{ID: 1, Title: "Parent", ProjectID: 1, ProjectName: "P"},
		{ID: 2, Title: "Child", ProjectID: 1, ProjectName: "P", ParentID: &parent},
		{ID: 3, Title: "Grandchild", ProjectID: 1, ProjectName: "P", ParentID: &grand},
	}))

	_, err := s.CreateRelation(ctx, 1, 1, plan.RelationRelates)
	assert.ErrorContains(t, err, "itself")

	_, err = s.CreateRelation(ctx, 1, 3, plan.RelationRelates)
	assert.ErrorContains(t, err, "subtask")

	_, err = s.CreateRelation(ctx, 3, 1, plan.RelationRelates)
	assert.ErrorContains(t, err, "subtask")
}

func TestCreateRelationReschedulesFollower(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, []plan.Task{
		{ID: 1, Title: "First", ProjectID: 1, ProjectName: "P",
			Start: plan.DatePtr(2026, time.May, 4),
			Due:   plan.DatePtr(2026, time.May, 8)},
		{ID: 2, Title: "Second", ProjectID: 1, ProjectName: "P",
			Start: plan.DatePtr(2026, time.May, 6),
			Due:   plan.DatePtr(2026, time.May, 7)},
	}))

	_, err := s.CreateRelation(ctx, 1, 2, plan.RelationPrecedes)
	require.NoError(t, err)

	tasks, err := s.Snapshot(ctx)
	require.NoError(t, err)
	second := tasks[1]
	require.NotNil(t, second.Start)
	require.NotNil(t, second.Due)
	assert.Equal(t, plan.Date(2026, time.May, 9), *second.Start,
		"target starts the day after the source's due date")
	assert.Equal(t, plan.Date(2026, time.May, 10), *second.Due,
		"duration preserved")
}

func TestPrecedesLeavesLateFollowerAlone(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, []plan.Task{
		{ID: 1, Title: "First", ProjectID: 1, ProjectName: "P",
			Due: plan.DatePtr(2026, time.May, 8)},
		{ID: 2, Title: "Second", ProjectID: 1, ProjectName: "P",
			Start: plan.DatePtr(2026, time.May, 20),
			Due:   plan.DatePtr(2026, time.May, 22)},
	}))

	_, err := s.CreateRelation(ctx, 1, 2, plan.RelationPrecedes)
	require.NoError(t, err)

	tasks, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, plan.Date(2026, time.May, 20), *tasks[1].Start)
	assert.Equal(t, plan.Date(2026, time.May, 22), *tasks[1].Due)
}

func TestDeleteRelationNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.DeleteRelation(context.Background(), 42)
	assert.ErrorContains(t, err, "not found")
}
