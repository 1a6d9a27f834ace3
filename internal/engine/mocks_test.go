package engine

import (
	"context"
	"errors"
	"time"

	"github.com/vrognas/redmyne-sub005/internal/plan"
)

// memSource is an in-memory issue source and mutation gateway for engine
// tests. Mutations are reflected in subsequent snapshots, the way the
// remote system behaves; relation creates always assign fresh IDs.
type memSource struct {
	tasks     map[int]*plan.Task
	order     []int
	nextRelID int
	failNext  error
}

func newMemSource(tasks ...plan.Task) *memSource {
	s := &memSource{tasks: make(map[int]*plan.Task), nextRelID: 100}
	for i := range tasks {
		t := tasks[i]
		s.tasks[t.ID] = &t
		s.order = append(s.order, t.ID)
	}
	return s
}

func (s *memSource) fail() error {
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	return nil
}

func (s *memSource) Snapshot(context.Context) ([]plan.Task, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	out := make([]plan.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.tasks[id])
	}
	return out, nil
}

func (s *memSource) UpdateDates(_ context.Context, taskID int, start, due *time.Time) error {
	if err := s.fail(); err != nil {
		return err
	}
	t, ok := s.tasks[taskID]
	if !ok {
		return errors.New("task not found")
	}
	t.Start, t.Due = start, due
	return nil
}

func (s *memSource) CreateRelation(_ context.Context, sourceID, targetID int, rt plan.RelationType) (int, error) {
	if err := s.fail(); err != nil {
		return 0, err
	}
	src, ok := s.tasks[sourceID]
	if !ok {
		return 0, errors.New("source not found")
	}
	s.nextRelID++
	src.Relations = append(src.Relations, plan.Relation{
		ID: s.nextRelID, Type: rt, Source: sourceID, Target: targetID,
	})
	return s.nextRelID, nil
}

func (s *memSource) DeleteRelation(_ context.Context, relationID int) error {
	if err := s.fail(); err != nil {
		return err
	}
	for _, t := range s.tasks {
		for i, r := range t.Relations {
			if r.ID == relationID {
				t.Relations = append(t.Relations[:i], t.Relations[i+1:]...)
				return nil
			}
		}
	}
	return errors.New("relation not found")
}

func (s *memSource) relations() []plan.Relation {
	var out []plan.Relation
	for _, id := range s.order {
		out = append(out, s.tasks[id].Relations...)
	}
	return out
}
