package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// relationRecord is the golden-file shape of a surviving relation.
type relationRecord struct {
	ID     int    `json:"id"`
	Type   string `json:"type"`
	Source int    `json:"source"`
	Target int    `json:"target"`
}

type runSnapshot struct {
	Scenario  string           `json:"scenario"`
	Events    []Event          `json:"events"`
	Relations []relationRecord `json:"relations"`
}

// AssertGolden compares the run's event log and surviving relations
// against testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, sc *Scenario, res *Result) {
	t.Helper()

	snap := runSnapshot{
		Scenario:  sc.Name,
		Events:    res.Events,
		Relations: make([]relationRecord, 0),
	}
	for _, r := range snapshotRelations(res) {
		snap.Relations = append(snap.Relations, relationRecord{
			ID: r.ID, Type: string(r.Type), Source: r.Source, Target: r.Target,
		})
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		t.Fatalf("marshal run snapshot: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, sc.Name, data)
}
