package aggregator

import (
	"context"
	"reflect"
	"testing"

	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/testutils"
)

func TestAggregate(t *testing.T) {
	logger, err := testutils.GetLogger()
	if err != nil {
		t.Errorf("Couldn't get logger, received: %s", err)
	}
	records, err := testutils.GetRecords()
	if err != nil {
		t.Errorf("Couldn't get dummy records, received: %s", err)
	}
	a := New(logger)

	snapshot, err := a.Aggregate(context.TODO(), records)
	if err != nil {
		t.Errorf("Error in aggregating records, received: %v", err)
		return
	}

	if len(snapshot.Files) != 3 {
		t.Errorf("Expected 3 files in snapshot, received: %d", len(snapshot.Files))
	}
	if snapshot.Total.Stmts != 202 || snapshot.Total.StmtsMissed != 33 {
		t.Errorf("Unexpected statement totals, received: %d/%d", snapshot.Total.StmtsMissed, snapshot.Total.Stmts)
	}
	if snapshot.Total.Branches != 58 || snapshot.Total.BranchesPartial != 13 {
		t.Errorf("Unexpected branch totals, received: %d/%d", snapshot.Total.BranchesPartial, snapshot.Total.Branches)
	}
	if pct, ok := snapshot.Total.CoverPctFloor(); !ok || pct != 82 {
		t.Errorf("Unexpected aggregate percentage, received: %d, ok: %t", pct, ok)
	}
	parserRecord := snapshot.Files["pkg/parser/parser.go"]
	if pct, ok := parserRecord.CoverPctFloor(); !ok || pct != 71 {
		t.Errorf("Unexpected file percentage, received: %d, ok: %t", pct, ok)
	}
}

func TestAggregateIsOrderInsensitive(t *testing.T) {
	logger, err := testutils.GetLogger()
	if err != nil {
		t.Errorf("Couldn't get logger, received: %s", err)
	}
	records, err := testutils.GetRecords()
	if err != nil {
		t.Errorf("Couldn't get dummy records, received: %s", err)
	}
	a := New(logger)

	forward, err := a.Aggregate(context.TODO(), records)
	if err != nil {
		t.Errorf("Error in aggregating records, received: %v", err)
		return
	}

	reversed := make([]core.CoverageRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		reversed = append(reversed, records[i])
	}
	backward, err := a.Aggregate(context.TODO(), reversed)
	if err != nil {
		t.Errorf("Error in aggregating reversed records, received: %v", err)
		return
	}

	if !reflect.DeepEqual(forward.Total, backward.Total) {
		t.Errorf("Aggregate differs with input order,\nforward:  %+v\nbackward: %+v", forward.Total, backward.Total)
	}
	for path, record := range forward.Files {
		got, ok := backward.Files[path]
		if !ok {
			t.Errorf("File %s missing from reversed aggregate", path)
			continue
		}
		if got.Stmts != record.Stmts || got.StmtsMissed != record.StmtsMissed {
			t.Errorf("File %s differs with input order", path)
		}
	}
}

func TestAggregateSortsMissingRanges(t *testing.T) {
	logger, err := testutils.GetLogger()
	if err != nil {
		t.Errorf("Couldn't get logger, received: %s", err)
	}
	a := New(logger)

	records := []core.CoverageRecord{
		{
			Path:                 "a.go",
			Stmts:                10,
			StmtsMissed:          4,
			MissingLines:         []core.LineRange{{Start: 40, End: 44}, {Start: 12, End: 12}},
			PartialBranchMarkers: []string{"9->exit", "4->6"},
		},
	}
	snapshot, err := a.Aggregate(context.TODO(), records)
	if err != nil {
		t.Errorf("Error in aggregating records, received: %v", err)
		return
	}
	record := snapshot.Files["a.go"]
	if got := record.Missing(); got != "12, 40-44, 4->6, 9->exit" {
		t.Errorf("Missing column not normalized, received: %q", got)
	}
}

func TestAggregateRejectsInvalidRecords(t *testing.T) {
	logger, err := testutils.GetLogger()
	if err != nil {
		t.Errorf("Couldn't get logger, received: %s", err)
	}
	a := New(logger)

	checkRejected := func(t *testing.T, records []core.CoverageRecord) {
		t.Helper()
		if _, err := a.Aggregate(context.TODO(), records); err == nil {
			t.Errorf("Expected validation error, received nil")
		}
	}

	t.Run("empty file path", func(t *testing.T) {
		checkRejected(t, []core.CoverageRecord{{Path: "", Stmts: 1}})
	})
	t.Run("negative count", func(t *testing.T) {
		checkRejected(t, []core.CoverageRecord{{Path: "a.go", Stmts: -1}})
	})
	t.Run("missed exceeds total", func(t *testing.T) {
		checkRejected(t, []core.CoverageRecord{{Path: "a.go", Stmts: 5, StmtsMissed: 6}})
	})
	t.Run("partial exceeds branches", func(t *testing.T) {
		checkRejected(t, []core.CoverageRecord{{Path: "a.go", Stmts: 5, Branches: 2, BranchesPartial: 3}})
	})
	t.Run("malformed line range", func(t *testing.T) {
		checkRejected(t, []core.CoverageRecord{
			{Path: "a.go", Stmts: 5, MissingLines: []core.LineRange{{Start: 9, End: 3}}},
		})
	})
	t.Run("duplicate file path", func(t *testing.T) {
		checkRejected(t, []core.CoverageRecord{
			{Path: "a.go", Stmts: 5},
			{Path: "a.go", Stmts: 7},
		})
	})
}
