// Package differ compares a current coverage snapshot against the stored
// baseline of the target branch and classifies every file's delta.
package differ

import (
	"math"
	"sort"

	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/pkg/global"
	"github.com/covlens/covlens/pkg/lumber"
)

type baselineDiffer struct {
	logger lumber.Logger
}

// New returns a new instance of BaselineDiffer.
func New(logger lumber.Logger) core.BaselineDiffer {
	return &baselineDiffer{logger: logger}
}

// Diff produces one entry per file present in either snapshot. With an absent
// baseline every current file is added. noise is the delta magnitude in
// percentage points below which a change counts as unchanged; a non-positive
// value falls back to the default. Entries are ordered by descending absolute
// delta, ties broken by path, so repeated runs yield identical output.
func (d *baselineDiffer) Diff(baseline, current *core.CoverageSnapshot, noise float64) []core.DiffEntry {
	if noise <= 0 {
		noise = global.NoiseThreshold
	}
	entries := make([]core.DiffEntry, 0, len(current.Files))

	for path := range current.Files {
		record := current.Files[path]
		cur := record
		if baseline == nil {
			entries = append(entries, core.DiffEntry{Path: path, Current: &cur, Class: core.DiffAdded})
			continue
		}
		prevRecord, ok := baseline.Files[path]
		if !ok {
			entries = append(entries, core.DiffEntry{Path: path, Current: &cur, Class: core.DiffAdded})
			continue
		}
		prev := prevRecord
		entries = append(entries, classify(path, &prev, &cur, noise))
	}

	if baseline != nil {
		for path := range baseline.Files {
			if _, ok := current.Files[path]; ok {
				continue
			}
			record := baseline.Files[path]
			prev := record
			entries = append(entries, core.DiffEntry{Path: path, Baseline: &prev, Class: core.DiffRemoved})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		di, dj := absDelta(&entries[i]), absDelta(&entries[j])
		if di != dj {
			return di > dj
		}
		return entries[i].Path < entries[j].Path
	})
	return entries
}

func classify(path string, prev, cur *core.CoverageRecord, noise float64) core.DiffEntry {
	entry := core.DiffEntry{Path: path, Baseline: prev, Current: cur}

	prevPct, prevOK := prev.CoverPct()
	curPct, curOK := cur.CoverPct()
	if !prevOK || !curOK {
		// no meaningful percentage on at least one side, e.g. a file with 0
		// total statements in both snapshots
		entry.Class = core.DiffUnchanged
		return entry
	}

	delta := curPct - prevPct
	entry.Delta = &delta
	switch {
	case math.Abs(delta) < noise:
		entry.Class = core.DiffUnchanged
	case delta > 0:
		entry.Class = core.DiffImproved
	default:
		entry.Class = core.DiffRegressed
	}
	return entry
}

func absDelta(e *core.DiffEntry) float64 {
	if e.Delta == nil {
		return 0
	}
	return math.Abs(*e.Delta)
}
