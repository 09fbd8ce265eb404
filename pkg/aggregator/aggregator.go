// Package aggregator merges normalized per-file coverage records into an
// immutable snapshot with a derived aggregate record.
package aggregator

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/pkg/errs"
	"github.com/covlens/covlens/pkg/lumber"
)

type aggregator struct {
	logger lumber.Logger
}

// New returns a new instance of Aggregator
func New(logger lumber.Logger) core.Aggregator {
	return &aggregator{logger: logger}
}

// Aggregate validates the records and sums them into a snapshot. Validation of
// large record sets fans out across workers; summation itself is commutative,
// so the result is identical regardless of input order or worker interleaving.
func (a *aggregator) Aggregate(ctx context.Context, records []core.CoverageRecord) (*core.CoverageSnapshot, error) {
	if err := a.validate(ctx, records); err != nil {
		return nil, err
	}

	files := make(map[string]core.CoverageRecord, len(records))
	for i := range records {
		record := records[i]
		if _, ok := files[record.Path]; ok {
			return nil, errs.ErrInvalidRecord(record.Path, "duplicate file path")
		}
		// keep missing ranges ordered for deterministic rendering
		sort.Slice(record.MissingLines, func(i, j int) bool {
			return record.MissingLines[i].Start < record.MissingLines[j].Start
		})
		sort.Strings(record.PartialBranchMarkers)
		files[record.Path] = record
	}

	total := core.CoverageRecord{Path: "TOTAL"}
	for _, record := range files {
		total.Stmts += record.Stmts
		total.StmtsMissed += record.StmtsMissed
		total.Branches += record.Branches
		total.BranchesPartial += record.BranchesPartial
	}

	return &core.CoverageSnapshot{Files: files, Total: total}, nil
}

func (a *aggregator) validate(ctx context.Context, records []core.CoverageRecord) error {
	g, _ := errgroup.WithContext(ctx)
	workers := runtime.NumCPU()
	if workers > len(records) {
		workers = len(records)
	}
	if workers < 1 {
		workers = 1
	}
	chunkSize := (len(records) + workers - 1) / workers
	for start := 0; start < len(records); start += chunkSize {
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}
		chunk := records[start:end]
		g.Go(func() error {
			for i := range chunk {
				if err := validateRecord(&chunk[i]); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.logger.Errorf("coverage input rejected: %v", err)
		return err
	}
	return nil
}

func validateRecord(r *core.CoverageRecord) error {
	if r.Path == "" {
		return errs.ErrInvalidRecord("", "empty file path")
	}
	if r.Stmts < 0 || r.StmtsMissed < 0 || r.Branches < 0 || r.BranchesPartial < 0 {
		return errs.ErrInvalidRecord(r.Path, "negative coverage count")
	}
	if r.StmtsMissed > r.Stmts {
		return errs.ErrInvalidRecord(r.Path,
			fmt.Sprintf("missed statements %d exceed total %d", r.StmtsMissed, r.Stmts))
	}
	if r.BranchesPartial > r.Branches {
		return errs.ErrInvalidRecord(r.Path,
			fmt.Sprintf("partial branches %d exceed total %d", r.BranchesPartial, r.Branches))
	}
	for _, lr := range r.MissingLines {
		if lr.Start <= 0 || lr.End < lr.Start {
			return errs.ErrInvalidRecord(r.Path, fmt.Sprintf("malformed missing line range %s", lr))
		}
	}
	return nil
}
