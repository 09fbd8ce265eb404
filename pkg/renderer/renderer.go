// Package renderer turns a snapshot, diff and evaluation into the canonical
// textual table, the summary line and the machine-readable badge payload.
// Rendering is deterministic: identical inputs yield byte-identical output, so
// a re-run with no coverage change publishes no annotation update.
package renderer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/pkg/lumber"
)

var tableHeader = []string{"Name", "Stmts", "Miss", "Branch", "BrPart", "Cover", "Missing"}

type reportRenderer struct {
	logger lumber.Logger
}

// New returns a new instance of ReportRenderer
func New(logger lumber.Logger) core.ReportRenderer {
	return &reportRenderer{logger: logger}
}

func (r *reportRenderer) Render(snapshot *core.CoverageSnapshot,
	diff []core.DiffEntry,
	evaluation *core.EvaluationResult) (*core.RenderedReport, error) {
	if snapshot == nil || evaluation == nil {
		return nil, fmt.Errorf("renderer requires a snapshot and an evaluation")
	}

	report := &core.RenderedReport{
		Table:   renderTable(snapshot),
		Summary: renderSummary(snapshot, diff, evaluation),
		Badge:   renderBadge(snapshot, evaluation),
	}
	return report, nil
}

// renderTable renders one row per file ordered by path plus the TOTAL row.
// The Cover column is the floored whole-number percentage; files without a
// defined percentage show a dash and are excluded from the aggregate.
func renderTable(snapshot *core.CoverageSnapshot) string {
	paths := snapshot.SortedPaths()
	rows := make([][]string, 0, len(paths)+1)
	for _, path := range paths {
		record := snapshot.Files[path]
		rows = append(rows, tableRow(&record))
	}
	rows = append(rows, tableRow(&snapshot.Total))

	widths := make([]int, len(tableHeader))
	for i, h := range tableHeader {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow(&b, tableHeader, widths)
	writeRule(&b, widths)
	for _, row := range rows[:len(rows)-1] {
		writeRow(&b, row, widths)
	}
	writeRule(&b, widths)
	writeRow(&b, rows[len(rows)-1], widths)
	return b.String()
}

func tableRow(record *core.CoverageRecord) []string {
	cover := "-"
	if pct, ok := record.CoverPctFloor(); ok {
		cover = fmt.Sprintf("%d%%", pct)
	}
	return []string{
		record.Path,
		strconv.Itoa(record.Stmts),
		strconv.Itoa(record.StmtsMissed),
		strconv.Itoa(record.Branches),
		strconv.Itoa(record.BranchesPartial),
		cover,
		record.Missing(),
	}
}

// writeRow writes one table row: Name left-aligned, numeric columns
// right-aligned, Missing left-aligned without trailing padding.
func writeRow(b *strings.Builder, row []string, widths []int) {
	fmt.Fprintf(b, "%-*s", widths[0], row[0])
	for i := 1; i < len(row)-1; i++ {
		fmt.Fprintf(b, "  %*s", widths[i], row[i])
	}
	last := row[len(row)-1]
	if last != "" {
		fmt.Fprintf(b, "  %s", last)
	}
	b.WriteString("\n")
}

func writeRule(b *strings.Builder, widths []int) {
	width := 0
	for _, w := range widths {
		width += w
	}
	// separators between the columns
	width += 2 * (len(widths) - 1)
	b.WriteString(strings.Repeat("-", width))
	b.WriteString("\n")
}

func renderSummary(snapshot *core.CoverageSnapshot, diff []core.DiffEntry, evaluation *core.EvaluationResult) string {
	status := "passed"
	if !evaluation.Passed {
		status = fmt.Sprintf("failed (%d violation(s))", len(evaluation.Violations))
	}

	covered := snapshot.Total.StmtsCovered() + snapshot.Total.BranchesCovered()
	total := snapshot.Total.Stmts + snapshot.Total.Branches
	cover := "-"
	if pct, ok := snapshot.Total.CoverPctFloor(); ok {
		cover = fmt.Sprintf("%d%%", pct)
	}

	regressed := 0
	for i := range diff {
		if diff[i].Class == core.DiffRegressed {
			regressed++
		}
	}
	return fmt.Sprintf("coverage %s (%d/%d), %d file(s) regressed, policy %s",
		cover, covered, total, regressed, status)
}

// renderBadge keeps the full float precision of the aggregate in Percent while
// Message carries the same whole number shown in the table.
func renderBadge(snapshot *core.CoverageSnapshot, evaluation *core.EvaluationResult) core.BadgePayload {
	payload := core.BadgePayload{
		Message: "unknown",
		Color:   evaluation.BadgeColor,
		Passed:  evaluation.Passed,
	}
	if pct, ok := snapshot.Total.CoverPct(); ok {
		payload.Percent = pct
	}
	if pct, ok := snapshot.Total.CoverPctFloor(); ok {
		payload.Message = fmt.Sprintf("%d%%", pct)
	}
	return payload
}
