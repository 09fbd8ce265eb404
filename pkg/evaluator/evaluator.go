// Package evaluator applies the repository threshold policy to a coverage run.
package evaluator

import (
	"fmt"
	"math"

	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/pkg/lumber"
)

// pctTolerance absorbs the floating point wobble of computed percentages so a
// metric sitting exactly on a limit, like 57% against a minimum of 57, is not
// rejected over a representation error.
const pctTolerance = 1e-9

type thresholdEvaluator struct {
	logger lumber.Logger
}

// New returns a new instance of ThresholdEvaluator
func New(logger lumber.Logger) core.ThresholdEvaluator {
	return &thresholdEvaluator{logger: logger}
}

// Evaluate checks every policy rule: the aggregate minimum, the per-file
// regression bound and the minimum for added files. Rules are never
// short-circuited so the report can list every violation at once. Threshold
// violations are a normal outcome, not an error.
func (e *thresholdEvaluator) Evaluate(snapshot *core.CoverageSnapshot,
	diff []core.DiffEntry,
	policy *core.ThresholdPolicy) *core.EvaluationResult {
	result := &core.EvaluationResult{Passed: true}

	aggregatePct, aggregateOK := snapshot.Total.CoverPct()
	if aggregateOK && policy.MinAggregate-aggregatePct > pctTolerance {
		result.Violations = append(result.Violations, core.Violation{
			Rule:   core.RuleMinAggregate,
			Metric: "aggregate coverage",
			Limit:  policy.MinAggregate,
			Actual: aggregatePct,
			Remark: fmt.Sprintf("aggregate coverage %.2f%% is below the required %.2f%%",
				aggregatePct, policy.MinAggregate),
		})
	}

	for i := range diff {
		entry := &diff[i]
		switch entry.Class {
		case core.DiffRegressed:
			if entry.Delta == nil {
				continue
			}
			drop := math.Abs(*entry.Delta)
			if drop-policy.MaxFileRegression > pctTolerance {
				result.Violations = append(result.Violations, core.Violation{
					Rule:   core.RuleMaxFileRegression,
					Path:   entry.Path,
					Metric: "coverage regression",
					Limit:  policy.MaxFileRegression,
					Actual: drop,
					Remark: fmt.Sprintf("%s regressed by %.2f%%, more than the permitted %.2f%%",
						entry.Path, drop, policy.MaxFileRegression),
				})
			}
		case core.DiffAdded:
			if policy.MinNewFile == nil || entry.Current == nil {
				continue
			}
			pct, ok := entry.Current.CoverPct()
			if ok && *policy.MinNewFile-pct > pctTolerance {
				result.Violations = append(result.Violations, core.Violation{
					Rule:   core.RuleMinNewFile,
					Path:   entry.Path,
					Metric: "new file coverage",
					Limit:  *policy.MinNewFile,
					Actual: pct,
					Remark: fmt.Sprintf("new file %s has %.2f%% coverage, below the required %.2f%%",
						entry.Path, pct, *policy.MinNewFile),
				})
			}
		}
	}

	result.Passed = len(result.Violations) == 0
	result.BadgeColor = resolveBadgeColor(aggregatePct, result.Passed, &policy.Badge)
	if !result.Passed {
		e.logger.Infof("threshold policy failed with %d violation(s)", len(result.Violations))
	}
	return result
}

// resolveBadgeColor maps the aggregate percentage onto the enumerated badge
// colors. A failed evaluation always yields the fail color.
func resolveBadgeColor(aggregatePct float64, passed bool, badge *core.BadgeConfig) string {
	if !passed {
		return badge.FailColor
	}
	if badge.WarnBelow-aggregatePct > pctTolerance {
		return badge.WarnColor
	}
	return badge.OKColor
}
