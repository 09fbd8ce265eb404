package core

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"
)

// Model definitions for the coverage reporting engine

// EventType defines the type of event that triggered a run
type EventType string

// All const of type EventType
const (
	EventPullRequest EventType = "pull-request"
	EventPush        EventType = "push"
)

// DiffClass classifies a per-file coverage delta
type DiffClass string

// All const of type DiffClass
const (
	DiffAdded     DiffClass = "added"
	DiffRemoved   DiffClass = "removed"
	DiffUnchanged DiffClass = "unchanged"
	DiffImproved  DiffClass = "improved"
	DiffRegressed DiffClass = "regressed"
)

// Status represents the status of a run
type Status string

// All const of type Status
const (
	Running       Status = "running"
	Passed        Status = "passed"
	Failed        Status = "failed"
	Error         Status = "error"
	Aborted       Status = "aborted"
	PublishFailed Status = "publish_failed"
)

// LineRange is a contiguous range of uncovered lines. A single uncovered line
// has Start == End.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r LineRange) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("%d", r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// CoverageRecord holds statement and branch coverage counts for a single file
// or for the aggregate of a snapshot.
type CoverageRecord struct {
	Path            string      `json:"path"`
	Stmts           int         `json:"stmts"`
	StmtsMissed     int         `json:"stmts_missed"`
	Branches        int         `json:"branches"`
	BranchesPartial int         `json:"branches_partial"`
	MissingLines    []LineRange `json:"missing_lines,omitempty"`
	// PartialBranchMarkers lists partially exercised branches, e.g. "67->exit".
	PartialBranchMarkers []string `json:"partial_branch_markers,omitempty"`
}

// StmtsCovered returns the number of covered statements.
func (r *CoverageRecord) StmtsCovered() int {
	return r.Stmts - r.StmtsMissed
}

// BranchesCovered returns the number of fully exercised branches. A partial
// branch counts as missed.
func (r *CoverageRecord) BranchesCovered() int {
	return r.Branches - r.BranchesPartial
}

// CoverPct returns the branch-weighted coverage percentage at full precision:
// (covered statements + covered branches) / (total statements + total branches).
// The second return is false when the denominator is 0, in which case the file
// has no defined percentage and must be excluded, never treated as 100%.
func (r *CoverageRecord) CoverPct() (pct float64, ok bool) {
	denom := r.Stmts + r.Branches
	if denom == 0 {
		return 0, false
	}
	return float64(r.StmtsCovered()+r.BranchesCovered()) / float64(denom) * 100, true
}

// CoverPctFloor returns the whole-number percentage shown in the report table.
// The fraction is floored, not rounded, so 71.25 renders as 71. The division is
// done in integer arithmetic so an exactly covered fraction never drops a
// point, e.g. 57/100 is 57, not the 56 that flooring the float product gives.
func (r *CoverageRecord) CoverPctFloor() (pct int, ok bool) {
	denom := r.Stmts + r.Branches
	if denom == 0 {
		return 0, false
	}
	return (r.StmtsCovered() + r.BranchesCovered()) * 100 / denom, true
}

// Missing renders the uncovered line ranges and partial branch markers the way
// they appear in the report's Missing column, e.g. "12, 40-44, 67->exit".
func (r *CoverageRecord) Missing() string {
	parts := make([]string, 0, len(r.MissingLines)+len(r.PartialBranchMarkers))
	for _, lr := range r.MissingLines {
		parts = append(parts, lr.String())
	}
	parts = append(parts, r.PartialBranchMarkers...)
	return strings.Join(parts, ", ")
}

// CoverageSnapshot maps file paths to their coverage records along with the
// derived aggregate record. The aggregate is computed by summing counts, never
// by averaging percentages, and is recomputed on every construction. A
// snapshot is immutable once built.
type CoverageSnapshot struct {
	Files map[string]CoverageRecord `json:"files"`
	Total CoverageRecord            `json:"total"`
}

// SortedPaths returns the file paths of the snapshot in lexicographic order.
func (s *CoverageSnapshot) SortedPaths() []string {
	paths := make([]string, 0, len(s.Files))
	for p := range s.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// DiffEntry is the comparison of one file between the baseline and current
// snapshots. Baseline is nil for added files, Current is nil for removed ones.
// Delta is nil when either side is missing or has no defined percentage.
type DiffEntry struct {
	Path     string          `json:"path"`
	Baseline *CoverageRecord `json:"baseline,omitempty"`
	Current  *CoverageRecord `json:"current,omitempty"`
	Delta    *float64        `json:"delta,omitempty"`
	Class    DiffClass       `json:"class"`
}

// BadgeConfig holds the enumerated badge color configuration resolved by the
// threshold evaluator.
type BadgeConfig struct {
	OKColor   string  `json:"ok_color" yaml:"okColor"`
	WarnColor string  `json:"warn_color" yaml:"warnColor"`
	FailColor string  `json:"fail_color" yaml:"failColor"`
	WarnBelow float64 `json:"warn_below" yaml:"warnBelow"`
}

// ThresholdPolicy is the pass/fail policy applied to a coverage run.
type ThresholdPolicy struct {
	// MinAggregate fails the run when the aggregate percentage is below it.
	MinAggregate float64 `json:"min_aggregate" yaml:"minAggregate" validate:"gte=0,lte=100"`
	// MaxFileRegression fails the run when any regressed file dropped by more
	// than this many percentage points.
	MaxFileRegression float64 `json:"max_file_regression" yaml:"maxFileRegression" validate:"gte=0,lte=100"`
	// MinNewFile, when set, requires added files to meet a separate minimum.
	MinNewFile *float64 `json:"min_new_file,omitempty" yaml:"minNewFile" validate:"omitempty,gte=0,lte=100"`
	// Noise is the delta magnitude in percentage points below which a change
	// counts as unchanged.
	Noise float64     `json:"noise" yaml:"noise" validate:"gte=0"`
	Badge BadgeConfig `json:"badge" yaml:"badge"`
}

// ViolationRule identifies which policy rule a violation belongs to
type ViolationRule string

// All const of type ViolationRule
const (
	RuleMinAggregate      ViolationRule = "min_aggregate"
	RuleMaxFileRegression ViolationRule = "max_file_regression"
	RuleMinNewFile        ViolationRule = "min_new_file"
)

// Violation describes a single violated policy rule with the file and metric
// that triggered it.
type Violation struct {
	Rule   ViolationRule `json:"rule"`
	Path   string        `json:"path,omitempty"`
	Metric string        `json:"metric"`
	Limit  float64       `json:"limit"`
	Actual float64       `json:"actual"`
	Remark string        `json:"remark"`
}

// EvaluationResult is the outcome of applying a threshold policy. A failed
// evaluation is a normal outcome, not an error; every rule is checked so the
// report can list all violations at once.
type EvaluationResult struct {
	Passed     bool        `json:"passed"`
	Violations []Violation `json:"violations,omitempty"`
	BadgeColor string      `json:"badge_color"`
}

// BadgePayload is the machine-readable payload for a dynamic badge endpoint.
// Percent keeps the full float precision of the aggregate.
type BadgePayload struct {
	Message string  `json:"message"`
	Color   string  `json:"color"`
	Percent float64 `json:"percent"`
	Passed  bool    `json:"passed"`
}

// RenderedReport is the canonical rendered output of a run. Rendering is
// deterministic: identical inputs yield byte-identical fields.
type RenderedReport struct {
	Table   string       `json:"table"`
	Summary string       `json:"summary"`
	Badge   BadgePayload `json:"badge"`
}

// AnnotationIdentity is the stable key used to locate a previously published
// annotation for update rather than duplication.
type AnnotationIdentity struct {
	GitProvider string `json:"git_provider"`
	OrgID       string `json:"org_id"`
	RepoID      string `json:"repo_id"`
	PRNumber    int    `json:"pr_number"`
}

// Key returns the canonical identity key used for per-identity serialization.
func (a AnnotationIdentity) Key() string {
	return fmt.Sprintf("%s/%s/%s/%d", a.GitProvider, a.OrgID, a.RepoID, a.PRNumber)
}

// Annotation is an externally stored annotation as seen by the publisher.
type Annotation struct {
	ID   string `json:"id"`
	Body string `json:"body"`
	ETag string `json:"etag"`
}

// PublishAction describes what a publish call did externally
type PublishAction string

// All const of type PublishAction
const (
	PublishCreated PublishAction = "created"
	PublishUpdated PublishAction = "updated"
	PublishSkipped PublishAction = "skipped"
)

// PublishResult reports the externally observable effect of a publish.
type PublishResult struct {
	Action       PublishAction `json:"action"`
	AnnotationID string        `json:"annotation_id"`
	Attempts     int           `json:"attempts"`
}

// BaselineKey identifies the stored baseline snapshot for a branch.
type BaselineKey struct {
	GitProvider string `json:"git_provider"`
	OrgID       string `json:"org_id"`
	RepoID      string `json:"repo_id"`
	Branch      string `json:"branch"`
}

// BlobPath returns the blob path under which the baseline snapshot is stored.
func (k BaselineKey) BlobPath() string {
	return path.Join(k.GitProvider, k.OrgID, k.RepoID, k.Branch)
}

// Payload is the input of a covlens run.
type Payload struct {
	RunID             string    `json:"run_id"`
	OrgID             string    `json:"org_id"`
	RepoID            string    `json:"repo_id"`
	RepoSlug          string    `json:"repo_slug"`
	RepoLink          string    `json:"repo_link"`
	GitProvider       string    `json:"git_provider"`
	BranchName        string    `json:"branch_name"`
	TargetBranch      string    `json:"target_branch"`
	BuildTargetCommit string    `json:"build_target_commit"`
	PRNumber          int       `json:"pr_number"`
	EventType         EventType `json:"event_type"`
	// RecordsAddress points at the normalized per-file coverage records
	// document produced by the test runner integration.
	RecordsAddress string           `json:"records_address"`
	Records        []CoverageRecord `json:"records,omitempty"`
}

// RunPayload carries the status of a run reported to the backend.
type RunPayload struct {
	RunID       string    `json:"run_id"`
	OrgID       string    `json:"org_id"`
	RepoID      string    `json:"repo_id"`
	RepoSlug    string    `json:"repo_slug"`
	RepoLink    string    `json:"repo_link"`
	GitProvider string    `json:"git_provider"`
	Status      Status    `json:"status"`
	Remark      string    `json:"remark,omitempty"`
	CoveragePct float64   `json:"coverage_pct"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time,omitempty"`
}
