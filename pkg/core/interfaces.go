package core

import (
	"context"
)

// PayloadManager defines operations for the run payload
type PayloadManager interface {
	// FetchPayload fetches the payload used for running covlens
	FetchPayload(ctx context.Context, payloadAddress string) (*Payload, error)
	// ValidatePayload validates the covlens payload and its coverage records
	ValidatePayload(ctx context.Context, payload *Payload) error
}

// PolicyManager loads the threshold policy for a repository
type PolicyManager interface {
	// LoadPolicy loads the policy from the given path, falling back to the
	// built-in defaults when no policy file exists
	LoadPolicy(ctx context.Context, path string) (*ThresholdPolicy, error)
}

// Aggregator merges per-file coverage records into a snapshot
type Aggregator interface {
	// Aggregate validates the records and sums them into a snapshot. Pure:
	// the same record set yields the same snapshot regardless of order.
	Aggregate(ctx context.Context, records []CoverageRecord) (*CoverageSnapshot, error)
}

// BaselineDiffer compares a current snapshot against a stored baseline
type BaselineDiffer interface {
	// Diff classifies every file of both snapshots against the noise
	// threshold in percentage points; a non-positive noise falls back to the
	// default. Neither input is mutated.
	Diff(baseline, current *CoverageSnapshot, noise float64) []DiffEntry
}

// ThresholdEvaluator applies the pass/fail policy
type ThresholdEvaluator interface {
	// Evaluate checks every policy rule without short-circuiting and resolves
	// the badge color for the aggregate.
	Evaluate(snapshot *CoverageSnapshot, diff []DiffEntry, policy *ThresholdPolicy) *EvaluationResult
}

// ReportRenderer renders the canonical report outputs
type ReportRenderer interface {
	// Render produces the table, summary line and badge payload. Output is
	// byte-deterministic for identical inputs.
	Render(snapshot *CoverageSnapshot, diff []DiffEntry, evaluation *EvaluationResult) (*RenderedReport, error)
}

// AnnotationPublisher idempotently creates-or-updates the external annotation
type AnnotationPublisher interface {
	// Publish looks up the annotation by identity and updates it in place or
	// creates it, never appending a duplicate. Republishing unchanged content
	// is a no-op.
	Publish(ctx context.Context, identity AnnotationIdentity, report *RenderedReport) (*PublishResult, error)
}

// AnnotationStore defines operations against the external comment store
type AnnotationStore interface {
	// FindByMarker returns the annotation carrying the identity marker, or
	// errs.ErrNotFound when none was published yet
	FindByMarker(ctx context.Context, identity AnnotationIdentity) (*Annotation, error)
	// Create publishes a new annotation for the identity
	Create(ctx context.Context, identity AnnotationIdentity, body string) (*Annotation, error)
	// Update replaces the annotation body. The etag guards against concurrent
	// updates; errs.ErrStaleAnnotation is returned on a lost race.
	Update(ctx context.Context, identity AnnotationIdentity, annotationID, body, etag string) error
}

// BaselineStore defines operations for the stored branch baselines
type BaselineStore interface {
	// Fetch returns the baseline snapshot for the key, or (nil, nil) when the
	// branch has no stored baseline yet
	Fetch(ctx context.Context, key BaselineKey) (*CoverageSnapshot, error)
	// Store persists the snapshot as the new baseline for the key
	Store(ctx context.Context, key BaselineKey, snapshot *CoverageSnapshot) error
}

// Task is a service to update run status at the reporter backend
type Task interface {
	// UpdateStatus updates status of the run
	UpdateStatus(ctx context.Context, payload *RunPayload) error
}

// Requests defines operation for making API requests
type Requests interface {
	// MakeAPIRequest makes an HTTP request and returns the response body,
	// status code and error
	MakeAPIRequest(ctx context.Context,
		httpMethod, endpoint string,
		body []byte,
		query map[string]interface{},
		headers map[string]string) (respBody []byte, statusCode int, err error)
}
