package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/pkg/errs"
	"github.com/covlens/covlens/testutils"
	"github.com/covlens/covlens/testutils/mocks"
	"github.com/stretchr/testify/mock"
)

type pipelineMocks struct {
	payloadManager *mocks.PayloadManager
	policyManager  *mocks.PolicyManager
	aggregator     *mocks.Aggregator
	differ         *mocks.BaselineDiffer
	evaluator      *mocks.ThresholdEvaluator
	renderer       *mocks.ReportRenderer
	publisher      *mocks.AnnotationPublisher
	baselineStore  *mocks.BaselineStore
	task           *mocks.Task
	statuses       *[]core.Status
}

func newTestPipeline(t *testing.T, payload *core.Payload) (*core.Pipeline, *pipelineMocks) {
	t.Helper()
	logger, err := testutils.GetLogger()
	if err != nil {
		t.Fatalf("Couldn't get logger, received: %s", err)
	}
	cfg, err := testutils.GetConfig()
	if err != nil {
		t.Fatalf("Couldn't get config, received: %s", err)
	}

	pl, err := core.NewPipeline(cfg, logger)
	if err != nil {
		t.Fatalf("Couldn't create pipeline, received: %s", err)
	}

	m := &pipelineMocks{
		payloadManager: new(mocks.PayloadManager),
		policyManager:  new(mocks.PolicyManager),
		aggregator:     new(mocks.Aggregator),
		differ:         new(mocks.BaselineDiffer),
		evaluator:      new(mocks.ThresholdEvaluator),
		renderer:       new(mocks.ReportRenderer),
		publisher:      new(mocks.AnnotationPublisher),
		baselineStore:  new(mocks.BaselineStore),
		task:           new(mocks.Task),
		statuses:       &[]core.Status{},
	}

	snapshot := &core.CoverageSnapshot{
		Files: map[string]core.CoverageRecord{},
		Total: core.CoverageRecord{Path: "TOTAL", Stmts: 100, StmtsMissed: 20},
	}
	policy := &core.ThresholdPolicy{MaxFileRegression: 100, Noise: 0.01}
	report := &core.RenderedReport{Table: "TOTAL  80%\n", Summary: "coverage 80% (80/100), 0 file(s) regressed, policy passed"}

	m.payloadManager.On("FetchPayload", mock.Anything, mock.AnythingOfType("string")).Return(payload, nil)
	m.payloadManager.On("ValidatePayload", mock.Anything, payload).Return(nil)
	m.policyManager.On("LoadPolicy", mock.Anything, mock.AnythingOfType("string")).Return(policy, nil)
	m.aggregator.On("Aggregate", mock.Anything, payload.Records).Return(snapshot, nil)
	m.differ.On("Diff", mock.Anything, snapshot, policy.Noise).Return([]core.DiffEntry{})
	m.evaluator.On("Evaluate", snapshot, mock.Anything, policy).Return(&core.EvaluationResult{Passed: true, BadgeColor: "brightgreen"})
	m.renderer.On("Render", snapshot, mock.Anything, mock.Anything).Return(report, nil)
	m.task.On("UpdateStatus", mock.Anything, mock.AnythingOfType("*core.RunPayload")).Run(func(args mock.Arguments) {
		rp := args.Get(1).(*core.RunPayload)
		*m.statuses = append(*m.statuses, rp.Status)
	}).Return(nil)

	pl.PayloadManager = m.payloadManager
	pl.PolicyManager = m.policyManager
	pl.Aggregator = m.aggregator
	pl.BaselineDiffer = m.differ
	pl.ThresholdEvaluator = m.evaluator
	pl.ReportRenderer = m.renderer
	pl.AnnotationPublisher = m.publisher
	pl.BaselineStore = m.baselineStore
	pl.Task = m.task

	return pl, m
}

func pullRequestPayload(t *testing.T) *core.Payload {
	t.Helper()
	payload, err := testutils.GetPayload()
	if err != nil {
		t.Fatalf("Couldn't get dummy payload, received: %s", err)
	}
	return payload
}

func pushPayload(t *testing.T) *core.Payload {
	t.Helper()
	payload := pullRequestPayload(t)
	payload.EventType = core.EventPush
	payload.PRNumber = 0
	payload.TargetBranch = ""
	return payload
}

func TestPipelinePullRequestRun(t *testing.T) {
	payload := pullRequestPayload(t)
	pl, m := newTestPipeline(t, payload)

	// pull requests diff against the target branch baseline
	targetKey := core.BaselineKey{
		GitProvider: payload.GitProvider,
		OrgID:       payload.OrgID,
		RepoID:      payload.RepoID,
		Branch:      payload.TargetBranch,
	}
	m.baselineStore.On("Fetch", mock.Anything, targetKey).Return(nil, nil)
	m.publisher.On("Publish", mock.Anything, mock.AnythingOfType("core.AnnotationIdentity"), mock.Anything).Return(
		&core.PublishResult{Action: core.PublishCreated, AnnotationID: "ann-1", Attempts: 1}, nil)

	if err := pl.Start(context.TODO()); err != nil {
		t.Errorf("Error in pipeline run, received: %v", err)
	}

	m.baselineStore.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
	// a pull request run never overwrites the branch baseline
	m.baselineStore.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)

	if len(*m.statuses) != 2 || (*m.statuses)[0] != core.Running || (*m.statuses)[1] != core.Passed {
		t.Errorf("Unexpected status sequence, received: %v", *m.statuses)
	}

	select {
	case report := <-pl.ReportChan:
		if report.Summary == "" {
			t.Errorf("Expected rendered report on channel, received: %+v", report)
		}
	default:
		t.Errorf("Expected rendered report on channel")
	}
}

func TestPipelinePushRun(t *testing.T) {
	payload := pushPayload(t)
	pl, m := newTestPipeline(t, payload)

	ownKey := core.BaselineKey{
		GitProvider: payload.GitProvider,
		OrgID:       payload.OrgID,
		RepoID:      payload.RepoID,
		Branch:      payload.BranchName,
	}
	m.baselineStore.On("Fetch", mock.Anything, ownKey).Return(nil, nil)
	m.baselineStore.On("Store", mock.Anything, ownKey, mock.Anything).Return(nil)

	if err := pl.Start(context.TODO()); err != nil {
		t.Errorf("Error in pipeline run, received: %v", err)
	}

	m.baselineStore.AssertExpectations(t)
	// a push run publishes no annotation
	m.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestPipelineFailedPolicy(t *testing.T) {
	payload := pushPayload(t)
	pl, m := newTestPipeline(t, payload)

	m.evaluator.ExpectedCalls = nil
	m.evaluator.On("Evaluate", mock.Anything, mock.Anything, mock.Anything).Return(&core.EvaluationResult{
		Passed:     false,
		BadgeColor: "red",
		Violations: []core.Violation{{Rule: core.RuleMinAggregate}},
	})
	m.baselineStore.On("Fetch", mock.Anything, mock.Anything).Return(nil, nil)
	m.baselineStore.On("Store", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := pl.Start(context.TODO())
	if err == nil {
		t.Errorf("Expected failure for violated policy, received nil")
		return
	}
	if _, ok := err.(*errs.StatusFailed); !ok {
		t.Errorf("Expected *errs.StatusFailed, received: %T", err)
	}
	if (*m.statuses)[len(*m.statuses)-1] != core.Failed {
		t.Errorf("Expected final status %s, received: %v", core.Failed, *m.statuses)
	}
}

func TestPipelinePublishFailure(t *testing.T) {
	payload := pullRequestPayload(t)
	pl, m := newTestPipeline(t, payload)

	m.baselineStore.On("Fetch", mock.Anything, mock.Anything).Return(nil, nil)
	m.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(
		nil, &errs.PublishError{Identity: "github/dummy-org-id/dummy-repo-id/42", Cause: errors.New("store unavailable")})

	err := pl.Start(context.TODO())
	if err == nil {
		t.Errorf("Expected publish failure, received nil")
		return
	}
	if _, ok := err.(*errs.PublishError); !ok {
		t.Errorf("Expected *errs.PublishError, received: %T", err)
	}
	if (*m.statuses)[len(*m.statuses)-1] != core.PublishFailed {
		t.Errorf("Expected final status %s, received: %v", core.PublishFailed, *m.statuses)
	}
}

func TestPipelineInvalidPayload(t *testing.T) {
	payload := pullRequestPayload(t)
	pl, m := newTestPipeline(t, payload)

	m.payloadManager.ExpectedCalls = nil
	m.payloadManager.On("FetchPayload", mock.Anything, mock.Anything).Return(payload, nil)
	m.payloadManager.On("ValidatePayload", mock.Anything, payload).Return(errs.ErrInvalidPayload("Missing repo link"))

	if err := pl.Start(context.TODO()); err == nil {
		t.Errorf("Expected error for invalid payload, received nil")
	}
	// nothing is reported or published for a payload that never validated
	m.task.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	m.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
