package core

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/covlens/covlens/config"
	"github.com/covlens/covlens/pkg/errs"
	"github.com/covlens/covlens/pkg/lumber"
	"github.com/google/uuid"
)

// Pipeline is the sequential coverage reporting run: aggregate, diff,
// evaluate, render, publish. Each stage depends on the prior stage's output.
type Pipeline struct {
	Cfg     *config.Config
	Logger  lumber.Logger
	Payload *Payload

	PayloadManager      PayloadManager
	PolicyManager       PolicyManager
	Aggregator          Aggregator
	BaselineDiffer      BaselineDiffer
	ThresholdEvaluator  ThresholdEvaluator
	ReportRenderer      ReportRenderer
	AnnotationPublisher AnnotationPublisher
	BaselineStore       BaselineStore
	Task                Task

	// ReportChan receives the rendered report of the run for the badge and
	// report API handlers.
	ReportChan chan RenderedReport
}

// NewPipeline creates and returns a new Pipeline instance
func NewPipeline(cfg *config.Config, logger lumber.Logger) (*Pipeline, error) {
	return &Pipeline{
		Cfg:        cfg,
		Logger:     logger,
		ReportChan: make(chan RenderedReport, 1),
	}, nil
}

// Start starts pipeline lifecycle
func (pl *Pipeline) Start(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startTime := time.Now()

	pl.Logger.Debugf("Starting pipeline.....")
	pl.Logger.Debugf("Fetching payload")

	payload, err := pl.PayloadManager.FetchPayload(ctx, pl.Cfg.PayloadAddress)
	if err != nil {
		pl.Logger.Errorf("error while fetching payload: %v", err)
		return err
	}

	// a malformed payload must abort before any publish attempt
	if err = pl.PayloadManager.ValidatePayload(ctx, payload); err != nil {
		pl.Logger.Errorf("error while validating payload %v", err)
		return err
	}
	if payload.RunID == "" {
		payload.RunID = uuid.New().String()
	}
	pl.Payload = payload

	runLogger := pl.Logger.WithFields(lumber.Fields{"runID": payload.RunID, "repo": payload.RepoSlug})
	runLogger.Debugf("Payload for current run: %+v \n", *payload)

	runPayload := &RunPayload{
		RunID:       payload.RunID,
		OrgID:       payload.OrgID,
		RepoID:      payload.RepoID,
		RepoSlug:    payload.RepoSlug,
		RepoLink:    payload.RepoLink,
		GitProvider: payload.GitProvider,
		StartTime:   startTime,
		Status:      Running,
	}

	// marking run to running state
	if err = pl.Task.UpdateStatus(ctx, runPayload); err != nil {
		pl.Logger.Errorf("failed to update run status %v", err)
		return err
	}

	// update run status when pipeline exits
	defer func() {
		runPayload.EndTime = time.Now()
		if p := recover(); p != nil {
			pl.Logger.Errorf("panic stack trace: %v\n%s", p, string(debug.Stack()))
			runPayload.Status = Error
			runPayload.Remark = errs.GenericErrRemark.Error()
		} else if err != nil {
			if errors.Is(err, context.Canceled) {
				runPayload.Status = Aborted
				runPayload.Remark = "Run aborted"
			} else {
				switch err.(type) {
				case *errs.StatusFailed:
					runPayload.Status = Failed
				case *errs.PublishError:
					runPayload.Status = PublishFailed
				default:
					runPayload.Status = Error
				}
				runPayload.Remark = err.Error()
			}
		}
		if updateErr := pl.Task.UpdateStatus(ctx, runPayload); updateErr != nil {
			pl.Logger.Errorf("failed to update run status %v", updateErr)
		}
	}()

	policy, err := pl.PolicyManager.LoadPolicy(ctx, pl.Cfg.PolicyFile)
	if err != nil {
		pl.Logger.Errorf("Unable to load policy file, error: %v", err)
		err = &errs.StatusFailed{Remark: err.Error()}
		return err
	}
	pl.Logger.Infof("Threshold policy: %+v", *policy)

	snapshot, err := pl.Aggregator.Aggregate(ctx, payload.Records)
	if err != nil {
		pl.Logger.Errorf("error while aggregating coverage records %v", err)
		return err
	}

	baseline, err := pl.fetchBaseline(ctx, payload)
	if err != nil {
		pl.Logger.Errorf("error while fetching baseline snapshot %v", err)
		err = errs.New(errs.GenericErrRemark.Error())
		return err
	}
	if baseline == nil {
		pl.Logger.Infof("no baseline snapshot for branch %s, treating all files as added", pl.baselineBranch(payload))
	}

	diff := pl.BaselineDiffer.Diff(baseline, snapshot, policy.Noise)
	evaluation := pl.ThresholdEvaluator.Evaluate(snapshot, diff, policy)

	report, err := pl.ReportRenderer.Render(snapshot, diff, evaluation)
	if err != nil {
		pl.Logger.Errorf("error while rendering report %v", err)
		err = errs.New(errs.GenericErrRemark.Error())
		return err
	}
	if pct, ok := snapshot.Total.CoverPct(); ok {
		runPayload.CoveragePct = pct
	}

	// the computed report is valid output even when publishing fails later
	runLogger.Infof("%s", report.Summary)
	tableWriter := lumber.NewWriter(runLogger)
	if _, werr := tableWriter.Write([]byte(report.Table)); werr != nil {
		pl.Logger.Errorf("failed to log coverage table %v", werr)
	}
	tableWriter.Close()
	select {
	case pl.ReportChan <- *report:
	default:
	}

	if payload.EventType == EventPush {
		key := BaselineKey{
			GitProvider: payload.GitProvider,
			OrgID:       payload.OrgID,
			RepoID:      payload.RepoID,
			Branch:      payload.BranchName,
		}
		if err = pl.BaselineStore.Store(ctx, key, snapshot); err != nil {
			pl.Logger.Errorf("Unable to store baseline snapshot: %v", err)
			err = errs.New(errs.GenericErrRemark.Error())
			return err
		}
		pl.Logger.Debugf("Baseline snapshot stored for branch %s", payload.BranchName)
	}

	if payload.EventType == EventPullRequest {
		identity := AnnotationIdentity{
			GitProvider: payload.GitProvider,
			OrgID:       payload.OrgID,
			RepoID:      payload.RepoID,
			PRNumber:    payload.PRNumber,
		}
		result, publishErr := pl.AnnotationPublisher.Publish(ctx, identity, report)
		if publishErr != nil {
			pl.Logger.Errorf("Unable to publish annotation: %v", publishErr)
			err = publishErr
			return err
		}
		pl.Logger.Infof("annotation %s for pull request #%d", result.Action, payload.PRNumber)
	}

	if !evaluation.Passed {
		err = &errs.StatusFailed{Remark: report.Summary}
		return err
	}

	runPayload.Status = Passed
	runLogger.Debugf("Completed pipeline")

	return nil
}

// fetchBaseline resolves and fetches the baseline snapshot the current run is
// compared against. Pull requests diff against the target branch, pushes
// against the previous snapshot of their own branch.
func (pl *Pipeline) fetchBaseline(ctx context.Context, payload *Payload) (*CoverageSnapshot, error) {
	key := BaselineKey{
		GitProvider: payload.GitProvider,
		OrgID:       payload.OrgID,
		RepoID:      payload.RepoID,
		Branch:      pl.baselineBranch(payload),
	}
	return pl.BaselineStore.Fetch(ctx, key)
}

func (pl *Pipeline) baselineBranch(payload *Payload) string {
	if payload.EventType == EventPullRequest {
		return payload.TargetBranch
	}
	return payload.BranchName
}
