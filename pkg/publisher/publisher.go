// Package publisher idempotently creates-or-updates the coverage annotation
// for a pull request. One externally visible annotation exists per identity,
// however many times a run is re-triggered.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/pkg/errs"
	"github.com/covlens/covlens/pkg/global"
	"github.com/covlens/covlens/pkg/lumber"
)

type annotationPublisher struct {
	logger lumber.Logger
	store  core.AnnotationStore

	// mu guards identityLocks; the per-identity locks serialize the
	// lookup-then-update sequence for concurrent runs on the same pull request
	mu            sync.Mutex
	identityLocks map[string]*sync.Mutex
}

// New returns a new instance of AnnotationPublisher
func New(store core.AnnotationStore, logger lumber.Logger) core.AnnotationPublisher {
	return &annotationPublisher{
		logger:        logger,
		store:         store,
		identityLocks: make(map[string]*sync.Mutex),
	}
}

// Publish upserts the annotation for the identity. Republishing unchanged
// content performs zero external writes. Transient store failures are retried
// with bounded exponential backoff; a terminal failure surfaces as a
// PublishError carrying the identity and cause.
func (p *annotationPublisher) Publish(ctx context.Context,
	identity core.AnnotationIdentity,
	report *core.RenderedReport) (*core.PublishResult, error) {
	lock := p.lockFor(identity)
	lock.Lock()
	defer lock.Unlock()

	body := CommentBody(identity, report)

	var result *core.PublishResult
	attempts := 0
	operation := func() error {
		attempts++
		res, err := p.upsert(ctx, identity, body)
		if err != nil {
			if errors.Is(err, errs.ErrStaleAnnotation) {
				// lost the compare-and-swap race, re-read and try again
				p.logger.Warnf("annotation %s modified concurrently, retrying", identity.Key())
				return err
			}
			return err
		}
		result = res
		return nil
	}

	policy := backoff.WithContext(newRetryPolicy(), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		p.logger.Errorf("giving up publishing annotation %s after %d attempt(s): %v",
			identity.Key(), attempts, err)
		return nil, &errs.PublishError{Identity: identity.Key(), Cause: err}
	}
	result.Attempts = attempts
	p.logger.Debugf("annotation %s %s after %d attempt(s)", identity.Key(), result.Action, attempts)
	return result, nil
}

// upsert performs one lookup-then-create-XOR-update round trip.
func (p *annotationPublisher) upsert(ctx context.Context,
	identity core.AnnotationIdentity, body string) (*core.PublishResult, error) {
	existing, err := p.store.FindByMarker(ctx, identity)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			created, createErr := p.store.Create(ctx, identity, body)
			if createErr != nil {
				return nil, createErr
			}
			return &core.PublishResult{Action: core.PublishCreated, AnnotationID: created.ID}, nil
		}
		return nil, err
	}

	if existing.Body == body {
		// identical content, the idempotent no-op path
		return &core.PublishResult{Action: core.PublishSkipped, AnnotationID: existing.ID}, nil
	}

	if err := p.store.Update(ctx, identity, existing.ID, body, existing.ETag); err != nil {
		return nil, err
	}
	return &core.PublishResult{Action: core.PublishUpdated, AnnotationID: existing.ID}, nil
}

func (p *annotationPublisher) lockFor(identity core.AnnotationIdentity) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	lock, ok := p.identityLocks[identity.Key()]
	if !ok {
		lock = &sync.Mutex{}
		p.identityLocks[identity.Key()] = lock
	}
	return lock
}

func newRetryPolicy() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxElapsedTime = global.DefaultPublishExpiry
	return backoff.WithMaxRetries(policy, global.MaxPublishRetries)
}

// CommentBody renders the published comment: the hidden identity marker first,
// then the summary and the fenced table. The marker line is what FindByMarker
// matches on subsequent runs.
func CommentBody(identity core.AnnotationIdentity, report *core.RenderedReport) string {
	marker := fmt.Sprintf(global.AnnotationMarkerFmt, identity.Key())
	return fmt.Sprintf("%s\n**%s**\n\n```\n%s```\n", marker, report.Summary, report.Table)
}
