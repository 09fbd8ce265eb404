// Package annotation is the client for the reporter backend's pull request
// annotation API, which proxies the git provider's comment endpoints.
package annotation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cenkalti/backoff/v4"

	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/pkg/errs"
	"github.com/covlens/covlens/pkg/global"
	"github.com/covlens/covlens/pkg/lumber"
	"github.com/covlens/covlens/pkg/requestutils"
	"github.com/covlens/covlens/pkg/utils"
)

type store struct {
	logger   lumber.Logger
	requests core.Requests
	endpoint string
}

type annotationBody struct {
	Identity core.AnnotationIdentity `json:"identity"`
	Body     string                  `json:"body"`
}

// New returns a new instance of AnnotationStore. Retries are left to the
// publisher, so the underlying request layer runs with a stop backoff.
func New(logger lumber.Logger) core.AnnotationStore {
	return &store{
		logger:   logger,
		requests: requestutils.New(logger, global.DefaultAPITimeout, &backoff.StopBackOff{}),
		endpoint: global.ReporterHost + "/annotation",
	}
}

// FindByMarker looks up the annotation carrying the identity marker.
func (s *store) FindByMarker(ctx context.Context, identity core.AnnotationIdentity) (*core.Annotation, error) {
	query, headers := utils.GetDefaultQueryAndHeaders()
	query["provider"] = identity.GitProvider
	query["prNumber"] = identity.PRNumber
	query["marker"] = fmt.Sprintf(global.AnnotationMarkerFmt, identity.Key())

	respBody, statusCode, err := s.requests.MakeAPIRequest(ctx, http.MethodGet, s.endpoint, nil, query, headers)
	if err != nil {
		if statusCode == http.StatusNotFound {
			return nil, errs.ErrNotFound
		}
		s.logger.Errorf("error while looking up annotation %s: %v", identity.Key(), err)
		return nil, err
	}

	annotation := new(core.Annotation)
	if err := json.Unmarshal(respBody, annotation); err != nil {
		s.logger.Errorf("failed to unmarshal annotation response %v", err)
		return nil, err
	}
	return annotation, nil
}

// Create publishes a new annotation for the identity.
func (s *store) Create(ctx context.Context, identity core.AnnotationIdentity, body string) (*core.Annotation, error) {
	reqBody, err := json.Marshal(annotationBody{Identity: identity, Body: body})
	if err != nil {
		s.logger.Errorf("failed to marshal annotation request body %v", err)
		return nil, err
	}

	query, headers := utils.GetDefaultQueryAndHeaders()
	respBody, _, err := s.requests.MakeAPIRequest(ctx, http.MethodPost, s.endpoint, reqBody, query, headers)
	if err != nil {
		s.logger.Errorf("error while creating annotation %s: %v", identity.Key(), err)
		return nil, err
	}

	annotation := new(core.Annotation)
	if err := json.Unmarshal(respBody, annotation); err != nil {
		s.logger.Errorf("failed to unmarshal annotation response %v", err)
		return nil, err
	}
	return annotation, nil
}

// Update replaces the annotation body. The etag rides in the If-Match header;
// a 412 means a concurrent run changed the annotation since the lookup.
func (s *store) Update(ctx context.Context, identity core.AnnotationIdentity, annotationID, body, etag string) error {
	reqBody, err := json.Marshal(annotationBody{Identity: identity, Body: body})
	if err != nil {
		s.logger.Errorf("failed to marshal annotation request body %v", err)
		return err
	}

	query, headers := utils.GetDefaultQueryAndHeaders()
	headers["If-Match"] = etag
	endpoint := fmt.Sprintf("%s/%s", s.endpoint, annotationID)
	_, statusCode, err := s.requests.MakeAPIRequest(ctx, http.MethodPut, endpoint, reqBody, query, headers)
	if err != nil {
		if statusCode == http.StatusPreconditionFailed {
			return errs.ErrStaleAnnotation
		}
		s.logger.Errorf("error while updating annotation %s: %v", identity.Key(), err)
		return err
	}
	return nil
}
