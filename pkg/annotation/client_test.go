package annotation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/pkg/errs"
	"github.com/covlens/covlens/pkg/global"
	"github.com/covlens/covlens/testutils"
)

var testIdentity = core.AnnotationIdentity{
	GitProvider: "github",
	OrgID:       "dummy-org-id",
	RepoID:      "dummy-repo-id",
	PRNumber:    42,
}

func TestFindByMarker(t *testing.T) {
	logger, err := testutils.GetLogger()
	if err != nil {
		t.Errorf("Couldn't get logger, received: %s", err)
	}

	existing := core.Annotation{ID: "ann-1", Body: "previous body", ETag: "v1"}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/annotation" {
			t.Errorf("Expected GET /annotation, received: %s %s", r.Method, r.URL.Path)
		}
		marker := r.URL.Query().Get("marker")
		if marker != fmt.Sprintf(global.AnnotationMarkerFmt, testIdentity.Key()) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := json.NewEncoder(w).Encode(existing); err != nil {
			t.Errorf("Couldn't encode response, received: %s", err)
		}
	}))
	defer server.Close()
	global.SetReporterHost(server.URL)
	s := New(logger)

	t.Run("annotation present", func(t *testing.T) {
		annotation, err := s.FindByMarker(context.TODO(), testIdentity)
		if err != nil {
			t.Errorf("Error in looking up annotation, received: %v", err)
			return
		}
		if annotation.ID != "ann-1" || annotation.ETag != "v1" {
			t.Errorf("Unexpected annotation, received: %+v", annotation)
		}
	})

	t.Run("annotation absent", func(t *testing.T) {
		absent := testIdentity
		absent.PRNumber = 99
		_, err := s.FindByMarker(context.TODO(), absent)
		if !errors.Is(err, errs.ErrNotFound) {
			t.Errorf("Expected errs.ErrNotFound, received: %v", err)
		}
	})
}

func TestCreate(t *testing.T) {
	logger, err := testutils.GetLogger()
	if err != nil {
		t.Errorf("Couldn't get logger, received: %s", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/annotation" {
			t.Errorf("Expected POST /annotation, received: %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			Identity core.AnnotationIdentity `json:"identity"`
			Body     string                  `json:"body"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Couldn't decode request body, received: %s", err)
		}
		if req.Identity != testIdentity || req.Body != "new body" {
			t.Errorf("Unexpected create request, received: %+v", req)
		}
		if err := json.NewEncoder(w).Encode(core.Annotation{ID: "ann-2", Body: req.Body, ETag: "v1"}); err != nil {
			t.Errorf("Couldn't encode response, received: %s", err)
		}
	}))
	defer server.Close()
	global.SetReporterHost(server.URL)
	s := New(logger)

	annotation, err := s.Create(context.TODO(), testIdentity, "new body")
	if err != nil {
		t.Errorf("Error in creating annotation, received: %v", err)
		return
	}
	if annotation.ID != "ann-2" {
		t.Errorf("Unexpected annotation id, received: %s", annotation.ID)
	}
}

func TestUpdate(t *testing.T) {
	logger, err := testutils.GetLogger()
	if err != nil {
		t.Errorf("Couldn't get logger, received: %s", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/annotation/ann-1" {
			t.Errorf("Expected PUT /annotation/ann-1, received: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("If-Match") != "v1" {
			w.WriteHeader(http.StatusPreconditionFailed)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	global.SetReporterHost(server.URL)
	s := New(logger)

	t.Run("matching etag", func(t *testing.T) {
		if err := s.Update(context.TODO(), testIdentity, "ann-1", "updated body", "v1"); err != nil {
			t.Errorf("Error in updating annotation, received: %v", err)
		}
	})

	t.Run("stale etag", func(t *testing.T) {
		err := s.Update(context.TODO(), testIdentity, "ann-1", "updated body", "v0")
		if !errors.Is(err, errs.ErrStaleAnnotation) {
			t.Errorf("Expected errs.ErrStaleAnnotation, received: %v", err)
		}
	})
}
