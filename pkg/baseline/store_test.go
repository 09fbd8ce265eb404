package baseline

import (
	"context"
	"testing"

	"github.com/covlens/covlens/config"
	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/testutils"
)

func TestNewStoreRequiresCredentials(t *testing.T) {
	logger, err := testutils.GetLogger()
	if err != nil {
		t.Errorf("Couldn't get logger, received: %s", err)
	}

	cfg := &config.Config{}
	if _, err := NewStore(cfg, logger); err == nil {
		t.Errorf("Expected error for missing storage credentials, received nil")
	}
}

func TestNoopStore(t *testing.T) {
	logger, err := testutils.GetLogger()
	if err != nil {
		t.Errorf("Couldn't get logger, received: %s", err)
	}
	store := NewNoopStore(logger)
	key := core.BaselineKey{GitProvider: "github", OrgID: "dummy-org-id", RepoID: "dummy-repo-id", Branch: "main"}

	snapshot, err := store.Fetch(context.TODO(), key)
	if err != nil {
		t.Errorf("Expected no error from disabled baseline fetch, received: %v", err)
	}
	if snapshot != nil {
		t.Errorf("Expected no baseline snapshot from disabled store, received: %+v", snapshot)
	}

	if err := store.Store(context.TODO(), key, &core.CoverageSnapshot{}); err != nil {
		t.Errorf("Expected no error from disabled baseline store, received: %v", err)
	}
}
