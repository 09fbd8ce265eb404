// Package payloadmanager is used for fetching and validating the covlens run payload
package payloadmanager

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/covlens/covlens/config"
	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/pkg/errs"
	"github.com/covlens/covlens/pkg/global"
	"github.com/covlens/covlens/pkg/lumber"
)

// payloadManager represents the payload for covlens
type payloadManager struct {
	logger   lumber.Logger
	cfg      *config.Config
	requests core.Requests
}

// NewPayloadManger creates and returns a new PayloadManager instance
func NewPayloadManger(logger lumber.Logger, cfg *config.Config, requests core.Requests) core.PayloadManager {
	return &payloadManager{
		logger:   logger,
		cfg:      cfg,
		requests: requests,
	}
}

// FetchPayload reads the payload from an http(s) address or a local file path.
// When the payload only carries a records address, the normalized coverage
// records document is fetched from it the same way.
func (pm *payloadManager) FetchPayload(ctx context.Context, payloadAddress string) (*core.Payload, error) {
	rawBytes, err := pm.read(ctx, payloadAddress)
	if err != nil {
		return nil, err
	}
	p := new(core.Payload)
	if err := json.Unmarshal(rawBytes, p); err != nil {
		return nil, err
	}

	if len(p.Records) == 0 && p.RecordsAddress != "" {
		recordBytes, err := pm.read(ctx, p.RecordsAddress)
		if err != nil {
			pm.logger.Errorf("failed to fetch coverage records from %s, error %v", p.RecordsAddress, err)
			return nil, err
		}
		if err := json.Unmarshal(recordBytes, &p.Records); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (pm *payloadManager) read(ctx context.Context, address string) ([]byte, error) {
	if strings.HasPrefix(address, "http://") || strings.HasPrefix(address, "https://") {
		rawBytes, _, err := pm.requests.MakeAPIRequest(ctx, http.MethodGet, address, nil, nil, nil)
		return rawBytes, err
	}
	return ioutil.ReadFile(address)
}

func (pm *payloadManager) ValidatePayload(ctx context.Context, payload *core.Payload) error {
	if payload.RepoLink == "" {
		return errs.ErrInvalidPayload("Missing repo link")
	}

	if payload.RepoSlug == "" {
		return errs.ErrInvalidPayload("Missing repo slug")
	}

	if payload.GitProvider == "" {
		return errs.ErrInvalidPayload("Missing git provider")
	}

	if _, ok := global.APIHostURLMap[payload.GitProvider]; !ok {
		return errs.ErrInvalidPayload("Unsupported git provider")
	}

	if payload.RepoID == "" {
		return errs.ErrInvalidPayload("Missing RepoID")
	}

	if payload.OrgID == "" {
		return errs.ErrInvalidPayload("Missing OrgID")
	}

	if payload.BranchName == "" {
		return errs.ErrInvalidPayload("Missing Branch Name")
	}

	if payload.BuildTargetCommit == "" {
		return errs.ErrInvalidPayload("Missing build target commit")
	}

	if payload.EventType != core.EventPush && payload.EventType != core.EventPullRequest {
		return errs.ErrInvalidPayload("Invalid event type")
	}

	if payload.EventType == core.EventPullRequest {
		if payload.PRNumber <= 0 {
			return errs.ErrInvalidPayload("Missing pull request number")
		}
		if payload.TargetBranch == "" {
			return errs.ErrInvalidPayload("Missing target branch")
		}
	}

	if len(payload.Records) == 0 {
		return errs.ErrInvalidPayload("Missing coverage records")
	}

	return nil
}
