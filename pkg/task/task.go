package task

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/pkg/global"
	"github.com/covlens/covlens/pkg/lumber"
	"github.com/covlens/covlens/pkg/utils"
)

// task represents each covlens run reporting its status to the backend
type task struct {
	requests core.Requests
	endpoint string
	logger   lumber.Logger
}

// New returns new task
func New(requests core.Requests, logger lumber.Logger) (core.Task, error) {
	return &task{
		requests: requests,
		logger:   logger,
		endpoint: global.ReporterHost + "/run",
	}, nil
}

func (t *task) UpdateStatus(ctx context.Context, payload *core.RunPayload) error {
	t.logger.Debugf("sending status update of run: %s to %s for repository: %s",
		payload.RunID, payload.Status, payload.RepoLink)
	reqBody, err := json.Marshal(payload)
	if err != nil {
		t.logger.Errorf("error while json marshal %v", err)
		return err
	}
	query, headers := utils.GetDefaultQueryAndHeaders()
	if _, _, err := t.requests.MakeAPIRequest(ctx, http.MethodPut, t.endpoint, reqBody, query, headers); err != nil {
		return err
	}

	return nil
}
