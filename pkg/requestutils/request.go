package requestutils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/pkg/errs"
	"github.com/covlens/covlens/pkg/lumber"
)

type requests struct {
	logger  lumber.Logger
	client  http.Client
	backoff backoff.BackOff
}

// New returns a new instance of Requests. The supplied backoff policy governs
// retries of transient failures; pass &backoff.StopBackOff{} to disable them.
func New(logger lumber.Logger, timeout time.Duration, retryPolicy backoff.BackOff) core.Requests {
	return &requests{
		logger:  logger,
		client:  http.Client{Timeout: timeout},
		backoff: retryPolicy,
	}
}

func (r *requests) MakeAPIRequest(ctx context.Context,
	httpMethod, endpoint string,
	body []byte,
	query map[string]interface{},
	headers map[string]string) (respBody []byte, statusCode int, err error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		r.logger.Errorf("error while parsing endpoint %s, %v", endpoint, err)
		return nil, 0, err
	}
	q := u.Query()
	for key, value := range query {
		q.Set(key, fmt.Sprintf("%v", value))
	}
	u.RawQuery = q.Encode()

	operation := func() error {
		respBody, statusCode, err = r.doRequest(ctx, httpMethod, u.String(), body, headers)
		return err
	}
	if err := backoff.Retry(operation, backoff.WithContext(r.backoff, ctx)); err != nil {
		return respBody, statusCode, err
	}
	return respBody, statusCode, nil
}

func (r *requests) doRequest(ctx context.Context,
	httpMethod, endpoint string,
	body []byte,
	headers map[string]string) (respBody []byte, statusCode int, err error) {
	req, err := http.NewRequestWithContext(ctx, httpMethod, endpoint, bytes.NewBuffer(body))
	if err != nil {
		r.logger.Errorf("error while creating http request %v", err)
		// a malformed request will not become valid on retry
		return nil, 0, backoff.Permanent(err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Errorf("error while sending http request %v", err)
		return nil, 0, err
	}
	defer resp.Body.Close()

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		r.logger.Errorf("error while reading http response body %v", err)
		return nil, resp.StatusCode, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		r.logger.Errorf("non OK status %d, body %s", resp.StatusCode, string(respBody))
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return respBody, resp.StatusCode, errs.ErrApiStatus
		}
		return respBody, resp.StatusCode, backoff.Permanent(errs.ErrApiStatus)
	}

	return respBody, resp.StatusCode, nil
}
