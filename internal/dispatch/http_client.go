package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const precomputePath = "/precompute-embedding"

// HTTPClient notifies the enrichment worker over its HTTP endpoint.
type HTTPClient struct {
	workerURL  string
	httpClient *http.Client
}

// NewHTTPClient constructs an HTTP-backed dispatcher for the given worker
// base URL. The timeout bounds each notification.
func NewHTTPClient(workerURL string, timeout time.Duration) (*HTTPClient, error) {
	workerURL = strings.TrimRight(strings.TrimSpace(workerURL), "/")
	if workerURL == "" {
		return nil, fmt.Errorf("WORKER_URL is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		workerURL:  workerURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type dispatchRequest struct {
	Email string `json:"email"`
}

type dispatchResponse struct {
	TaskID string `json:"task_id"`
}

// Dispatch sends one notification and returns the worker's tracking token.
func (c *HTTPClient) Dispatch(ctx context.Context, owner string) (string, error) {
	endpoint := c.workerURL + precomputePath

	payload, err := json.Marshal(dispatchRequest{Email: owner})
	if err != nil {
		return "", &DispatchError{Endpoint: endpoint, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &DispatchError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &DispatchError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &DispatchError{Endpoint: endpoint, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &DispatchError{Endpoint: endpoint, Err: err}
	}

	var parsed dispatchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &DispatchError{Endpoint: endpoint, Err: fmt.Errorf("decode worker response: %w", err)}
	}
	if strings.TrimSpace(parsed.TaskID) == "" {
		return "", &DispatchError{Endpoint: endpoint, Err: fmt.Errorf("worker response missing task_id")}
	}
	return parsed.TaskID, nil
}

var _ Dispatcher = (*HTTPClient)(nil)
