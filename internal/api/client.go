package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the weather analysis backend. Thread-safe for concurrent
// use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL. The timeout applies
// to every request.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Upload sends a weather data file for analysis as a multipart form.
func (c *Client) Upload(ctx context.Context, filename string, data io.Reader) (*UploadResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, &TransportError{Op: "upload", Err: err}
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, &TransportError{Op: "upload", Err: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &TransportError{Op: "upload", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &body)
	if err != nil {
		return nil, &TransportError{Op: "upload", Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp UploadResponse
	if err := c.do(req, "upload", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// JobStatus fetches the current status (and result, when finished) of a job.
func (c *Client) JobStatus(ctx context.Context, jobID string) (*StatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/jobs/"+url.PathEscape(jobID), nil)
	if err != nil {
		return nil, &TransportError{Op: "job status", Err: err}
	}

	var resp StatusResponse
	if err := c.do(req, "job status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListJobs fetches the backend's recent-jobs window. The returned order is
// whatever the backend provides.
func (c *Client) ListJobs(ctx context.Context) ([]JobSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/jobs", nil)
	if err != nil {
		return nil, &TransportError{Op: "list jobs", Err: err}
	}

	var resp []JobSummary
	if err := c.do(req, "list jobs", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteJob removes a job and its stored result. Deleting an id the backend
// no longer knows is an ordinary failure, not a special case.
func (c *Client) DeleteJob(ctx context.Context, jobID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/api/jobs/"+url.PathEscape(jobID), nil)
	if err != nil {
		return &TransportError{Op: "delete job", Err: err}
	}
	return c.do(req, "delete job", nil)
}

// do executes the request, classifies failures and decodes a 2xx body into
// out when out is non-nil.
func (c *Client) do(req *http.Request, op string, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(responseBody, &payload); err == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(responseBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return nil
}
