package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/trainsphere/internal/models"
	"github.com/meltforce/trainsphere/internal/progress"
)

// HTTPClient implements DataSource by calling the TrainSphere REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. The API
// key is only needed for log_workout.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) GetProgress(ctx context.Context, period, category string) (*progress.Overview, error) {
	params := url.Values{}
	if period != "" {
		params.Set("period", period)
	}
	if category != "" {
		params.Set("category", category)
	}

	body, err := c.get(ctx, "/api/v1/progress", params)
	if err != nil {
		return nil, err
	}

	var overview progress.Overview
	if err := json.Unmarshal(body, &overview); err != nil {
		return nil, fmt.Errorf("httpclient: decode progress: %w", err)
	}
	return &overview, nil
}

func (c *HTTPClient) GetWorkout(ctx context.Context, id int64) (*models.SessionDetail, error) {
	body, err := c.get(ctx, "/api/v1/workouts/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, err
	}

	var detail models.SessionDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("httpclient: decode workout: %w", err)
	}
	return &detail, nil
}

func (c *HTTPClient) LogWorkout(ctx context.Context, form url.Values) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/workouts", strings.NewReader(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("httpclient: log workout: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("httpclient: read body: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return 0, fmt.Errorf("httpclient: log workout returned %d: %s", resp.StatusCode, body)
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return 0, fmt.Errorf("httpclient: decode create response: %w", err)
	}
	return created.ID, nil
}

func (c *HTTPClient) GetReport(ctx context.Context) (*models.ReportDocument, error) {
	body, err := c.get(ctx, "/api/v1/report", nil)
	if err != nil {
		return nil, err
	}

	var doc models.ReportDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("httpclient: decode report: %w", err)
	}
	return &doc, nil
}
