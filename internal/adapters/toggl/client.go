// Package toggl reads tracked time from the Toggl reports API. All
// calls authenticate with the account's api token over basic auth and
// carry the user_agent and workspace_id parameters the reports API
// requires on every request.
package toggl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/JakobGM/quelf/internal/application"
	"github.com/JakobGM/quelf/internal/domain"
	"github.com/JakobGM/quelf/internal/ports"
)

const (
	defaultBaseURL = "https://toggl.com/reports/api/v2"
	defaultTimeout = 30 * time.Second

	dateLayout = "2006-01-02"
)

// Client talks to the Toggl reports API for one workspace.
type Client struct {
	baseURL     string
	apiToken    string
	userAgent   string
	workspaceID string

	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.TimeTracker = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger replaces the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a reports client. The email doubles as the user_agent
// value, which is what the reports API expects it to be.
func New(apiToken, email, workspaceID string, opts ...Option) *Client {
	c := &Client{
		baseURL:     defaultBaseURL,
		apiToken:    apiToken,
		userAgent:   email,
		workspaceID: workspaceID,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type detailsResponse struct {
	TotalCount int           `json:"total_count"`
	PerPage    int           `json:"per_page"`
	Data       []detailedRow `json:"data"`
}

type detailedRow struct {
	ID          int64    `json:"id"`
	Description string   `json:"description"`
	Project     string   `json:"project"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Dur         int64    `json:"dur"`
	Tags        []string `json:"tags"`
}

func (r detailedRow) flatten() domain.TimeEntry {
	entry := domain.TimeEntry{
		ID:          r.ID,
		Description: r.Description,
		Project:     r.Project,
		Duration:    time.Duration(r.Dur) * time.Millisecond,
		Tags:        r.Tags,
	}
	if t, err := time.Parse(time.RFC3339, r.Start); err == nil {
		entry.Start = t
	}
	if t, err := time.Parse(time.RFC3339, r.End); err == nil {
		entry.Stop = t
	}
	return entry
}

// Entries returns every detailed entry between since and until. The
// details report is page numbered, so the client keeps requesting pages
// until the reported total is reached or a page comes back short.
func (c *Client) Entries(ctx context.Context, since, until time.Time) ([]domain.TimeEntry, error) {
	var entries []domain.TimeEntry
	for page := 1; ; page++ {
		params := url.Values{
			"since": {since.Format(dateLayout)},
			"until": {until.Format(dateLayout)},
			"page":  {strconv.Itoa(page)},
		}
		var resp detailsResponse
		if err := c.get(ctx, "/details", params, &resp); err != nil {
			return nil, err
		}
		for _, row := range resp.Data {
			entries = append(entries, row.flatten())
		}

		c.logger.Debug("fetched report page",
			slog.Int("page", page),
			slog.Int("rows", len(resp.Data)),
			slog.Int("total", resp.TotalCount),
		)

		if len(resp.Data) == 0 || len(entries) >= resp.TotalCount {
			break
		}
		if resp.PerPage > 0 && len(resp.Data) < resp.PerPage {
			break
		}
	}
	return entries, nil
}

type summaryResponse struct {
	TotalGrand int64 `json:"total_grand"`
	Data       []struct {
		Title struct {
			Project string `json:"project"`
		} `json:"title"`
		Time  int64 `json:"time"`
		Items []struct {
			Time int64 `json:"time"`
		} `json:"items"`
	} `json:"data"`
}

// Summary aggregates the tracked time between since and until, grouped
// by project.
func (c *Client) Summary(ctx context.Context, since, until time.Time) (domain.TimeSummary, error) {
	params := url.Values{
		"since": {since.Format(dateLayout)},
		"until": {until.Format(dateLayout)},
	}
	var resp summaryResponse
	if err := c.get(ctx, "/summary", params, &resp); err != nil {
		return domain.TimeSummary{}, err
	}

	summary := domain.TimeSummary{
		Total: time.Duration(resp.TotalGrand) * time.Millisecond,
	}
	for _, group := range resp.Data {
		name := group.Title.Project
		if name == "" {
			name = "(no project)"
		}
		summary.ByProject = append(summary.ByProject, domain.ProjectTime{
			Project: name,
			Total:   time.Duration(group.Time) * time.Millisecond,
		})
		summary.EntryCount += len(group.Items)
	}
	return summary, nil
}

// get issues one authenticated report query with the workspace
// parameters merged in and decodes the JSON answer into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.apiToken == "" {
		return &application.ValidationError{
			Field:   "api_token",
			Message: "toggl api token is required",
		}
	}

	query := url.Values{
		"user_agent":   {c.userAgent},
		"workspace_id": {c.workspaceID},
	}
	for key, values := range params {
		query[key] = values
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building report request: %w", err)
	}
	req.SetBasicAuth(c.apiToken, "api_token")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &application.RemoteError{Endpoint: path, Attempts: 1, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("report query %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding report response: %w", err)
	}
	return nil
}
