// Package sleepcycle talks to the SleepSecure web service. The service
// has no public API: the client authenticates with a form POST the way
// the website does, keeps the session cookies, and reads sleep sessions
// through the endpoints the site's own frontend uses.
package sleepcycle

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/JakobGM/quelf/internal/application"
	"github.com/JakobGM/quelf/internal/domain"
	"github.com/JakobGM/quelf/internal/ports"
)

const (
	defaultBaseURL   = "https://s.sleepcycle.com"
	defaultTimeout   = 30 * time.Second
	defaultRateLimit = time.Second
	defaultRetries   = 3
	defaultBackoff   = 500 * time.Millisecond

	loginPath    = "/site/login"
	sessionsPath = "/sleepsessions"
	sessionPath  = "/v1/sleepsessions/%d"
	exportPath   = "/export/original"
)

// sessionIDPattern matches the session links on the session list page.
var sessionIDPattern = regexp.MustCompile(`sleepsessions?/(\d+)`)

// Client is an authenticated handle on SleepSecure. It implements both
// ports.SessionSource and ports.ExportSource. The service throttles to
// roughly one request per second, so the client spaces out its calls
// and retries transient failures a bounded number of times.
//
// Client is not safe for concurrent use.
type Client struct {
	baseURL  string
	email    string
	password string

	httpClient *http.Client
	rateLimit  time.Duration
	retries    int
	retryDelay time.Duration
	logger     *slog.Logger

	loggedIn bool
	lastCall time.Time
}

var (
	_ ports.SessionSource = (*Client)(nil)
	_ ports.ExportSource  = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different service root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is
// attached if the given client has none, since the login flow depends
// on session cookies.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRateLimit sets the minimum spacing between remote calls. Zero
// disables throttling.
func WithRateLimit(d time.Duration) Option {
	return func(c *Client) {
		c.rateLimit = d
	}
}

// WithRetries sets how many attempts a remote call gets before it fails
// with ErrRemoteUnavailable.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.retries = n
		}
	}
}

// WithRetryDelay sets the base delay between retry attempts. The delay
// grows linearly with the attempt number.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithLogger replaces the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the given account. No network traffic happens
// until the first query needs an authenticated session.
func New(email, password string, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL:    defaultBaseURL,
		email:      email,
		password:   password,
		httpClient: &http.Client{Timeout: defaultTimeout, Jar: jar},
		rateLimit:  defaultRateLimit,
		retries:    defaultRetries,
		retryDelay: defaultBackoff,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient.Jar == nil {
		c.httpClient.Jar = jar
	}
	return c
}

// Login authenticates against the service immediately instead of waiting
// for the first query. Useful for validating credentials up front.
func (c *Client) Login(ctx context.Context) error {
	return c.ensureSession(ctx)
}

// ensureSession performs the website's login dance once: a GET to pick
// up the initial cookies, then a form POST with the credentials. The
// resulting session cookies live in the client's jar.
func (c *Client) ensureSession(ctx context.Context) error {
	if c.loggedIn {
		return nil
	}
	if c.email == "" || c.password == "" {
		return &application.ValidationError{
			Field:   "credentials",
			Message: "sleepcycle email and password are required",
		}
	}

	resp, err := c.do(ctx, http.MethodGet, c.baseURL+loginPath, nil)
	if err != nil {
		return fmt.Errorf("loading login page: %w", err)
	}
	drain(resp)

	form := url.Values{
		"username": {c.email},
		"password": {c.password},
	}
	resp, err = c.do(ctx, http.MethodPost, c.baseURL+loginPath, form)
	if err != nil {
		return fmt.Errorf("submitting credentials: %w", err)
	}
	drain(resp)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusFound {
		return fmt.Errorf("login rejected with status %d", resp.StatusCode)
	}

	c.loggedIn = true
	c.logger.Debug("authenticated against sleep service", slog.String("account", c.email))
	return nil
}

// Bounds reads the session list page and extracts the two boundary ids
// from its markup. The page has listed sessions in both orders across
// site revisions, so the caller must not assume which id comes first;
// domain.WalkBounds.Normalize settles it, since ids ascend
// chronologically. A page without any session links means the account
// has no recorded history yet.
func (c *Client) Bounds(ctx context.Context) (domain.WalkBounds, error) {
	if err := c.ensureSession(ctx); err != nil {
		return domain.WalkBounds{}, err
	}

	resp, err := c.do(ctx, http.MethodGet, c.baseURL+sessionsPath, nil)
	if err != nil {
		return domain.WalkBounds{}, fmt.Errorf("loading session list: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return domain.WalkBounds{}, fmt.Errorf("session list returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.WalkBounds{}, fmt.Errorf("reading session list: %w", err)
	}

	matches := sessionIDPattern.FindAllStringSubmatch(string(body), -1)
	if len(matches) == 0 {
		return domain.WalkBounds{}, nil
	}

	first, err := strconv.Atoi(matches[0][1])
	if err != nil {
		return domain.WalkBounds{}, fmt.Errorf("parsing boundary id %q: %w", matches[0][1], err)
	}
	last, err := strconv.Atoi(matches[len(matches)-1][1])
	if err != nil {
		return domain.WalkBounds{}, fmt.Errorf("parsing boundary id %q: %w", matches[len(matches)-1][1], err)
	}

	return domain.WalkBounds{OldestID: first, NewestID: last}, nil
}

// FetchSession retrieves one session by exact id, or the session next
// to a given id. The service signals a missing neighbour with an empty
// or non-JSON body, which surfaces as ErrNoAdjacentSession. An exact
// fetch that fails to parse is a genuine error and propagates as is.
func (c *Client) FetchSession(ctx context.Context, id int, dir domain.Direction) (domain.Session, error) {
	if err := c.ensureSession(ctx); err != nil {
		return domain.Session{}, err
	}

	endpoint := c.baseURL + fmt.Sprintf(sessionPath, id)
	if dir == domain.DirectionNext || dir == domain.DirectionPrevious {
		endpoint += "?direction=" + dir.String()
	}

	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Session{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Session{}, fmt.Errorf("reading session response: %w", err)
	}

	s, err := domain.ParseSession(body)
	if err != nil {
		if dir == domain.DirectionNext || dir == domain.DirectionPrevious {
			return domain.Session{}, fmt.Errorf("no %s session relative to %d: %w",
				dir, id, application.ErrNoAdjacentSession)
		}
		return domain.Session{}, fmt.Errorf("session %d: %w", id, err)
	}
	return s, nil
}

// do issues one HTTP request, spacing calls per the rate limit and
// retrying transport failures and 5xx/429 answers with a linearly
// growing delay. The request is rebuilt on every attempt so that form
// bodies can be resent.
func (c *Client) do(ctx context.Context, method, rawURL string, form url.Values) (*http.Response, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if attempt > 1 {
			c.logger.Debug("retrying request",
				slog.String("url", rawURL),
				slog.Int("attempt", attempt),
			)
			select {
			case <-time.After(time.Duration(attempt-1) * c.retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if err := c.throttle(ctx); err != nil {
			return nil, err
		}

		var body io.Reader
		if form != nil {
			body = strings.NewReader(form.Encode())
		}
		req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}
		if form != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}

		resp, err := c.httpClient.Do(req)
		c.lastCall = time.Now()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("status %s", resp.Status)
			drain(resp)
			continue
		}
		return resp, nil
	}

	endpoint := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		endpoint = u.Path
	}
	return nil, &application.RemoteError{Endpoint: endpoint, Attempts: c.retries, Err: lastErr}
}

// throttle waits until the rate limit allows the next call.
func (c *Client) throttle(ctx context.Context) error {
	if c.rateLimit <= 0 {
		return nil
	}
	wait := c.rateLimit - time.Since(c.lastCall)
	if wait <= 0 {
		return nil
	}
	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// drain discards and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
