// Package gateway is the single chokepoint for Servify API calls. It owns
// the access-token lifecycle: attaching the bearer header, detecting a
// rejected token, running the cookie-based refresh exchange, and retrying
// the original request exactly once.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/credstore"
	"github.com/mamasalanang-gerald/Servify-sub000/pkg/logger"
)

const defaultTimeout = 30 * time.Second

// refreshPath is the fixed endpoint of the refresh sub-protocol.
const refreshPath = "/auth/refresh"

// Config configures the gateway client.
type Config struct {
	// BaseURL is the API root, e.g. https://api.servify.app/api/v1.
	BaseURL string
	// HTTPClient is used to execute requests. When nil, a default client
	// with a conservative timeout is used. A cookie jar is attached either
	// way: the refresh token travels in an HTTP-only cookie.
	HTTPClient *http.Client
	// Store holds the access token and session identity.
	Store credstore.Store
	// Logger defaults to a discard logger.
	Logger *logger.Logger
	// Metrics enables instrumentation when non-nil.
	Metrics *Metrics
	// OnAuthFailure runs after an unrecoverable authentication failure,
	// once the store has been cleared. Front ends navigate to login here.
	OnAuthFailure func()
	// RequestsPerSecond throttles outbound requests when > 0.
	RequestsPerSecond float64
	// Burst caps the throttle burst; defaults to 1 when throttling is on.
	Burst int
}

// Client performs authenticated API calls with automatic token refresh.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	store         credstore.Store
	log           *logger.Logger
	metrics       *Metrics
	onAuthFailure func()
	limiter       *rate.Limiter

	// refreshGroup coalesces concurrent refresh attempts: every request
	// that hits a 401 while a refresh is in flight shares its outcome.
	refreshGroup singleflight.Group
}

// New creates a gateway client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("gateway: BaseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("gateway: BaseURL must be a valid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("gateway: BaseURL scheme must be http or https")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("gateway: Store is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("gateway: cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:       baseURL,
		httpClient:    httpClient,
		store:         cfg.Store,
		log:           log,
		metrics:       cfg.Metrics,
		onAuthFailure: cfg.OnAuthFailure,
		limiter:       limiter,
	}, nil
}

// Do executes an API request. A 401 on a non-auth path triggers the
// refresh sub-protocol and a single transparent retry; callers never see
// the intermediate 401. Every other status is returned unmodified for
// interpretation by DecodeResponse.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("gateway: throttle: %w", err)
		}
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("gateway: encode request body: %w", err)
		}
	}

	token, _ := c.store.Get(credstore.KeyToken)
	resp, err := c.execute(ctx, method, path, payload, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || isAuthEndpoint(path) {
		return resp, nil
	}

	// The server rejected the access token. Drop the dead response and
	// run the refresh exchange; auth endpoints are excluded above so a
	// failed login can never recurse into refresh.
	drain(resp)

	newToken, err := c.refresh(ctx)
	if err != nil {
		c.failAuthentication(err)
		return nil, fmt.Errorf("gateway: %w", ErrAuthentication)
	}

	c.log.WithField("path", path).Debug("retrying request with refreshed token")
	return c.execute(ctx, method, path, payload, newToken)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*http.Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*http.Response, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*http.Response, error) {
	return c.Do(ctx, http.MethodPatch, path, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// execute issues one HTTP request with the given token attached.
func (c *Client) execute(ctx context.Context, method, path string, payload []byte, token string) (*http.Response, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("gateway: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.metrics.incInFlight()
	resp, err := c.httpClient.Do(req)
	c.metrics.decInFlight()
	if err != nil {
		return nil, fmt.Errorf("gateway: execute request: %w", err)
	}

	c.metrics.recordRequest(method, resp.StatusCode)
	return resp, nil
}

// refresh runs the cookie-based refresh exchange, coalescing concurrent
// callers behind one in-flight request. On success the new access token
// is stored before any waiter resumes, so every retried request carries
// the same token.
func (c *Client) refresh(ctx context.Context) (string, error) {
	result, err, _ := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		// No bearer token here: the refresh cookie in the jar is the only
		// credential this endpoint accepts.
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+refreshPath, nil)
		if err != nil {
			return nil, fmt.Errorf("gateway: create refresh request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.metrics.recordRefresh("error")
			return nil, fmt.Errorf("gateway: execute refresh: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			c.metrics.recordRefresh("rejected")
			return nil, fmt.Errorf("gateway: refresh rejected with status %d", resp.StatusCode)
		}

		var out struct {
			AccessToken string `json:"accessToken"`
		}
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&out); err != nil {
			c.metrics.recordRefresh("error")
			return nil, fmt.Errorf("gateway: decode refresh response: %w", err)
		}
		if out.AccessToken == "" {
			c.metrics.recordRefresh("error")
			return nil, fmt.Errorf("gateway: refresh response carried no access token")
		}

		if err := c.store.Set(credstore.KeyToken, out.AccessToken); err != nil {
			c.metrics.recordRefresh("error")
			return nil, fmt.Errorf("gateway: store refreshed token: %w", err)
		}

		c.metrics.recordRefresh("success")
		c.log.Debug("access token refreshed")
		return out.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// failAuthentication clears every credential and notifies the front end.
// This is the one error path with a global side effect.
func (c *Client) failAuthentication(cause error) {
	c.log.WithError(cause).Warn("token refresh failed, clearing session")
	if err := c.store.Clear(); err != nil {
		c.log.WithError(err).Error("failed to clear credential store")
	}
	if c.onAuthFailure != nil {
		c.onAuthFailure()
	}
}

// isAuthEndpoint reports whether the path belongs to the authentication
// surface. A 401 from login or refresh means bad credentials, not an
// expired token; refreshing there would loop.
func isAuthEndpoint(path string) bool {
	return strings.Contains(path, "/auth/")
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
}
