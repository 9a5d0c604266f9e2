package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/neonpanda/neonpanda-client/internal/telemetry/metrics"
	"github.com/neonpanda/neonpanda-client/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// count and coach-record responses are cached briefly so that the three
	// navigation surfaces refreshing together do not triple every call
	countCacheExpireSeconds = 30
	coachCacheExpireSeconds = 5 * 60
)

// Client wraps the NeonPanda backend REST API. All methods take a context
// and return normalized errors (*Error, ErrNotFound via errors.Is).
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	cache      *freecache.Cache
	metrics    *metrics.Manager
}

func NewClient(baseURL, authToken string, httpClient *http.Client, m *metrics.Manager) *Client {
	megabyte := 1024 * 1024
	cacheSize := 2 * megabyte

	return &Client{
		baseURL:    baseURL,
		authToken:  authToken,
		httpClient: httpClient,
		cache:      freecache.NewCache(cacheSize),
		metrics:    m,
	}
}

// NewHTTPClient builds the instrumented HTTP client the backend wrapper
// expects; kept separate so tests can supply a test server's client instead.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func (c *Client) getJSON(
	ctx context.Context,
	resource, operation, path string,
	query url.Values,
	out any,
) error {
	_, err := c.do(ctx, http.MethodGet, resource, operation, path, query, nil, out)
	return err
}

// getJSONCached consults the in-process cache before hitting the backend and
// stores the raw response bytes on success.
func (c *Client) getJSONCached(
	ctx context.Context,
	resource, operation, path string,
	query url.Values,
	expireSeconds int,
	out any,
) error {
	cacheKey := path
	if len(query) > 0 {
		cacheKey += "?" + query.Encode()
	}

	if cachedBytes, err := c.cache.Get([]byte(cacheKey)); err == nil {
		if err = json.Unmarshal(cachedBytes, out); err == nil {
			log.Tracef("api: cache hit for %s", cacheKey)
			return nil
		}
		log.Errorf("api: failed to unmarshal cached response for %s: %s", cacheKey, err)
	}

	respBytes, err := c.do(ctx, http.MethodGet, resource, operation, path, query, nil, out)
	if err != nil {
		return err
	}

	if err := c.cache.Set([]byte(cacheKey), respBytes, expireSeconds); err != nil {
		log.Errorf("api: failed to cache response for %s: %s", cacheKey, err)
	}
	return nil
}

func (c *Client) sendJSON(
	ctx context.Context,
	resource, operation, method, path string,
	body any,
	out any,
) error {
	_, err := c.do(ctx, method, resource, operation, path, nil, body, out)
	return err
}

// InvalidateCache drops every cached response; called after mutations so
// stale counts do not linger.
func (c *Client) InvalidateCache() {
	c.cache.Clear()
}

func (c *Client) do(
	ctx context.Context,
	method, resource, operation, path string,
	query url.Values,
	body any,
	out any,
) (respBytes []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, fmt.Sprintf("api.%s.%s", resource, operation))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if c.metrics != nil {
		c.metrics.CounterAPICalls.WithLabelValues(resource, operation).Inc()
		defer func() {
			if err != nil {
				c.metrics.CounterAPIErrors.WithLabelValues(resource, operation).Inc()
			}
		}()
		start := time.Now()
		defer func() {
			c.metrics.HistogramAPICallDuration.WithLabelValues(resource).
				Observe(time.Since(start).Seconds())
		}()
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	log.Debugf("api: %s %s", method, reqURL)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, merr := json.Marshal(body)
		if merr != nil {
			return nil, fmt.Errorf("marshal %s request body: %w", resource, merr)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	if method != http.MethodGet {
		req.Header.Set("X-Request-Id", uuid.NewString())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response bytes: %w", resource, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, normalizeHTTPError(resp.StatusCode, respBytes, resource)
	}

	if out != nil {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s response bytes: %w", resource, err)
		}
	}

	return respBytes, nil
}
