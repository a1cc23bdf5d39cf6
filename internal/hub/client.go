// Package hub is a client for the package hub HTTP API.
package hub

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"sync"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/cenk/backoff"
	"github.com/google/uuid"
	"github.com/rs/dnscache"
	circuit "github.com/rubyist/circuitbreaker"
	"golang.org/x/time/rate"

	"hubgrip/internal/domain"
	"hubgrip/internal/log"
)

var logger = log.ForService("hub")

const (
	searchPath       = "/api/v1/packages/search"
	availabilityPath = "/api/v1/check-availability"
	packagesPath     = "/api/v1/packages"

	totalCountHeader = "Pagination-Total-Count"
	requestIDHeader  = "X-Request-Id"

	maxBodySize = 16 << 20
)

// Searcher runs package searches
type Searcher interface {
	SearchPackages(ctx context.Context, in SearchInput) (*domain.SearchResults, error)
}

// Client talks to a hub instance. It is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	client     *http.Client
	userAgent  string
	maxRetries int
	baseDelay  time.Duration
	limiter    *rate.Limiter
	breaker    *circuit.Breaker

	stop      chan struct{}
	closeOnce sync.Once
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.client = c
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// WithMaxRetries sets how often a transient failure is retried.
func WithMaxRetries(n int) Option {
	return func(cl *Client) {
		if n >= 0 {
			cl.maxRetries = n
		}
	}
}

// WithBaseDelay sets the initial backoff between retries.
func WithBaseDelay(d time.Duration) Option {
	return func(cl *Client) {
		cl.baseDelay = d
	}
}

// WithRateLimit paces outgoing requests. Zero or less disables pacing.
func WithRateLimit(rps float64) Option {
	return func(cl *Client) {
		if rps <= 0 {
			cl.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		cl.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.client.Timeout = d
		}
	}
}

// NewClient creates a client for the hub at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parse hub url `%s`", baseURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("hub url `%s` must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    u,
		userAgent:  "hubgrip/1.0",
		maxRetries: 2,
		baseDelay:  300 * time.Millisecond,
		limiter:    rate.NewLimiter(rate.Limit(5), 5),
		breaker:    newBreaker(),
		stop:       make(chan struct{}),
	}
	c.client = &http.Client{
		Timeout:   15 * time.Second,
		Transport: c.newTransport(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) newTransport() *http.Transport {
	resolver := &dnscache.Resolver{}
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				resolver.Refresh(true)
			case <-c.stop:
				return
			}
		}
	}()

	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			ips, err := resolver.LookupHost(ctx, host)
			if err != nil {
				return nil, err
			}
			var lastErr error
			for _, ip := range ips {
				conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
				if err == nil {
					return conn, nil
				}
				lastErr = err
			}
			return nil, errors.Wrapf(lastErr, "dial any resolved ip of %s", host)
		},
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// newBreaker trips after 5 consecutive transient failures
func newBreaker() *circuit.Breaker {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 5 * time.Second
	expBackoff.MaxInterval = time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	return circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(5),
	})
}

// Close releases background resources
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.stop)
	})
}

// BreakerOpen reports whether requests are currently short-circuited
func (c *Client) BreakerOpen() bool {
	return c.breaker.Tripped()
}

type response struct {
	status int
	header http.Header
	body   []byte
}

// do runs a request with pacing, retries and the circuit breaker.
// Only transient failures are retried or count against the breaker.
func (c *Client) do(ctx context.Context, method, p string, query url.Values) (*response, error) {
	u := *c.baseURL
	u.Path = path.Join(c.baseURL.Path, p)
	u.RawQuery = query.Encode()
	target := u.String()

	if !c.breaker.Ready() {
		return nil, errors.Wrapf(ErrUpstreamDown, "circuit open for %s", c.baseURL.Host)
	}

	var (
		resp      *response
		permanent error
		attempt   int
	)
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.baseDelay
	policy.MaxElapsedTime = 0

	err := backoff.Retry(func() error {
		attempt++
		callErr := c.breaker.Call(func() error {
			r, err := c.attempt(ctx, method, target)
			if err != nil && transient(err) {
				return err
			}
			resp, permanent = r, err
			return nil
		}, 0)
		if errors.Is(callErr, circuit.ErrBreakerOpen) {
			permanent = errors.Wrapf(ErrUpstreamDown, "circuit open for %s", c.baseURL.Host)
			return nil
		}
		if callErr != nil {
			logger.Debugf("%s %s attempt %d failed: %v", method, target, attempt, callErr)
		}
		return callErr
	}, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.maxRetries)), ctx))

	if permanent != nil {
		return nil, permanent
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) attempt(ctx context.Context, method, target string) (*response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "wait for rate limiter")
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrapf(ErrUpstreamDown, "%s %s: %v", method, target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrapf(ErrUpstreamDown, "read body of %s: %v", target, err)
	}
	logger.Debugf("%s %s -> %d in %s", method, target, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return &response{status: resp.StatusCode, header: resp.Header, body: body}, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, errors.Wrapf(ErrUpstreamDown, "status %d", resp.StatusCode)
	default:
		if len(body) > 1024 {
			body = body[:1024]
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: target, Body: string(body)}
	}
}

type searchResponse struct {
	Packages []domain.Package `json:"packages"`
	Facets   []domain.Facet   `json:"facets"`
}

// SearchPackages fetches one page of search results
func (c *Client) SearchPackages(ctx context.Context, in SearchInput) (*domain.SearchResults, error) {
	resp, err := c.do(ctx, http.MethodGet, searchPath, in.Values())
	if err != nil {
		return nil, errors.Wrapf(err, "search packages (%s)", in)
	}

	var body searchResponse
	if err := json.Unmarshal(resp.body, &body); err != nil {
		return nil, errors.Wrap(err, "decode search response")
	}

	total := len(body.Packages)
	if h := resp.header.Get(totalCountHeader); h != "" {
		n, err := strconv.Atoi(h)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s header `%s`", totalCountHeader, h)
		}
		total = n
	}

	results := &domain.SearchResults{
		Packages: body.Packages,
		Facets:   body.Facets,
		Metadata: domain.Metadata{Offset: in.Offset, Total: total, Limit: in.Limit},
	}
	if results.Packages == nil {
		results.Packages = []domain.Package{}
	}
	if results.Facets == nil {
		results.Facets = []domain.Facet{}
	}
	return results, nil
}

// CheckAvailability reports whether value is still free for resourceKind
// (for example "repositoryName" or "userAlias")
func (c *Client) CheckAvailability(ctx context.Context, resourceKind, value string) (bool, error) {
	q := url.Values{}
	q.Set("v", value)
	_, err := c.do(ctx, http.MethodHead, path.Join(availabilityPath, resourceKind), q)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, ErrNotFound):
		return true, nil
	default:
		return false, errors.Wrapf(err, "check availability of %s `%s`", resourceKind, value)
	}
}

// GetPackage fetches a package with its readme
func (c *Client) GetPackage(ctx context.Context, kind domain.RepositoryKind, repoName, packageName string) (*domain.Package, error) {
	p := path.Join(packagesPath, kind.Slug(), repoName, packageName)
	resp, err := c.do(ctx, http.MethodGet, p, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "get package %s/%s", repoName, packageName)
	}

	var pkg domain.Package
	if err := json.Unmarshal(resp.body, &pkg); err != nil {
		return nil, errors.Wrap(err, "decode package")
	}
	return &pkg, nil
}
