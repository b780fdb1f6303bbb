package vrphttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"time"
	"vrp-client/internal/domain"
	"vrp-client/internal/metrics"
	"vrp-client/internal/platform/obs"
	"vrp-client/internal/ports"

	"golang.org/x/time/rate"
)

// Transport implements ports.Transport over net/http.
//
// It owns:
//   - Request headers (Authorization, Accept, Content-Type)
//   - Mapping non-2xx answers to *domain.RemoteError
//   - Optional retry/backoff and client-side rate limiting
//   - Call metrics
//
// The transport is safe for concurrent use.
type Transport struct {
	session     *http.Client
	timeout     time.Duration
	maxAttempts int
	backoff     time.Duration
	limiter     *rate.Limiter
}

type Option func(*Transport)

func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) { t.session = c }
}

// WithTimeout bounds each request. It applies to a copy of the session
// client, so a client passed to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) { t.timeout = d }
}

// WithMaxAttempts enables retries of transient failures. 1 disables retrying.
func WithMaxAttempts(n int) Option {
	return func(t *Transport) { t.maxAttempts = n }
}

func WithBackoff(d time.Duration) Option {
	return func(t *Transport) { t.backoff = d }
}

// WithRateLimit caps outgoing requests at perSecond. Zero or less disables the limiter.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(t *Transport) {
		if perSecond <= 0 {
			t.limiter = nil
			return
		}
		t.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}
}

func New(opts ...Option) *Transport {
	t := &Transport{
		session:     &http.Client{Timeout: 60 * time.Second},
		maxAttempts: 1,
		backoff:     200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.timeout > 0 {
		session := *t.session
		session.Timeout = t.timeout
		t.session = &session
	}
	return t
}

func (t *Transport) Post(
	ctx context.Context,
	url string,
	authorization string,
	body []byte,
) (_ []byte, err error) {
	endpoint := path.Base(url)
	defer obs.Time(ctx, "vrphttp.Post "+endpoint)(&err)

	start := time.Now()
	defer func() {
		metrics.RemoteDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		metrics.RemoteRequests.WithLabelValues(endpoint, statusLabel(err)).Inc()
	}()

	resp, err := t.doWithRetry(ctx, func() (*http.Request, error) {
		return t.newRequest(ctx, http.MethodPost, url, authorization, bytes.NewReader(body))
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return b, nil
}

func statusLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var re *domain.RemoteError
	if errors.As(err, &re) {
		return strconv.Itoa(re.StatusCode)
	}
	return "error"
}

var _ ports.Transport = (*Transport)(nil)
