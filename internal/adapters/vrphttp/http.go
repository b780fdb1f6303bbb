package vrphttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"vrp-client/internal/domain"
)

func (t *Transport) newRequest(
	ctx context.Context,
	method string,
	url string,
	authorization string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", authorization)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do sends req and turns any non-2xx answer into *domain.RemoteError.
func (t *Transport) do(req *http.Request) (*http.Response, error) {
	resp, err := t.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, remoteError(resp.StatusCode, b)
	}
	return resp, nil
}

// remoteError extracts the service-reported message from {"error": "..."}
// and falls back to the trimmed body.
func remoteError(code int, body []byte) *domain.RemoteError {
	trimmed := strings.TrimSpace(string(body))
	e := &domain.RemoteError{StatusCode: code, Body: trimmed, Message: trimmed}

	var payload struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != nil {
		switch v := payload.Error.(type) {
		case string:
			e.Message = v
		default:
			if b, err := json.Marshal(v); err == nil {
				e.Message = string(b)
			}
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(code)
	}
	return e
}

// doWithRetry retries transient failures (network errors, 429 and 5xx
// responses) with exponential backoff, up to maxAttempts, while respecting
// context cancellation. With maxAttempts <= 1 it sends exactly once.
func (t *Transport) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	maxAttempts := max(t.maxAttempts, 1)
	backoff := t.backoff

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if t.limiter != nil {
			if err := t.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limit wait: %w", err)
			}
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := t.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var re *domain.RemoteError
		if errors.As(err, &re) {
			switch re.StatusCode {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
