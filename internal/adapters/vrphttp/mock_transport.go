package vrphttp

import (
	"context"
	"fmt"
	"sync"
	"vrp-client/internal/ports"
)

type MockCall struct {
	URL           string
	Authorization string
	Body          []byte
}

type MockResponse struct {
	Status int
	Body   string
}

// MockTransport answers by URL with canned responses and records every call.
type MockTransport struct {
	mu        sync.Mutex
	responses map[string]MockResponse
	calls     []MockCall
}

func NewMockTransport(responses map[string]MockResponse) *MockTransport {
	return &MockTransport{responses: responses}
}

func (m *MockTransport) Post(ctx context.Context, url string, authorization string, body []byte) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{URL: url, Authorization: authorization, Body: append([]byte(nil), body...)})
	r, ok := m.responses[url]
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("no mock response for %q", url)
	}
	if r.Status != 0 && (r.Status < 200 || r.Status > 299) {
		return nil, remoteError(r.Status, []byte(r.Body))
	}
	return []byte(r.Body), nil
}

func (m *MockTransport) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

var _ ports.Transport = (*MockTransport)(nil)
