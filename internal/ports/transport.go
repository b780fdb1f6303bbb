package ports

import "context"

// Contract for delivering a JSON payload to the routing service.
type Transport interface {
	// Post sends body to url with the given Authorization value and returns the
	// response body of a 2xx answer. Non-2xx answers return *domain.RemoteError.
	Post(ctx context.Context, url string, authorization string, body []byte) ([]byte, error)
}
