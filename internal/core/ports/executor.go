package ports

import "context"

// RequestDescriptor describes a single backend call. Built fresh per call and
// never persisted.
type RequestDescriptor struct {
	// Method is one of GET, POST, PUT, DELETE.
	Method string
	// Path is the backend path, joined onto the configured base origin.
	Path string
	// RouteID, when non-empty, is appended to Path as a trailing segment.
	RouteID string
	// Body is the request payload, JSON-encoded when non-nil.
	Body any
	// RequiresAuth attaches the stored bearer token. When no token is
	// stored the executor fails fast with an unauthenticated error and
	// issues no request.
	RequiresAuth bool
}

// Executor sends one request and normalizes the outcome. On HTTP 2xx the
// response body is decoded into out (which may be nil to discard it); every
// failure is a *domain.APIError wrapping one of the domain error kinds.
// Executors perform no retries, caching, or deduplication.
type Executor interface {
	Do(ctx context.Context, desc RequestDescriptor, out any) error
}
