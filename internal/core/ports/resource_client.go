package ports

import "context"

// ResourceClient offers generic list/create/update/remove against a named
// backend resource path. Every call is authenticated. Mutations with an
// empty id fail locally as validation errors without touching the network.
// There is no client-side cache: callers re-fetch or apply the returned
// object themselves.
type ResourceClient interface {
	List(ctx context.Context, resourcePath string, out any) error
	Get(ctx context.Context, resourcePath, id string, out any) error
	Create(ctx context.Context, resourcePath string, payload, out any) error
	Update(ctx context.Context, resourcePath, id string, payload, out any) error
	Remove(ctx context.Context, resourcePath, id string, out any) error
}
