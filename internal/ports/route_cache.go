package ports

import "context"

// Port: a key/value store for previously computed routes.
type RouteCache interface {
	// Return the cached route and whether it was present.
	Get(ctx context.Context, key string) (RouteResult, bool, error)
	// Store a route under key.
	Put(ctx context.Context, key string, result RouteResult) error
}
