package cache

import (
	"context"
	"errors"
	"itinerary-planner-service/internal/ports"
)

// TieredRouteCache reads through a fast shared tier before a durable one
// and back-fills the fast tier on a durable hit. Writes go to every tier.
type TieredRouteCache struct {
	Tiers []ports.RouteCache
}

func NewTieredRouteCache(tiers ...ports.RouteCache) *TieredRouteCache {
	out := make([]ports.RouteCache, 0, len(tiers))
	for _, t := range tiers {
		if t != nil {
			out = append(out, t)
		}
	}
	return &TieredRouteCache{Tiers: out}
}

func (t *TieredRouteCache) Get(ctx context.Context, key string) (ports.RouteResult, bool, error) {
	var errs []error
	for i, tier := range t.Tiers {
		r, ok, err := tier.Get(ctx, key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			continue
		}

		for _, faster := range t.Tiers[:i] {
			if err := faster.Put(ctx, key, r); err != nil {
				errs = append(errs, err)
			}
		}
		return r, true, nil
	}
	return ports.RouteResult{}, false, errors.Join(errs...)
}

func (t *TieredRouteCache) Put(ctx context.Context, key string, r ports.RouteResult) error {
	var errs []error
	for _, tier := range t.Tiers {
		if err := tier.Put(ctx, key, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
