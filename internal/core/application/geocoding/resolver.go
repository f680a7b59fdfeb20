// Package geocoding resolves postal codes to coordinates for batch
// generation.
//
// A Resolver answers from its own in-memory Cache first, then from an
// optional persistent ports.GeocodeCache, and only then calls the upstream
// ports.Geocoder. Concurrent requests for the same postal code share a single
// upstream call. Failures are reported as *ports.GeocodeFailureError and are
// never cached.
package geocoding

import (
	"context"
	"log/slog"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/metrics"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultConcurrency bounds the parallel upstream lookups of ResolveAll.
const DefaultConcurrency = 4

var ErrGeocoderIsRequired = errs.NewValueIsRequiredError("geocoder")

// Resolver turns postal codes into coordinates with memoization.
type Resolver struct {
	geocoder    ports.Geocoder
	store       ports.GeocodeCache
	cache       *Cache
	group       singleflight.Group
	concurrency int
	metrics     *metrics.Dispatch
	logger      *slog.Logger
}

type Option func(*Resolver)

// WithPersistentCache consults and fills store around upstream lookups.
func WithPersistentCache(store ports.GeocodeCache) Option {
	return func(r *Resolver) { r.store = store }
}

// WithCache shares an existing in-memory cache.
func WithCache(cache *Cache) Option {
	return func(r *Resolver) {
		if cache != nil {
			r.cache = cache
		}
	}
}

func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

func WithMetrics(m *metrics.Dispatch) Option {
	return func(r *Resolver) { r.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewResolver(geocoder ports.Geocoder, opts ...Option) (*Resolver, error) {
	if geocoder == nil {
		return nil, ErrGeocoderIsRequired
	}

	r := &Resolver{
		geocoder:    geocoder,
		cache:       NewCache(),
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "geocode-resolver")

	return r, nil
}

// Cache returns the resolver's in-memory cache.
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Resolve returns the coordinates of postalCode. Surrounding whitespace is
// ignored. Any failure is a *ports.GeocodeFailureError.
func (r *Resolver) Resolve(ctx context.Context, postalCode string) (kernel.GeoPoint, error) {
	code := strings.TrimSpace(postalCode)
	if code == "" {
		return kernel.GeoPoint{}, ports.NewGeocodeFailureError(postalCode, errs.NewValueIsRequiredError("postalCode"))
	}

	if p, ok := r.cache.Get(code); ok {
		r.metrics.GeocodeCacheHit(metrics.TierMemory)
		return p, nil
	}

	// Joined callers must not inherit the cancellation of the caller that
	// started the flight; each one stops waiting on its own context.
	ch := r.group.DoChan(code, func() (any, error) {
		return r.load(context.WithoutCancel(ctx), code)
	})
	select {
	case <-ctx.Done():
		return kernel.GeoPoint{}, ports.NewGeocodeFailureError(code, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return kernel.GeoPoint{}, res.Err
		}
		return res.Val.(kernel.GeoPoint), nil
	}
}

func (r *Resolver) load(ctx context.Context, code string) (kernel.GeoPoint, error) {
	// A previous flight may have filled the cache after our first check.
	if p, ok := r.cache.Get(code); ok {
		r.metrics.GeocodeCacheHit(metrics.TierMemory)
		return p, nil
	}

	if r.store != nil {
		p, found, err := r.store.Get(ctx, code)
		switch {
		case err != nil:
			r.logger.WarnContext(ctx, "persistent geocode cache read failed", "postal_code", code, "error", err)
		case found:
			r.metrics.GeocodeCacheHit(metrics.TierPersistent)
			r.cache.Put(code, p)
			return p, nil
		}
	}

	r.metrics.GeocodeCacheMiss()
	p, err := r.geocoder.Lookup(ctx, code)
	r.metrics.GeocodeLookup(err == nil)
	if err == nil {
		err = p.Validate()
	}
	if err != nil {
		return kernel.GeoPoint{}, ports.NewGeocodeFailureError(code, err)
	}

	r.cache.Put(code, p)
	if r.store != nil {
		if putErr := r.store.Put(ctx, code, p); putErr != nil {
			r.logger.WarnContext(ctx, "persistent geocode cache write failed", "postal_code", code, "error", putErr)
		}
	}

	r.logger.DebugContext(ctx, "postal code resolved", "postal_code", code, "lat", p.Lat(), "lng", p.Lng())
	return p, nil
}

// ResolveAll resolves every distinct postal code, keyed as given. The first
// failure cancels the remaining lookups and is returned.
func (r *Resolver) ResolveAll(ctx context.Context, postalCodes []string) (map[string]kernel.GeoPoint, error) {
	distinct := make([]string, 0, len(postalCodes))
	seen := make(map[string]struct{}, len(postalCodes))
	for _, c := range postalCodes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		distinct = append(distinct, c)
	}

	points := make([]kernel.GeoPoint, len(distinct))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, code := range distinct {
		g.Go(func() error {
			p, err := r.Resolve(gctx, code)
			if err != nil {
				return err
			}
			points[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]kernel.GeoPoint, len(distinct))
	for i, code := range distinct {
		out[code] = points[i]
	}
	return out, nil
}
