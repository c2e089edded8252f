package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
	"github.com/hopwise/hopwise/internal/logger"
)

// defaultProviderTimeout bounds a provider call when no timeout is configured.
const defaultProviderTimeout = 10 * time.Second

// CacheKey derives the deterministic cache key for one provider's answer to
// a query under a priority.
func CacheKey(d domain.Domain, query any, priority domain.Priority, provider string) string {
	if ci, ok := query.(interface{ CacheIdentity() any }); ok {
		query = ci.CacheIdentity()
	}
	payload, err := json.Marshal(struct {
		Domain   domain.Domain   `json:"domain"`
		Query    any             `json:"query"`
		Priority domain.Priority `json:"priority"`
		Provider string          `json:"provider"`
	}{d, query, priority, provider})
	if err != nil {
		payload = []byte(fmt.Sprintf("%s|%v|%s|%s", d, query, priority, provider))
	}
	sum := sha256.Sum256(payload)
	return string(d) + ":" + provider + ":" + hex.EncodeToString(sum[:])
}

// FetchConfig holds the shared infrastructure a fetcher uses.
// Cache, Limiter and Metrics are optional (can be nil).
type FetchConfig struct {
	Cache   driven.CacheStore
	Limiter driven.RateLimiter
	Metrics driven.Metrics
	TTL     time.Duration
	Timeout time.Duration
}

// fetcher gathers options from a domain's providers concurrently through the
// cache and rate limiter. Failures only remove that provider's contribution.
type fetcher[Q, R any] struct {
	domain    domain.Domain
	providers []driven.ProviderAdapter[Q, R]
	cfg       FetchConfig
}

func newFetcher[Q, R any](d domain.Domain, providers []driven.ProviderAdapter[Q, R], cfg FetchConfig) *fetcher[Q, R] {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultProviderTimeout
	}
	return &fetcher[Q, R]{domain: d, providers: providers, cfg: cfg}
}

// fetch queries the providers named in selected (all when empty) and
// records one report per provider in meta, in selection order.
func (f *fetcher[Q, R]) fetch(
	ctx context.Context, query Q, selected []string, priority domain.Priority, meta *domain.Metadata,
) []R {
	defer logger.Timed("fetch " + f.domain.String())()

	adapters, unsupported := f.selectProviders(selected)
	reports := make([]domain.ProviderReport, len(adapters))

	var (
		mu      sync.Mutex
		results []R
		g       errgroup.Group
	)
	for i, p := range adapters {
		g.Go(func() error {
			opts, report := f.fetchOne(ctx, p, query, priority)
			reports[i] = report
			f.record(report)
			mu.Lock()
			results = append(results, opts...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	meta.Providers = append(meta.Providers, reports...)
	for _, name := range unsupported {
		meta.Providers = append(meta.Providers, domain.ProviderReport{
			Provider: name, Status: domain.ProviderUnsupported, Error: "no adapter configured",
		})
		meta.Notef("provider %s is not supported", name)
	}
	for _, r := range reports {
		switch r.Status {
		case domain.ProviderFailed:
			meta.Notef("provider %s failed: %s", r.Provider, r.Error)
		case domain.ProviderSkipped:
			meta.Notef("provider %s skipped: rate limit reached", r.Provider)
		case domain.ProviderLive, domain.ProviderCached, domain.ProviderUnsupported:
		}
	}
	return results
}

func (f *fetcher[Q, R]) selectProviders(selected []string) ([]driven.ProviderAdapter[Q, R], []string) {
	if len(selected) == 0 {
		return f.providers, nil
	}
	byName := make(map[string]driven.ProviderAdapter[Q, R], len(f.providers))
	for _, p := range f.providers {
		byName[p.Name()] = p
	}
	var (
		out         []driven.ProviderAdapter[Q, R]
		unsupported []string
		seen        = make(map[string]bool)
	)
	for _, name := range selected {
		if seen[name] {
			continue
		}
		seen[name] = true
		if p, ok := byName[name]; ok {
			out = append(out, p)
		} else {
			unsupported = append(unsupported, name)
		}
	}
	return out, unsupported
}

func (f *fetcher[Q, R]) fetchOne(
	ctx context.Context, p driven.ProviderAdapter[Q, R], query Q, priority domain.Priority,
) (opts []R, report domain.ProviderReport) {
	name := p.Name()
	report.Provider = name

	ctx, span := otel.Tracer(tracerName).Start(ctx, "provider.fetch", trace.WithAttributes(
		attribute.String("domain", f.domain.String()),
		attribute.String("provider", name),
	))
	defer func() {
		span.SetAttributes(attribute.String("provider.status", string(report.Status)))
		span.End()
	}()

	key := CacheKey(f.domain, query, priority, name)
	if cached, ok := f.lookup(ctx, key); ok {
		logger.Debug("Cache hit for %s", name)
		report.Status = domain.ProviderCached
		report.Results = len(cached)
		return cached, report
	}

	if !f.allow(ctx, name) {
		logger.Warn("Provider %s skipped: rate limit reached", name)
		report.Status = domain.ProviderSkipped
		report.Error = domain.ErrRateLimited.Error()
		return nil, report
	}

	opts, err := f.call(ctx, p, query)
	if err != nil {
		logger.Warn("Provider %s failed: %v", name, err)
		report.Status = domain.ProviderFailed
		report.Error = err.Error()
		return nil, report
	}

	f.store(ctx, key, opts)
	report.Status = domain.ProviderLive
	report.Results = len(opts)
	return opts, report
}

// call runs fetch and normalise under the provider timeout. Panics inside an
// adapter are reported as failures.
func (f *fetcher[Q, R]) call(ctx context.Context, p driven.ProviderAdapter[Q, R], query Q) (opts []R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s panicked: %v", domain.ErrProviderFailed, p.Name(), r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	payload, err := p.Fetch(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch: %w", domain.ErrProviderFailed, err)
	}
	opts, err = p.Normalize(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: normalize: %w", domain.ErrProviderFailed, err)
	}
	return opts, nil
}

// lookup returns cached options. Any cache error is a miss.
func (f *fetcher[Q, R]) lookup(ctx context.Context, key string) ([]R, bool) {
	if f.cfg.Cache == nil {
		return nil, false
	}
	data, err := f.cfg.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Warn("Cache read failed, treating as miss: %v", err)
		}
		f.cacheLookup(false)
		return nil, false
	}
	var opts []R
	if err := json.Unmarshal(data, &opts); err != nil {
		logger.Warn("Cached entry %s is corrupt, treating as miss: %v", key, err)
		f.cacheLookup(false)
		return nil, false
	}
	f.cacheLookup(true)
	return opts, true
}

func (f *fetcher[Q, R]) store(ctx context.Context, key string, opts []R) {
	if f.cfg.Cache == nil || f.cfg.TTL <= 0 {
		return
	}
	data, err := json.Marshal(opts)
	if err != nil {
		logger.Warn("Cannot encode options for cache: %v", err)
		return
	}
	if err := f.cfg.Cache.Set(ctx, key, data, f.cfg.TTL); err != nil {
		logger.Warn("Cache write failed: %v", err)
	}
}

// allow consults the limiter. Limiter errors count as over threshold.
func (f *fetcher[Q, R]) allow(ctx context.Context, provider string) bool {
	if f.cfg.Limiter == nil {
		return true
	}
	ok, err := f.cfg.Limiter.Allow(ctx, provider)
	if err != nil {
		logger.Warn("Rate limiter failed for %s, skipping provider: %v", provider, err)
		return false
	}
	return ok
}

func (f *fetcher[Q, R]) cacheLookup(hit bool) {
	if f.cfg.Metrics != nil {
		f.cfg.Metrics.CacheLookup(f.domain, hit)
	}
}

func (f *fetcher[Q, R]) record(r domain.ProviderReport) {
	if f.cfg.Metrics != nil {
		f.cfg.Metrics.ProviderCall(f.domain, r.Provider, r.Status)
	}
}
