package layout

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orrery/pkg/cache"
	"github.com/matzehuels/orrery/pkg/observability"
	"github.com/matzehuels/orrery/pkg/solver"
)

// schemaVersion prefixes every cache key. Bump it when the Layout
// serialization shape changes so stale entries stop resolving as current
// layouts.
const schemaVersion = "v1"

// Engine runs layout requests with caching. Both CLI and API use it to
// avoid duplicating the hash → cache → solve → store sequence.
//
// The Engine is stateless except for the cache and logger - it does not
// retain solve results. Multiple goroutines can safely share one Engine.
// Create engines with [New]; the zero value has no cache or logger.
type Engine struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL bounds the lifetime of cached layouts. New sets it to
	// cache.TTLLayout; callers override it from configuration.
	TTL time.Duration
}

// New creates an engine with the given cache and logger.
// If c is nil, a NullCache is used (caching disabled).
// If logger is nil, the default logger is used.
func New(c cache.Cache, logger *log.Logger) *Engine {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		Cache:  c,
		Keyer:  cache.NewScopedKeyer(nil, schemaVersion+":"),
		Logger: logger,
		TTL:    cache.TTLLayout,
	}
}

// Solve computes a layout for the problem, consulting the cache first.
//
// The context governs cache IO only: once the search starts it runs to
// completion, bounded by the problem's budget rather than by ctx. An
// unsatisfiable or budget-exhausted problem is not an error; the outcome
// is carried in the layout together with its explanation.
func (e *Engine) Solve(ctx context.Context, p Problem) (*Layout, error) {
	l, _, err := e.SolveWithCacheInfo(ctx, p)
	return l, err
}

// SolveWithCacheInfo computes a layout and reports whether it was served
// from cache.
func (e *Engine) SolveWithCacheInfo(ctx context.Context, p Problem) (*Layout, bool, error) {
	if err := p.Validate(); err != nil {
		return nil, false, fmt.Errorf("invalid problem: %w", err)
	}

	hash, err := p.Hash()
	if err != nil {
		return nil, false, err
	}
	key := e.Keyer.LayoutKey(hash, p.keyOpts())

	// Try cache first
	if data, hit, err := e.Cache.Get(ctx, key); err == nil && hit {
		cached, err := Unmarshal(data)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			e.Logger.Debug("layout served from cache", "hash", hash)
			return &cached, true, nil
		}
		// A corrupt entry falls through to a fresh solve.
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	sp := p.solverProblem()
	observability.Engine().OnSolveStart(ctx, len(sp.Nodes), len(sp.Cycles))

	solveStart := time.Now()
	res, err := solver.Solve(sp, p.Options)

	outcome := "error"
	if err == nil {
		outcome = res.Outcome.String()
	}
	observability.Engine().OnSolveComplete(ctx, outcome,
		res.Stats.Explored, res.Stats.Pruned, time.Since(solveStart), err)
	if err != nil {
		return nil, false, fmt.Errorf("solve: %w", err)
	}

	e.Logger.Info("solved layout",
		"outcome", res.Outcome,
		"nodes", len(sp.Nodes),
		"explored", res.Stats.Explored,
		"pruned", res.Stats.Pruned,
		"duration", res.Stats.Duration)

	built := build(p, hash, res)

	// Cache the result
	if data, err := Marshal(*built); err == nil {
		if err := e.Cache.Set(ctx, key, data, e.TTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return built, false, nil
}

// Close releases resources held by the engine (primarily the cache).
func (e *Engine) Close() error {
	if e.Cache != nil {
		return e.Cache.Close()
	}
	return nil
}
