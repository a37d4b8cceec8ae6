// Package: moriarty/gen
//
// generate.go — the generation driver: order, draw, retry, validate.
package gen

import (
	"fmt"

	"github.com/katalvlaran/moriarty/core"
	"github.com/katalvlaran/moriarty/random"
	"github.com/katalvlaran/moriarty/status"
)

// Option configures a GenerateAll run.
type Option func(*config)

// config holds settings for GenerateAll.
type config struct {
	seed          random.Seed
	softSizeLimit int64
	retryBudget   int
}

func defaultConfig() config {
	return config{retryBudget: core.DefaultRetryBudget}
}

// WithSeed sets the random seed. Runs with equal seeds, variables and known
// values produce equal results.
func WithSeed(seed random.Seed) Option {
	return func(c *config) { c.seed = seed }
}

// WithSoftSizeLimit caps the cumulative approximate size of generated
// values. The limit is advisory: length upper bounds are lowered toward the
// remaining budget, but never below their lower bounds.
func WithSoftSizeLimit(limit int64) Option {
	return func(c *config) { c.softSizeLimit = limit }
}

// WithRetryBudget sets how many times a retryable generation failure is
// re-attempted before giving up. Non-positive values keep the default.
func WithRetryBudget(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.retryBudget = n
		}
	}
}

// GenerateAll assigns a value to every variable in vs, dependencies first.
//
// Known values win: a variable whose name is present in known is not
// generated, but its constraints are still checked against the known value
// and a violation surfaces as an unsatisfied-constraint error. A variable
// whose constraints admit exactly one value receives it directly, with no
// random draw. Everything else is drawn through the variable's Generate,
// retrying on retryable failures up to the budget. The returned set holds
// knowns and generated values together.
func GenerateAll(vs *core.VariableSet, known *core.ValueSet, opts ...Option) (*core.ValueSet, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	graph, err := BuildDependencyGraph(vs, known)
	if err != nil {
		return nil, err
	}
	order, err := TopologicalOrder(graph)
	if err != nil {
		return nil, err
	}

	// One working set serves as both the const and mutable view, so
	// on-demand lookups, validation and the size budget all see the same
	// values.
	out := core.NewValueSet()
	if known != nil {
		for _, name := range known.Names() {
			v, _ := known.UnsafeGet(name)
			out.SetUntyped(name, v)
		}
	}
	u := core.NewUniverse().
		WithConstValueSet(out).
		WithMutableValueSet(out).
		WithMutableVariableSet(vs).
		WithRandomSource(random.NewSource(cfg.seed)).
		WithGenConfig(core.GenConfig{SoftSizeLimit: cfg.softSizeLimit, RetryBudget: cfg.retryBudget})

	for _, name := range order {
		v, err := vs.GetVariable(name)
		if err != nil {
			return nil, err
		}
		if out.Has(name) {
			// Known value: skip generation, keep the constraint check.
			if err := v.ValueSatisfiesConstraints(u); err != nil {
				return nil, fmt.Errorf("gen: known value for %q: %w", name, err)
			}
			continue
		}
		if uv, ok := v.GetUniqueValue(); ok {
			// The constraints admit exactly one value; assign it without
			// a draw.
			out.SetUntyped(name, uv)
			continue
		}
		val, err := generateWithRetry(u, name, v, cfg.retryBudget)
		if err != nil {
			return nil, err
		}
		out.SetUntyped(name, val)
	}

	return out, nil
}

// generateWithRetry re-attempts retryable failures up to the budget and
// passes every other error through unchanged.
func generateWithRetry(u *core.Universe, name string, v core.Variable, budget int) (core.Value, error) {
	var lastErr error
	for attempt := 0; attempt < budget; attempt++ {
		val, err := v.Generate(u)
		if err == nil {
			return val, nil
		}
		if !status.IsRetryable(err) {
			return nil, fmt.Errorf("gen: generating %q: %w", name, err)
		}
		lastErr = err
	}

	return nil, fmt.Errorf("gen: generating %q: retry budget of %d exhausted: %w", name, budget, lastErr)
}
