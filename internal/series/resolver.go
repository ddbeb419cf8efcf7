package series

import (
	"strings"
	"time"

	"indistock/internal/types"
)

// Range selectors.
const (
	Range7D  = "7d"
	Range30D = "30d"
	Range90D = "90d"
	Range1Y  = "1y"

	DefaultRange = Range30D
)

var rangeDays = map[string]int{
	Range7D:  7,
	Range30D: 30,
	Range90D: 90,
	Range1Y:  365,
}

// NormalizeRange returns the canonical selector for rng, or DefaultRange
// when rng is not recognised.
func NormalizeRange(rng string) string {
	rng = strings.ToLower(strings.TrimSpace(rng))
	if _, ok := rangeDays[rng]; ok {
		return rng
	}
	return DefaultRange
}

// DaysFor maps a range selector to its day count; unknown input maps to 30.
func DaysFor(rng string) int {
	return rangeDays[NormalizeRange(rng)]
}

// Resolver turns a range and an optional provider series into bars.
type Resolver struct {
	loc          *time.Location
	newGenerator func() *Generator
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverLocation sets the market calendar location.
func WithResolverLocation(loc *time.Location) ResolverOption {
	return func(r *Resolver) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithGeneratorFactory overrides how the synthetic fallback is built. The
// factory is called once per Resolve.
func WithGeneratorFactory(f func() *Generator) ResolverOption {
	return func(r *Resolver) {
		r.newGenerator = f
	}
}

// NewResolver creates a resolver. By default each synthetic fallback gets
// its own freshly seeded generator.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{loc: IST}
	for _, opt := range opts {
		opt(r)
	}
	if r.newGenerator == nil {
		loc := r.loc
		r.newGenerator = func() *Generator {
			return NewGenerator(nil, WithLocation(loc))
		}
	}
	return r
}

var defaultResolver = NewResolver()

// Resolve uses the default resolver.
func Resolve(rng string, external RawSeries) types.Series {
	return defaultResolver.Resolve(rng, external)
}

// Resolve never fails. A provider series with at least one usable bar is
// trimmed to the range; anything else falls through to synthetic data.
func (r *Resolver) Resolve(rng string, external RawSeries) types.Series {
	days := DaysFor(rng)

	if bars := external.bars(days, r.loc); len(bars) > 0 {
		return types.Series{Days: days, Bars: bars}
	}

	return types.Series{
		Days:      days,
		Synthetic: true,
		Bars:      r.newGenerator().Generate(days),
	}
}
