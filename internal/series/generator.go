package series

import (
	"math"
	"math/rand/v2"
	"time"

	"indistock/internal/types"
)

const (
	basePriceMin    = 2500.0
	basePriceSpread = 500.0
	volatility      = 0.02

	volumeMin    = 1_000_000
	volumeSpread = 5_000_000

	dateLayout = "2006-01-02"
)

// IST is the default market calendar location.
var IST = time.FixedZone("IST", 19800)

// Generator produces a synthetic, autocorrelated daily OHLCV walk. Each
// Generator owns its random source; do not share one across goroutines.
type Generator struct {
	rnd *rand.Rand
	now func() time.Time
	loc *time.Location
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// WithLocation sets the calendar location used to decide dates and weekends.
func WithLocation(loc *time.Location) GeneratorOption {
	return func(g *Generator) {
		if loc != nil {
			g.loc = loc
		}
	}
}

// NewGenerator creates a generator. A nil rnd gets a fresh independently
// seeded source.
func NewGenerator(rnd *rand.Rand, opts ...GeneratorOption) *Generator {
	if rnd == nil {
		rnd = newRand()
	}
	g := &Generator{
		rnd: rnd,
		now: time.Now,
		loc: IST,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// maxPrealloc bounds the bar slice reserved up front; longer windows grow
// by append.
const maxPrealloc = 4096

// weekdayCapacity is the most weekdays any run of dayCount calendar days can
// hold, capped at maxPrealloc.
func weekdayCapacity(dayCount int) int {
	if dayCount <= 0 {
		return 0
	}
	n := dayCount/7*5 + min(dayCount%7, 5)
	return min(n, maxPrealloc)
}

// newRand seeds a per-call PCG from the runtime's goroutine-safe source so
// concurrent generators never share state.
func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Generate walks from dayCount-1 days ago up to today, emitting one bar per
// weekday. Weekends are skipped without touching the price state, so the
// result may hold fewer than dayCount bars. dayCount <= 0 yields no bars.
func (g *Generator) Generate(dayCount int) []types.Bar {
	if dayCount <= 0 {
		return []types.Bar{}
	}

	now := g.now().In(g.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, g.loc)

	bars := make([]types.Bar, 0, weekdayCapacity(dayCount))
	basePrice := basePriceMin + g.rnd.Float64()*basePriceSpread

	for i := dayCount - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		if isWeekend(day) {
			continue
		}

		swing := volatility * basePrice
		change := (g.rnd.Float64()*2 - 1) * swing
		open := basePrice
		closePrice := basePrice + change
		high := math.Max(open, closePrice) + g.rnd.Float64()*swing
		low := math.Min(open, closePrice) - g.rnd.Float64()*swing
		volume := volumeMin + g.rnd.Int64N(volumeSpread)

		bars = append(bars, types.Bar{
			Date:   day,
			Time:   day.Format(dateLayout),
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(closePrice),
			Volume: volume,
		})

		basePrice = closePrice
	}

	return bars
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
