package series

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"indistock/internal/types"
)

// RawSeries is a daily series as delivered by a quote provider: date keys
// ("2006-01-02") mapped to per-day fields. Field names may carry the
// Alpha Vantage ordinal prefix ("1. open") or be bare ("open").
type RawSeries map[string]map[string]string

// Field names understood in a RawSeries day.
const (
	FieldOpen   = "open"
	FieldHigh   = "high"
	FieldLow    = "low"
	FieldClose  = "close"
	FieldVolume = "volume"
)

// Alpha Vantage style keys, used when building a RawSeries from other feeds.
const (
	KeyOpen   = "1. open"
	KeyHigh   = "2. high"
	KeyLow    = "3. low"
	KeyClose  = "4. close"
	KeyVolume = "5. volume"
)

type datedFields struct {
	date   time.Time
	fields map[string]string
}

// bars takes the dayCount most recent dated entries, returns them oldest
// first and drops any entry that is incomplete, non-numeric, on a weekend
// or inconsistent (low above the body, high below it).
func (r RawSeries) bars(dayCount int, loc *time.Location) []types.Bar {
	if len(r) == 0 || dayCount <= 0 {
		return nil
	}

	dated := make([]datedFields, 0, len(r))
	for key, fields := range r {
		d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(key), loc)
		if err != nil {
			continue
		}
		dated = append(dated, datedFields{date: d, fields: fields})
	}

	sort.Slice(dated, func(i, j int) bool { return dated[i].date.After(dated[j].date) })
	if len(dated) > dayCount {
		dated = dated[:dayCount]
	}

	out := make([]types.Bar, 0, len(dated))
	for i := len(dated) - 1; i >= 0; i-- {
		bar, ok := parseBar(dated[i].date, dated[i].fields)
		if !ok {
			continue
		}
		out = append(out, bar)
	}
	return out
}

func parseBar(date time.Time, fields map[string]string) (types.Bar, bool) {
	if isWeekend(date) {
		return types.Bar{}, false
	}

	norm := make(map[string]string, len(fields))
	for k, v := range fields {
		norm[fieldName(k)] = v
	}

	open, ok1 := parsePrice(norm[FieldOpen])
	high, ok2 := parsePrice(norm[FieldHigh])
	low, ok3 := parsePrice(norm[FieldLow])
	closePrice, ok4 := parsePrice(norm[FieldClose])
	volume, ok5 := parseVolume(norm[FieldVolume])
	if !(ok1 && ok2 && ok3 && ok4 && ok5) {
		return types.Bar{}, false
	}
	if low > math.Min(open, closePrice) || high < math.Max(open, closePrice) {
		return types.Bar{}, false
	}

	return types.Bar{
		Date:   date,
		Time:   date.Format(dateLayout),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}, true
}

// fieldName strips an ordinal prefix: "2. high" -> "high".
func fieldName(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if i := strings.Index(key, ". "); i >= 0 {
		key = key[i+2:]
	}
	return key
}

func parsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

func parseVolume(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, v >= 0
	}
	f, ok := parsePrice(s)
	if !ok || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
