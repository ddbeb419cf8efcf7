package sentiment

import (
	"fmt"
	"math"
	"strings"

	"indistock/internal/types"
)

const (
	// Score thresholds; the band between them is neutral.
	bullishAbove = 0.55
	bearishBelow = 0.45

	neutralScore      = 0.5
	neutralConfidence = 30

	confidenceBase  = 45
	confidenceScale = 25
	confidenceCap   = 95

	maxReasonWords = 5

	noKeywordsReason = "No clear sentiment keywords found in headlines"
)

// Analyzer scores headlines against a lexicon. It holds no mutable state
// and is safe for concurrent use.
type Analyzer struct {
	lex *Lexicon
}

// NewAnalyzer creates an analyzer. A nil lexicon selects the built-in one.
func NewAnalyzer(lex *Lexicon) *Analyzer {
	if lex == nil {
		lex = defaultLexicon
	}
	return &Analyzer{lex: lex}
}

// Analyze scores headlines with the built-in lexicon.
func Analyze(headlines []string) types.SentimentVerdict {
	return NewAnalyzer(nil).Analyze(headlines)
}

// Analyze scans every headline for lexicon words and derives a verdict.
// It never fails: no headlines or no matches yield the neutral floor.
func (a *Analyzer) Analyze(headlines []string) types.SentimentVerdict {
	var (
		positiveCount, negativeCount int
		matchedPos, matchedNeg       []string
		seenPos                      = map[string]bool{}
		seenNeg                      = map[string]bool{}
	)

	for _, headline := range headlines {
		for _, raw := range strings.Fields(strings.ToLower(headline)) {
			word := cleanToken(raw)
			if word == "" {
				continue
			}
			if a.lex.IsPositive(word) {
				positiveCount++
				if !seenPos[word] {
					seenPos[word] = true
					matchedPos = append(matchedPos, word)
				}
			}
			if a.lex.IsNegative(word) {
				negativeCount++
				if !seenNeg[word] {
					seenNeg[word] = true
					matchedNeg = append(matchedNeg, word)
				}
			}
		}
	}

	verdict := types.SentimentVerdict{
		MatchedPositive: orEmpty(matchedPos),
		MatchedNegative: orEmpty(matchedNeg),
		PositiveCount:   positiveCount,
		NegativeCount:   negativeCount,
		HeadlineCount:   len(headlines),
	}

	total := positiveCount + negativeCount
	if total == 0 {
		verdict.Score = neutralScore
		verdict.Label = types.Neutral
		verdict.Confidence = neutralConfidence
		verdict.Reasoning = noKeywordsReason
		return verdict
	}

	verdict.Score = float64(positiveCount) / float64(total)
	verdict.Label = LabelFor(verdict.Score)
	verdict.Confidence = confidence(total, len(headlines))
	verdict.Reasoning = fmt.Sprintf("Found %d positive words (%s) and %d negative words (%s) across %d headlines",
		positiveCount, strings.Join(firstN(matchedPos, maxReasonWords), ", "),
		negativeCount, strings.Join(firstN(matchedNeg, maxReasonWords), ", "),
		len(headlines))
	return verdict
}

// LabelFor maps a score in [0,1] to its label.
func LabelFor(score float64) types.Label {
	switch {
	case score > bullishAbove:
		return types.Bullish
	case score < bearishBelow:
		return types.Bearish
	default:
		return types.Neutral
	}
}

// confidence grows with sentiment words per headline, capped at 95.
// headlines is always > 0 when total > 0.
func confidence(total, headlines int) int {
	c := int(math.Round(float64(total)/float64(headlines)*confidenceScale + confidenceBase))
	return min(confidenceCap, c)
}

// cleanToken keeps only a-z; the token is already lowercased.
func cleanToken(tok string) string {
	var b strings.Builder
	b.Grow(len(tok))
	for i := 0; i < len(tok); i++ {
		if c := tok[i]; c >= 'a' && c <= 'z' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func firstN(words []string, n int) []string {
	if len(words) > n {
		return words[:n]
	}
	return words
}

func orEmpty(words []string) []string {
	if words == nil {
		return []string{}
	}
	return words
}
