package sentiment

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLexiconOverlap is returned when a word is tagged both positive and negative.
var ErrLexiconOverlap = errors.New("lexicon word is both positive and negative")

// Financial vocabulary, lowercase single tokens.
var (
	positiveWords = []string{
		"surge", "gain", "profit", "growth", "bullish", "rally", "soar", "jump",
		"rise", "up", "high", "strong", "positive", "beat", "exceed", "record",
		"boost", "upgrade", "buy", "outperform", "optimism", "success", "win",
		"breakout", "momentum", "recovery", "earnings", "dividend", "expand",
	}

	negativeWords = []string{
		"fall", "drop", "loss", "decline", "bearish", "crash", "plunge", "sink",
		"down", "low", "weak", "negative", "miss", "cut", "sell", "underperform",
		"pessimism", "fail", "risk", "concern", "warning", "trouble", "slump",
		"tumble", "drag", "pressure", "volatile", "uncertainty", "layoff",
	}
)

// defaultLexicon is built once at startup and never mutated.
var defaultLexicon = mustLexicon(positiveWords, negativeWords)

// Lexicon holds two disjoint sets of sentiment words.
type Lexicon struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

// NewLexicon builds a lexicon from word lists. Words are lowercased; an
// empty word or a word present in both lists is rejected.
func NewLexicon(positive, negative []string) (*Lexicon, error) {
	lex := &Lexicon{
		positive: make(map[string]struct{}, len(positive)),
		negative: make(map[string]struct{}, len(negative)),
	}
	for _, w := range positive {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			return nil, errors.New("empty positive word")
		}
		lex.positive[w] = struct{}{}
	}
	for _, w := range negative {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			return nil, errors.New("empty negative word")
		}
		if _, dup := lex.positive[w]; dup {
			return nil, fmt.Errorf("%w: %q", ErrLexiconOverlap, w)
		}
		lex.negative[w] = struct{}{}
	}
	return lex, nil
}

func mustLexicon(positive, negative []string) *Lexicon {
	lex, err := NewLexicon(positive, negative)
	if err != nil {
		panic(fmt.Sprintf("sentiment: invalid built-in lexicon: %v", err))
	}
	return lex
}

// DefaultLexicon returns the built-in financial lexicon.
func DefaultLexicon() *Lexicon {
	return defaultLexicon
}

// IsPositive reports whether word is in the positive set.
func (l *Lexicon) IsPositive(word string) bool {
	_, ok := l.positive[word]
	return ok
}

// IsNegative reports whether word is in the negative set.
func (l *Lexicon) IsNegative(word string) bool {
	_, ok := l.negative[word]
	return ok
}

// Size returns the number of positive and negative words.
func (l *Lexicon) Size() (positive, negative int) {
	return len(l.positive), len(l.negative)
}
