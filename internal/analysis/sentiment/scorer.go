// Package sentiment scores headlines and aggregates the scores into a
// per-day, per-ticker table.
package sentiment

import (
	"maps"
	"math"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/seenimoa/tickersentiment/pkg/models"
)

// ------------------------------------------------------------------
// Lexicon-based compound scorer (offline, deterministic).
// Word valences are adjusted for intensity, negation, contrast and
// emphasis, summed, and squashed into [-1, 1].
// ------------------------------------------------------------------

const (
	boostIncr   = 0.293
	boostDecr   = -0.293
	capsIncr    = 0.733
	negScalar   = -0.74
	exclaimIncr = 0.292
	normAlpha   = 15.0
)

// Scorer maps a piece of text to a compound score in [-1, 1].
type Scorer interface {
	Compound(text string) float64
}

// Lexicon is the built-in Scorer. The zero value is not usable; call
// NewLexicon. A Lexicon is read-only and safe for concurrent use.
type Lexicon struct {
	valences map[string]float64
	phrases  map[string]float64
}

// NewLexicon returns a scorer over the built-in word list.
func NewLexicon() *Lexicon {
	return &Lexicon{valences: defaultValences, phrases: defaultPhrases}
}

// WithTerms returns a copy of l with terms added or overridden. Keys are
// matched case-insensitively. l itself is unchanged.
func (l *Lexicon) WithTerms(terms map[string]float64) *Lexicon {
	if len(terms) == 0 {
		return l
	}
	valences := maps.Clone(l.valences)
	for k, v := range terms {
		valences[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Lexicon{valences: valences, phrases: l.phrases}
}

type token struct {
	lower string
	caps  bool
}

// Compound returns the normalized sentiment of text. Empty text and text
// without any known word score 0.
func (l *Lexicon) Compound(text string) float64 {
	toks := tokenize(text)
	if len(toks) == 0 {
		return 0
	}
	capDiff := mixedCase(toks)

	vals := make([]float64, len(toks))
	skipNext := false
	for i, tk := range toks {
		if skipNext {
			skipNext = false
			continue
		}
		if _, ok := boosterWords[tk.lower]; ok {
			continue
		}

		v, ok := 0.0, false
		if i+1 < len(toks) {
			if v, ok = l.phrases[tk.lower+" "+toks[i+1].lower]; ok {
				skipNext = true
			}
		}
		if !ok {
			v, ok = l.valences[tk.lower]
		}
		if !ok || v == 0 {
			continue
		}

		if capDiff && tk.caps {
			v += math.Copysign(capsIncr, v)
		}
		v += boosterShift(toks, i, v, capDiff)
		if negatedBefore(toks, i) {
			v *= negScalar
		}
		vals[i] = v
	}

	applyContrast(toks, vals)
	sum := emphasize(text, lo.Sum(vals))
	return normalize(sum)
}

// boosterShift sums the effect of intensity words up to three tokens
// before position i. Farther boosters count less.
func boosterShift(toks []token, i int, v float64, capDiff bool) float64 {
	var shift float64
	for j := 1; j <= 3 && i-j >= 0; j++ {
		prev := toks[i-j]
		b, ok := boosterWords[prev.lower]
		if !ok {
			continue
		}
		scalar := b
		if v < 0 {
			scalar = -scalar
		}
		if capDiff && prev.caps {
			scalar += math.Copysign(capsIncr, v)
		}
		switch j {
		case 2:
			scalar *= 0.95
		case 3:
			scalar *= 0.9
		}
		shift += scalar
	}
	return shift
}

func negatedBefore(toks []token, i int) bool {
	for j := 1; j <= 3 && i-j >= 0; j++ {
		w := toks[i-j].lower
		if _, ok := negationWords[strings.ReplaceAll(w, "'", "")]; ok {
			return true
		}
		if strings.HasSuffix(w, "n't") {
			return true
		}
	}
	return false
}

// applyContrast halves sentiment before the first "but" and boosts it
// after.
func applyContrast(toks []token, vals []float64) {
	bi := lo.IndexOf(lo.Map(toks, func(t token, _ int) string { return t.lower }), "but")
	if bi < 0 {
		return
	}
	for k := range vals {
		switch {
		case k < bi:
			vals[k] *= 0.5
		case k > bi:
			vals[k] *= 1.5
		}
	}
}

// emphasize pushes sum away from zero for exclamation marks and repeated
// question marks.
func emphasize(text string, sum float64) float64 {
	if sum == 0 {
		return 0
	}
	amp := float64(min(strings.Count(text, "!"), 4)) * exclaimIncr
	if q := strings.Count(text, "?"); q > 1 {
		if q <= 3 {
			amp += float64(q) * 0.18
		} else {
			amp += 0.96
		}
	}
	return sum + math.Copysign(amp, sum)
}

func normalize(s float64) float64 {
	c := s / math.Sqrt(s*s+normAlpha)
	c = math.Max(-1, math.Min(1, c))
	return math.Round(c*1e4) / 1e4
}

// tokenize splits on whitespace and strips surrounding punctuation.
// Single-character tokens carry no sentiment and are dropped.
func tokenize(text string) []token {
	var toks []token
	for _, raw := range strings.Fields(strings.ReplaceAll(text, "’", "'")) {
		w := strings.TrimFunc(raw, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len([]rune(w)) < 2 {
			continue
		}
		toks = append(toks, token{lower: strings.ToLower(w), caps: isAllCaps(w)})
	}
	return toks
}

func isAllCaps(w string) bool {
	hasLetter := false
	for _, r := range w {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// mixedCase reports whether some, but not all, tokens are shouted.
func mixedCase(toks []token) bool {
	n := lo.CountBy(toks, func(t token) bool { return t.caps })
	return n > 0 && n < len(toks)
}

var defaultLexicon = NewLexicon()

// ScoreHeadline scores a single headline with the built-in lexicon.
func ScoreHeadline(headline string) float64 {
	return defaultLexicon.Compound(headline)
}

// Label buckets a compound score for display.
func Label(compound float64) string {
	switch {
	case compound > 0.3:
		return "Bullish"
	case compound >= 0.05:
		return "Slightly Bullish"
	case compound < -0.3:
		return "Bearish"
	case compound <= -0.05:
		return "Slightly Bearish"
	default:
		return "Neutral"
	}
}

// ScoreRecords scores every record's title. Output order matches input.
func ScoreRecords(s Scorer, records []models.HeadlineRecord) []models.ScoredHeadline {
	return lo.Map(records, func(r models.HeadlineRecord, _ int) models.ScoredHeadline {
		return models.ScoredHeadline{HeadlineRecord: r, Compound: s.Compound(r.Title)}
	})
}
