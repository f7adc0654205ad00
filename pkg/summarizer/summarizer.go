// Package summarizer produces short extractive summaries by scoring sentences
// on word frequency. It is the local fallback when no external summarization
// service is configured.
package summarizer

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// defaultStopwords is the fixed English stopword set excluded from the
// frequency table. Deliberately small: articles and common prepositions and
// conjunctions only.
var defaultStopwords = []string{
	"the", "is", "in", "and", "to", "of", "a", "for", "on", "that", "with",
	"as", "are", "was", "it", "at", "by", "an", "be", "this", "or", "from",
}

// wordPattern matches lowercase word tokens (alphanumeric runs).
var wordPattern = regexp.MustCompile(`\w+`)

// Config is the immutable configuration for a Summarizer. Passing it
// explicitly (rather than reading ambient globals) keeps alternate stopword
// sets and thresholds testable.
type Config struct {
	MaxSentences int
	MinWordLen   int      // tokens of this length or shorter are ignored; zero uses the default
	Stopwords    []string // nil uses the built-in English set
}

// DefaultConfig returns 3-sentence summaries with the built-in stopwords and
// tokens of length <= 2 ignored.
func DefaultConfig() Config {
	return Config{
		MaxSentences: 3,
		MinWordLen:   2,
	}
}

type Summarizer struct {
	maxSentences int
	minWordLen   int
	stopwords    map[string]struct{}
}

func New(cfg Config) *Summarizer {
	if cfg.MaxSentences <= 0 {
		cfg.MaxSentences = DefaultConfig().MaxSentences
	}
	if cfg.MinWordLen <= 0 {
		cfg.MinWordLen = DefaultConfig().MinWordLen
	}
	words := cfg.Stopwords
	if words == nil {
		words = defaultStopwords
	}
	stop := make(map[string]struct{}, len(words))
	for _, w := range words {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &Summarizer{
		maxSentences: cfg.MaxSentences,
		minWordLen:   cfg.MinWordLen,
		stopwords:    stop,
	}
}

// Summarize selects up to MaxSentences representative sentences from text and
// joins them in their original order. Empty input yields an empty summary.
func (s *Summarizer) Summarize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	sentences := SplitSentences(text)
	if len(sentences) <= s.maxSentences {
		return strings.TrimSpace(strings.Join(sentences, " "))
	}

	freqs := s.frequencies(text)
	if len(freqs) == 0 {
		// Nothing scorable; fall back to the leading sentences.
		return strings.TrimSpace(strings.Join(sentences[:s.maxSentences], " "))
	}

	// Score every sentence as the sum of its tokens' table frequencies.
	// Stopwords and short tokens are absent from the table and contribute 0.
	scores := make([]int, len(sentences))
	for i, sentence := range sentences {
		for _, w := range tokenize(sentence) {
			scores[i] += freqs[w]
		}
	}

	// Stable sort by score descending keeps earlier sentences ahead on ties.
	order := make([]int, len(sentences))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	// Selection is tracked by sentence position, not sentence text, so
	// repeated identical sentences cannot be conflated.
	selected := order[:s.maxSentences]
	sort.Ints(selected)

	parts := make([]string, 0, len(selected))
	for _, idx := range selected {
		parts = append(parts, sentences[idx])
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// frequencies builds the word frequency table over the whole text, excluding
// stopwords and tokens at or below the minimum length.
func (s *Summarizer) frequencies(text string) map[string]int {
	freqs := make(map[string]int)
	for _, w := range tokenize(text) {
		if len(w) <= s.minWordLen {
			continue
		}
		if _, stop := s.stopwords[w]; stop {
			continue
		}
		freqs[w]++
	}
	return freqs
}

func tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// SplitSentences splits text on sentence-terminal punctuation followed by
// whitespace. This is a heuristic split, not grammar-aware: abbreviations
// like "e.g. " are mis-split.
func SplitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		b.WriteRune(runes[i])
		if isTerminal(runes[i]) && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			sentences = append(sentences, b.String())
			b.Reset()
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
			}
		}
	}
	if last := b.String(); last != "" {
		sentences = append(sentences, last)
	}
	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
