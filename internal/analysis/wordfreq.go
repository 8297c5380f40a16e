package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopscope/shopscope/internal/types"
)

var tokenRe = regexp.MustCompile(`[a-z][a-z']+`)

// stopwords are common English words excluded from the word cloud.
var stopwords = map[string]bool{
	"a": true, "about": true, "after": true, "all": true, "also": true,
	"an": true, "and": true, "any": true, "are": true, "as": true,
	"at": true, "be": true, "because": true, "been": true, "but": true,
	"by": true, "can": true, "could": true, "did": true, "do": true,
	"does": true, "for": true, "from": true, "get": true, "had": true,
	"has": true, "have": true, "he": true, "her": true, "his": true,
	"how": true, "i": true, "if": true, "in": true, "into": true,
	"is": true, "it": true, "its": true, "it's": true, "just": true,
	"like": true, "me": true, "more": true, "most": true, "my": true,
	"no": true, "not": true, "of": true, "on": true, "one": true,
	"only": true, "or": true, "other": true, "our": true, "out": true,
	"over": true, "so": true, "some": true, "such": true, "than": true,
	"that": true, "the": true, "their": true, "them": true, "then": true,
	"there": true, "these": true, "they": true, "this": true, "to": true,
	"too": true, "up": true, "very": true, "was": true, "we": true,
	"were": true, "what": true, "when": true, "which": true, "while": true,
	"who": true, "will": true, "with": true, "would": true, "you": true,
	"your": true,
}

// WordCount is one token with its occurrence count.
type WordCount struct {
	Word  string
	Count int
}

// WordFrequencies tokenizes all review text and counts non-stopword
// occurrences. Extra stopwords extend the built-in list.
func WordFrequencies(products []*types.Product, extraStopwords []string) map[string]int {
	extra := make(map[string]bool, len(extraStopwords))
	for _, w := range extraStopwords {
		extra[strings.ToLower(w)] = true
	}

	freq := make(map[string]int)
	for _, p := range products {
		for _, r := range p.Reviews {
			for _, tok := range tokenRe.FindAllString(strings.ToLower(r.Text), -1) {
				if stopwords[tok] || extra[tok] {
					continue
				}
				freq[tok]++
			}
		}
	}
	return freq
}

// TopWords returns the n most frequent words, count-descending with
// an alphabetical tiebreak so output is deterministic.
func TopWords(freq map[string]int, n int) []WordCount {
	out := make([]WordCount, 0, len(freq))
	for w, c := range freq {
		out = append(out, WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
