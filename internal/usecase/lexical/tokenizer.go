package lexical

import "strings"

// minTokenLength drops single-character fragments left by punctuation splits.
const minTokenLength = 2

// stopWords is the fixed English stop-word set removed during tokenization.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "he": {}, "in": {}, "is": {},
	"it": {}, "its": {}, "of": {}, "on": {}, "that": {}, "the": {}, "to": {},
	"was": {}, "will": {}, "with": {}, "this": {}, "but": {}, "they": {},
	"have": {}, "had": {}, "what": {}, "said": {}, "each": {}, "which": {},
	"she": {}, "do": {}, "how": {}, "their": {}, "if": {}, "up": {},
	"other": {}, "about": {}, "out": {}, "many": {}, "then": {}, "them": {},
}

// tokenize lowercases text, splits on non-alphanumeric runs and drops short
// tokens and stop words.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isAlphanumeric(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < minTokenLength {
			continue
		}
		if _, ok := stopWords[f]; ok {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// distinctTokens tokenizes and collapses duplicates, preserving first-seen order.
func distinctTokens(text string) []string {
	tokens := tokenize(text)
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
