// Package normalize produces stable dedupe keys for company and person names.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// legalSuffixes are entity-type tokens stripped from the end of a company
// name. Matching is on whole tokens only, so "Co" in "Coastline" is untouched.
var legalSuffixes = map[string]struct{}{
	"ltd": {}, "limited": {}, "inc": {}, "incorporated": {},
	"llc": {}, "llp": {}, "corp": {}, "corporation": {}, "co": {},
	"gmbh": {}, "ag": {}, "kg": {}, "ug": {},
	"sa": {}, "sarl": {}, "sas": {}, "srl": {}, "spa": {},
	"bv": {}, "nv": {}, "ab": {}, "as": {}, "oy": {}, "aps": {},
	"plc": {}, "pty": {},
}

// foldDiacritics decomposes to NFD and drops combining marks, so "Café" and
// "Cafe" normalize to the same key.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CompanyKey normalizes a free-text company name into a dedupe key:
// lowercased, diacritics folded, punctuation stripped, legal-entity suffixes
// removed, whitespace collapsed. Total and deterministic; a blank name
// normalizes to the empty string.
func CompanyKey(name string) string {
	tokens := tokenize(name)

	// Strip trailing legal suffixes, but never reduce the key to nothing:
	// a company literally named "Limited" keeps its token.
	for len(tokens) > 1 {
		last := tokens[len(tokens)-1]
		if _, ok := legalSuffixes[last]; !ok {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}

	return strings.Join(tokens, " ")
}

// PersonKey builds the dedupe key for a person within a company. The company
// key namespaces the person so same-named people at different companies stay
// distinct.
func PersonKey(companyKey, personName string) string {
	return companyKey + "/" + strings.Join(tokenize(personName), " ")
}

// tokenize lowercases, folds diacritics, and splits on every run of
// non-alphanumeric characters.
func tokenize(s string) []string {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return nil
	}

	if folded, _, err := transform.String(foldDiacritics, lower); err == nil {
		lower = folded
	}

	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
