// Package role classifies free-text job titles into a closed set of
// canonical roles.
package role

import "strings"

// Role is a canonical job-function label.
type Role string

// The closed set of canonical roles.
const (
	CEO               Role = "CEO"
	CTO               Role = "CTO"
	Founder           Role = "Founder"
	Cofounder         Role = "Cofounder"
	HeadOfEngineering Role = "Head of Engineering"
	VPOfEngineering   Role = "VP of Engineering"
	TalentAcquisition Role = "Talent Acquisition"
)

// Key reduces a role label to a comparison key: lowercase, letters only.
// Two titles agree on role when their inferred roles share a key.
func Key(r Role) string {
	var b strings.Builder
	for _, c := range strings.ToLower(string(r)) {
		if c >= 'a' && c <= 'z' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Infer maps a free-text title to a canonical role. Rules are tested in a
// fixed priority order and the first match wins, so "Co-Founder & CTO"
// classifies as CTO. Returns ok=false when no rule matches; callers treat
// that as "exclude this contact".
//
// Single-token tests are word-boundary-safe: "cto" matches the standalone
// token only, never a substring. Titles are matched on their lowercased,
// punctuation-stripped, whitespace-collapsed form.
func Infer(title string) (Role, bool) {
	cleaned := cleanTitle(title)
	if cleaned == "" {
		return "", false
	}

	words := map[string]struct{}{}
	for _, w := range strings.Fields(cleaned) {
		words[w] = struct{}{}
	}
	has := func(w string) bool {
		_, ok := words[w]
		return ok
	}
	contains := func(phrase string) bool {
		return strings.Contains(cleaned, phrase)
	}

	switch {
	case has("cto"),
		contains("chief technology officer"),
		contains("chief technical officer"),
		has("chief") && has("tech") && has("officer"):
		return CTO, true

	case contains("head of engineering"),
		contains("head engineering"),
		has("head") && has("engineering"):
		return HeadOfEngineering, true

	case contains("vice president") && has("engineering"),
		contains("vp of engineering"),
		contains("svp of engineering"),
		contains("vp engineering"),
		contains("svp engineering"),
		has("vp") && has("engineering"),
		has("svp") && has("engineering"):
		return VPOfEngineering, true

	// Only the phrase forms classify; a bare "ta" token does not.
	case contains("talent acquisition"),
		contains("talent aquisition"),
		has("talent") && has("acquisition"):
		return TalentAcquisition, true

	case contains("co founder"),
		has("cofounder"),
		has("co") && has("founder"):
		return Cofounder, true

	case has("founder"):
		return Founder, true

	case has("ceo"),
		contains("chief executive officer"):
		return CEO, true
	}

	return "", false
}

// cleanTitle lowercases and replaces every run of non-alphanumeric
// characters with a single space.
func cleanTitle(title string) string {
	var b strings.Builder
	space := true // collapses leading separators
	for _, c := range strings.ToLower(title) {
		switch {
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			b.WriteRune(c)
			space = false
		case !space:
			b.WriteRune(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}
