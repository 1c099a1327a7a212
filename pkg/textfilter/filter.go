package textfilter

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultNameToken is the placeholder scripts use for the player's name.
const DefaultNameToken = "@pcname@"

// NameSubstituter replaces the player-name placeholder in dialog text.
// Token matching ignores case, so "@PCNAME@" and "@PcName@" both match.
type NameSubstituter struct {
	token *regexp.Regexp
	name  string
}

// NewNameSubstituter builds a substituter for token. An empty token falls
// back to DefaultNameToken. The name is title-cased once up front.
func NewNameSubstituter(token, name string) *NameSubstituter {
	if token == "" {
		token = DefaultNameToken
	}
	return &NameSubstituter{
		token: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(token)),
		name:  DisplayName(name),
	}
}

// Apply returns text with every placeholder replaced by the player's name.
func (s *NameSubstituter) Apply(text string) string {
	return s.token.ReplaceAllLiteralString(text, s.name)
}

// Name returns the display name used for substitution.
func (s *NameSubstituter) Name() string {
	return s.name
}

// DisplayName normalizes a player name for display: surrounding space is
// trimmed, inner runs of space collapse, and an all-lowercase name is
// title-cased. Names with deliberate capitals are left alone.
func DisplayName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" || strings.ToLower(name) != name {
		return name
	}
	return cases.Title(language.English).String(name)
}
