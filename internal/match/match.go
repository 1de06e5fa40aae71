// Package match finds skills whose titles contain one of a user's want titles.
package match

import (
	"strings"

	"github.com/frahmantamala/skill-exchange/internal/skill"
)

type MatchesResponse struct {
	Matches []*skill.Listing `json:"matches"`
}

// Terms lower-cases want titles and drops blanks and duplicates. A blank
// term would match every skill.
func Terms(titles []string) []string {
	seen := make(map[string]struct{}, len(titles))
	terms := make([]string, 0, len(titles))
	for _, title := range titles {
		term := strings.ToLower(strings.TrimSpace(title))
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns term into a LIKE pattern matching any string that
// contains term literally. Use with ESCAPE '\'.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
