package metrics

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maximum edit distance for a configured name to still match a team name
const dqMatchThreshold = 2

// DQMatcher matches configured coaching efficiency disqualification names
// against league team names, tolerating minor spelling differences.
type DQMatcher struct {
	names []string
}

func NewDQMatcher(names []string) *DQMatcher {
	trimmed := make([]string, 0, len(names))
	for _, name := range names {
		if n := strings.TrimSpace(name); n != "" {
			trimmed = append(trimmed, n)
		}
	}
	return &DQMatcher{names: trimmed}
}

func (m *DQMatcher) Match(teamName string) bool {
	for _, name := range m.names {
		if strings.EqualFold(name, teamName) {
			return true
		}
		if fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(teamName)) <= dqMatchThreshold {
			return true
		}
	}
	return false
}
