package fleaflicker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseHTML(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func TestScrapeCurrentWeek(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantWeek int
		wantOK   bool
	}{
		{
			name:     "marker followed by next period",
			body:     `<ul><li>Week 8</li><li><b>This Week</b></li><li>Week 10</li></ul>`,
			wantWeek: 9,
			wantOK:   true,
		},
		{
			name:   "marker is last item",
			body:   `<ul><li>Week 8</li><li>This Week</li></ul>`,
			wantOK: false,
		},
		{
			name:   "no marker",
			body:   `<ul><li>Week 8</li><li>Week 9</li></ul>`,
			wantOK: false,
		},
		{
			name:   "next item is not numeric",
			body:   `<ul><li>This Week</li><li>Playoffs</li></ul>`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week, ok := scrapeCurrentWeek(parseHTML(t, tt.body))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantWeek, week)
			}
		})
	}
}

func TestScrapeLeagueRules(t *testing.T) {
	t.Run("playoff entry with span and week range", func(t *testing.T) {
		body := `<dl><dt>Teams</dt><dd>10</dd><dt>Playoffs</dt><dd><span>6</span> Weeks 15-17</dd></dl>`
		rules := scrapeLeagueRules(parseHTML(t, body), 2024)

		assert.Equal(t, FieldOK, rules.playoffSlots.Status)
		assert.Equal(t, 6, rules.playoffSlots.Value)
		assert.Equal(t, FieldOK, rules.numRegularSeasonWeeks.Status)
		assert.Equal(t, 14, rules.numRegularSeasonWeeks.Value)
	})

	t.Run("no playoffs falls back to season default", func(t *testing.T) {
		body := `<dl><dt>Playoffs</dt><dd>None</dd></dl>`
		rules := scrapeLeagueRules(parseHTML(t, body), 2024)

		assert.Equal(t, FieldOK, rules.playoffSlots.Status)
		assert.Equal(t, 0, rules.playoffSlots.Value)
		assert.Equal(t, FieldDegraded, rules.numRegularSeasonWeeks.Status)
		assert.Equal(t, 18, rules.numRegularSeasonWeeks.Value)
	})

	t.Run("missing playoff entry", func(t *testing.T) {
		body := `<dl><dt>Teams</dt><dd>10</dd></dl>`
		rules := scrapeLeagueRules(parseHTML(t, body), 2024)

		assert.Equal(t, FieldUnavailable, rules.playoffSlots.Status)
		assert.Equal(t, FieldUnavailable, rules.numRegularSeasonWeeks.Status)
	})
}

func TestDefaultRegularSeasonWeeks(t *testing.T) {
	assert.Equal(t, 17, defaultRegularSeasonWeeks(2020))
	assert.Equal(t, 18, defaultRegularSeasonWeeks(2021))
	assert.Equal(t, 18, defaultRegularSeasonWeeks(2024))
}
