package fleaflicker

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// FieldStatus reports how a best-effort scraped field was obtained.
type FieldStatus int

const (
	FieldOK FieldStatus = iota
	FieldDegraded
	FieldUnavailable
)

type ScrapedField struct {
	Value  int
	Status FieldStatus
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

// ownText collects only the element's direct text nodes, skipping children.
func ownText(n *html.Node) []string {
	var out []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			out = append(out, strings.TrimSpace(c.Data))
		}
	}
	return out
}

func elementsByTag(doc *html.Node, tags ...string) []*html.Node {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && want[n.Data] {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func firstChildElement(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
	}
	return nil
}

// scrapeCurrentWeek derives the in-progress week from the league scores page:
// the list item following the "This Week" marker names the upcoming period,
// so the current report week is that ordinal minus one.
func scrapeCurrentWeek(doc *html.Node) (int, bool) {
	items := elementsByTag(doc, "li")
	markerIdx := -1
	for i, li := range items {
		if strings.Contains(nodeText(li), "This Week") {
			markerIdx = i
		}
	}
	if markerIdx < 0 || markerIdx+1 >= len(items) {
		return 0, false
	}
	fields := strings.Fields(nodeText(items[markerIdx+1]))
	if len(fields) == 0 {
		return 0, false
	}
	next, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, false
	}
	return next - 1, true
}

type scrapedRules struct {
	playoffSlots          ScrapedField
	numRegularSeasonWeeks ScrapedField
}

// scrapeLeagueRules walks the dt/dd definition list on the league rules page
// looking for the Playoffs entry: its span holds the playoff slot count and
// its "Weeks N-M" text implies the final regular season week N-1.
func scrapeLeagueRules(doc *html.Node, season int) scrapedRules {
	out := scrapedRules{
		playoffSlots:          ScrapedField{Status: FieldUnavailable},
		numRegularSeasonWeeks: ScrapedField{Status: FieldUnavailable},
	}

	elements := elementsByTag(doc, "dt", "dd")
	for i, elem := range elements {
		if elem.Data != "dt" || nodeText(elem) != "Playoffs" || i+1 >= len(elements) {
			continue
		}
		dd := elements[i+1]

		if span := firstChildElement(dd, "span"); span != nil {
			if slots, err := strconv.Atoi(nodeText(span)); err == nil {
				out.playoffSlots = ScrapedField{Value: slots, Status: FieldOK}
			}
		} else {
			out.playoffSlots = ScrapedField{Value: 0, Status: FieldOK}
		}

		for _, text := range ownText(dd) {
			if !strings.Contains(text, "Weeks") {
				continue
			}
			for _, token := range strings.Fields(text) {
				if !strings.Contains(token, "-") {
					continue
				}
				if firstPlayoffWeek, err := strconv.Atoi(strings.SplitN(token, "-", 2)[0]); err == nil {
					out.numRegularSeasonWeeks = ScrapedField{Value: firstPlayoffWeek - 1, Status: FieldOK}
				}
			}
		}

		if out.numRegularSeasonWeeks.Status != FieldOK && out.playoffSlots.Status == FieldOK && out.playoffSlots.Value == 0 {
			// no playoffs: every schedule week is a regular season week
			out.numRegularSeasonWeeks = ScrapedField{Value: defaultRegularSeasonWeeks(season), Status: FieldDegraded}
		}
		break
	}
	return out
}

func defaultRegularSeasonWeeks(season int) int {
	if season > 2020 {
		return 18
	}
	return 17
}
