package fleaflicker

type positionAttributes struct {
	base          string
	isFlex        bool
	flexPositions []string
}

// positionMapping maps Fleaflicker roster labels to canonical base positions.
// Flex labels additionally carry the base positions they accept.
var positionMapping = map[string]positionAttributes{
	"QB":          {base: "QB"},
	"RB":          {base: "RB"},
	"WR":          {base: "WR"},
	"TE":          {base: "TE"},
	"K":           {base: "K"},
	"D/ST":        {base: "D/ST"},
	"RB/WR":       {base: "FLEX_RB_WR", isFlex: true, flexPositions: []string{"RB", "WR"}},
	"WR/TE":       {base: "FLEX_WR_TE", isFlex: true, flexPositions: []string{"WR", "TE"}},
	"RB/WR/TE":    {base: "FLEX", isFlex: true, flexPositions: []string{"RB", "WR", "TE"}},
	"QB/RB/WR/TE": {base: "SUPERFLEX", isFlex: true, flexPositions: []string{"QB", "RB", "WR", "TE"}},
	"DB":          {base: "DB"},
	"LB":          {base: "LB"},
	"DL":          {base: "DL"},
	"DB/LB/DL":    {base: "IDP_FLEX", isFlex: true, flexPositions: []string{"DB", "LB", "DL"}},
	"BN":          {base: "BN"},
	"IR":          {base: "IR"},
	"TAXI":        {base: "TAXI"},
}

var benchPositions = []string{"BN", "IR", "TAXI"}

var offensivePositions = map[string]bool{
	"QB": true, "RB": true, "WR": true, "TE": true, "K": true,
}

// mappedPosition resolves a platform label to its canonical base position,
// passing unknown labels through unchanged.
func mappedPosition(label string) string {
	if attrs, ok := positionMapping[label]; ok {
		return attrs.base
	}
	return label
}

func isFlexLabel(label string) bool {
	attrs, ok := positionMapping[label]
	return ok && attrs.isFlex
}

func positionType(basePosition string) string {
	if offensivePositions[basePosition] {
		return "O"
	}
	return "D"
}

// applyEligibility adds the mapped base position and every flex category that
// includes it to a player's eligible-position set.
func applyEligibility(eligible map[string]bool, platformPosition string, flexPositions map[string][]string) {
	base := mappedPosition(platformPosition)
	eligible[base] = true
	for flex, members := range flexPositions {
		for _, member := range members {
			if member == base {
				eligible[flex] = true
				break
			}
		}
	}
}
