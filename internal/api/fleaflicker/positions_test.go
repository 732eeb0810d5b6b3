package fleaflicker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMappedPosition(t *testing.T) {
	assert.Equal(t, "QB", mappedPosition("QB"))
	assert.Equal(t, "FLEX", mappedPosition("RB/WR/TE"))
	assert.Equal(t, "SUPERFLEX", mappedPosition("QB/RB/WR/TE"))
	assert.Equal(t, "IDP_FLEX", mappedPosition("DB/LB/DL"))
	// unknown labels pass through unchanged
	assert.Equal(t, "HC", mappedPosition("HC"))
}

func TestIsFlexLabel(t *testing.T) {
	assert.True(t, isFlexLabel("RB/WR/TE"))
	assert.False(t, isFlexLabel("RB"))
	assert.False(t, isFlexLabel("BN"))
}

func TestPositionType(t *testing.T) {
	assert.Equal(t, "O", positionType("WR"))
	assert.Equal(t, "O", positionType("K"))
	assert.Equal(t, "D", positionType("D/ST"))
	assert.Equal(t, "D", positionType("LB"))
}

func TestApplyEligibility(t *testing.T) {
	flexPositions := map[string][]string{
		"FLEX":      {"RB", "WR", "TE"},
		"SUPERFLEX": {"QB", "RB", "WR", "TE"},
	}

	eligible := make(map[string]bool)
	applyEligibility(eligible, "RB", flexPositions)
	assert.Equal(t, map[string]bool{"RB": true, "FLEX": true, "SUPERFLEX": true}, eligible)

	eligible = make(map[string]bool)
	applyEligibility(eligible, "QB", flexPositions)
	assert.Equal(t, map[string]bool{"QB": true, "SUPERFLEX": true}, eligible)

	// kickers belong to no flex category
	eligible = make(map[string]bool)
	applyEligibility(eligible, "K", flexPositions)
	assert.Equal(t, map[string]bool{"K": true}, eligible)
}
