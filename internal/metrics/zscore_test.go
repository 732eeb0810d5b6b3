package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestZScores(t *testing.T) {
	t.Run("all undefined omits the column", func(t *testing.T) {
		out := ZScores(map[string]*float64{"1": nil, "2": nil})
		assert.Nil(t, out)
	})

	t.Run("partially undefined coerces to zero and keeps every row", func(t *testing.T) {
		out := ZScores(map[string]*float64{
			"1": ptr(10),
			"2": nil,
			"3": ptr(-10),
		})
		require.Len(t, out, 3)
		// the nil team standardizes as a 0 input, which is the mean here
		assert.InDelta(t, 0.0, out["2"], 0.001)
		assert.Greater(t, out["1"], 0.0)
		assert.Less(t, out["3"], 0.0)
	})

	t.Run("identical values yield zero scores", func(t *testing.T) {
		out := ZScores(map[string]*float64{"1": ptr(5), "2": ptr(5)})
		require.Len(t, out, 2)
		assert.Equal(t, 0.0, out["1"])
		assert.Equal(t, 0.0, out["2"])
	})

	t.Run("standardizes against population stddev", func(t *testing.T) {
		out := ZScores(map[string]*float64{"1": ptr(90), "2": ptr(110)})
		require.Len(t, out, 2)
		assert.InDelta(t, -1.0, out["1"], 0.001)
		assert.InDelta(t, 1.0, out["2"], 0.001)
	})
}
