package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributionSortedAndBounded(t *testing.T) {
	counts := map[string]int{
		"happy":   12,
		"sad":     4,
		"calm":    12,
		"anxious": 2,
	}
	order := []string{"happy", "calm", "sad", "anxious"}

	shares := Distribution(counts, order, map[string]bool{"anxious": true})
	require.Len(t, shares, 4)

	// Descending by count, ties keep insertion order.
	assert.Equal(t, "happy", shares[0].Key)
	assert.Equal(t, "calm", shares[1].Key)
	assert.Equal(t, "sad", shares[2].Key)
	assert.Equal(t, "anxious", shares[3].Key)

	sum := 0
	for i, s := range shares {
		sum += s.Percentage
		if i > 0 {
			assert.GreaterOrEqual(t, shares[i-1].Count, s.Count)
		}
	}
	// Rounding drift allowed, but never above 100 plus slack per entry.
	assert.LessOrEqual(t, sum, 100+len(shares))

	assert.True(t, shares[3].AIGenerated)
	assert.False(t, shares[0].AIGenerated)
}

func TestDistributionEmptyAndZero(t *testing.T) {
	assert.Nil(t, Distribution(nil, nil, nil))

	shares := Distribution(map[string]int{"happy": 0, "sad": 0}, []string{"happy", "sad"}, nil)
	require.Len(t, shares, 2)
	for _, s := range shares {
		assert.Equal(t, 0, s.Percentage)
	}
}

func TestUnitDistribution(t *testing.T) {
	shares := UnitDistribution([]UnitBreakdownEntry{
		{Unit: "Grade 7", Submitted: 30},
		{Unit: "Grade 8", Submitted: 50},
		{Unit: "Staff", Submitted: 20},
	})
	require.Len(t, shares, 3)

	assert.Equal(t, "Grade 8", shares[0].Key)
	assert.Equal(t, 50, shares[0].Percentage)
	assert.Equal(t, "Grade 7", shares[1].Key)
	assert.Equal(t, "Staff", shares[2].Key)
}

func TestTopKeys(t *testing.T) {
	shares := []CategoryShare{{Key: "a"}, {Key: "b"}, {Key: "c"}}
	assert.Equal(t, []string{"a", "b"}, TopKeys(shares, 2))
	assert.Equal(t, []string{"a", "b", "c"}, TopKeys(shares, 10))
	assert.Empty(t, TopKeys(nil, 3))
}

func TestDeriveIndicators(t *testing.T) {
	tests := []struct {
		name          string
		flaggedPct    int
		topMoods      []string
		wantRisks     []string
		wantPositives []string
	}{
		{
			name:          "high support need and concern moods",
			flaggedPct:    25,
			topMoods:      []string{"sad", "tired"},
			wantRisks:     []string{IndicatorHighSupportNeed, IndicatorWellbeingConcern},
			wantPositives: nil,
		},
		{
			name:          "resilient and positive",
			flaggedPct:    5,
			topMoods:      []string{"happy", "calm"},
			wantRisks:     nil,
			wantPositives: []string{IndicatorStrongResilience, IndicatorPositiveDynamics},
		},
		{
			name:          "mixed rules fire independently",
			flaggedPct:    5,
			topMoods:      []string{"anxious", "excited"},
			wantRisks:     []string{IndicatorWellbeingConcern},
			wantPositives: []string{IndicatorStrongResilience, IndicatorPositiveDynamics},
		},
		{
			name:          "middle band fires nothing",
			flaggedPct:    15,
			topMoods:      []string{"tired"},
			wantRisks:     nil,
			wantPositives: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			risks, positives := DeriveIndicators(tt.flaggedPct, tt.topMoods)
			assert.Equal(t, tt.wantRisks, types(risks))
			assert.Equal(t, tt.wantPositives, types(positives))
		})
	}
}

func types(indicators []Indicator) []string {
	if len(indicators) == 0 {
		return nil
	}
	out := make([]string, len(indicators))
	for i, ind := range indicators {
		out[i] = ind.Type
	}
	return out
}

func TestFlaggedPercentage(t *testing.T) {
	assert.Equal(t, 0, FlaggedPercentage(0, 10))
	assert.Equal(t, 0, FlaggedPercentage(5, 0))
	assert.Equal(t, 50, FlaggedPercentage(5, 10))
	assert.Equal(t, 100, FlaggedPercentage(30, 10))
}
