package emotion

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var supportedEmotions = []string{
	EmotionHappy, EmotionSad, EmotionAngry, EmotionSurprised,
	EmotionFearful, EmotionDisgusted, EmotionNeutral, EmotionAnxious,
	EmotionCalm,
}

func firstVariant(n int) int { return 0 }

func TestResolveLabelLadder(t *testing.T) {
	tests := []struct {
		name     string
		emotion  string
		valence  float64
		arousal  float64
		expected string
	}{
		{"happy top tier", EmotionHappy, 0.7, 0.5, "Genuine Joy"},
		{"happy middle tier", EmotionHappy, 0.4, 0.25, "Positive Engagement"},
		{"happy base tier", EmotionHappy, 0.1, 0.1, "Content Satisfaction"},
		{"sad top tier", EmotionSad, -0.7, 0.2, "Deep Sadness"},
		{"anxious middle tier", EmotionAnxious, -0.2, 0.5, "Restless Tension"},
		{"calm top tier", EmotionCalm, 0.5, 0.1, "Deep Serenity"},
		{"unknown emotion uses neutral ladder", "bewildered", 0.0, 0.1, "Calm Presence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveLabel(tt.emotion, tt.valence, tt.arousal))
		})
	}
}

func TestResolveWeatherCategory(t *testing.T) {
	tests := []struct {
		name     string
		valence  float64
		arousal  float64
		expected string
	}{
		{"bright and energized", 0.5, 0.6, WeatherHappyHigh},
		{"warm and settled", 0.15, 0.2, WeatherHappyLow},
		{"charged negative", -0.4, 0.6, WeatherNegativeHigh},
		{"heavy and slow", -0.2, 0.2, WeatherNegativeLow},
		{"flat", 0.0, 0.4, WeatherNeutral},
		{"positive but mid arousal misses both happy bands", 0.3, 0.4, WeatherNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveWeatherCategory(tt.valence, tt.arousal))
			info := ResolveWeather(tt.valence, tt.arousal)
			assert.NotEmpty(t, info.Icon)
			assert.NotEmpty(t, info.Internal)
			assert.NotEmpty(t, info.Desc)
		})
	}
}

func TestEstimatePresenceCapacityBounds(t *testing.T) {
	for v := -1.0; v <= 1.0; v += 0.1 {
		for a := 0.0; a <= 1.0; a += 0.1 {
			pc := EstimatePresenceCapacity(v, a)
			assert.GreaterOrEqual(t, pc.EstimatedPresence, 1)
			assert.LessOrEqual(t, pc.EstimatedPresence, 10)
			assert.GreaterOrEqual(t, pc.EstimatedCapacity, 1)
			assert.LessOrEqual(t, pc.EstimatedCapacity, 10)
		}
	}
}

func TestEstimatePresenceCapacityAnchors(t *testing.T) {
	pc := EstimatePresenceCapacity(1, 0.5)
	assert.Equal(t, 10, pc.EstimatedPresence)
	assert.Equal(t, 10, pc.EstimatedCapacity)

	pc = EstimatePresenceCapacity(-1, 0)
	assert.Equal(t, 1, pc.EstimatedPresence)
	// Capacity bottoms out at the arousal extremes: (1-0.5)*8+2 = 6.
	assert.Equal(t, 6, pc.EstimatedCapacity)
}

func TestBuildRecommendationsBounds(t *testing.T) {
	grid := []struct{ v, a float64 }{
		{-0.9, 0.1}, {-0.3, 0.5}, {0.0, 0.0}, {0.4, 0.7}, {0.9, 0.9},
	}
	for _, emo := range append(supportedEmotions, "unknown") {
		for _, p := range grid {
			recs := BuildRecommendations(emo, p.v, p.a)
			assert.GreaterOrEqual(t, len(recs), 1, emo)
			assert.LessOrEqual(t, len(recs), 4, emo)
			for _, r := range recs {
				assert.NotEmpty(t, r.Title)
				assert.NotEmpty(t, r.Description)
				assert.Contains(t, []string{PriorityLow, PriorityMedium, PriorityHigh}, r.Priority)
				assert.Contains(t, []string{CategorySelfCare, CategoryMindfulness, CategorySocial}, r.Category)
			}
		}
	}
}

func TestBuildRecommendationsFiller(t *testing.T) {
	// Disgusted has two unconditional rules, so the filler is appended.
	recs := BuildRecommendations(EmotionDisgusted, 0, 0)
	require.Len(t, recs, 3)
	assert.Equal(t, fillerRecommendation.Title, recs[2].Title)
}

func TestNarrativeSelectionIsInjected(t *testing.T) {
	for _, emo := range supportedEmotions {
		variants := insightVariants[emo]
		require.NotEmpty(t, variants, emo)
		for i := range variants {
			idx := i
			got := PsychologicalInsight(emo, func(n int) int { return idx % n })
			assert.Contains(t, variants, got)
		}
	}

	// Same selector, same output: the engine itself is deterministic.
	a := PersonalizedRecommendation(EmotionSad, firstVariant)
	b := PersonalizedRecommendation(EmotionSad, firstVariant)
	assert.Equal(t, a, b)
}

func TestInterpretAssemblesResult(t *testing.T) {
	sample := Sample{
		PrimaryEmotion: EmotionHappy,
		Confidence:     91.4,
		Valence:        0.05,
		Arousal:        0.6,
		Intensity:      30,
		Explanations: []string{
			"jaw tension visible",
			"raised cheeks",
			"narrowed eyes",
			"head tilt",
			"shoulder drop",
		},
	}

	result := Interpret(sample, firstVariant)

	assert.Equal(t, "Content Satisfaction", result.DetectedEmotion)
	assert.Equal(t, 91, result.Confidence)
	assert.Equal(t, WeatherNeutral, ResolveWeatherCategory(sample.Valence, sample.Arousal))
	assert.Len(t, result.MicroExpressions, 4)
	assert.NotEmpty(t, result.PsychologicalInsight)
	assert.NotEmpty(t, result.PersonalizedRecommendation)
	assert.GreaterOrEqual(t, len(result.DetailedRecommendations), 1)
	assert.LessOrEqual(t, len(result.DetailedRecommendations), 4)

	require.Len(t, result.AnalysisFlags, 1)
	flag := result.AnalysisFlags[0]
	assert.Equal(t, FlagMaskedEmotion, flag.Type)
	assert.Equal(t, "high", flag.Severity)
	assert.Contains(t, flag.Insights[0], "emotional fatigue")
}

func TestInterpretNoFlagsWhenUnmasked(t *testing.T) {
	result := Interpret(Sample{
		PrimaryEmotion: EmotionHappy,
		Confidence:     80,
		Valence:        0.8,
		Arousal:        0.3,
		Intensity:      80,
	}, firstVariant)

	assert.Empty(t, result.AnalysisFlags)
	assert.Equal(t, "Genuine Joy", result.DetectedEmotion)
}

func TestInterpretNilSelectorStillStructurallyValid(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, emo := range supportedEmotions {
		result := Interpret(Sample{PrimaryEmotion: emo, Confidence: 120}, RandomSelector(rng))
		assert.Equal(t, 100, result.Confidence)
		assert.Contains(t, insightVariants[emo], result.PsychologicalInsight)
		assert.Contains(t, personalVariants[emo], result.PersonalizedRecommendation)
	}
}
