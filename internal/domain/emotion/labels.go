package emotion

// labelRule is one tier of an emotion's label ladder. Rules are
// evaluated in order; the first matching predicate wins. The last tier
// of every ladder matches unconditionally.
type labelRule struct {
	match func(valence, arousal float64) bool
	label string
}

func always(float64, float64) bool { return true }

// labelLadders maps each supported emotion to its three-tier label
// ladder. Thresholds distinguish the full-strength expression, a
// moderate variant, and a residual baseline.
var labelLadders = map[string][]labelRule{
	EmotionHappy: {
		{func(v, a float64) bool { return v > 0.5 && a > 0.3 }, "Genuine Joy"},
		{func(v, a float64) bool { return v > 0.3 && a > 0.2 }, "Positive Engagement"},
		{always, "Content Satisfaction"},
	},
	EmotionSad: {
		{func(v, a float64) bool { return v < -0.5 && a < 0.4 }, "Deep Sadness"},
		{func(v, a float64) bool { return v < -0.3 }, "Quiet Melancholy"},
		{always, "Passing Low"},
	},
	EmotionAngry: {
		{func(v, a float64) bool { return v < -0.4 && a > 0.6 }, "Intense Frustration"},
		{func(v, a float64) bool { return a > 0.4 }, "Simmering Irritation"},
		{always, "Mild Annoyance"},
	},
	EmotionSurprised: {
		{func(v, a float64) bool { return a > 0.7 }, "Startled Alertness"},
		{func(v, a float64) bool { return v > 0.2 }, "Curious Wonder"},
		{always, "Mild Surprise"},
	},
	EmotionFearful: {
		{func(v, a float64) bool { return v < -0.3 && a > 0.6 }, "Acute Anxiety"},
		{func(v, a float64) bool { return a > 0.4 }, "Underlying Worry"},
		{always, "Quiet Unease"},
	},
	EmotionDisgusted: {
		{func(v, a float64) bool { return v < -0.5 }, "Strong Aversion"},
		{func(v, a float64) bool { return v < -0.2 }, "Clear Discomfort"},
		{always, "Mild Distaste"},
	},
	EmotionNeutral: {
		{func(v, a float64) bool { return a < 0.2 }, "Calm Presence"},
		{func(v, a float64) bool { return v > 0.1 }, "Balanced Steadiness"},
		{always, "Even Keel"},
	},
	EmotionAnxious: {
		{func(v, a float64) bool { return a > 0.7 }, "High Alert"},
		{func(v, a float64) bool { return a > 0.45 }, "Restless Tension"},
		{always, "Background Worry"},
	},
	EmotionCalm: {
		{func(v, a float64) bool { return v > 0.3 && a < 0.3 }, "Deep Serenity"},
		{func(v, a float64) bool { return v > 0.1 }, "Settled Calm"},
		{always, "Quiet Stillness"},
	},
}

// ladderFor returns the ladder for an emotion, falling back to the
// neutral ladder for unknown keys.
func ladderFor(primaryEmotion string) []labelRule {
	if ladder, ok := labelLadders[primaryEmotion]; ok {
		return ladder
	}
	return labelLadders[EmotionNeutral]
}

// ResolveLabel maps a primary emotion plus valence/arousal onto its
// human-readable label.
func ResolveLabel(primaryEmotion string, valence, arousal float64) string {
	for _, rule := range ladderFor(primaryEmotion) {
		if rule.match(valence, arousal) {
			return rule.label
		}
	}
	// Unreachable: every ladder ends with an unconditional tier.
	return "Even Keel"
}
