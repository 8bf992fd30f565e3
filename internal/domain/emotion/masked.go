package emotion

import "regexp"

// Emotions whose surface reading is positive or flat; incongruence
// checks only apply to these.
var surfacePositive = map[string]bool{
	EmotionHappy:     true,
	EmotionCalm:      true,
	EmotionSurprised: true,
	EmotionNeutral:   true,
}

// Physical strain markers in detector explanations that suggest the
// surface emotion is held rather than felt.
var tensionCues = regexp.MustCompile(`(?i)tension|tight|furrow|strain|fatigue|micro-twitch|jaw`)

// DetectMaskedEmotion scores incongruence between a nominally
// positive/neutral emotion label and underlying low-valence,
// high-arousal, low-intensity, or tension signals. Each cue is
// additive and independently triggerable, so multiple cues can stack
// past the 0.5 masking threshold.
func DetectMaskedEmotion(sample Sample) MaskedEmotion {
	score := 0.0
	var cues []string
	hidden := ""

	positive := surfacePositive[sample.PrimaryEmotion]

	if positive && sample.Valence < 0.1 {
		score += 0.4
		hidden = "emotional fatigue"
		cues = append(cues, "positive label over low valence")
	}
	if positive && sample.Arousal > 0.55 && sample.Valence < 0.2 {
		score += 0.25
		if hidden == "" {
			hidden = "quiet overwhelm"
		}
		cues = append(cues, "elevated arousal without matching positivity")
	}
	if sample.Intensity < 35 {
		score += 0.2
		if hidden == "" {
			hidden = "low energy"
		}
		cues = append(cues, "low expression intensity")
	}
	for _, explanation := range sample.Explanations {
		if tensionCues.MatchString(explanation) {
			score += 0.25
			if hidden == "" {
				hidden = "suppressed concern"
			}
			cues = append(cues, "physical tension markers in expression")
			break
		}
	}

	if hidden == "" {
		if sample.Valence < 0.1 {
			hidden = "subtle sadness"
		} else {
			hidden = "mixed emotions"
		}
	}

	maskScore := score
	if maskScore > 1 {
		maskScore = 1
	}

	return MaskedEmotion{
		IsMasked:           score >= 0.5,
		MaskScore:          maskScore,
		HiddenEmotionLabel: hidden,
		Cues:               cues,
	}
}
