package emotion

import "math"

// FlagMaskedEmotion is the analysis flag type for masking detection.
const FlagMaskedEmotion = "masked_emotion"

const maxMicroExpressions = 4

// Interpret transforms a raw detector sample into the derived result
// used by the check-in view. It is a pure function of its inputs apart
// from the injected selector, which chooses the narrative variants.
// A nil selector falls back to the package default random source.
func Interpret(sample Sample, selector Selector) AnalysisResult {
	if selector == nil {
		selector = RandomSelector(nil)
	}

	masked := DetectMaskedEmotion(sample)

	micro := sample.Explanations
	if len(micro) > maxMicroExpressions {
		micro = micro[:maxMicroExpressions]
	}

	return AnalysisResult{
		DetectedEmotion:            ResolveLabel(sample.PrimaryEmotion, sample.Valence, sample.Arousal),
		Confidence:                 clampConfidence(int(math.Round(sample.Confidence))),
		InternalWeather:            ResolveWeather(sample.Valence, sample.Arousal),
		MicroExpressions:           micro,
		PsychologicalInsight:       PsychologicalInsight(sample.PrimaryEmotion, selector),
		PersonalizedRecommendation: PersonalizedRecommendation(sample.PrimaryEmotion, selector),
		PresenceCapacity:           EstimatePresenceCapacity(sample.Valence, sample.Arousal),
		DetailedRecommendations:    BuildRecommendations(sample.PrimaryEmotion, sample.Valence, sample.Arousal),
		AnalysisFlags:              buildFlags(masked),
	}
}

func buildFlags(masked MaskedEmotion) []Flag {
	if !masked.IsMasked {
		return nil
	}
	severity := "medium"
	if masked.MaskScore >= 0.75 {
		severity = "high"
	}
	insights := append([]string{"likely hidden state: " + masked.HiddenEmotionLabel}, masked.Cues...)
	return []Flag{{
		Type:     FlagMaskedEmotion,
		Severity: severity,
		Insights: insights,
	}}
}

func clampConfidence(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
