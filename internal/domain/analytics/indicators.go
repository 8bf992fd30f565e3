package analytics

// Indicator types emitted by DeriveIndicators.
const (
	IndicatorHighSupportNeed  = "high_support_need"
	IndicatorWellbeingConcern = "wellbeing_concern"
	IndicatorStrongResilience = "strong_resilience"
	IndicatorPositiveDynamics = "positive_dynamics"
)

var concernMoods = map[string]bool{
	"sad":         true,
	"anxious":     true,
	"overwhelmed": true,
}

var upliftMoods = map[string]bool{
	"happy":   true,
	"excited": true,
	"calm":    true,
}

// DeriveIndicators evaluates the fixed rule table against the computed
// flagged percentage and the top mood keys. Rules are independent; all
// matching rules fire.
func DeriveIndicators(flaggedPct int, topMoods []string) (risks, positives []Indicator) {
	if flaggedPct > 20 {
		risks = append(risks, Indicator{
			Type:     IndicatorHighSupportNeed,
			Severity: SeverityHigh,
			Message:  "A significant share of users is flagged for support follow-up.",
		})
	}
	if anyMood(topMoods, concernMoods) {
		risks = append(risks, Indicator{
			Type:     IndicatorWellbeingConcern,
			Severity: SeverityMedium,
			Message:  "Low-mood states are among the most reported this period.",
		})
	}
	if flaggedPct < 10 {
		positives = append(positives, Indicator{
			Type:     IndicatorStrongResilience,
			Severity: SeverityLow,
			Message:  "Support-need rate is low across the reporting period.",
		})
	}
	if anyMood(topMoods, upliftMoods) {
		positives = append(positives, Indicator{
			Type:     IndicatorPositiveDynamics,
			Severity: SeverityLow,
			Message:  "Positive moods are among the most reported this period.",
		})
	}
	return risks, positives
}

func anyMood(moods []string, set map[string]bool) bool {
	for _, m := range moods {
		if set[m] {
			return true
		}
	}
	return false
}

// FlaggedPercentage computes the share of flagged users over the total
// user count, guarded against a zero denominator.
func FlaggedPercentage(flaggedCount, totalUsers int) int {
	if totalUsers <= 0 || flaggedCount <= 0 {
		return 0
	}
	pct := flaggedCount * 100 / totalUsers
	if pct > 100 {
		pct = 100
	}
	return pct
}
