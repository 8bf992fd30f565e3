package emotion

// recommendationRule pairs a valence/arousal predicate with the
// recommendation it unlocks. A nil predicate always matches.
type recommendationRule struct {
	match func(valence, arousal float64) bool
	rec   Recommendation
}

// fillerRecommendation tops the list up when fewer than four emotion
// rules match.
var fillerRecommendation = Recommendation{
	Title:       "Practice Self-Compassion",
	Description: "Whatever today holds, speak to yourself the way you would to a friend.",
	Priority:    PriorityLow,
	Category:    CategorySelfCare,
}

var recommendationRules = map[string][]recommendationRule{
	EmotionHappy: {
		{nil, Recommendation{
			Title:       "Share the Moment",
			Description: "Tell someone what went well today; naming good moments extends them.",
			Priority:    PriorityLow,
			Category:    CategorySocial,
		}},
		{func(v, a float64) bool { return a > 0.5 }, Recommendation{
			Title:       "Channel the Energy",
			Description: "Put this momentum into the one task you have been putting off.",
			Priority:    PriorityMedium,
			Category:    CategorySelfCare,
		}},
		{func(v, a float64) bool { return v > 0.5 }, Recommendation{
			Title:       "Savor It",
			Description: "Take two minutes to notice what this feels like in your body.",
			Priority:    PriorityLow,
			Category:    CategoryMindfulness,
		}},
	},
	EmotionSad: {
		{nil, Recommendation{
			Title:       "Reach Out",
			Description: "A short conversation with someone you trust lightens heavy days.",
			Priority:    PriorityHigh,
			Category:    CategorySocial,
		}},
		{nil, Recommendation{
			Title:       "Small Kindness",
			Description: "Do one small thing for yourself: a walk, a warm drink, a pause.",
			Priority:    PriorityMedium,
			Category:    CategorySelfCare,
		}},
		{func(v, a float64) bool { return v < -0.5 }, Recommendation{
			Title:       "Name the Feeling",
			Description: "Write down what is weighing on you; specifics are easier to carry than fog.",
			Priority:    PriorityMedium,
			Category:    CategoryMindfulness,
		}},
	},
	EmotionAngry: {
		{nil, Recommendation{
			Title:       "Cool-Down Break",
			Description: "Step away from the trigger for ten minutes before responding.",
			Priority:    PriorityHigh,
			Category:    CategorySelfCare,
		}},
		{func(v, a float64) bool { return a > 0.6 }, Recommendation{
			Title:       "Discharge the Charge",
			Description: "Brisk movement burns off the physical side of frustration.",
			Priority:    PriorityMedium,
			Category:    CategorySelfCare,
		}},
		{nil, Recommendation{
			Title:       "Box Breathing",
			Description: "Four counts in, four held, four out, four held; repeat four times.",
			Priority:    PriorityMedium,
			Category:    CategoryMindfulness,
		}},
	},
	EmotionSurprised: {
		{nil, Recommendation{
			Title:       "Take Stock",
			Description: "Pause and name what changed before deciding what it means.",
			Priority:    PriorityLow,
			Category:    CategoryMindfulness,
		}},
		{func(v, a float64) bool { return a > 0.6 }, Recommendation{
			Title:       "Ground Yourself",
			Description: "Find five things you can see and three you can hear to settle the startle.",
			Priority:    PriorityMedium,
			Category:    CategoryMindfulness,
		}},
	},
	EmotionFearful: {
		{nil, Recommendation{
			Title:       "Name the Worry",
			Description: "Write the fear down in one sentence; vague dread shrinks when specific.",
			Priority:    PriorityHigh,
			Category:    CategoryMindfulness,
		}},
		{nil, Recommendation{
			Title:       "Tell Someone",
			Description: "Sharing a worry with one trusted person halves its weight.",
			Priority:    PriorityMedium,
			Category:    CategorySocial,
		}},
		{func(v, a float64) bool { return a > 0.6 }, Recommendation{
			Title:       "Slow the Body First",
			Description: "Long exhales signal safety faster than arguing with the thought.",
			Priority:    PriorityHigh,
			Category:    CategorySelfCare,
		}},
	},
	EmotionDisgusted: {
		{nil, Recommendation{
			Title:       "Create Distance",
			Description: "Step back from whatever is setting this off; you do not have to fix it now.",
			Priority:    PriorityMedium,
			Category:    CategorySelfCare,
		}},
		{nil, Recommendation{
			Title:       "Reset the Senses",
			Description: "Fresh air or a change of room clears the residue quickly.",
			Priority:    PriorityLow,
			Category:    CategoryMindfulness,
		}},
	},
	EmotionNeutral: {
		{nil, Recommendation{
			Title:       "Check In With Yourself",
			Description: "Flat can mean rested or it can mean running on empty; ask which.",
			Priority:    PriorityLow,
			Category:    CategoryMindfulness,
		}},
		{nil, Recommendation{
			Title:       "Add One Good Thing",
			Description: "Schedule one small thing to look forward to today.",
			Priority:    PriorityLow,
			Category:    CategorySelfCare,
		}},
	},
	EmotionAnxious: {
		{nil, Recommendation{
			Title:       "Shrink the Horizon",
			Description: "Pick the single next step and ignore the rest for now.",
			Priority:    PriorityHigh,
			Category:    CategoryMindfulness,
		}},
		{func(v, a float64) bool { return a > 0.6 }, Recommendation{
			Title:       "Move, Then Think",
			Description: "A few minutes of walking lowers the alarm enough to plan clearly.",
			Priority:    PriorityMedium,
			Category:    CategorySelfCare,
		}},
		{nil, Recommendation{
			Title:       "Say It Out Loud",
			Description: "Telling a colleague or friend what is looping takes it out of the loop.",
			Priority:    PriorityMedium,
			Category:    CategorySocial,
		}},
	},
	EmotionCalm: {
		{nil, Recommendation{
			Title:       "Protect the Calm",
			Description: "Notice what produced this steadiness and keep it on the schedule.",
			Priority:    PriorityLow,
			Category:    CategoryMindfulness,
		}},
		{func(v, a float64) bool { return v > 0.3 }, Recommendation{
			Title:       "Offer Some of It",
			Description: "Settled days are good days to check on someone who is not having one.",
			Priority:    PriorityLow,
			Category:    CategorySocial,
		}},
	},
}

// BuildRecommendations evaluates the per-emotion rule table in order
// and returns between one and four recommendations. Unknown emotions
// use the neutral rules.
func BuildRecommendations(primaryEmotion string, valence, arousal float64) []Recommendation {
	rules, ok := recommendationRules[primaryEmotion]
	if !ok {
		rules = recommendationRules[EmotionNeutral]
	}

	recs := make([]Recommendation, 0, 4)
	for _, rule := range rules {
		if rule.match == nil || rule.match(valence, arousal) {
			recs = append(recs, rule.rec)
		}
	}
	if len(recs) < 4 {
		recs = append(recs, fillerRecommendation)
	}
	if len(recs) > 4 {
		recs = recs[:4]
	}
	return recs
}
