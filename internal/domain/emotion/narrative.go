package emotion

import "math/rand"

// Selector picks an index in [0,n). It is injected so callers (and
// tests) control the narrative variant choice; the engine never reads
// the global random source directly.
type Selector func(n int) int

// RandomSelector returns a Selector backed by the given source, or the
// package default when rng is nil.
func RandomSelector(rng *rand.Rand) Selector {
	if rng == nil {
		return func(n int) int { return rand.Intn(n) }
	}
	return func(n int) int { return rng.Intn(n) }
}

// Narrative candidates per emotion. One of each list is picked per
// call; the text is presentation flavor, not a stable value.
var insightVariants = map[string][]string{
	EmotionHappy: {
		"Your expression carries real warmth today. Moments like this are worth registering deliberately, not just passing through.",
		"There is an open, engaged quality to how you present right now. That openness tends to spread to the people around you.",
		"You look genuinely at ease. Days like this are good reference points for what working conditions suit you.",
	},
	EmotionSad: {
		"There is a heaviness in your expression today. Low days are information, not failures; they usually point at something that needs attention.",
		"You seem to be carrying something. Sadness slows us down partly so we take the time to look at what is underneath it.",
		"Your face suggests today is an effort. Being honest about that, even just here, is already a form of self-care.",
	},
	EmotionAngry: {
		"There is tension and charge in your expression. Anger usually marks a boundary that something crossed; it is worth naming which one.",
		"You look wound up. That energy is real and it is workable, but it decides things badly when it decides alone.",
		"Your expression carries frustration. Before acting on it, it helps to separate the trigger from the pattern behind it.",
	},
	EmotionSurprised: {
		"Something seems to have caught you off guard. Surprise is the mind updating; give the update a moment to settle.",
		"Your expression is alert and searching. Unexpected turns are easier to read after a short pause than in the first minute.",
	},
	EmotionFearful: {
		"There is apprehension in your expression. Worry narrows attention; widening it again, even briefly, restores perspective.",
		"You look braced for something. Most feared outcomes are more specific and more manageable than the dread around them.",
		"Your face shows vigilance. Naming exactly what feels threatening usually shrinks it to its actual size.",
	},
	EmotionDisgusted: {
		"Your expression shows strong aversion. That reaction is data about a mismatch between the situation and your values.",
		"Something is clearly not sitting right with you. Distance first, judgment second tends to serve better than the reverse.",
	},
	EmotionNeutral: {
		"Your expression is even and composed. Flat states can be genuine rest or quiet depletion; only you can tell which.",
		"You present steadily today. Neutral days are good days for routine progress that intense days disrupt.",
		"There is a calm evenness to you right now, the kind that makes space for other people's weather.",
	},
	EmotionAnxious: {
		"There is restlessness in your expression. Anxiety is attention stuck in the future; the next concrete step is the way back.",
		"You look like your mind is running ahead of you. Shrinking the time horizon usually shrinks the feeling with it.",
		"Your face shows strain under the surface. It is worth asking what one thing, handled today, would quiet the loop most.",
	},
	EmotionCalm: {
		"You present settled and grounded. This is the state decisions are best made in; use it if you have any pending.",
		"There is a quiet steadiness to your expression. Calm like this is built, not found, and it is worth protecting.",
	},
}

var personalVariants = map[string][]string{
	EmotionHappy: {
		"Anchor this: note one concrete thing that contributed to today feeling good.",
		"Use the lift: today is a good day for the conversation or task you have been deferring.",
	},
	EmotionSad: {
		"Keep today small and kind: one manageable task, one person you trust, one early night.",
		"Let someone know today is heavy; you do not need a solution from them, just company.",
	},
	EmotionAngry: {
		"Delay any important reply by an hour; write it now if you must, send it later.",
		"Spend the charge physically first, then come back to the problem with words.",
	},
	EmotionSurprised: {
		"Give the unexpected thing one honest look before filing it as good or bad.",
		"Jot down what changed; surprises read differently on paper than in the moment.",
	},
	EmotionFearful: {
		"Write the worry as a single sentence and one next step; do the step.",
		"Tell one person what you are bracing for; dread does poorly with witnesses.",
	},
	EmotionDisgusted: {
		"Step away from the source for now; revisit it once the reaction has cooled.",
		"Name precisely what crossed the line; precision turns aversion into a usable boundary.",
	},
	EmotionNeutral: {
		"Pick one small thing to look forward to and put it on today's calendar.",
		"Use the steadiness for the routine work that scattered days never allow.",
	},
	EmotionAnxious: {
		"Choose the single next step, set a 20-minute timer, and do only that.",
		"Take a short walk before your next commitment; let your body argue with the alarm.",
	},
	EmotionCalm: {
		"Protect whatever produced this steadiness; it belongs on the schedule, not in luck.",
		"Spend a little of the calm on someone who looks like they are short of it.",
	},
}

func pickVariant(variants map[string][]string, emotion string, selector Selector) string {
	list, ok := variants[emotion]
	if !ok {
		list = variants[EmotionNeutral]
	}
	if len(list) == 0 {
		return ""
	}
	idx := selector(len(list))
	if idx < 0 || idx >= len(list) {
		idx = 0
	}
	return list[idx]
}

// PsychologicalInsight picks one narrative insight for the emotion.
func PsychologicalInsight(primaryEmotion string, selector Selector) string {
	return pickVariant(insightVariants, primaryEmotion, selector)
}

// PersonalizedRecommendation picks one short action line for the
// emotion.
func PersonalizedRecommendation(primaryEmotion string, selector Selector) string {
	return pickVariant(personalVariants, primaryEmotion, selector)
}
