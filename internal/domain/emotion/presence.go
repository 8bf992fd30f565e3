package emotion

import "math"

// EstimatePresenceCapacity maps the bounded valence/arousal dimensions
// onto the 1-10 UI scales. Presence tracks valence linearly; capacity
// peaks at mid-arousal (0.5) and falls toward either extreme.
func EstimatePresenceCapacity(valence, arousal float64) PresenceCapacity {
	presence := clampScore(int(math.Round((valence + 1) * 5)))
	capacity := clampScore(int(math.Round((1-math.Abs(arousal-0.5))*8 + 2)))
	return PresenceCapacity{
		EstimatedPresence: presence,
		EstimatedCapacity: capacity,
	}
}

func clampScore(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}
