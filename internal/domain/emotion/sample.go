package emotion

// Emotion keys supported by the interpretation engine. Anything else
// is interpreted with the neutral ladder.
const (
	EmotionHappy     = "happy"
	EmotionSad       = "sad"
	EmotionAngry     = "angry"
	EmotionSurprised = "surprised"
	EmotionFearful   = "fearful"
	EmotionDisgusted = "disgusted"
	EmotionNeutral   = "neutral"
	EmotionAnxious   = "anxious"
	EmotionCalm      = "calm"
)

// Sample is the raw emotion-detector output the engine consumes.
// Valence is in [-1,1], arousal in [0,1], confidence and intensity in
// [0,100].
type Sample struct {
	PrimaryEmotion    string   `json:"primary_emotion"`
	Confidence        float64  `json:"confidence"`
	Valence           float64  `json:"valence"`
	Arousal           float64  `json:"arousal"`
	Intensity         float64  `json:"intensity"`
	Explanations      []string `json:"explanations"`
	SecondaryEmotions []string `json:"secondary_emotions,omitempty"`
}

// WeatherInfo is the fixed icon/label/description triple for a weather
// category.
type WeatherInfo struct {
	Icon     string `json:"icon"`
	Internal string `json:"internal"`
	Desc     string `json:"desc"`
}

// PresenceCapacity holds the derived 1-10 UI scores.
type PresenceCapacity struct {
	EstimatedPresence int `json:"estimated_presence"`
	EstimatedCapacity int `json:"estimated_capacity"`
}

// Recommendation priorities and categories.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	CategorySelfCare    = "self-care"
	CategoryMindfulness = "mindfulness"
	CategorySocial      = "social"
)

// Recommendation is one actionable suggestion derived from the sample.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
}

// MaskedEmotion is the result of the authenticity heuristic.
type MaskedEmotion struct {
	IsMasked           bool     `json:"is_masked"`
	MaskScore          float64  `json:"mask_score"`
	HiddenEmotionLabel string   `json:"hidden_emotion_label"`
	Cues               []string `json:"cues"`
}

// Flag is an analysis annotation attached to the result.
type Flag struct {
	Type     string   `json:"type"`
	Severity string   `json:"severity"`
	Insights []string `json:"insights"`
}

// AnalysisResult is the derived view-model for the check-in result
// screen. It is a fresh value object per input; nothing is shared or
// cached across calls.
type AnalysisResult struct {
	DetectedEmotion            string           `json:"detected_emotion"`
	Confidence                 int              `json:"confidence"`
	InternalWeather            WeatherInfo      `json:"internal_weather"`
	MicroExpressions           []string         `json:"micro_expressions"`
	PsychologicalInsight       string           `json:"psychological_insight"`
	PersonalizedRecommendation string           `json:"personalized_recommendation"`
	PresenceCapacity           PresenceCapacity `json:"presence_capacity"`
	DetailedRecommendations    []Recommendation `json:"detailed_recommendations"`
	AnalysisFlags              []Flag           `json:"analysis_flags"`
}
