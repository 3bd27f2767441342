package voice

// Dimension is one of the fixed brand-voice evaluation axes.
type Dimension string

const (
	DimensionConsistency        Dimension = "consistency"
	DimensionClarity            Dimension = "clarity"
	DimensionDifferentiation    Dimension = "differentiation"
	DimensionAudienceFit        Dimension = "audience_fit"
	DimensionEmotionalResonance Dimension = "emotional_resonance"
)

// Dimensions lists every scored axis in rubric order.
var Dimensions = []Dimension{
	DimensionConsistency,
	DimensionClarity,
	DimensionDifferentiation,
	DimensionAudienceFit,
	DimensionEmotionalResonance,
}

const (
	DefaultVoiceScore   = 50
	DefaultVoiceSummary = "Analysis completed."
	DefaultPersonality  = "—"
)

type DimensionScore struct {
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

type ComparableCompany struct {
	Name           string `json:"name"`
	URL            string `json:"url"`
	ComparisonNote string `json:"comparison_note"`
}

// AnalysisResult is the normalized brand-voice audit returned to callers.
// It is built once per request and never mutated afterwards.
type AnalysisResult struct {
	BrandName           string                       `json:"brand_name"`
	Scores              map[Dimension]DimensionScore `json:"scores"`
	VoiceScore          int                          `json:"voice_score"`
	VoiceScoreReasoning string                       `json:"voice_score_reasoning"`
	VoiceSummary        string                       `json:"voice_summary"`
	Personality         string                       `json:"personality"`
	Strengths           []string                     `json:"strengths"`
	Gaps                []string                     `json:"gaps"`
	Recommendations     []string                     `json:"recommendations"`
	ComparableCompany   *ComparableCompany           `json:"comparable_company,omitempty"`
}
