package voice

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var rxScheme = regexp.MustCompile(`^https?://`)

// DisplayURL strips a leading http:// or https:// from url.
func DisplayURL(url string) string {
	return rxScheme.ReplaceAllString(url, "")
}

// Normalize fills every gap in a parsed model response so the result always
// carries a brand name, a voice score and non-nil lists. It never fails.
//
// A voice_score of 0 is treated the same as a missing one and resolves to the
// dimension mean, or DefaultVoiceScore when that mean is also 0.
func Normalize(raw map[string]any, url string) *AnalysisResult {
	res := &AnalysisResult{
		BrandName:           stringField(raw["brand_name"]),
		VoiceScoreReasoning: stringField(raw["voice_score_reasoning"]),
		VoiceSummary:        stringField(raw["voice_summary"]),
		Personality:         stringField(raw["personality"]),
		Strengths:           stringList(raw["strengths"]),
		Gaps:                stringList(raw["gaps"]),
		Recommendations:     stringList(raw["recommendations"]),
		ComparableCompany:   comparableCompany(raw["comparable_company"]),
	}
	if res.BrandName == "" {
		res.BrandName = DisplayURL(url)
	}

	rawScores, hasScores := raw["scores"].(map[string]any)
	res.Scores = dimensionScores(rawScores)

	if v, ok := scoreValue(raw["voice_score"]); ok {
		res.VoiceScore = v
	}
	if res.VoiceScore == 0 && hasScores {
		res.VoiceScore = meanScore(rawScores)
	}
	if res.VoiceScore == 0 {
		res.VoiceScore = DefaultVoiceScore
	}

	if res.VoiceSummary == "" {
		res.VoiceSummary = DefaultVoiceSummary
	}
	if res.Personality == "" {
		res.Personality = DefaultPersonality
	}
	return res
}

// meanScore averages the numeric .score fields of the known dimensions.
// Dimensions whose score is missing or not a JSON number are skipped.
func meanScore(scores map[string]any) int {
	var sum float64
	var n int
	for _, d := range Dimensions {
		entry, ok := scores[string(d)].(map[string]any)
		if !ok {
			continue
		}
		f, ok := entry["score"].(float64)
		if !ok {
			continue
		}
		sum += f
		n++
	}
	if n == 0 {
		return DefaultVoiceScore
	}
	return roundHalfUp(sum / float64(n))
}

func dimensionScores(scores map[string]any) map[Dimension]DimensionScore {
	out := make(map[Dimension]DimensionScore, len(Dimensions))
	for _, d := range Dimensions {
		entry, ok := scores[string(d)].(map[string]any)
		if !ok {
			continue
		}
		ds := DimensionScore{Reasoning: stringField(entry["reasoning"])}
		if f, ok := entry["score"].(float64); ok {
			ds.Score = roundHalfUp(f)
		}
		out[d] = ds
	}
	return out
}

// scoreValue accepts JSON numbers and numeric strings.
func scoreValue(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) {
			return 0, false
		}
		return roundHalfUp(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return roundHalfUp(f), true
	}
	return 0, false
}

func comparableCompany(v any) *ComparableCompany {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return &ComparableCompany{
		Name:           stringField(m["name"]),
		URL:            stringField(m["url"]),
		ComparisonNote: stringField(m["comparison_note"]),
	}
}

func stringField(v any) string {
	s, _ := v.(string)
	return s
}

// stringList keeps the string items of a JSON array, in order.
func stringList(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(f float64) int {
	return int(math.Floor(f + 0.5))
}
