package prompt

import "fmt"

// rubric is the fixed audit instruction shared by every attempt.
const rubric = `You are an expert brand strategist and voice analyst. Analyze the following website content and provide a comprehensive brand voice audit.

SCORING RUBRIC — use these definitions to score each dimension from 0-100:

CONSISTENCY (How uniform is the tone across all content?)
- 90-100: Every sentence feels like it was written by the same person with a clear voice. Zero tonal shifts.
- 70-89: Generally consistent with minor shifts between sections. A reader would still feel a cohesive voice.
- 50-69: Noticeable shifts in tone — some sections feel corporate, others casual. Inconsistent personality.
- Below 50: Feels like multiple writers with no style guide. Jarring shifts between sections.

CLARITY (Is the messaging easy to understand?)
- 90-100: Crystal clear. A 10th grader could understand the value prop in one read. No unnecessary jargon.
- 70-89: Clear overall, with a few sentences that require re-reading or assume insider knowledge.
- 50-69: Meaning is there but buried. Uses jargon, passive voice, or vague language regularly.
- Below 50: Confusing. The reader has to work hard to understand what this company does or offers.

DIFFERENTIATION (Does the voice stand apart from competitors?)
- 90-100: Unmistakable voice. You'd recognize this brand with the logo removed. Bold, ownable point of view.
- 70-89: Has personality that separates it from generic competitors. Some distinctive phrases or framing.
- 50-69: Could be swapped with 3-5 similar companies without anyone noticing. Safe and expected.
- Below 50: Completely generic. Reads like a template. No personality or distinctive framing.

AUDIENCE FIT (Does the voice match the target audience?)
- 90-100: Speaks directly to the target audience's language, pain points, and aspirations. Feels like an insider.
- 70-89: Good alignment with audience needs. Mostly hits the right register and references.
- 50-69: Somewhat aligned but occasionally misses — too formal, too casual, or wrong assumptions.
- Below 50: Misaligned. Talks over, under, or past the audience.

EMOTIONAL RESONANCE (Does the messaging create a feeling?)
- 90-100: Makes you feel something specific. Urgency, inspiration, trust, excitement. Moves people to act.
- 70-89: Creates some emotional connection. Has moments that land but doesn't sustain it throughout.
- 50-69: Mostly informational. Tells you what they do but doesn't make you feel anything about it.
- Below 50: Flat. No emotional hook. Reads like a product spec, not a brand.

Return your analysis as a JSON object with this exact structure (no markdown, no backticks, just pure JSON):
{
  "brand_name": "Best guess at the brand/company name",
  "scores": {
    "consistency": { "score": 82, "reasoning": "One sentence explaining why this score" },
    "clarity": { "score": 75, "reasoning": "One sentence explaining why this score" },
    "differentiation": { "score": 68, "reasoning": "One sentence explaining why this score" },
    "audience_fit": { "score": 80, "reasoning": "One sentence explaining why this score" },
    "emotional_resonance": { "score": 72, "reasoning": "One sentence explaining why this score" }
  },
  "voice_score": 76,
  "voice_score_reasoning": "One sentence explaining the overall voice score as a weighted average of the 5 dimensions",
  "voice_summary": "2-3 sentence summary of the overall brand voice",
  "personality": "One word that captures the brand personality",
  "strengths": ["strength 1", "strength 2", "strength 3"],
  "gaps": ["gap 1", "gap 2", "gap 3"],
  "recommendations": ["actionable rec 1", "actionable rec 2", "actionable rec 3"],
  "comparable_company": {
    "name": "Name of a real, well-known competitor or comparable company in the same space",
    "url": "their actual website URL without https://",
    "comparison_note": "One sentence on how their voice compares"
  }
}`

const rawJSONOnly = "Return ONLY the JSON analysis object. No markdown, no backticks, no explanation — just the raw JSON."

// Rubric returns the scoring rubric and output schema.
func Rubric() string {
	return rubric
}

// WebSearch asks the model to look the site up before scoring.
func WebSearch(url string) string {
	return compose(url, "Search for this website to understand its content, brand, and messaging. Then return ONLY the JSON analysis object. No markdown, no backticks, no explanation — just the raw JSON.")
}

// BackgroundKnowledge asks the model to answer from what it already knows.
func BackgroundKnowledge(url string) string {
	return compose(url, "Analyze this website's brand voice based on what you know about it. "+rawJSONOnly)
}

// PageSnapshot inlines fetched page content so no search is needed.
func PageSnapshot(url, snapshot string) string {
	return compose(url, fmt.Sprintf("Here is content captured from the site:\n\n%s\n\nAnalyze this website's brand voice based on the captured content. %s", snapshot, rawJSONOnly))
}

func compose(url, instruction string) string {
	return fmt.Sprintf("%s\n\nURL: %s\n\n%s", rubric, url, instruction)
}
