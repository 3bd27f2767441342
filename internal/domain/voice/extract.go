package voice

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	rxCodeFence  = regexp.MustCompile("```json|```")
	rxJSONObject = regexp.MustCompile(`(?s)\{.*\}`)
)

// ExtractJSON pulls the object spanning the first '{' through the last '}' out
// of free-form model text. It returns nil when the text is blank, holds no
// braces, or the bracketed region does not parse. Commentary containing its own
// braces around the object will be captured too.
func ExtractJSON(text string) map[string]any {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	cleaned := strings.TrimSpace(rxCodeFence.ReplaceAllString(text, ""))
	match := rxJSONObject.FindString(cleaned)
	if match == "" {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(match), &obj); err != nil {
		return nil
	}
	return obj
}
