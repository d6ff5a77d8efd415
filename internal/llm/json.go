package llm

import (
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// ErrEmptyResponse is returned when the model replied with nothing.
var ErrEmptyResponse = errors.New("empty LLM response")

// DecodeJSON decodes a model reply into v. Markdown code fences and prose
// around the outermost JSON object are tolerated.
func DecodeJSON(text string, v any) error {
	text = stripCodeFence(strings.TrimSpace(text))
	if text == "" {
		return ErrEmptyResponse
	}

	err := json.Unmarshal([]byte(text), v)
	if err == nil {
		return nil
	}
	start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return err
	}
	return json.Unmarshal([]byte(text[start:end+1]), v)
}

// ParseJSONResponse parses a JSON object reply into a generic map. Returns
// nil when the reply is not a JSON object.
func ParseJSONResponse(text string) map[string]any {
	var result map[string]any
	if err := DecodeJSON(text, &result); err != nil {
		if !errors.Is(err, ErrEmptyResponse) {
			zap.S().Warnf("Failed to parse LLM response as JSON: %v", err)
		}
		return nil
	}
	return result
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	endIdx := len(lines)
	for i := len(lines) - 1; i > 0; i-- {
		if strings.TrimSpace(lines[i]) == "```" {
			endIdx = i
			break
		}
	}
	if endIdx < 1 {
		return ""
	}
	return strings.Join(lines[1:endIdx], "\n")
}
