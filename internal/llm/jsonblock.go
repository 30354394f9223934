package llm

import "strings"

// ExtractJSONBlock isolates the JSON object in model output that may be
// wrapped in prose or code fences. It takes everything from the first '{' to
// the last '}'. Text without such a span is returned trimmed; decoding it
// then fails downstream as a ParseError.
func ExtractJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		return text
	}

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first != -1 && last > first {
		return text[first : last+1]
	}
	return text
}
