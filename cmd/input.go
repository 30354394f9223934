package main

import (
	"fmt"
	"io"
	"strings"
)

// maxInputSize caps prompt text read from stdin.
const maxInputSize = 1 << 20

// readInput returns the prompt text from the single positional argument, or
// from stdin when there is none or it is "-".
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		if strings.TrimSpace(args[0]) == "" {
			return "", fmt.Errorf("prompt text is empty")
		}
		return args[0], nil
	}

	data, err := io.ReadAll(io.LimitReader(stdin, maxInputSize))
	if err != nil {
		return "", fmt.Errorf("failed to read prompt from stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("prompt text is empty")
	}
	return text, nil
}

// toContext converts --context flags to the client's context map.
func toContext(kv map[string]string) map[string]any {
	if len(kv) == 0 {
		return nil
	}
	out := make(map[string]any, len(kv))
	for k, v := range kv {
		out[k] = v
	}
	return out
}
