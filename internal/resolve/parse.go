package resolve

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// arrayRe locates the first bracketed array inside a free-form reply.
var arrayRe = regexp.MustCompile(`(?s)\[.*?\]`)

// parseFragments decodes an LLM reply into name fragments. It first tries
// the whole reply as a JSON array, then falls back to the first bracketed
// substring (models often wrap the array in prose or markdown fences).
func parseFragments(reply string) ([]string, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, fmt.Errorf("empty reply")
	}

	if frags, err := decodeArray(reply); err == nil {
		return frags, nil
	}

	match := arrayRe.FindString(reply)
	if match == "" {
		return nil, fmt.Errorf("no JSON array in reply")
	}
	frags, err := decodeArray(match)
	if err != nil {
		return nil, fmt.Errorf("malformed array in reply: %w", err)
	}
	return frags, nil
}

func decodeArray(s string) ([]string, error) {
	var frags []string
	if err := json.Unmarshal([]byte(s), &frags); err != nil {
		return nil, err
	}
	if len(frags) == 0 {
		return nil, fmt.Errorf("empty array")
	}
	for _, f := range frags {
		if strings.TrimSpace(f) == "" {
			return nil, fmt.Errorf("blank fragment in array")
		}
	}
	return frags, nil
}
