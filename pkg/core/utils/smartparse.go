// Package utils holds shared helpers for taming free-text LLM output:
// lenient JSON parsing and markdown cleanup.
package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

var codeFencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// StripCodeFence removes a surrounding markdown code fence, if any. Models
// routinely wrap JSON answers in ```json ... ``` blocks.
func StripCodeFence(s string) string {
	if m := codeFencePattern.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return strings.TrimSpace(s)
}

// RepairJSON attempts to fix common JSON defects in LLM output: single
// quotes, unquoted keys, trailing commas, unclosed brackets.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %w", err)
	}
	return repaired, nil
}

// ParseHJSON parses human-friendly JSON (comments, unquoted strings,
// optional commas) into the target schema.
func ParseHJSON(input string, schema interface{}) error {
	if err := hjson.Unmarshal([]byte(input), schema); err != nil {
		return fmt.Errorf("hjson parse failed: %w", err)
	}
	return nil
}

// SmartParse tries multiple strategies to extract structured data from model
// output: strict JSON, then repaired JSON, then Hjson. The input is
// code-fence stripped first.
func SmartParse(input string, schema interface{}) error {
	input = StripCodeFence(input)

	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}

	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return nil
		}
	}

	if err := ParseHJSON(input, schema); err == nil {
		return nil
	}

	return fmt.Errorf("smart parse failed: no strategy produced valid data")
}
