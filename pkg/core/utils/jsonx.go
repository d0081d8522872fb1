// Package utils provides lenient parsing of structured LLM output.
// Classifier responses are untrusted, schema-less text: they may wrap
// JSON in markdown fences, use single quotes, drop commas or leave
// objects unclosed. The helpers here recover what they can; callers
// treat a parse failure as "zero candidates", never as a crash.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON attempts to fix common JSON defects in LLM output:
// missing key quotes, single quotes, trailing commas, unclosed
// arrays/objects, markdown code fences.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %w", err)
	}
	return repaired, nil
}

// ParseHJSON parses Human JSON (comments, unquoted keys, optional
// commas) into the target. The most lenient strategy we carry.
func ParseHJSON(input string, target interface{}) error {
	if err := hjson.Unmarshal([]byte(input), target); err != nil {
		return fmt.Errorf("hjson parse failed: %w", err)
	}
	return nil
}

// SmartParse tries progressively more forgiving strategies to decode
// input into target: strict JSON, then repaired JSON, then Hjson.
// Returns an error only when every strategy fails.
func SmartParse(input string, target interface{}) error {
	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), target); err == nil {
			return nil
		}
	}

	if err := ParseHJSON(input, target); err == nil {
		return nil
	}

	return fmt.Errorf("all parse strategies failed")
}
