package parser

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// arrayFields are the report fields the UI iterates over. They must always be
// arrays in the normalized output, even when the model omits them or returns
// the wrong type.
var arrayFields = [...]string{"red_flags", "inconsistencies", "next_steps", "safety_notes"}

// InvalidResponseError means the model returned text that could not be parsed
// as JSON even after brace extraction. Raw carries the original completion so
// the caller can echo it for debugging.
type InvalidResponseError struct {
	Raw string
}

func (e *InvalidResponseError) Error() string {
	return "invalid model response: not JSON"
}

// Sanitize turns a raw model completion into a normalized report value.
//
// It first attempts a strict JSON parse. If that fails it makes a single
// recovery attempt: slice the input from the first '{' to the last '}' and
// parse again. Models occasionally wrap valid JSON in prose or markdown fences
// despite instructions; this recovers the common case without attempting a
// general repair, and it is never retried against the model.
func Sanitize(raw string) (any, error) {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		slice, ok := extractJSONObject(raw)
		if !ok {
			return nil, &InvalidResponseError{Raw: raw}
		}
		if err := json.Unmarshal([]byte(slice), &value); err != nil {
			return nil, &InvalidResponseError{Raw: raw}
		}
	}
	return Normalize(value), nil
}

// extractJSONObject returns the inclusive span between the first '{' and the
// last '}' of s, or false when either is absent.
func extractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

// Normalize repairs the top-level shape of a parsed completion so the client
// can render it without crashing: confidence is forced into [0, 1] and the
// iterable fields are forced to arrays. Non-object values pass through
// unchanged, and array elements are not individually validated. Applying
// Normalize to already-normalized output is a no-op.
func Normalize(value any) any {
	obj, ok := value.(map[string]any)
	if !ok {
		return value
	}

	if c, present := obj["confidence"]; present {
		obj["confidence"] = clampConfidence(c)
	}

	for _, field := range arrayFields {
		if _, isArray := obj[field].([]any); !isArray {
			obj[field] = []any{}
		}
	}

	return obj
}

// clampConfidence converts an arbitrary JSON value to a finite number in
// [0, 1]. Strings are parsed; anything non-finite or unconvertible becomes 0.
func clampConfidence(value any) float64 {
	n, ok := toFloat(value)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return math.Max(0, math.Min(1, n))
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case json.Number:
		n, err := v.Float64()
		return n, err == nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	default:
		return 0, false
	}
}
