// Package parser extracts the accent/confidence/summary record from the raw
// model response. It degrades to sentinel values instead of failing: a
// malformed response still yields a displayable record.
package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Sentinel is the placeholder for fields that cannot be determined
const Sentinel = "N/A"

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// Fields holds the three expected keys of the model response
type Fields struct {
	Accent     string
	Confidence string
	Summary    string
}

// Result is a tagged parse outcome: either a clean record, or a degraded one
// carrying the parse error with sentinels in the unparsable fields.
type Result struct {
	Fields   Fields
	Raw      string
	Degraded bool
	Err      error
}

// Parse extracts the three fields from the raw response text. The model is
// asked for a bare JSON object but often wraps it in a fenced code block, so
// the fenced form is tried first and the whole text second. Parse never
// returns an error; failures surface as a degraded Result.
func Parse(raw string) Result {
	res := Result{
		Fields: Fields{Accent: Sentinel, Confidence: Sentinel, Summary: Sentinel},
		Raw:    raw,
	}

	payload := raw
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		payload = m[1]
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		res.Degraded = true
		res.Err = err
		res.Fields.Summary = fmt.Sprintf("JSON parsing error: %v. Raw output: %s", err, raw)
		return res
	}

	res.Fields.Accent = stringField(data, "accent_prediction")
	res.Fields.Confidence = stringField(data, "confidence")
	res.Fields.Summary = stringField(data, "summary")
	return res
}

func stringField(data map[string]interface{}, key string) string {
	if s, ok := data[key].(string); ok && s != "" {
		return s
	}
	return Sentinel
}
