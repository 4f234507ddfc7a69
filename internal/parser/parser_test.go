package parser

import (
	"strings"
	"testing"
)

const exampleObject = `{"accent_prediction":"American English","confidence":"85%","summary":"test"}`

func TestParseFencedBlock(t *testing.T) {
	raw := "```json\n" + exampleObject + "\n```"

	res := Parse(raw)

	if res.Degraded {
		t.Fatalf("unexpected degradation: %v", res.Err)
	}
	if res.Fields.Accent != "American English" {
		t.Errorf("Accent = %q", res.Fields.Accent)
	}
	if res.Fields.Confidence != "85%" {
		t.Errorf("Confidence = %q", res.Fields.Confidence)
	}
	if res.Fields.Summary != "test" {
		t.Errorf("Summary = %q", res.Fields.Summary)
	}
}

func TestParseBareObject(t *testing.T) {
	// Fencing is optional: the bare object must yield identical fields
	res := Parse(exampleObject)

	if res.Degraded {
		t.Fatalf("unexpected degradation: %v", res.Err)
	}
	if res.Fields.Accent != "American English" || res.Fields.Confidence != "85%" || res.Fields.Summary != "test" {
		t.Errorf("fields = %+v", res.Fields)
	}
}

func TestParseFenceWithoutLanguageTag(t *testing.T) {
	raw := "```\n" + exampleObject + "\n```"

	res := Parse(raw)
	if res.Degraded {
		t.Fatalf("unexpected degradation: %v", res.Err)
	}
	if res.Fields.Accent != "American English" {
		t.Errorf("Accent = %q", res.Fields.Accent)
	}
}

func TestParseSurroundingProse(t *testing.T) {
	raw := "Here is the analysis you asked for:\n```json\n" + exampleObject + "\n```\nLet me know if you need more."

	res := Parse(raw)
	if res.Degraded {
		t.Fatalf("unexpected degradation: %v", res.Err)
	}
	if res.Fields.Summary != "test" {
		t.Errorf("Summary = %q", res.Fields.Summary)
	}
}

func TestParseMissingKeys(t *testing.T) {
	res := Parse(`{"accent_prediction":"British English"}`)

	if res.Degraded {
		t.Fatalf("unexpected degradation: %v", res.Err)
	}
	if res.Fields.Accent != "British English" {
		t.Errorf("Accent = %q", res.Fields.Accent)
	}
	if res.Fields.Confidence != Sentinel || res.Fields.Summary != Sentinel {
		t.Errorf("missing keys did not default to sentinel: %+v", res.Fields)
	}
}

func TestParseNonStringValue(t *testing.T) {
	res := Parse(`{"accent_prediction":"American English","confidence":85,"summary":"ok"}`)

	if res.Degraded {
		t.Fatalf("unexpected degradation: %v", res.Err)
	}
	if res.Fields.Confidence != Sentinel {
		t.Errorf("numeric confidence should fall back to sentinel, got %q", res.Fields.Confidence)
	}
}

func TestParseDegradation(t *testing.T) {
	raw := "I am sorry, I cannot analyze this audio."

	res := Parse(raw)

	if !res.Degraded {
		t.Fatal("expected degraded result for non-JSON text")
	}
	if res.Err == nil {
		t.Error("degraded result must carry the parse error")
	}
	if res.Fields.Accent != Sentinel || res.Fields.Confidence != Sentinel {
		t.Errorf("accent/confidence should be sentinels: %+v", res.Fields)
	}
	if !strings.Contains(res.Fields.Summary, "JSON parsing error") {
		t.Errorf("summary missing parse-error indicator: %q", res.Fields.Summary)
	}
	if !strings.Contains(res.Fields.Summary, raw) {
		t.Errorf("summary missing original text: %q", res.Fields.Summary)
	}
}

func TestParseEmptyInput(t *testing.T) {
	res := Parse("")
	if !res.Degraded {
		t.Error("empty input should degrade, not parse")
	}
}
