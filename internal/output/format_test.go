package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/henrybloomingdale/fred-cli/internal/stlouisfed"
)

func mustDecode(t *testing.T, body string, format stlouisfed.Format) *stlouisfed.Outcome {
	t.Helper()
	out, err := stlouisfed.DecodeOutcome([]byte(body), format)
	if err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return out
}

func TestFormatOutcome_PlainSources(t *testing.T) {
	out := mustDecode(t, `{
		"count": 2,
		"sources": [
			{"id": 1, "name": "Board of Governors of the Federal Reserve System"},
			{"id": 3, "name": "Federal Reserve Bank of Philadelphia"}
		]
	}`, stlouisfed.FormatJSON)

	var buf bytes.Buffer
	if err := FormatOutcome(&buf, out, OutputConfig{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "count: 2") {
		t.Errorf("expected count line, got:\n%s", got)
	}
	if !strings.Contains(got, "2 sources:") {
		t.Errorf("expected sources header, got:\n%s", got)
	}
	if !strings.Contains(got, "1 - Board of Governors of the Federal Reserve System") {
		t.Errorf("expected first source line, got:\n%s", got)
	}
}

func TestFormatOutcome_PlainObservations(t *testing.T) {
	out := mustDecode(t, `{
		"observations": [
			{"date": "2020-01-01", "value": "21538.032"},
			{"date": "2020-04-01", "value": "19636.731"}
		]
	}`, stlouisfed.FormatJSON)

	var buf bytes.Buffer
	if err := FormatOutcome(&buf, out, OutputConfig{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "2020-01-01: 21538.032") {
		t.Errorf("expected observation line, got:\n%s", buf.String())
	}
}

func TestFormatOutcome_PlainEmptyList(t *testing.T) {
	out := mustDecode(t, `{"seriess": []}`, stlouisfed.FormatJSON)

	var buf bytes.Buffer
	if err := FormatOutcome(&buf, out, OutputConfig{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No seriess found.") {
		t.Errorf("expected empty-list message, got:\n%s", buf.String())
	}
}

func TestFormatOutcome_PlainAPIError(t *testing.T) {
	out := mustDecode(t, `{"error_code": 400, "error_message": "Bad Request"}`, stlouisfed.FormatJSON)

	var buf bytes.Buffer
	if err := FormatOutcome(&buf, out, OutputConfig{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "API error 400: Bad Request\n" {
		t.Errorf("unexpected error rendering: %q", got)
	}
}

func TestFormatOutcome_JSONRoundTrips(t *testing.T) {
	out := mustDecode(t, `{"count": 1, "tags": [{"name": "monetary"}]}`, stlouisfed.FormatJSON)

	var buf bytes.Buffer
	if err := FormatOutcome(&buf, out, OutputConfig{JSON: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if count, ok := doc["count"].(float64); !ok || count != 1 {
		t.Errorf("expected count 1 in re-decoded output, got %v", doc["count"])
	}
}

func TestFormatOutcome_XMLAlwaysRaw(t *testing.T) {
	body := `<sources count="1"><source id="1"/></sources>`
	out := mustDecode(t, body, stlouisfed.FormatXML)

	// Even with JSON or human mode requested, XML replies print raw.
	for _, cfg := range []OutputConfig{{}, {JSON: true}, {Human: true}} {
		var buf bytes.Buffer
		if err := FormatOutcome(&buf, out, cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := buf.String(); got != body+"\n" {
			t.Errorf("cfg %+v: expected raw XML passthrough, got %q", cfg, got)
		}
	}
}

func TestFormatOutcome_HumanTable(t *testing.T) {
	out := mustDecode(t, `{
		"count": 1,
		"seriess": [
			{"id": "GNPCA", "title": "Real Gross National Product", "frequency_short": "A", "units_short": "Bil. of Chn. 2017 $", "last_updated": "2025-03-27"}
		]
	}`, stlouisfed.FormatJSON)

	var buf bytes.Buffer
	if err := FormatOutcome(&buf, out, OutputConfig{Human: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "GNPCA") {
		t.Errorf("expected series id in table, got:\n%s", got)
	}
	if !strings.Contains(got, "Real Gross National Product") {
		t.Errorf("expected series title in table, got:\n%s", got)
	}
}

func TestFormatOutcome_HumanBoxWithoutList(t *testing.T) {
	out := mustDecode(t, `{"realtime_start": "2026-03-01", "realtime_end": "2026-03-01"}`, stlouisfed.FormatJSON)

	var buf bytes.Buffer
	if err := FormatOutcome(&buf, out, OutputConfig{Human: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "realtime_start") {
		t.Errorf("expected key/value box, got:\n%s", buf.String())
	}
}

func TestStringify(t *testing.T) {
	if got := stringify(float64(125)); got != "125" {
		t.Errorf("expected integer rendering, got %q", got)
	}
	if got := stringify(float64(1.5)); got != "1.5" {
		t.Errorf("expected 1.5, got %q", got)
	}
	if got := stringify(nil); got != "" {
		t.Errorf("expected empty string for nil, got %q", got)
	}
	if got := stringify(true); got != "true" {
		t.Errorf("expected true, got %q", got)
	}
}
