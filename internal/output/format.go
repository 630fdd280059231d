// Package output provides formatting for FRED CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/henrybloomingdale/fred-cli/internal/stlouisfed"
)

// OutputConfig controls which output mode is active.
type OutputConfig struct {
	JSON  bool // Indented JSON
	Human bool // Rich terminal output with color
}

// listKeys are the FRED reply keys that carry the record list, in the order
// they are probed.
var listKeys = []string{
	"seriess",
	"releases",
	"categories",
	"sources",
	"tags",
	"observations",
	"release_dates",
	"vintage_dates",
}

// FormatOutcome writes a decoded API reply. XML outcomes are always printed
// raw, whatever the configured mode.
func FormatOutcome(w io.Writer, out *stlouisfed.Outcome, cfg OutputConfig) error {
	if out.Format == stlouisfed.FormatXML {
		if _, err := w.Write(out.Raw); err != nil {
			return err
		}
		if n := len(out.Raw); n == 0 || out.Raw[n-1] != '\n' {
			fmt.Fprintln(w)
		}
		return nil
	}
	if cfg.JSON {
		return writeJSON(w, out.Document)
	}
	if cfg.Human {
		return formatHuman(w, out)
	}
	return formatPlain(w, out)
}

// --- Plain text formatter (default) ---

func formatPlain(w io.Writer, out *stlouisfed.Outcome) error {
	if out.IsError() {
		fmt.Fprintf(w, "API error %d: %s\n", out.ErrorCode(), out.ErrorMessage())
		return nil
	}

	key, records := recordList(out.Document)

	for _, k := range sortedKeys(out.Document) {
		if k == key {
			continue
		}
		if nested, ok := out.Document[k].(map[string]any); ok {
			for _, nk := range sortedKeys(nested) {
				fmt.Fprintf(w, "%s.%s: %s\n", k, nk, stringify(nested[nk]))
			}
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", k, stringify(out.Document[k]))
	}

	if key == "" {
		return nil
	}
	if len(records) == 0 {
		fmt.Fprintf(w, "\nNo %s found.\n", key)
		return nil
	}

	fmt.Fprintf(w, "\n%d %s:\n", len(records), key)
	for i, rec := range records {
		fmt.Fprintf(w, "  %d. %s\n", i+1, recordLabel(key, rec))
	}
	return nil
}

// recordList finds the record list in a FRED document, if any.
func recordList(doc map[string]any) (string, []map[string]any) {
	for _, key := range listKeys {
		raw, ok := doc[key].([]any)
		if !ok {
			continue
		}
		records := make([]map[string]any, 0, len(raw))
		for _, item := range raw {
			if rec, ok := item.(map[string]any); ok {
				records = append(records, rec)
			}
		}
		return key, records
	}
	return "", nil
}

// recordLabel produces the one-line summary of a record for plain output.
func recordLabel(key string, rec map[string]any) string {
	switch key {
	case "observations":
		return stringify(rec["date"]) + ": " + stringify(rec["value"])
	case "seriess":
		return stringify(rec["id"]) + " - " + stringify(rec["title"])
	case "tags":
		return stringify(rec["name"])
	default:
		if name, ok := rec["name"]; ok {
			if id, ok := rec["id"]; ok {
				return stringify(id) + " - " + stringify(name)
			}
			return stringify(name)
		}
		return stringify(rec["id"])
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// stringify renders a decoded JSON scalar without the float artifacts of
// fmt's %v (counts decode as float64).
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
