package stlouisfed

import (
	"net/url"
	"strings"
)

// normalizeParams rewrites caller-supplied parameters into the names the
// FRED API expects and injects the derived entries. The input is not
// mutated. Returns the rewritten parameters and the effective output format
// for this call.
//
// Rules, in order:
//   - an "xml" key is removed and switches this call to raw XML output;
//     calls that stay in JSON format get file_type=json injected
//   - "id" becomes "<resource>_id", with trailing "s" runs stripped from the
//     resource name except for "series", which is already singular as far as
//     the API's field names are concerned
//   - "start" -> "realtime_start", "end" -> "realtime_end", "sort" -> "sort_order"
//   - "api_key" is always set to the configured credential, overwriting any
//     caller-supplied value
//
// Everything else passes through unchanged.
func normalizeParams(in url.Values, resource, apiKey string, format Format) (url.Values, Format) {
	p := url.Values{}
	for k, vs := range in {
		p[k] = append([]string(nil), vs...)
	}

	if p.Has("xml") {
		p.Del("xml")
		format = FormatXML
	}
	if format == FormatJSON {
		p.Set("file_type", "json")
	}

	if p.Has("id") {
		loc := resource
		if loc != "series" {
			loc = strings.TrimRight(loc, "s")
		}
		p.Set(loc+"_id", p.Get("id"))
		p.Del("id")
	}

	for from, to := range map[string]string{
		"start": "realtime_start",
		"end":   "realtime_end",
		"sort":  "sort_order",
	} {
		if p.Has(from) {
			p.Set(to, p.Get(from))
			p.Del(from)
		}
	}

	p.Set("api_key", apiKey)
	return p, format
}

// buildURL joins the base endpoint with the resource and optional sub-path.
// Empty components are skipped entirely rather than rendered as empty
// segments.
func buildURL(base string, components ...string) (string, error) {
	parts := make([]string, 0, len(components))
	for _, c := range components {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return url.JoinPath(base, parts...)
}
