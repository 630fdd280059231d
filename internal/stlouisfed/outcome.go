package stlouisfed

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
)

// Format selects how a response body is decoded and returned.
type Format int

const (
	// FormatJSON decodes the body into a document tree.
	FormatJSON Format = iota
	// FormatXML returns the body as raw text. The error envelope is still
	// parsed so recoverable codes can be detected.
	FormatXML
)

func (f Format) String() string {
	if f == FormatXML {
		return "xml"
	}
	return "json"
}

// Outcome is the decoded result of one dispatch. Exactly one of Document
// (JSON) or Raw (XML) is populated, selected by Format. An API-level error
// is carried as data, never as a Go error; callers inspect ErrorCode.
type Outcome struct {
	Format   Format
	Document map[string]any
	Raw      []byte

	errorCode    int
	errorMessage string
}

// ErrorCode returns the API error code carried in the reply, or 0.
func (o *Outcome) ErrorCode() int {
	return o.errorCode
}

// ErrorMessage returns the API error message, if any.
func (o *Outcome) ErrorMessage() string {
	return o.errorMessage
}

// IsError reports whether the reply carried an API error code.
func (o *Outcome) IsError() bool {
	return o.errorCode != 0
}

// recoverable reports whether the reply signals an error worth retrying.
func (o *Outcome) recoverable() bool {
	return o.errorCode == 429 || o.errorCode == 500
}

// xmlEnvelope matches the root element of a FRED XML reply far enough to
// recognize the <error code="..." message="..."/> envelope.
type xmlEnvelope struct {
	XMLName xml.Name
	Code    string `xml:"code,attr"`
	Message string `xml:"message,attr"`
}

// DecodeOutcome turns a response body into an Outcome. JSON replies are
// decoded fully; XML replies stay raw but are parsed once to sniff the
// error envelope. Malformed bodies are Go errors, not API errors.
func DecodeOutcome(body []byte, format Format) (*Outcome, error) {
	if format == FormatXML {
		var env xmlEnvelope
		if err := xml.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("parsing XML response: %w", err)
		}
		out := &Outcome{Format: FormatXML, Raw: body}
		if env.XMLName.Local == "error" {
			if code, err := strconv.Atoi(env.Code); err == nil {
				out.errorCode = code
				out.errorMessage = env.Message
			}
		}
		return out, nil
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON response: %w", err)
	}
	out := &Outcome{Format: FormatJSON, Document: doc}
	if v, ok := doc["error_code"]; ok {
		if code, ok := v.(float64); ok {
			out.errorCode = int(code)
		}
		if msg, ok := doc["error_message"].(string); ok {
			out.errorMessage = msg
		}
	}
	return out, nil
}
