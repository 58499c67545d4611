// Package render serializes every API response, success or error, into the
// uniform envelope {success, code, message, data, timestamp} as JSON or XML
// depending on the per-request format preference.
package render

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"sort"
	"strconv"
	"time"
)

// Format selects the response serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// FromRequest reads the "format" query parameter. Absent or unrecognized
// values fall back to JSON.
func FromRequest(r *http.Request) Format {
	if r != nil && r.URL.Query().Get("format") == string(FormatXML) {
		return FormatXML
	}
	return FormatJSON
}

// Envelope is the uniform response wrapper. Success is derived from the
// status code (2xx), never set independently.
type Envelope struct {
	Success   bool        `json:"success"`
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// DefaultMessage returns the stock message for a status code.
func DefaultMessage(code int) string {
	switch code {
	case http.StatusOK:
		return "OK"
	case http.StatusCreated:
		return "Created"
	case http.StatusBadRequest:
		return "Bad Request"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "Not Found"
	case http.StatusInternalServerError:
		return "Internal Server Error"
	default:
		return "Operation completed"
	}
}

// Write sends data in the envelope with the stock message for code.
func Write(w http.ResponseWriter, r *http.Request, code int, data interface{}) {
	WriteMessage(w, r, code, data, "")
}

// Error sends an error envelope with no data.
func Error(w http.ResponseWriter, r *http.Request, code int, message string) {
	WriteMessage(w, r, code, nil, message)
}

// WriteMessage sends data in the envelope. An empty message is replaced by
// the stock message for code. The body is fully serialized before any header
// is written, so a serialization failure still produces a well-formed 500
// envelope in the requested format.
func WriteMessage(w http.ResponseWriter, r *http.Request, code int, data interface{}, message string) {
	format := FromRequest(r)
	if message == "" {
		message = DefaultMessage(code)
	}
	env := Envelope{
		Success:   code >= 200 && code < 300,
		Code:      code,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	body, err := encode(env, format)
	if err != nil {
		code = http.StatusInternalServerError
		env = Envelope{
			Code:      code,
			Message:   DefaultMessage(code),
			Timestamp: env.Timestamp,
		}
		// Envelope with nil data always encodes.
		body, _ = encode(env, format)
	}
	if format == FormatXML {
		w.Header().Set("Content-Type", "application/xml")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func encode(env Envelope, format Format) ([]byte, error) {
	if format == FormatXML {
		return encodeXML(env)
	}
	return json.Marshal(env)
}

// encodeXML renders the envelope as a document with declaration and a
// <response> root. Objects become elements named after their keys, sequences
// become repeated <item> elements, scalars are stringified. Data passes
// through a JSON round trip first so any JSON-representable value serializes
// the same way in both formats.
func encodeXML(env Envelope) ([]byte, error) {
	data, err := normalize(env.Data)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString("<response>")
	writeScalar(&b, "success", strconv.FormatBool(env.Success))
	writeScalar(&b, "code", strconv.Itoa(env.Code))
	writeScalar(&b, "message", env.Message)
	writeValue(&b, "data", data)
	writeScalar(&b, "timestamp", env.Timestamp)
	b.WriteString("</response>")
	return b.Bytes(), nil
}

func normalize(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func writeValue(b *bytes.Buffer, name string, v interface{}) {
	name = elementName(name)
	switch val := v.(type) {
	case nil:
		b.WriteString("<" + name + "/>")
	case map[string]interface{}:
		b.WriteString("<" + name + ">")
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			writeValue(b, k, val[k])
		}
		b.WriteString("</" + name + ">")
	case []interface{}:
		b.WriteString("<" + name + ">")
		for _, item := range val {
			writeValue(b, "item", item)
		}
		b.WriteString("</" + name + ">")
	case bool:
		writeScalar(b, name, strconv.FormatBool(val))
	case float64:
		writeScalar(b, name, strconv.FormatFloat(val, 'f', -1, 64))
	case string:
		writeScalar(b, name, val)
	default:
		raw, _ := json.Marshal(val)
		writeScalar(b, name, string(raw))
	}
}

func writeScalar(b *bytes.Buffer, name, text string) {
	name = elementName(name)
	b.WriteString("<" + name + ">")
	_ = xml.EscapeText(b, []byte(text))
	b.WriteString("</" + name + ">")
}

// elementName coerces a JSON key into a well-formed XML element name.
func elementName(name string) string {
	if name == "" {
		return "item"
	}
	out := []rune(name)
	for i, r := range out {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_' {
			continue
		}
		if i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '.') {
			continue
		}
		out[i] = '_'
	}
	return string(out)
}
