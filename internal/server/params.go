package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/sitenotes/sitenotes/internal/domain"
)

const maxBodyBytes = 16 << 20

// params holds request parameters from either a form or a JSON object.
// Form values are strings; JSON values keep their decoded type.
type params map[string]any

func parseParams(r *http.Request) (params, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		var p params
		if err := dec.Decode(&p); err != nil {
			return nil, domain.NewValidationError("body", "invalid JSON")
		}
		if p == nil {
			p = params{}
		}
		return p, nil
	}

	if err := r.ParseMultipartForm(maxBodyBytes); err != nil && err != http.ErrNotMultipart {
		return nil, domain.NewValidationError("body", "invalid form")
	}
	p := params{}
	for key, values := range r.Form {
		if len(values) > 0 {
			p[key] = values[0]
		}
	}
	return p, nil
}

func (p params) has(name string) bool {
	_, ok := p[name]
	return ok
}

func (p params) str(name string) string {
	switch v := p[name].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (p params) uintParam(name string) (uint, error) {
	raw := strings.TrimSpace(p.str(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be a non-negative integer")
	}
	return uint(n), nil
}

// requiredID reads a positive id
func (p params) requiredID(name string) (uint, error) {
	id, err := p.uintParam(name)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, domain.NewValidationError(name, "is required")
	}
	return id, nil
}

func (p params) intParam(name string) (int, error) {
	raw := strings.TrimSpace(p.str(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

func (p params) boolParam(name string) bool {
	switch strings.ToLower(strings.TrimSpace(p.str(name))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func (p params) floatParam(name string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(p.str(name)), 64)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be a number")
	}
	return f, nil
}

// stringsParam accepts a JSON array, a JSON-encoded array string or a comma list
func (p params) stringsParam(name string) ([]string, error) {
	var out []string
	if err := p.decode(name, &out); err == nil {
		return out, nil
	}
	var result []string
	for _, part := range strings.Split(p.str(name), ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result, nil
}

// decode unmarshals a structured parameter. Form clients send structured
// values as JSON strings.
func (p params) decode(name string, dest any) error {
	var raw []byte
	switch v := p[name].(type) {
	case nil:
		return domain.NewValidationError(name, "is required")
	case string:
		raw = []byte(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return domain.NewValidationError(name, "is malformed")
		}
		raw = encoded
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(dest); err != nil {
		return domain.NewValidationError(name, "is malformed")
	}
	return nil
}

func (p params) optionalString(name string) *string {
	if !p.has(name) {
		return nil
	}
	v := p.str(name)
	return &v
}
