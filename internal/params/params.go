// Package params extracts whitelisted attributes from inbound request
// payloads. A payload is a map of arbitrary keys; permitted fields are nested
// under one required top-level key.
package params

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ErrMissingParameter is matched by every *MissingError.
var ErrMissingParameter = errors.New("param is missing or the value is empty")

// ErrMalformedBody is returned by Decode when the body cannot be parsed.
var ErrMalformedBody = errors.New("malformed request body")

// MissingError reports the absent top-level key.
type MissingError struct {
	Key string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingParameter.Error(), e.Key)
}

func (e *MissingError) Unwrap() error {
	return ErrMissingParameter
}

// Payload is the decoded request body.
type Payload map[string]any

// Require returns the object nested under key. It fails with *MissingError
// when the key is absent, null, not an object, or an empty object.
func (p Payload) Require(key string) (Payload, error) {
	raw, ok := p[key]
	if !ok || raw == nil {
		return nil, &MissingError{Key: key}
	}
	nested, ok := raw.(map[string]any)
	if !ok || len(nested) == 0 {
		return nil, &MissingError{Key: key}
	}
	return Payload(nested), nil
}

// Permit returns only the listed keys that hold scalar values, rendered as
// strings. Unlisted keys and nested objects or arrays are discarded.
func (p Payload) Permit(keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok := p[k]
		if !ok {
			continue
		}
		if s, ok := scalarString(v); ok {
			out[k] = s
		}
	}
	return out
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case nil:
		return "", true
	default:
		return "", false
	}
}

// MaxMultipartMemory bounds in-memory multipart parsing; the body size
// middleware caps the request as a whole.
const MaxMultipartMemory = 1 << 20

type formErrorKey struct{}

// WithFormError records that an earlier reader of r failed to parse its form
// body. net/http leaves an empty PostForm behind in that case, so Decode
// would otherwise see no fields at all.
func WithFormError(r *http.Request, err error) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), formErrorKey{}, err))
}

func formError(r *http.Request) error {
	err, _ := r.Context().Value(formErrorKey{}).(error)
	return err
}

// Decode reads the request body into a Payload. JSON bodies decode as-is;
// form bodies are folded from bracket notation (dino[name]=Troy becomes
// {"dino": {"name": "Troy"}}). An empty body yields an empty Payload.
func Decode(r *http.Request) (Payload, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		return decodeJSON(r.Body)
	case "multipart/form-data":
		if err := formError(r); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
		}
		if err := r.ParseMultipartForm(MaxMultipartMemory); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
		}
		return FromForm(r.PostForm), nil
	default:
		if err := formError(r); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
		}
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
		}
		return FromForm(r.PostForm), nil
	}
}

func decodeJSON(body io.Reader) (Payload, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var p Payload
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return Payload{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	if p == nil {
		p = Payload{}
	}
	return p, nil
}

// FromForm folds form values into a Payload. Keys of the form "outer[inner]"
// nest one level; plain keys stay at the top. When a key repeats, the last
// value wins.
func FromForm(values url.Values) Payload {
	p := Payload{}
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		val := vals[len(vals)-1]

		outer, inner, nested := splitBracket(key)
		if !nested {
			p[key] = val
			continue
		}
		m, ok := p[outer].(map[string]any)
		if !ok {
			m = map[string]any{}
			p[outer] = m
		}
		m[inner] = val
	}
	return p
}

// splitBracket splits "dino[name]" into ("dino", "name", true).
func splitBracket(key string) (string, string, bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}
	inner := key[open+1 : len(key)-1]
	if inner == "" || strings.ContainsAny(inner, "[]") {
		return "", "", false
	}
	return key[:open], inner, true
}
