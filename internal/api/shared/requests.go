package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxRequestBodyBytes caps the size of JSON request bodies.
const MaxRequestBodyBytes = 1 << 20

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

// ErrFieldCase is returned by DecodeJSON when a key differs from a field's
// JSON name only by case, e.g. "ISDONE" for "isDone".
var ErrFieldCase = errors.New("field name does not match")

// Global validator instance for reuse
var validate = newValidator()

// newValidator reports fields by their JSON name, so validation messages
// match the request body the client sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := jsonFieldName(field); name != "" {
			return name
		}
		return field.Name
	})
	return v
}

// jsonFieldName returns the name from the field's json tag, or "" when the
// tag is missing or "-".
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// DecodeJSON decodes the request body into the given struct.
// The body must hold exactly one JSON value, and object keys must match the
// struct's JSON names exactly; encoding/json alone would accept any casing.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}

	if dec.More() {
		return fmt.Errorf("request body must contain a single JSON value")
	}

	return checkFieldCase(body, v)
}

// checkFieldCase rejects object keys that only case-insensitively match a
// field of v. Keys that match no field at all are left alone.
func checkFieldCase(body []byte, v interface{}) error {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil
	}

	for key := range keys {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() || field.Tag.Get("json") == "-" {
				continue
			}
			name := jsonFieldName(field)
			if name == "" {
				name = field.Name
			}
			if key != name && strings.EqualFold(key, name) {
				return fmt.Errorf("%w: got %q, want %q", ErrFieldCase, key, name)
			}
		}
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	return validate.Struct(v)
}
