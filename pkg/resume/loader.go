// Package resume defines the structured resume consumed by the scorer, along with
// decoding, shape validation and canonical serialization.
package resume

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Load reads a resume from a JSON file.
func Load(path string) (data Data, err error) {
	var fileData []byte
	fileData, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read resume file: %s", path)
		return data, err
	}

	data, err = Decode(fileData)
	if err != nil {
		err = errors.Wrapf(err, "invalid resume: %s", path)
		return data, err
	}

	return data, err
}

// Decode parses resume JSON. Shape mismatches (a section of the wrong type, a
// non-string skill) are reported as *ValidationError. Missing sections are not errors.
func Decode(raw []byte) (data Data, err error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		err = &ValidationError{Field: "resume", Message: "resume is empty"}
		return data, err
	}

	err = json.Unmarshal(trimmed, &data)
	if err != nil {
		err = shapeError(err)
		return data, err
	}

	var compact bytes.Buffer
	err = json.Compact(&compact, trimmed)
	if err != nil {
		err = shapeError(err)
		return data, err
	}
	data.source = compact.String()

	return data, err
}

func shapeError(cause error) (err error) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(cause, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "resume"
		}
		err = &ValidationError{
			Field:   field,
			Message: "expected " + describeKind(typeErr.Type.Kind().String()) + ", got " + typeErr.Value,
			Cause:   cause,
		}
		return err
	}

	var syntaxErr *json.SyntaxError
	if errors.As(cause, &syntaxErr) {
		err = &ValidationError{Field: "resume", Message: "malformed JSON", Cause: cause}
		return err
	}

	err = &ValidationError{Field: "resume", Message: "cannot decode resume", Cause: cause}
	return err
}

func describeKind(kind string) (desc string) {
	switch kind {
	case "slice":
		desc = "a list"
	case "struct", "ptr":
		desc = "an object"
	default:
		desc = "a " + kind
	}
	return desc
}

// Serialize returns the resume as single-line JSON. A decoded resume serializes to
// its input with insignificant whitespace removed, unknown and empty fields
// included. A resume built in code is encoded with camelCase keys, absent sections
// omitted and no HTML escaping.
func (d Data) Serialize() (serialized string) {
	if d.source != "" {
		serialized = d.source
		return serialized
	}

	serialized = d.encode()
	return serialized
}

func (d Data) encode() (encoded string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	// Data holds only strings and slices of them; encoding cannot fail.
	_ = enc.Encode(d)

	encoded = strings.TrimSuffix(buf.String(), "\n")
	return encoded
}

// IsEmpty reports whether no section carries any content.
func (d Data) IsEmpty() (empty bool) {
	empty = d.encode() == "{}"
	return empty
}
