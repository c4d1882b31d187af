// Package schema validates raw owner payloads before they reach the
// service layer. Unknown fields are ignored; JSON null counts as
// "not supplied". The normalized payloads carry only the fields the
// client actually sent, so downstream code never sees defaults.
package schema

import (
	"encoding/json"
	"fmt"
)

// MinPasswordLen is the minimum plaintext length before digesting.
const MinPasswordLen = 8

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every violated field, not just the first.
type ValidationError struct {
	Fields []FieldError `json:"field_errors"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// CreatePayload is a validated create request. Owner and Password are
// always set; Heading and Description are nil when not supplied.
type CreatePayload struct {
	Owner       string
	Password    string
	Heading     *string
	Description *string
}

// PatchPayload is a validated patch request. Every field is nil when
// not supplied.
type PatchPayload struct {
	Owner       *string
	Password    *string
	Heading     *string
	Description *string
}

func ValidateCreate(raw map[string]json.RawMessage) (*CreatePayload, *ValidationError) {
	var errs []FieldError
	p := &CreatePayload{}

	if v, ok := value(raw, "owner"); !ok {
		errs = append(errs, FieldError{Field: "owner", Message: "field required"})
	} else if s, err := asString(v); err != nil {
		errs = append(errs, FieldError{Field: "owner", Message: "must be a string"})
	} else if s == "" {
		errs = append(errs, FieldError{Field: "owner", Message: "must not be empty"})
	} else {
		p.Owner = s
	}

	if v, ok := value(raw, "password"); !ok {
		errs = append(errs, FieldError{Field: "password", Message: "field required"})
	} else if s, err := asString(v); err != nil {
		errs = append(errs, FieldError{Field: "password", Message: "must be a string"})
	} else if len(s) < MinPasswordLen {
		errs = append(errs, FieldError{Field: "password", Message: "password is too short"})
	} else {
		p.Password = s
	}

	p.Heading = optionalString(raw, "heading", &errs)
	p.Description = optionalString(raw, "description", &errs)

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return p, nil
}

func ValidatePatch(raw map[string]json.RawMessage) (*PatchPayload, *ValidationError) {
	var errs []FieldError
	p := &PatchPayload{}

	if v, ok := value(raw, "owner"); ok {
		if s, err := asString(v); err != nil {
			errs = append(errs, FieldError{Field: "owner", Message: "must be a string"})
		} else if s == "" {
			errs = append(errs, FieldError{Field: "owner", Message: "must not be empty"})
		} else {
			p.Owner = &s
		}
	}

	if v, ok := value(raw, "password"); ok {
		if s, err := asString(v); err != nil {
			errs = append(errs, FieldError{Field: "password", Message: "must be a string"})
		} else if len(s) < MinPasswordLen {
			errs = append(errs, FieldError{Field: "password", Message: "password is too short"})
		} else {
			p.Password = &s
		}
	}

	p.Heading = optionalString(raw, "heading", &errs)
	p.Description = optionalString(raw, "description", &errs)

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return p, nil
}

// value treats a literal JSON null the same as an absent key.
func value(raw map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	v, ok := raw[name]
	if !ok || string(v) == "null" {
		return nil, false
	}
	return v, true
}

func asString(v json.RawMessage) (string, error) {
	var s string
	err := json.Unmarshal(v, &s)
	return s, err
}

func optionalString(raw map[string]json.RawMessage, name string, errs *[]FieldError) *string {
	v, ok := value(raw, name)
	if !ok {
		return nil
	}
	s, err := asString(v)
	if err != nil {
		*errs = append(*errs, FieldError{Field: name, Message: "must be a string"})
		return nil
	}
	return &s
}
