// Package validate collects field-level input violations.
//
// Calculators and record constructors report every failing field at once
// instead of stopping at the first problem, so forms can show all messages.
package validate

import (
	"fmt"
	"strings"
)

type Violation struct {
	Code  string
	Field string
	Msg   string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Msg)
}

// Violations is an error listing one or more failing fields.
type Violations []Violation

func (vs *Violations) Add(code, field, msg string) {
	*vs = append(*vs, Violation{Code: code, Field: field, Msg: msg})
}

// Positive adds a violation unless x > 0. NaN fails the check.
func (vs *Violations) Positive(field string, x float64, msg string) {
	if !(x > 0) {
		vs.Add("NOT_POSITIVE", field, msg)
	}
}

// Required adds a violation when s is empty after trimming.
func (vs *Violations) Required(field, s, msg string) {
	if strings.TrimSpace(s) == "" {
		vs.Add("REQUIRED", field, msg)
	}
}

// Err returns nil when there are no violations so callers can write
// `return vs.Err()`.
func (vs Violations) Err() error {
	if len(vs) == 0 {
		return nil
	}
	return vs
}

func (vs Violations) Error() string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, v.String())
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Fields maps each failing field to its first message.
func (vs Violations) Fields() map[string]string {
	out := make(map[string]string, len(vs))
	for _, v := range vs {
		if _, ok := out[v.Field]; !ok {
			out[v.Field] = v.Msg
		}
	}
	return out
}

// Has reports whether field has at least one violation.
func (vs Violations) Has(field string) bool {
	for _, v := range vs {
		if v.Field == field {
			return true
		}
	}
	return false
}
