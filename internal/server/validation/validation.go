// Package validation is the structural gate in front of the mutation
// pipeline. It aggregates every field violation of a payload into a single
// message before authorization or persistence is consulted.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/catkeeper/internal/common"
)

// EmailPattern is the basic local@domain.tld shape accepted for accounts.
var EmailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Violation is one failed field rule.
type Violation struct {
	Field   string
	Message string
}

// Result collects violations across a payload. The zero value is ready to use.
type Result struct {
	violations []Violation
}

// Add records a violation verbatim.
func (r *Result) Add(field, message string) {
	r.violations = append(r.violations, Violation{Field: field, Message: message})
}

// Require records message when value is empty.
func (r *Result) Require(field, value, message string) {
	if value == "" {
		r.Add(field, message)
	}
}

// MinLength records message when value is shorter than min characters.
// An empty value also fails, so required-and-min rules need only this call.
func (r *Result) MinLength(field, value string, min int, message string) {
	if len(value) < min {
		r.Add(field, message)
	}
}

// Match records message when value does not match re.
func (r *Result) Match(field, value string, re *regexp.Regexp, message string) {
	if !re.MatchString(value) {
		r.Add(field, message)
	}
}

// Positive records message when value is not strictly positive.
func (r *Result) Positive(field string, value float64, message string) {
	if value <= 0 {
		r.Add(field, message)
	}
}

// Err returns nil when no rule failed, otherwise a ValidationFailed error
// whose message joins every "message: field" pair with ", ".
func (r *Result) Err() error {
	if len(r.violations) == 0 {
		return nil
	}

	parts := make([]string, 0, len(r.violations))
	for _, v := range r.violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Message, v.Field))
	}

	return common.E(common.ErrValidation, strings.Join(parts, ", "))
}

// ParseID coerces a path parameter to a positive integer identifier.
func ParseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.E(common.ErrValidation, fmt.Sprintf("Invalid id: %s", field))
	}
	return id, nil
}
