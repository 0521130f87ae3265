package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/goliatone/go-typedtemplate/pkg/engine"
)

// Issue describes one failing field.
type Issue struct {
	Field    string `json:"field,omitempty"`
	Rule     string `json:"rule"`
	Expected string `json:"expected,omitempty"`
	Message  string `json:"message"`
}

// Error aggregates the issues found while validating one value.
type Error struct {
	Model  string  `json:"model,omitempty"`
	Issues []Issue `json:"issues"`
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	prefix := "validation failed"
	if e.Model != "" {
		prefix = fmt.Sprintf("validation failed for %s", e.Model)
	}
	return prefix + ": " + strings.Join(parts, "; ")
}

func (e *Error) Is(target error) bool { return target == engine.ErrValidation }

// Fields lists the failing field paths in issue order.
func (e *Error) Fields() []string {
	out := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		out = append(out, issue.Field)
	}
	return out
}

// Issue returns the first issue reported for field.
func (e *Error) Issue(field string) (Issue, bool) {
	for _, issue := range e.Issues {
		if issue.Field == field {
			return issue, true
		}
	}
	return Issue{}, false
}

var (
	decodeFieldPattern    = regexp.MustCompile(`^(?:error decoding )?'([^']*)'`)
	decodeExpectedPattern = regexp.MustCompile(`expected type '([^']+)'`)
)

func fromDecodeError(model string, err error) *Error {
	var decodeErr *mapstructure.Error
	if !errors.As(err, &decodeErr) {
		return &Error{Model: model, Issues: []Issue{{Rule: "type", Message: err.Error()}}}
	}

	out := &Error{Model: model}
	for _, msg := range decodeErr.Errors {
		issue := Issue{Rule: "type", Message: msg}
		if m := decodeFieldPattern.FindStringSubmatch(msg); m != nil {
			issue.Field = m[1]
			issue.Message = strings.TrimLeft(strings.TrimPrefix(msg, m[0]), ": ")
		}
		if m := decodeExpectedPattern.FindStringSubmatch(msg); m != nil {
			issue.Expected = m[1]
		}
		out.Issues = append(out.Issues, issue)
	}
	return out
}

func fromValidatorError(model string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &Error{Model: model}
	for _, fe := range fieldErrs {
		issue := Issue{
			Field:    fieldPath(fe.Namespace()),
			Rule:     fe.Tag(),
			Expected: fe.Type().String(),
		}
		switch {
		case fe.Tag() == "required":
			issue.Message = "field is required"
		case fe.Param() != "":
			issue.Message = fmt.Sprintf("failed %q constraint (%s)", fe.Tag(), fe.Param())
		default:
			issue.Message = fmt.Sprintf("failed %q constraint", fe.Tag())
		}
		out.Issues = append(out.Issues, issue)
	}
	return out
}

// fieldPath drops the leading struct type name from a validator namespace.
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}
