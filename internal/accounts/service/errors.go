package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrForbidden      = errors.New("forbidden")
	ErrQuotaExceeded  = errors.New("application token quota exceeded")
	ErrDuplicateLabel = errors.New("application label already taken")
	ErrNotFound       = errors.New("not found")
	ErrNotSupported   = errors.New("not supported")
)

// BaseField keys messages that do not belong to a single input field.
const BaseField = "base"

// Error is the rejection returned to callers. Kind is one of the sentinels
// above; Related carries further sentinels when more than one rule failed at
// once (a full token quota and a taken label). Fields holds every message,
// keyed by input field.
type Error struct {
	Kind    error
	Related []error
	Fields  validation.Errors
}

func (e *Error) Error() string {
	msgs := e.Messages()
	if len(msgs) == 0 {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, strings.Join(msgs, "; "))
}

func (e *Error) Unwrap() []error {
	return append([]error{e.Kind}, e.Related...)
}

// Messages returns full messages ("email has already been taken"), sorted
// by field. Base messages are returned as they are.
func (e *Error) Messages() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == BaseField {
			msgs = append(msgs, e.Fields[k].Error())
			continue
		}
		msgs = append(msgs, strings.ReplaceAll(k, "_", " ")+" "+e.Fields[k].Error())
	}
	return msgs
}

// Field returns the message attached to field, or "".
func (e *Error) Field(field string) string {
	if err, ok := e.Fields[field]; ok && err != nil {
		return err.Error()
	}
	return ""
}

func newError(kind error, fields validation.Errors) *Error {
	if fields == nil {
		fields = validation.Errors{}
	}
	return &Error{Kind: kind, Fields: fields}
}

func fieldError(kind error, field, msg string) *Error {
	return newError(kind, validation.Errors{field: errors.New(msg)})
}

// validationError converts the result of validation.ValidateStruct. It
// returns nil for nil, and passes through anything that is not a set of
// field errors.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	var fields validation.Errors
	if errors.As(err, &fields) {
		return newError(ErrValidation, fields)
	}
	return err
}

// merge adds the fields of err into fields when err is a field error set,
// and returns any other error unchanged.
func merge(fields validation.Errors, err error) error {
	if err == nil {
		return nil
	}
	var fe validation.Errors
	if !errors.As(err, &fe) {
		return err
	}
	for k, v := range fe {
		if _, taken := fields[k]; !taken {
			fields[k] = v
		}
	}
	return nil
}
