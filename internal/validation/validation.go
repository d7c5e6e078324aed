// Package validation wraps go-playground/validator with the messages shown
// to users. A struct field may carry a `msg` tag; when the field fails any
// rule that text becomes the error message.
package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/dmitrijs2005/rentdesk/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Error describes the first rule a value broke. It matches
// common.ErrorValidation with errors.Is.
type Error struct {
	Field   string
	Rule    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return common.ErrorValidation
}

// Struct validates s (a struct or pointer to struct) and returns nil or an
// *Error for the first failing field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	fe := ves[0]
	return &Error{
		Field:   fe.Field(),
		Rule:    fe.Tag(),
		Message: messageFor(s, fe),
	}
}

func messageFor(s any, fe validator.FieldError) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if msg := f.Tag.Get("msg"); msg != "" {
				return msg
			}
		}
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}
