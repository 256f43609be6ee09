package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "devconnector/internal/errors"
)

// Validator plugs go-playground/validator into echo and reports every failing
// field with the message from its `msg` struct tag.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator naming fields by their JSON keys.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	t := reflect.TypeOf(i)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	verr := &apperrors.ValidationError{}
	for _, fe := range fieldErrs {
		msg := fe.Error()
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if tagged := sf.Tag.Get("msg"); tagged != "" {
				msg = tagged
			}
		}
		verr.Fields = append(verr.Fields, apperrors.ErrorMessage{Msg: msg, Param: fe.Field()})
	}
	return verr
}
