// Package schema coerces loosely typed course documents and request
// parameters into the typed shapes of package models.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// fieldMessages maps "<json field>.<rule>" to the message reported for it.
var fieldMessages = map[string]string{
	"code.required":           "Course code cannot be empty",
	"title.required":          "Course title cannot be empty",
	"career.required":         "Career cannot be empty",
	"units.required":          "Units cannot be empty",
	"grading.required":        "Grading cannot be empty",
	"components.required":     "Components cannot be empty",
	"campus.required":         "Campus cannot be empty",
	"academic_group.required": "Academic group cannot be empty",
	"locations.min":           "Locations cannot be empty",
	"instructors.min":         "Instructors cannot be empty",
}

// Normalizer holds no per-call state and is safe for concurrent use.
type Normalizer struct {
	now      func() time.Time
	validate *validator.Validate
}

type Option func(*Normalizer)

// WithClock sets the clock whose year is given to "D/M" meeting dates.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		n.now = now
	}
}

func NewNormalizer(opts ...Option) *Normalizer {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	n := &Normalizer{now: time.Now, validate: v}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// validateStruct runs the struct tag rules and records failures under path,
// skipping fields that already failed coercion.
func (n *Normalizer) validateStruct(s interface{}, path string, issues *issueList) {
	err := n.validate.Struct(s)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		issues.add(path, err.Error())
		return
	}
	for _, fe := range fieldErrs {
		fieldPath := joinPath(path, fe.Field())
		if issues.has(fieldPath) {
			continue
		}
		issues.add(fieldPath, fieldMessage(fe))
	}
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return requiredMessage
	case "max":
		return fmt.Sprintf("Must contain at most %s character(s)", fe.Param())
	case "min":
		return fmt.Sprintf("Must contain at least %s element(s)", fe.Param())
	}
	return fmt.Sprintf("Failed on the %q rule", fe.Tag())
}
