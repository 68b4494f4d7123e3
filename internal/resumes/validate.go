package resumes

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)
)

// fieldMessages maps json field and validation tag to the message shown next to the field.
var fieldMessages = map[string]map[string]string{
	"name":  {"required": "Name is required"},
	"email": {"required": "Email is required", "resume_email": "Please enter a valid email address"},
	"phone": {"required": "Phone number is required", "resume_phone": "Please enter a valid phone number"},
}

// FormErrors maps json field names to user-facing messages.
type FormErrors struct {
	Fields map[string]string
}

func (e *FormErrors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return "invalid resume: " + strings.Join(msgs, "; ")
}

// Message returns the message for field, or "".
func (e *FormErrors) Message(field string) string {
	return e.Fields[field]
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "resume_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "resume_phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register %s validation: %v", tag, err))
	}
}

// toFormErrors converts validator output into field messages. Only the first
// failing rule per field is reported.
func toFormErrors(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &FormErrors{Fields: make(map[string]string)}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out.Fields[field]; seen {
			continue
		}
		msg := fieldMessages[field][fe.Tag()]
		if msg == "" {
			msg = fmt.Sprintf("%s is invalid", field)
		}
		out.Fields[field] = msg
	}
	return out
}
