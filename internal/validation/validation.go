package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
)

// FieldErrors maps a JSON field path to its messages.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	enums := map[string]func(string) bool{
		"role":          func(s string) bool { return models.Role(s).Valid() },
		"taskstatus":    func(s string) bool { return models.TaskStatus(s).Valid() },
		"priority":      func(s string) bool { return models.Priority(s).Valid() },
		"level":         func(s string) bool { return models.Level(s).Valid() },
		"contactstatus": func(s string) bool { return models.ContactStatus(s).Valid() },
	}
	for tag, ok := range enums {
		ok := ok
		_ = validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return ok(fl.Field().String())
		})
	}
}

var messages = map[string]string{
	"required":      "%s is required",
	"email":         "%s must be a valid email address",
	"min":           "%s must be at least %s",
	"max":           "%s must be at most %s",
	"gte":           "%s must be greater than or equal to %s",
	"lte":           "%s must be less than or equal to %s",
	"uuid":          "%s must be a valid id",
	"url":           "%s must be a valid URL",
	"role":          "%s must be one of client, junior, middle, senior",
	"taskstatus":    "%s must be one of pending, in progress, done",
	"priority":      "%s must be one of low, medium, high",
	"level":         "%s must be one of beginner, intermediate, advanced",
	"contactstatus": "%s must be one of new, in review, responded, closed",
}

func message(field string, e validator.FieldError) string {
	msg, ok := messages[e.Tag()]
	if !ok {
		return fmt.Sprintf("%s is invalid", field)
	}
	if strings.Count(msg, "%s") == 2 {
		return fmt.Sprintf(msg, field, e.Param())
	}
	return fmt.Sprintf(msg, field)
}

// Struct validates s and returns field errors keyed by JSON path, or nil.
func Struct(s any) FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"body": {"invalid request body"}}
	}

	out := FieldErrors{}
	for _, e := range verrs {
		field := e.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		out.Add(field, message(field, e))
	}
	return out
}
