// Package validation declares the accepted shape of every form submitted to
// the service and renders validation failures as readable messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	instance *validator.Validate
	once     sync.Once

	lineNamespace = regexp.MustCompile(`\.ingredients\[(\d+)\]\.([a-z_]+)$`)
	recipeNumber  = regexp.MustCompile(`^RCP-\d{4}-\d{3,}$`)
)

// Error carries every field error of a rejected form.
type Error struct {
	// Fields maps the JSON field path to its message.
	Fields map[string]string `json:"fields"`
	// Messages is the flat list shown to users, one entry per field error.
	Messages []string `json:"messages"`
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

type normalizer interface {
	normalize()
}

func validate() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if n, ok := field.Interface().(Number); ok {
				f, _ := n.Float64()
				return f
			}
			return nil
		}, Number{})
		_ = v.RegisterValidation("positive", validatePositive)
		_ = v.RegisterValidation("recipe_no", validateRecipeNumber)
		instance = v
	})
	return instance
}

// Validate normalizes the form (trimming text input) and checks its
// constraints. It returns *Error when the form is rejected.
func Validate(form any) error {
	if n, ok := form.(normalizer); ok {
		n.normalize()
	}

	err := validate().Struct(form)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	out := &Error{Fields: make(map[string]string, len(validationErrors))}
	for _, fe := range validationErrors {
		message := describe(fe)
		if match := lineNamespace.FindStringSubmatch(fe.Namespace()); match != nil {
			row, _ := strconv.Atoi(match[1])
			out.Fields[fmt.Sprintf("ingredients[%d].%s", row, match[2])] = message
			out.Messages = append(out.Messages, fmt.Sprintf("Row %d (%s): %s", row+1, match[2], message))
			continue
		}
		out.Fields[fe.Field()] = message
		out.Messages = append(out.Messages, fmt.Sprintf("%s: %s", fe.Field(), message))
	}
	return out
}

func describe(fe validator.FieldError) string {
	numeric := fe.Kind() != reflect.String
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "required_without":
		return "Select an ingredient or enter a name"
	case "positive":
		return "Must be positive"
	case "min", "gte":
		if numeric {
			return fmt.Sprintf("Must be at least %s", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max", "lte":
		if numeric {
			return fmt.Sprintf("Must be at most %s", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return "Must be a valid URL"
	case "uuid":
		return "Must be a valid identifier"
	case "recipe_no":
		return "Must look like RCP-2026-001"
	default:
		return "Invalid value"
	}
}

// validatePositive requires a quantity of at least 0.0001.
func validatePositive(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		return fl.Field().Float() >= 0.0001
	case reflect.Int, reflect.Int64, reflect.Int32:
		return fl.Field().Int() > 0
	default:
		return false
	}
}

// validateRecipeNumber keeps the generated RCP-<year>-<seq> namespace
// parseable. Other manual numbers are free-form.
func validateRecipeNumber(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !strings.HasPrefix(strings.ToUpper(value), "RCP-") {
		return true
	}
	return recipeNumber.MatchString(value)
}

// Messages returns the flat message list of a validation error, or nil when
// err is not one.
func Messages(err error) []string {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Messages
	}
	return nil
}

// Fields returns the field map of a validation error, or nil when err is not one.
func Fields(err error) map[string]string {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}
