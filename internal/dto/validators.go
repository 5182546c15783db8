package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// RegisterValidators adds the custom binding tags used by the request DTOs
// to gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return fmt.Errorf("register notblank: %w", err)
	}
	v.RegisterTagNameFunc(jsonFieldName)
	return nil
}

// BindingMessages flattens a binding error into one message per offending field.
func BindingMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid request format: " + err.Error()}
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required", "notblank":
			messages = append(messages, fmt.Sprintf("%s is required.", field))
		case "datetime":
			messages = append(messages, fmt.Sprintf("%s must be a date in YYYY-MM-DD format.", field))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters.", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid.", field))
		}
	}
	return messages
}

// jsonFieldName reports fields by their JSON name so messages match the payload.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
