package utils

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"bukubesar-api/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// report fields by their JSON names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("jurnaldate", func(fl validator.FieldLevel) bool {
			_, err := models.ParseDate(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// ValidateStruct returns nil when s is valid, otherwise a field -> message map.
func ValidateStruct(s interface{}) map[string]string {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = fieldMessage(fe)
	}
	return fields
}

// fieldPath drops the top-level struct name: "BulkJurnalRequest.jurnal[0].nominal" -> "jurnal[0].nominal".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "The " + fe.Field() + " field is required."
	case "min":
		if fe.Kind() == reflect.String {
			return "The " + fe.Field() + " field must be at least " + fe.Param() + " characters."
		}
		return "The " + fe.Field() + " field must have at least " + fe.Param() + " items."
	case "email":
		return "The " + fe.Field() + " field must be a valid email address."
	case "jurnaldate":
		return "The " + fe.Field() + " field must be a valid date (YYYY-MM-DD)."
	}
	return "The " + fe.Field() + " field is invalid (" + fe.Tag() + ")."
}
