package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/straye-as/facility-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report json field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Numeric tags (gte, lte) compare decimals as float64
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	enums := map[string]func(string) bool{
		"building_type":  func(s string) bool { return domain.BuildingType(s).IsValid() },
		"project_type":   func(s string) bool { return domain.ProjectType(s).IsValid() },
		"project_status": func(s string) bool { return domain.ProjectStatus(s).IsValid() },
		"contact_status": func(s string) bool { return domain.ContactStatus(s).IsValid() },
	}
	for tag, valid := range enums {
		valid := valid
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		})
	}

	return v
}

var enumValues = map[string]string{
	"building_type":  "kantoor, winkel, hotel, zorg, industrial, residential, overig",
	"project_type":   "maintenance, recurring, renovation",
	"project_status": "quote, approved, in_progress, completed, invoiced",
	"contact_status": "new, read, replied, archived",
}

// validateRequest runs struct tag validation and converts failures into a
// *domain.ValidationError keyed by json field name
func validateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	result := &domain.ValidationError{}
	for _, fe := range ve {
		result.Add(fe.Field(), formatValidationError(fe))
	}
	return result
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Must be a valid email address"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "uuid":
		return "Must be a valid UUID"
	case "datetime":
		return "Must be a valid date (YYYY-MM-DD)"
	}
	if values, ok := enumValues[fe.Tag()]; ok {
		return fmt.Sprintf("Must be one of: %s", values)
	}
	return domain.GetValidationMessage(fe.Tag())
}
