package utils

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	var messages []string
	for _, err := range ve {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, ", ")
}

// ValidateStruct validates a struct using `validate` struct tags
func ValidateStruct(s interface{}) error {
	var errors ValidationErrors

	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("expected struct, got %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanInterface() {
			continue
		}

		validateTag := fieldType.Tag.Get("validate")
		if validateTag == "" {
			continue
		}

		for _, rule := range strings.Split(validateTag, ",") {
			rule = strings.TrimSpace(rule)
			if err := validateField(fieldType.Name, field, rule); err != nil {
				errors = append(errors, *err)
			}
		}
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// validateField validates a single field against a rule
func validateField(fieldName string, field reflect.Value, rule string) *ValidationError {
	parts := strings.SplitN(rule, "=", 2)
	ruleName := parts[0]
	var ruleValue string
	if len(parts) > 1 {
		ruleValue = parts[1]
	}

	switch ruleName {
	case "required":
		if isEmpty(field) {
			return &ValidationError{Field: fieldName, Message: "is required"}
		}
	case "email":
		if field.Kind() == reflect.String {
			email := field.String()
			if email != "" && !IsValidEmail(email) {
				return &ValidationError{Field: fieldName, Message: "must be a valid email address"}
			}
		}
	case "phone":
		if field.Kind() == reflect.String {
			phone := field.String()
			if phone != "" && !IsPhoneNumber(phone) {
				return &ValidationError{Field: fieldName, Message: "must be a valid phone number"}
			}
		}
	case "min":
		limit := parseIntOrDefault(ruleValue, 0)
		switch {
		case field.Kind() == reflect.String:
			if len(field.String()) < limit {
				return &ValidationError{Field: fieldName, Message: fmt.Sprintf("must be at least %s characters", ruleValue)}
			}
		case field.Kind() == reflect.Slice:
			if field.Len() < limit {
				return &ValidationError{Field: fieldName, Message: fmt.Sprintf("must have at least %s entries", ruleValue)}
			}
		case isNumeric(field):
			if getNumericValue(field) < float64(limit) {
				return &ValidationError{Field: fieldName, Message: fmt.Sprintf("must be at least %s", ruleValue)}
			}
		}
	case "max":
		limit := parseIntOrDefault(ruleValue, 0)
		switch {
		case field.Kind() == reflect.String:
			if len(field.String()) > limit {
				return &ValidationError{Field: fieldName, Message: fmt.Sprintf("must be at most %s characters", ruleValue)}
			}
		case field.Kind() == reflect.Slice:
			if field.Len() > limit {
				return &ValidationError{Field: fieldName, Message: fmt.Sprintf("must have at most %s entries", ruleValue)}
			}
		case isNumeric(field):
			if getNumericValue(field) > float64(limit) {
				return &ValidationError{Field: fieldName, Message: fmt.Sprintf("must be at most %s", ruleValue)}
			}
		}
	case "gt":
		if isNumeric(field) && getNumericValue(field) <= float64(parseIntOrDefault(ruleValue, 0)) {
			return &ValidationError{Field: fieldName, Message: fmt.Sprintf("must be greater than %s", ruleValue)}
		}
	case "gte":
		if isNumeric(field) && getNumericValue(field) < float64(parseIntOrDefault(ruleValue, 0)) {
			return &ValidationError{Field: fieldName, Message: fmt.Sprintf("must be greater than or equal to %s", ruleValue)}
		}
	case "lte":
		if isNumeric(field) && getNumericValue(field) > float64(parseIntOrDefault(ruleValue, 0)) {
			return &ValidationError{Field: fieldName, Message: fmt.Sprintf("must be less than or equal to %s", ruleValue)}
		}
	}

	return nil
}

// isEmpty checks if a field is empty
func isEmpty(field reflect.Value) bool {
	switch field.Kind() {
	case reflect.String:
		return field.String() == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return field.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return field.IsNil()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return field.Int() == 0
	case reflect.Float32, reflect.Float64:
		return field.Float() == 0
	case reflect.Invalid:
		return true
	default:
		return false
	}
}

// isNumeric checks if a field is numeric
func isNumeric(field reflect.Value) bool {
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// getNumericValue gets the numeric value as float64
func getNumericValue(field reflect.Value) float64 {
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(field.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(field.Uint())
	case reflect.Float32, reflect.Float64:
		return field.Float()
	default:
		return 0
	}
}

// parseIntOrDefault parses an integer or returns default value
func parseIntOrDefault(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	if result, err := strconv.Atoi(s); err == nil {
		return result
	}
	return defaultValue
}

// ValidatePassword validates password strength
func ValidatePassword(password string) []string {
	var errors []string

	if len(password) < 8 {
		errors = append(errors, "Password must be at least 8 characters long")
	}
	if len(password) > 128 {
		errors = append(errors, "Password must be at most 128 characters long")
	}

	return errors
}
