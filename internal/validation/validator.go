// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package validation provides struct validation using go-playground/validator v10.
//
// Chunk records are decoded leniently and then checked here, so one malformed
// movie or rating is skipped with a warning instead of aborting the whole
// chunk. Preference records returned by the LLM go through the same path.
//
// Field names in messages use the JSON tag, matching what appears in the data
// files:
//
//	if err := validation.ValidateStruct(&movie); err != nil {
//	    logger.Warn().Str("item_id", movie.ItemID).Err(err).Msg("skipping invalid movie")
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError represents a single field validation error.
type FieldError struct {
	field   string
	tag     string
	param   string
	message string
}

// Tag returns the validation tag that failed.
func (e *FieldError) Tag() string {
	return e.tag
}

// Param returns the parameter for the validation tag (e.g., "5" for "lte=5").
func (e *FieldError) Param() string {
	return e.param
}

// Error returns a human-readable error message.
func (e *FieldError) Error() string {
	return e.message
}

// RecordError collects every field error of one record.
type RecordError struct {
	errors []FieldError
}

// Errors returns the slice of field errors.
func (re *RecordError) Errors() []FieldError {
	return re.errors
}

// Fields returns the names of the failing fields in order.
func (re *RecordError) Fields() []string {
	fields := make([]string, len(re.errors))
	for i := range re.errors {
		fields[i] = re.errors[i].field
	}
	return fields
}

// Error implements the error interface, returning a combined error message.
func (re *RecordError) Error() string {
	if len(re.errors) == 0 {
		return "validation failed"
	}

	messages := make([]string, 0, len(re.errors))
	for i := range re.errors {
		messages = append(messages, re.errors[i].Error())
	}

	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance.
// This function is thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonFieldName)
	})

	return validate
}

// jsonFieldName reports fields by their JSON name so messages read
// "item_id is required" rather than "ItemID is required".
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes, or *RecordError if validation fails.
//
// The nil check is on the concrete pointer; callers that need an error
// interface should convert explicitly:
//
//	if verr := validation.ValidateStruct(&rec); verr != nil {
//	    return verr
//	}
func ValidateStruct(s interface{}) *RecordError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RecordError{
			errors: []FieldError{
				{
					field:   "unknown",
					tag:     "unknown",
					message: err.Error(),
				},
			},
		}
	}

	fieldErrors := make([]FieldError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fieldErrors[i] = FieldError{
			field:   fieldErr.Field(),
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			message: translateError(fieldErr),
		}
	}

	return &RecordError{errors: fieldErrors}
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required": "%s is required",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}

	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	return translateMinMax(fe, field, tag, param)
}

// translateMinMax handles min/max validation with type-specific messages.
func translateMinMax(fe validator.FieldError, field, tag, param string) string {
	isString := fe.Kind() == reflect.String

	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
