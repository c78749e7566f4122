// Copyright 2025 Nguyen Nhat Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
)

// ValidationError represents a structured validation error with field and reason.
type ValidationError struct {
	Field  string
	Reason string
}

// ExtractValidationErrors extracts structured validation errors from an OpenAPI validation error.
func ExtractValidationErrors(err error) []ValidationError {
	var out []ValidationError

	if multi, ok := err.(openapi3.MultiError); ok {
		for _, item := range multi {
			out = append(out, ExtractValidationErrors(item)...)
		}
		return out
	}
	// A body error carries one nested error per offending property.
	if re, ok := err.(*openapi3filter.RequestError); ok && re.Parameter == nil {
		if nested, ok := re.Err.(openapi3.MultiError); ok {
			for _, item := range nested {
				out = append(out, ExtractValidationErrors(item)...)
			}
			return out
		}
	}
	return append(out, extractSingleError(err))
}

func extractSingleError(err error) ValidationError {
	var re *openapi3filter.RequestError
	if errors.As(err, &re) {
		var multi openapi3.MultiError
		if errors.As(re.Err, &multi) && len(multi) > 0 {
			first := extractSingleError(multi[0])
			if re.Parameter != nil {
				first.Field = re.Parameter.Name
			}
			return first
		}
		var se *openapi3.SchemaError
		if errors.As(re.Err, &se) {
			if re.Parameter != nil {
				return ValidationError{Field: re.Parameter.Name, Reason: se.Reason}
			}
			return ValidationError{Field: fieldFromPointer(se.JSONPointer()), Reason: se.Reason}
		}
		// Not a schema error: keep the reason generic so input is not echoed.
		if re.Parameter != nil {
			return ValidationError{Field: re.Parameter.Name, Reason: SafeReason(re.Reason)}
		}
		return ValidationError{Field: "body", Reason: SafeReason(re.Reason)}
	}

	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		return ValidationError{Field: fieldFromPointer(se.JSONPointer()), Reason: se.Reason}
	}

	var sre *openapi3filter.SecurityRequirementsError
	if errors.As(err, &sre) {
		return ValidationError{Field: "authorization", Reason: "missing or invalid credentials"}
	}

	return ValidationError{Field: "request", Reason: "invalid value"}
}

func fieldFromPointer(ptr []string) string {
	if len(ptr) == 0 || ptr[0] == "" || ptr[0] == "0" {
		return "body"
	}
	return ptr[0]
}

// InferBodyValidationStatus returns 422 for schema violations in a well-formed
// body. A body that cannot be decoded at all stays a 400.
func InferBodyValidationStatus(err error) int {
	if multi, ok := err.(openapi3.MultiError); ok {
		for _, item := range multi {
			if InferBodyValidationStatus(item) == http.StatusUnprocessableEntity {
				return http.StatusUnprocessableEntity
			}
		}
		return 0
	}

	var re *openapi3filter.RequestError
	if errors.As(err, &re) {
		if re.RequestBody == nil {
			return 0
		}
		var se *openapi3.SchemaError
		var nested openapi3.MultiError
		if errors.As(re.Err, &se) || errors.As(re.Err, &nested) {
			return http.StatusUnprocessableEntity
		}
		return 0
	}

	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		return http.StatusUnprocessableEntity
	}
	return 0
}

// SafeReason reduces verbose reasons to avoid reflecting input data back to the client.
func SafeReason(reason string) string {
	if reason == "" {
		return "invalid value"
	}
	lower := strings.ToLower(reason)
	if strings.Contains(lower, "doesn't match schema") {
		return "doesn't match schema"
	}
	if strings.Contains(lower, "must be one of") {
		return reason
	}
	return "invalid value"
}
