// Copyright 2025 Nhat-Nguyen Nguyen
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

package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound    = errors.New("requested resource not found")
	ErrUpstream    = errors.New("persistence store request failed")
	ErrDispatch    = errors.New("contact message could not be handed off for delivery")
	ErrInvalidData = errors.New("invalid data provided")
)

type FieldViolation struct {
	Field  string
	Reason string
}

// ValidationError reports every offending field of a contact submission.
type ValidationError struct {
	Fields []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Reason
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidData }

// MappingError reports a store row that could not be turned into an entity.
type MappingError struct {
	Entity string
	Fields []string
	Cause  error
}

func (e *MappingError) Error() string {
	msg := fmt.Sprintf("cannot map %s row", e.Entity)
	if len(e.Fields) > 0 {
		msg += " (fields: " + strings.Join(e.Fields, ", ") + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *MappingError) Unwrap() error { return e.Cause }
