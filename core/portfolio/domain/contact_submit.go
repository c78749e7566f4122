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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid/v5"
)

// SubmitContact validates req and hands it to the dispatcher. Success means
// the message was accepted for background delivery only.
func (app *Application) SubmitContact(ctx context.Context, req ContactRequest) (*ContactReceipt, error) {
	req = ContactRequest{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if err := app.validateContact(req); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDispatch, err)
	}
	receipt := ContactReceipt{
		ID:         id,
		ReceivedAt: app.clock.Now(),
		Live:       app.dispatcher.Live(),
	}

	if err := app.dispatcher.Dispatch(ctx, ContactMessage{ContactReceipt: receipt, ContactRequest: req}); err != nil {
		slog.ErrorContext(ctx, "contact hand-off failed", slog.String("receipt", id.String()), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrDispatch, err)
	}

	slog.InfoContext(ctx, "contact accepted", slog.String("receipt", id.String()), slog.Bool("live", receipt.Live))
	return &receipt, nil
}

func (app *Application) validateContact(req ContactRequest) error {
	err := app.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	violations := make([]FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, FieldViolation{Field: fe.Field(), Reason: reason(fe)})
	}
	return &ValidationError{Fields: violations}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
