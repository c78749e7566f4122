package domain

import (
	"context"
	"log/slog"
	"strings"
)

func (app *Application) GetWorkByID(ctx context.Context, id string) (*Work, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNotFound
	}
	work, err := app.works.FindWorkByID(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "persistence error", slog.String("entity", "works"), slog.Any("error", err))
		return nil, err
	}
	if work == nil {
		return nil, ErrNotFound
	}
	return work, nil
}
