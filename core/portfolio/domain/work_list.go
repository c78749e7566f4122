package domain

import (
	"context"
	"log/slog"
)

func (app *Application) GetAllWorks(ctx context.Context, filter WorkFilter) ([]Work, error) {
	works, err := app.works.FindWorks(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "persistence error", slog.String("entity", "works"), slog.Any("error", err))
		return nil, err
	}
	return works, nil
}
