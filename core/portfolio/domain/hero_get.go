package domain

import (
	"context"
	"log/slog"
)

func (app *Application) GetHeroIntroduction(ctx context.Context) (*HeroIntroduction, error) {
	intro, err := app.hero.FindIntroduction(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "persistence error", slog.String("entity", "hero_introduction"), slog.Any("error", err))
		return nil, err
	}
	if intro == nil {
		return nil, ErrNotFound
	}
	return intro, nil
}

func (app *Application) GetTimelineItems(ctx context.Context) ([]TimelineItem, error) {
	items, err := app.hero.FindTimelineItems(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "persistence error", slog.String("entity", "timeline_items"), slog.Any("error", err))
		return nil, err
	}
	return items, nil
}
