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
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// GetAboutInfo returns the profile with its education, experience and social
// links. A missing profile row is ErrNotFound; empty sub-collections are not.
func (app *Application) GetAboutInfo(ctx context.Context) (*AboutInfo, error) {
	about, err := app.about.FindAbout(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "persistence error", slog.String("entity", "about"), slog.Any("error", err))
		return nil, err
	}
	if about == nil {
		return nil, ErrNotFound
	}

	info := &AboutInfo{About: *about}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		info.Education, err = app.about.FindEducation(gctx)
		return err
	})
	g.Go(func() (err error) {
		info.Experience, err = app.about.FindExperience(gctx)
		return err
	})
	g.Go(func() (err error) {
		info.SocialMedia, err = app.about.FindSocialMedia(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "persistence error", slog.String("entity", "about"), slog.Any("error", err))
		return nil, err
	}
	return info, nil
}
