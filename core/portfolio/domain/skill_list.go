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
)

func (app *Application) GetAllSkills(ctx context.Context, category *string) ([]Skill, error) {
	skills, err := app.skills.FindSkills(ctx, SkillFilter{Category: category})
	if err != nil {
		slog.ErrorContext(ctx, "persistence error", slog.String("entity", "skills"), slog.Any("error", err))
		return nil, err
	}
	return skills, nil
}

// GetSkillCategories groups skills by category. Groups appear in the order
// their first skill was returned, and every skill lands in exactly one group.
func (app *Application) GetSkillCategories(ctx context.Context, category *string) ([]SkillCategory, error) {
	skills, err := app.GetAllSkills(ctx, category)
	if err != nil {
		return nil, err
	}
	return GroupSkills(skills), nil
}

func (app *Application) GetSkillCategoryNames(ctx context.Context) ([]string, error) {
	names, err := app.skills.FindCategoryNames(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "persistence error", slog.String("entity", "skills"), slog.Any("error", err))
		return nil, err
	}
	return names, nil
}

func GroupSkills(skills []Skill) []SkillCategory {
	groups := []SkillCategory{}
	index := make(map[string]int)
	for _, s := range skills {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillCategory{Name: s.Category})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}
	return groups
}
