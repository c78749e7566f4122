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

import "context"

type (
	// WorkFilter fields are optional and combine with AND.
	WorkFilter struct {
		Featured *bool
		// Category matches case-insensitively.
		Category *string
	}

	SkillFilter struct {
		Category *string
	}

	// Store failures are reported wrapped in ErrUpstream; unusable rows as
	// *MappingError. No matching rows is an empty slice, never an error.
	Stores struct {
		Works  WorkReadStore
		Skills SkillReadStore
		About  AboutReadStore
		Hero   HeroReadStore
	}
)

// WorkReadStore lists works ordered by featured first, then newest first,
// with the slug as the final tie breaker.
type WorkReadStore interface {
	FindWorks(ctx context.Context, filter WorkFilter) ([]Work, error)
	// FindWorkByID matches the slug exactly. It returns (nil, nil) when absent.
	FindWorkByID(ctx context.Context, id string) (*Work, error)
}

// SkillReadStore lists skills ordered by category then name.
type SkillReadStore interface {
	FindSkills(ctx context.Context, filter SkillFilter) ([]Skill, error)
	// FindCategoryNames returns distinct category names in ascending order.
	FindCategoryNames(ctx context.Context) ([]string, error)
}

type AboutReadStore interface {
	// FindAbout returns (nil, nil) when no profile row exists.
	FindAbout(ctx context.Context) (*About, error)
	FindEducation(ctx context.Context) ([]Education, error)
	FindExperience(ctx context.Context) ([]Experience, error)
	FindSocialMedia(ctx context.Context) ([]SocialMedia, error)
}

type HeroReadStore interface {
	// FindIntroduction returns (nil, nil) when absent.
	FindIntroduction(ctx context.Context) (*HeroIntroduction, error)
	// FindTimelineItems is non-decreasing in SortOrder; ties keep store order.
	FindTimelineItems(ctx context.Context) ([]TimelineItem, error)
}

// ContactDispatcher hands contact messages to background delivery.
//
// Dispatch must not block on delivery. A nil error means the message was
// accepted, not that it was delivered.
type ContactDispatcher interface {
	Dispatch(ctx context.Context, msg ContactMessage) error
	// Live reports whether accepted messages are actually e-mailed.
	Live() bool
}
