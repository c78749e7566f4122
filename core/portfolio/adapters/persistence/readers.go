package persistence

import (
	"context"
	"fmt"
	"slices"

	"portfolio/core/portfolio/domain"
	"portfolio/modules/db"
)

var (
	_ domain.WorkReadStore  = (*WorkReader)(nil)
	_ domain.SkillReadStore = (*SkillReader)(nil)
	_ domain.AboutReadStore = (*AboutReader)(nil)
	_ domain.HeroReadStore  = (*HeroReader)(nil)
)

type (
	WorkReader  struct{ client db.Client }
	SkillReader struct{ client db.Client }
	AboutReader struct{ client db.Client }
	HeroReader  struct{ client db.Client }
)

// NewStores builds every read store on one shared client.
func NewStores(client db.Client) domain.Stores {
	return domain.Stores{
		Works:  NewWorkReader(client),
		Skills: NewSkillReader(client),
		About:  NewAboutReader(client),
		Hero:   NewHeroReader(client),
	}
}

func NewWorkReader(client db.Client) *WorkReader   { return &WorkReader{client: client} }
func NewSkillReader(client db.Client) *SkillReader { return &SkillReader{client: client} }
func NewAboutReader(client db.Client) *AboutReader { return &AboutReader{client: client} }
func NewHeroReader(client db.Client) *HeroReader   { return &HeroReader{client: client} }

func selectAll[T any](ctx context.Context, client db.Client, q db.Query, fn func(db.Record) (T, error)) ([]T, error) {
	recs, err := client.Select(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	return mapRecords(recs, fn)
}

func selectOne[T any](ctx context.Context, client db.Client, q db.Query, fn func(db.Record) (T, error)) (*T, error) {
	q.Limit = 1
	items, err := selectAll(ctx, client, q, fn)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func (r *WorkReader) FindWorks(ctx context.Context, filter domain.WorkFilter) ([]domain.Work, error) {
	q := db.Query{
		Table:  tableWorks,
		Orders: []db.Order{db.Desc("featured"), db.Desc("created_at"), db.Asc("id")},
	}
	if filter.Featured != nil {
		q.Filters = append(q.Filters, db.Eq("featured", *filter.Featured))
	}
	if filter.Category != nil {
		q.Filters = append(q.Filters, db.EqFold("category", *filter.Category))
	}
	return selectAll(ctx, r.client, q, workFromRecord)
}

func (r *WorkReader) FindWorkByID(ctx context.Context, id string) (*domain.Work, error) {
	return selectOne(ctx, r.client, db.Query{
		Table:   tableWorks,
		Filters: []db.Filter{db.Eq("id", id)},
	}, workFromRecord)
}

func (r *SkillReader) FindSkills(ctx context.Context, filter domain.SkillFilter) ([]domain.Skill, error) {
	q := db.Query{
		Table:  tableSkills,
		Orders: []db.Order{db.Asc("category"), db.Asc("name")},
	}
	if filter.Category != nil {
		q.Filters = append(q.Filters, db.EqFold("category", *filter.Category))
	}
	return selectAll(ctx, r.client, q, skillFromRecord)
}

func (r *SkillReader) FindCategoryNames(ctx context.Context) ([]string, error) {
	recs, err := r.client.Select(ctx, db.Query{
		Table:   tableSkills,
		Columns: []string{"category"},
		Orders:  []db.Order{db.Asc("category")},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}

	names := make([]string, 0, len(recs))
	for _, rec := range recs {
		switch v := rec["category"].(type) {
		case nil:
		case string:
			names = append(names, v)
		default:
			return nil, &domain.MappingError{Entity: tableSkills, Fields: []string{"category"}}
		}
	}
	// Collation differs between backends; sort here so the order is stable.
	slices.Sort(names)
	return slices.Compact(names), nil
}

func (r *AboutReader) FindAbout(ctx context.Context) (*domain.About, error) {
	return selectOne(ctx, r.client, db.Query{Table: tableAbout}, aboutFromRecord)
}

func (r *AboutReader) FindEducation(ctx context.Context) ([]domain.Education, error) {
	return selectAll(ctx, r.client, db.Query{
		Table:  tableEducation,
		Orders: []db.Order{db.Desc("start_date")},
	}, educationFromRecord)
}

func (r *AboutReader) FindExperience(ctx context.Context) ([]domain.Experience, error) {
	return selectAll(ctx, r.client, db.Query{
		Table:  tableExperience,
		Orders: []db.Order{db.Desc("start_date")},
	}, experienceFromRecord)
}

func (r *AboutReader) FindSocialMedia(ctx context.Context) ([]domain.SocialMedia, error) {
	return selectAll(ctx, r.client, db.Query{
		Table:  tableSocialMedia,
		Orders: []db.Order{db.Asc("platform")},
	}, socialMediaFromRecord)
}

func (r *HeroReader) FindIntroduction(ctx context.Context) (*domain.HeroIntroduction, error) {
	return selectOne(ctx, r.client, db.Query{Table: tableHeroIntro}, heroIntroductionFromRecord)
}

func (r *HeroReader) FindTimelineItems(ctx context.Context) ([]domain.TimelineItem, error) {
	items, err := selectAll(ctx, r.client, db.Query{
		Table:  tableTimeline,
		Orders: []db.Order{db.Asc("sort_order")},
	}, timelineItemFromRecord)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(a, b domain.TimelineItem) int {
		return a.SortOrder - b.SortOrder
	})
	return items, nil
}
