package persistence

import (
	"context"
	"errors"
	"strings"
	"testing"

	"portfolio/core/portfolio/domain"
	"portfolio/modules/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func work(id, category string, featured bool) db.Record {
	return db.Record{
		"id": id, "title": id, "description": "d", "thumbnail": "/t.png",
		"category": category, "featured": featured,
	}
}

func ptr[T any](v T) *T { return &v }

func TestFindWorksFilters(t *testing.T) {
	client := &memClient{tables: map[string][]db.Record{
		tableWorks: {
			work("a", "Web", true),
			work("b", "web", false),
			work("c", "Mobile", true),
			work("d", "WEB", true),
		},
	}}
	r := NewWorkReader(client)
	ctx := context.Background()

	t.Run("category is case-insensitive", func(t *testing.T) {
		works, err := r.FindWorks(ctx, domain.WorkFilter{Category: ptr("wEb")})
		require.NoError(t, err)
		require.Len(t, works, 3)
		for _, w := range works {
			assert.Equal(t, "web", strings.ToLower(w.Category))
		}
	})

	t.Run("featured and category combine", func(t *testing.T) {
		works, err := r.FindWorks(ctx, domain.WorkFilter{Featured: ptr(true), Category: ptr("Web")})
		require.NoError(t, err)
		var ids []string
		for _, w := range works {
			assert.True(t, w.Featured)
			ids = append(ids, w.ID)
		}
		assert.Equal(t, []string{"a", "d"}, ids)
	})

	t.Run("unknown category is empty", func(t *testing.T) {
		works, err := r.FindWorks(ctx, domain.WorkFilter{Category: ptr("Games")})
		require.NoError(t, err)
		assert.NotNil(t, works)
		assert.Empty(t, works)
	})

	t.Run("ordering is explicit", func(t *testing.T) {
		_, err := r.FindWorks(ctx, domain.WorkFilter{})
		require.NoError(t, err)
		assert.Equal(t,
			[]db.Order{db.Desc("featured"), db.Desc("created_at"), db.Asc("id")},
			client.lastQuery().Orders)
	})
}

func TestFindWorkByIDIsPartial(t *testing.T) {
	client := &memClient{tables: map[string][]db.Record{tableWorks: {work("site", "Web", true)}}}
	r := NewWorkReader(client)

	w, err := r.FindWorkByID(context.Background(), "site")
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, "site", w.ID)
	assert.Equal(t, 1, client.lastQuery().Limit)
	require.Len(t, client.lastQuery().Filters, 1)
	assert.False(t, client.lastQuery().Filters[0].Fold, "slug lookup must be exact")

	w, err = r.FindWorkByID(context.Background(), "SITE")
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestUpstreamFailureIsNotEmpty(t *testing.T) {
	stores := NewStores(&memClient{err: errors.New("connection refused")})
	ctx := context.Background()

	_, err := stores.Works.FindWorks(ctx, domain.WorkFilter{})
	assert.ErrorIs(t, err, domain.ErrUpstream)

	_, err = stores.Skills.FindCategoryNames(ctx)
	assert.ErrorIs(t, err, domain.ErrUpstream)

	about, err := stores.About.FindAbout(ctx)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Nil(t, about)
}

func TestMalformedRowFailsWholeRead(t *testing.T) {
	client := &memClient{tables: map[string][]db.Record{
		tableSkills: {
			{"name": "Go", "level": 5, "category": "Backend"},
			{"name": "Broken", "category": "Backend"},
		},
	}}

	_, err := NewSkillReader(client).FindSkills(context.Background(), domain.SkillFilter{})
	var merr *domain.MappingError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, []string{"level"}, merr.Fields)
}

func TestFindCategoryNamesDistinctSorted(t *testing.T) {
	client := &memClient{tables: map[string][]db.Record{
		tableSkills: {
			{"category": "Frontend"},
			{"category": "Backend"},
			{"category": "Frontend"},
			{"category": nil},
			{"category": "Infra"},
		},
	}}

	names, err := NewSkillReader(client).FindCategoryNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Backend", "Frontend", "Infra"}, names)
	assert.Equal(t, []string{"category"}, client.lastQuery().Columns)
}

func TestFindTimelineItemsMonotonic(t *testing.T) {
	client := &memClient{tables: map[string][]db.Record{
		tableTimeline: {
			{"id": "c", "period": "2022", "title": "C", "sort_order": 3},
			{"id": "a1", "period": "2018", "title": "A1", "sort_order": 1},
			{"id": "b", "period": "2020", "title": "B", "sort_order": 2},
			{"id": "a2", "period": "2019", "title": "A2", "sort_order": 1},
		},
	}}

	items, err := NewHeroReader(client).FindTimelineItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 4)
	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, items[i-1].SortOrder, items[i].SortOrder)
	}
	assert.Equal(t, "a1", items[0].ID, "ties keep store order")
	assert.Equal(t, "a2", items[1].ID)
}

func TestAboutReader(t *testing.T) {
	client := &memClient{tables: map[string][]db.Record{
		tableAbout:     {{"name": "A", "title": "B", "summary": "S", "profile_image": "/p.jpg", "bio": "Bio"}},
		tableEducation: {{"institution": "U", "degree": "BSc", "field": "CS", "start_date": "2015-04-01"}},
	}}
	r := NewAboutReader(client)
	ctx := context.Background()

	about, err := r.FindAbout(ctx)
	require.NoError(t, err)
	require.NotNil(t, about)
	assert.Equal(t, "/p.jpg", about.ProfileImage)

	edu, err := r.FindEducation(ctx)
	require.NoError(t, err)
	assert.Len(t, edu, 1)

	exp, err := r.FindExperience(ctx)
	require.NoError(t, err)
	assert.NotNil(t, exp)
	assert.Empty(t, exp)

	empty := NewAboutReader(&memClient{})
	about, err = empty.FindAbout(ctx)
	require.NoError(t, err)
	assert.Nil(t, about)
}
