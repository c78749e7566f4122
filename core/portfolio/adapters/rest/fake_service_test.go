package rest

import (
	"context"
	"errors"
	"strings"

	"portfolio/core/portfolio/domain"

	"github.com/gofrs/uuid/v5"
)

// fakeService returns canned data and records the last filters it saw.
type fakeService struct {
	works   []domain.Work
	skills  []domain.SkillCategory
	names   []string
	about   *domain.AboutInfo
	hero    *domain.HeroIntroduction
	items   []domain.TimelineItem
	receipt *domain.ContactReceipt
	err     error

	gotFilter   domain.WorkFilter
	gotCategory *string
	gotContact  domain.ContactRequest
	panics      bool
}

var _ Service = (*fakeService)(nil)

func (f *fakeService) GetAboutInfo(ctx context.Context) (*domain.AboutInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.about == nil {
		return nil, domain.ErrNotFound
	}
	return f.about, nil
}

func (f *fakeService) GetAllWorks(ctx context.Context, filter domain.WorkFilter) ([]domain.Work, error) {
	if f.panics {
		panic("boom")
	}
	f.gotFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	out := []domain.Work{}
	for _, w := range f.works {
		if filter.Featured != nil && w.Featured != *filter.Featured {
			continue
		}
		if filter.Category != nil && !strings.EqualFold(w.Category, *filter.Category) {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeService) GetWorkByID(ctx context.Context, id string) (*domain.Work, error) {
	for _, w := range f.works {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeService) GetSkillCategories(ctx context.Context, category *string) ([]domain.SkillCategory, error) {
	f.gotCategory = category
	return f.skills, f.err
}

func (f *fakeService) GetSkillCategoryNames(ctx context.Context) ([]string, error) {
	return f.names, f.err
}

func (f *fakeService) GetHeroIntroduction(ctx context.Context) (*domain.HeroIntroduction, error) {
	if f.hero == nil {
		return nil, domain.ErrNotFound
	}
	return f.hero, nil
}

func (f *fakeService) GetTimelineItems(ctx context.Context) ([]domain.TimelineItem, error) {
	return f.items, f.err
}

func (f *fakeService) SubmitContact(ctx context.Context, req domain.ContactRequest) (*domain.ContactReceipt, error) {
	f.gotContact = req
	if f.err != nil {
		return nil, f.err
	}
	if len(strings.TrimSpace(req.Message)) < 10 {
		return nil, &domain.ValidationError{Fields: []domain.FieldViolation{
			{Field: "message", Reason: "must be at least 10 characters"},
		}}
	}
	if f.receipt != nil {
		return f.receipt, nil
	}
	return &domain.ContactReceipt{ID: uuid.Must(uuid.NewV7()), Live: true}, nil
}

var errStoreDown = errors.New("dial tcp 10.0.0.5:5432: connection refused")
