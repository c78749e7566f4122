package domain

import (
	"context"
	"errors"
	"sync"
)

var errBoom = errors.New("boom")

type fakeWorks struct {
	works []Work
	err   error
}

func (f *fakeWorks) FindWorks(_ context.Context, _ WorkFilter) ([]Work, error) {
	return f.works, f.err
}

func (f *fakeWorks) FindWorkByID(_ context.Context, id string) (*Work, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.works {
		if f.works[i].ID == id {
			return &f.works[i], nil
		}
	}
	return nil, nil
}

type fakeSkills struct {
	skills []Skill
	names  []string
	err    error
	got    SkillFilter
}

func (f *fakeSkills) FindSkills(_ context.Context, filter SkillFilter) ([]Skill, error) {
	f.got = filter
	return f.skills, f.err
}

func (f *fakeSkills) FindCategoryNames(_ context.Context) ([]string, error) {
	return f.names, f.err
}

type fakeAbout struct {
	about      *About
	education  []Education
	experience []Experience
	social     []SocialMedia
	err        error
	subErr     error
}

func (f *fakeAbout) FindAbout(context.Context) (*About, error) { return f.about, f.err }
func (f *fakeAbout) FindEducation(context.Context) ([]Education, error) {
	return f.education, f.subErr
}
func (f *fakeAbout) FindExperience(context.Context) ([]Experience, error) {
	return f.experience, nil
}
func (f *fakeAbout) FindSocialMedia(context.Context) ([]SocialMedia, error) {
	return f.social, nil
}

type fakeHero struct {
	intro *HeroIntroduction
	items []TimelineItem
	err   error
}

func (f *fakeHero) FindIntroduction(context.Context) (*HeroIntroduction, error) {
	return f.intro, f.err
}
func (f *fakeHero) FindTimelineItems(context.Context) ([]TimelineItem, error) {
	return f.items, f.err
}

type fakeDispatcher struct {
	mu   sync.Mutex
	sent []ContactMessage
	err  error
	live bool
}

func (f *fakeDispatcher) Dispatch(_ context.Context, msg ContactMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeDispatcher) Live() bool { return f.live }
