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

package persistence

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"portfolio/core/portfolio/domain"
	"portfolio/modules/db"

	"github.com/go-viper/mapstructure/v2"
	"github.com/gofrs/uuid/v5"
)

const (
	tableAbout       = "about"
	tableEducation   = "education"
	tableExperience  = "experience"
	tableSocialMedia = "social_media"
	tableSkills      = "skills"
	tableWorks       = "works"
	tableHeroIntro   = "hero_introduction"
	tableTimeline    = "timeline_items"
)

type (
	aboutRow struct {
		Name         string `db:"name"`
		Title        string `db:"title"`
		Summary      string `db:"summary"`
		ProfileImage string `db:"profile_image"`
		Bio          string `db:"bio"`
	}

	educationRow struct {
		Institution string  `db:"institution"`
		Degree      string  `db:"degree"`
		Field       string  `db:"field"`
		StartDate   string  `db:"start_date"`
		EndDate     *string `db:"end_date"`
		Description *string `db:"description"`
	}

	experienceRow struct {
		Company      string   `db:"company"`
		Position     string   `db:"position"`
		StartDate    string   `db:"start_date"`
		EndDate      *string  `db:"end_date"`
		Description  *string  `db:"description"`
		Achievements []string `db:"achievements"`
	}

	socialMediaRow struct {
		Platform string  `db:"platform"`
		URL      string  `db:"url"`
		Username *string `db:"username"`
	}

	skillRow struct {
		Name        string  `db:"name"`
		Level       int     `db:"level"`
		Category    string  `db:"category"`
		Icon        *string `db:"icon"`
		Description *string `db:"description"`
	}

	workRow struct {
		ID           string   `db:"id"`
		Title        string   `db:"title"`
		Description  string   `db:"description"`
		Thumbnail    string   `db:"thumbnail"`
		Category     string   `db:"category"`
		Featured     bool     `db:"featured"`
		Technologies []string `db:"technologies"`
		GitHubLink   *string  `db:"github_link"`
		DemoLink     *string  `db:"demo_link"`
		BlogLink     *string  `db:"blog_link"`
		Screenshots  any      `db:"screenshots"`
		Duration     *string  `db:"duration"`
		Role         *string  `db:"role"`
		Learnings    []string `db:"learnings"`
	}

	heroIntroductionRow struct {
		ID      string `db:"id"`
		Content string `db:"content"`
	}

	timelineItemRow struct {
		ID        string  `db:"id"`
		Period    string  `db:"period"`
		Title     string  `db:"title"`
		Subtitle  *string `db:"subtitle"`
		SortOrder int     `db:"sort_order"`
	}
)

var requiredColumns = map[string][]string{
	tableAbout:       {"name", "title", "summary", "profile_image", "bio"},
	tableEducation:   {"institution", "degree", "field", "start_date"},
	tableExperience:  {"company", "position", "start_date"},
	tableSocialMedia: {"platform", "url"},
	tableSkills:      {"name", "level", "category"},
	tableWorks:       {"id", "title", "description", "thumbnail", "category"},
	tableHeroIntro:   {"id", "content"},
	tableTimeline:    {"id", "period", "title", "sort_order"},
}

// decodeRecord checks the table's required columns and decodes rec into out.
func decodeRecord(table string, rec db.Record, out any) error {
	var missing []string
	for _, col := range requiredColumns[table] {
		if v, ok := rec[col]; !ok || v == nil {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &domain.MappingError{Entity: table, Fields: missing}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: normalizeStoreValue,
		Result:     out,
		TagName:    "db",
	})
	if err != nil {
		return &domain.MappingError{Entity: table, Cause: err}
	}
	if err := dec.Decode(map[string]any(rec)); err != nil {
		return &domain.MappingError{Entity: table, Cause: err}
	}
	return nil
}

// normalizeStoreValue irons out the differences between what the REST backend
// (JSON) and the direct pgx backend (native Go types) return for the same
// column, so one row struct serves both.
func normalizeStoreValue(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.String:
		switch v := data.(type) {
		case time.Time:
			return isoDate(v), nil
		case [16]byte:
			return uuid.FromBytesOrNil(v[:]).String(), nil
		case json.Number:
			if _, err := v.Int64(); err != nil {
				return nil, fmt.Errorf("expected text or integer, got %s", v)
			}
			return v.String(), nil
		case int, int16, int32, int64:
			return fmt.Sprint(v), nil
		}
	case reflect.Slice:
		if to.Elem().Kind() != reflect.String {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		// Older rows keep string lists as JSON text.
		if strings.HasPrefix(strings.TrimSpace(s), "[") {
			var list []string
			if err := json.Unmarshal([]byte(s), &list); err == nil {
				return list, nil
			}
		}
		return []string{s}, nil
	case reflect.Int:
		if v, ok := data.(string); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("expected integer, got %q", v)
			}
			return n, nil
		}
	}
	return data, nil
}

// isoDate renders date columns as YYYY-MM-DD and timestamps as RFC 3339.
func isoDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}

func aboutFromRecord(rec db.Record) (domain.About, error) {
	var r aboutRow
	if err := decodeRecord(tableAbout, rec, &r); err != nil {
		return domain.About{}, err
	}
	return domain.About(r), nil
}

func aboutToRecord(a domain.About) db.Record {
	return db.Record{
		"name":          a.Name,
		"title":         a.Title,
		"summary":       a.Summary,
		"profile_image": a.ProfileImage,
		"bio":           a.Bio,
	}
}

func educationFromRecord(rec db.Record) (domain.Education, error) {
	var r educationRow
	if err := decodeRecord(tableEducation, rec, &r); err != nil {
		return domain.Education{}, err
	}
	return domain.Education(r), nil
}

func educationToRecord(e domain.Education) db.Record {
	return db.Record{
		"institution": e.Institution,
		"degree":      e.Degree,
		"field":       e.Field,
		"start_date":  e.StartDate,
		"end_date":    optional(e.EndDate),
		"description": optional(e.Description),
	}
}

func experienceFromRecord(rec db.Record) (domain.Experience, error) {
	var r experienceRow
	if err := decodeRecord(tableExperience, rec, &r); err != nil {
		return domain.Experience{}, err
	}
	return domain.Experience(r), nil
}

func experienceToRecord(e domain.Experience) db.Record {
	return db.Record{
		"company":      e.Company,
		"position":     e.Position,
		"start_date":   e.StartDate,
		"end_date":     optional(e.EndDate),
		"description":  optional(e.Description),
		"achievements": optionalList(e.Achievements),
	}
}

func socialMediaFromRecord(rec db.Record) (domain.SocialMedia, error) {
	var r socialMediaRow
	if err := decodeRecord(tableSocialMedia, rec, &r); err != nil {
		return domain.SocialMedia{}, err
	}
	return domain.SocialMedia(r), nil
}

func socialMediaToRecord(s domain.SocialMedia) db.Record {
	return db.Record{
		"platform": s.Platform,
		"url":      s.URL,
		"username": optional(s.Username),
	}
}

func skillFromRecord(rec db.Record) (domain.Skill, error) {
	var r skillRow
	if err := decodeRecord(tableSkills, rec, &r); err != nil {
		return domain.Skill{}, err
	}
	if r.Level < domain.MinSkillLevel || r.Level > domain.MaxSkillLevel {
		return domain.Skill{}, &domain.MappingError{
			Entity: tableSkills,
			Fields: []string{"level"},
			Cause:  fmt.Errorf("level %d outside %d..%d", r.Level, domain.MinSkillLevel, domain.MaxSkillLevel),
		}
	}
	return domain.Skill(r), nil
}

func skillToRecord(s domain.Skill) db.Record {
	return db.Record{
		"name":        s.Name,
		"level":       s.Level,
		"category":    s.Category,
		"icon":        optional(s.Icon),
		"description": optional(s.Description),
	}
}

func workFromRecord(rec db.Record) (domain.Work, error) {
	var r workRow
	if err := decodeRecord(tableWorks, rec, &r); err != nil {
		return domain.Work{}, err
	}
	technologies := r.Technologies
	if technologies == nil {
		technologies = []string{}
	}
	return domain.Work{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Thumbnail:    r.Thumbnail,
		Category:     r.Category,
		Featured:     r.Featured,
		Technologies: technologies,
		Links: domain.WorkLinks{
			GitHub: r.GitHubLink,
			Demo:   r.DemoLink,
			Blog:   r.BlogLink,
		},
		Screenshots: r.Screenshots,
		Duration:    r.Duration,
		Role:        r.Role,
		Learnings:   r.Learnings,
	}, nil
}

func workToRecord(w domain.Work) db.Record {
	return db.Record{
		"id":           w.ID,
		"title":        w.Title,
		"description":  w.Description,
		"thumbnail":    w.Thumbnail,
		"category":     w.Category,
		"featured":     w.Featured,
		"technologies": w.Technologies,
		"github_link":  optional(w.Links.GitHub),
		"demo_link":    optional(w.Links.Demo),
		"blog_link":    optional(w.Links.Blog),
		"screenshots":  w.Screenshots,
		"duration":     optional(w.Duration),
		"role":         optional(w.Role),
		"learnings":    optionalList(w.Learnings),
	}
}

func heroIntroductionFromRecord(rec db.Record) (domain.HeroIntroduction, error) {
	var r heroIntroductionRow
	if err := decodeRecord(tableHeroIntro, rec, &r); err != nil {
		return domain.HeroIntroduction{}, err
	}
	return domain.HeroIntroduction(r), nil
}

func heroIntroductionToRecord(h domain.HeroIntroduction) db.Record {
	return db.Record{
		"id":      h.ID,
		"content": h.Content,
	}
}

func timelineItemFromRecord(rec db.Record) (domain.TimelineItem, error) {
	var r timelineItemRow
	if err := decodeRecord(tableTimeline, rec, &r); err != nil {
		return domain.TimelineItem{}, err
	}
	return domain.TimelineItem(r), nil
}

func timelineItemToRecord(t domain.TimelineItem) db.Record {
	return db.Record{
		"id":         t.ID,
		"period":     t.Period,
		"title":      t.Title,
		"subtitle":   optional(t.Subtitle),
		"sort_order": t.SortOrder,
	}
}

// optional maps an unset pointer to an untyped nil so records compare equal
// to rows read back from the store.
func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func optionalList(l []string) any {
	if l == nil {
		return nil
	}
	return l
}

func mapRecords[T any](recs []db.Record, fn func(db.Record) (T, error)) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		v, err := fn(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
