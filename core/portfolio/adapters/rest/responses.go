package rest

import (
	"fmt"
	"time"

	"portfolio/core/portfolio/domain"
)

// ongoing is shown in place of a missing end date.
const ongoing = "現在"

type (
	WelcomeResponse struct {
		Message string `json:"message"`
	}

	WorkLinks struct {
		GitHub *string `json:"github"`
		Demo   *string `json:"demo"`
		Blog   *string `json:"blog"`
	}

	Work struct {
		ID           string    `json:"id"`
		Title        string    `json:"title"`
		Description  string    `json:"description"`
		Thumbnail    string    `json:"thumbnail"`
		Category     string    `json:"category"`
		Featured     bool      `json:"featured"`
		Technologies []string  `json:"technologies"`
		Links        WorkLinks `json:"links"`
		Screenshots  any       `json:"screenshots"`
		Duration     *string   `json:"duration"`
		Role         *string   `json:"role"`
		Learnings    []string  `json:"learnings"`
	}

	WorkList struct {
		Works []Work `json:"works"`
	}

	Skill struct {
		Name        string  `json:"name"`
		Level       int     `json:"level"`
		Category    string  `json:"category"`
		Icon        *string `json:"icon"`
		Description *string `json:"description"`
	}

	SkillCategory struct {
		Name   string  `json:"name"`
		Skills []Skill `json:"skills"`
	}

	SkillCategoryList struct {
		Categories []SkillCategory `json:"categories"`
	}

	CategoryNameList struct {
		Categories []string `json:"categories"`
	}

	Education struct {
		Institution string  `json:"institution"`
		Degree      string  `json:"degree"`
		Field       string  `json:"field"`
		StartDate   string  `json:"start_date"`
		EndDate     string  `json:"end_date"`
		Description *string `json:"description"`
	}

	Experience struct {
		Company      string   `json:"company"`
		Position     string   `json:"position"`
		StartDate    string   `json:"start_date"`
		EndDate      string   `json:"end_date"`
		Description  *string  `json:"description"`
		Achievements []string `json:"achievements"`
	}

	SocialMedia struct {
		Platform string  `json:"platform"`
		URL      string  `json:"url"`
		Username *string `json:"username"`
	}

	About struct {
		Name         string        `json:"name"`
		Title        string        `json:"title"`
		Summary      string        `json:"summary"`
		ProfileImage string        `json:"profile_image"`
		Bio          string        `json:"bio"`
		Education    []Education   `json:"education"`
		Experience   []Experience  `json:"experience"`
		SocialMedia  []SocialMedia `json:"social_media"`
	}

	HeroIntroduction struct {
		ID      string `json:"id"`
		Content string `json:"content"`
	}

	TimelineItem struct {
		ID        string  `json:"id"`
		Period    string  `json:"period"`
		Title     string  `json:"title"`
		Subtitle  *string `json:"subtitle"`
		SortOrder int     `json:"sort_order"`
	}

	Timeline struct {
		Items []TimelineItem `json:"items"`
	}

	ContactBody struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}

	ContactResponse struct {
		Success   bool   `json:"success"`
		Message   string `json:"message"`
		ReceiptID string `json:"receipt_id"`
	}
)

var displayLayouts = []string{time.DateOnly, "2006-01", time.RFC3339}

// displayDate renders an ISO date as YYYY.M. Values in any other shape are
// shown unchanged.
func displayDate(iso string) string {
	for _, layout := range displayLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return fmt.Sprintf("%d.%d", t.Year(), int(t.Month()))
		}
	}
	return iso
}

func displayEndDate(iso *string) string {
	if iso == nil || *iso == "" {
		return ongoing
	}
	return displayDate(*iso)
}

func mapWork(w domain.Work) Work {
	return Work{
		ID:           w.ID,
		Title:        w.Title,
		Description:  w.Description,
		Thumbnail:    w.Thumbnail,
		Category:     w.Category,
		Featured:     w.Featured,
		Technologies: w.Technologies,
		Links: WorkLinks{
			GitHub: w.Links.GitHub,
			Demo:   w.Links.Demo,
			Blog:   w.Links.Blog,
		},
		Screenshots: w.Screenshots,
		Duration:    w.Duration,
		Role:        w.Role,
		Learnings:   w.Learnings,
	}
}

func mapWorks(works []domain.Work) []Work {
	out := make([]Work, 0, len(works))
	for _, w := range works {
		out = append(out, mapWork(w))
	}
	return out
}

func mapSkill(s domain.Skill) Skill {
	return Skill(s)
}

func mapSkillCategories(groups []domain.SkillCategory) []SkillCategory {
	out := make([]SkillCategory, 0, len(groups))
	for _, g := range groups {
		skills := make([]Skill, 0, len(g.Skills))
		for _, s := range g.Skills {
			skills = append(skills, mapSkill(s))
		}
		out = append(out, SkillCategory{Name: g.Name, Skills: skills})
	}
	return out
}

func mapAbout(info *domain.AboutInfo) About {
	out := About{
		Name:         info.Name,
		Title:        info.Title,
		Summary:      info.Summary,
		ProfileImage: info.ProfileImage,
		Bio:          info.Bio,
		Education:    make([]Education, 0, len(info.Education)),
		Experience:   make([]Experience, 0, len(info.Experience)),
		SocialMedia:  make([]SocialMedia, 0, len(info.SocialMedia)),
	}
	for _, e := range info.Education {
		out.Education = append(out.Education, Education{
			Institution: e.Institution,
			Degree:      e.Degree,
			Field:       e.Field,
			StartDate:   displayDate(e.StartDate),
			EndDate:     displayEndDate(e.EndDate),
			Description: e.Description,
		})
	}
	for _, e := range info.Experience {
		out.Experience = append(out.Experience, Experience{
			Company:      e.Company,
			Position:     e.Position,
			StartDate:    displayDate(e.StartDate),
			EndDate:      displayEndDate(e.EndDate),
			Description:  e.Description,
			Achievements: e.Achievements,
		})
	}
	for _, s := range info.SocialMedia {
		out.SocialMedia = append(out.SocialMedia, SocialMedia(s))
	}
	return out
}

func mapTimeline(items []domain.TimelineItem) []TimelineItem {
	out := make([]TimelineItem, 0, len(items))
	for _, it := range items {
		out = append(out, TimelineItem(it))
	}
	return out
}
