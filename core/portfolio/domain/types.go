package domain

import (
	"time"

	"portfolio/modules/clock"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid/v5"
)

type (
	Application struct {
		works      WorkReadStore
		skills     SkillReadStore
		about      AboutReadStore
		hero       HeroReadStore
		dispatcher ContactDispatcher
		clock      clock.Clock
		validate   *validator.Validate
	}

	// About is the singleton profile record.
	About struct {
		Name         string
		Title        string
		Summary      string
		ProfileImage string
		Bio          string
	}

	// Dates are ISO-8601 strings as stored; a nil EndDate means ongoing.
	Education struct {
		Institution string
		Degree      string
		Field       string
		StartDate   string
		EndDate     *string
		Description *string
	}

	Experience struct {
		Company      string
		Position     string
		StartDate    string
		EndDate      *string
		Description  *string
		Achievements []string
	}

	SocialMedia struct {
		Platform string
		URL      string
		Username *string
	}

	AboutInfo struct {
		About
		Education   []Education
		Experience  []Experience
		SocialMedia []SocialMedia
	}

	Skill struct {
		Name        string
		Level       int
		Category    string
		Icon        *string
		Description *string
	}

	SkillCategory struct {
		Name   string
		Skills []Skill
	}

	Work struct {
		ID           string
		Title        string
		Description  string
		Thumbnail    string
		Category     string
		Featured     bool
		Technologies []string
		Links        WorkLinks
		// Screenshots is passed through as stored (usually a JSON array of objects).
		Screenshots any
		Duration    *string
		Role        *string
		Learnings   []string
	}

	WorkLinks struct {
		GitHub *string
		Demo   *string
		Blog   *string
	}

	HeroIntroduction struct {
		ID      string
		Content string
	}

	TimelineItem struct {
		ID        string
		Period    string
		Title     string
		Subtitle  *string
		SortOrder int
	}

	// ContactRequest is a contact-form submission. It is never persisted.
	ContactRequest struct {
		Name    string `json:"name"    validate:"required,max=100"`
		Email   string `json:"email"   validate:"required,email"`
		Subject string `json:"subject" validate:"max=200"`
		Message string `json:"message" validate:"required,min=10,max=2000"`
	}

	// ContactReceipt acknowledges that a message was accepted for background
	// delivery. It does not confirm delivery.
	ContactReceipt struct {
		ID         uuid.UUID
		ReceivedAt time.Time
		// Live is false when outgoing e-mail is disabled and the message is only logged.
		Live bool
	}

	ContactMessage struct {
		ContactReceipt
		ContactRequest
	}
)

const (
	MinSkillLevel = 1
	MaxSkillLevel = 5
)

// MailSubject is the subject line used for the notification e-mail.
func (m ContactMessage) MailSubject() string {
	if m.Subject != "" {
		return m.Subject
	}
	return "Portfolio contact from " + m.Name
}
