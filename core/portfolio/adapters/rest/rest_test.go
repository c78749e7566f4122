package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio/core/portfolio/domain"
	"portfolio/modules/middleware/problem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthFunc func(context.Context) error

func (f healthFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

func ptr[T any](v T) *T { return &v }

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func sampleWorks() []domain.Work {
	return []domain.Work{
		{ID: "site", Title: "Site", Category: "Web", Featured: true, Technologies: []string{"Go"}},
		{ID: "cli", Title: "CLI", Category: "Tools", Featured: true, Technologies: []string{}},
		{ID: "blog", Title: "Blog", Category: "web", Featured: false, Technologies: []string{}},
	}
}

func TestWelcome(t *testing.T) {
	h := NewHandler(&fakeService{}, nil).Routes()

	rec := serve(t, h, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to the Portfolio API", decode[WelcomeResponse](t, rec).Message)
}

func TestHealth(t *testing.T) {
	ok := NewHandler(&fakeService{}, healthFunc(func(context.Context) error { return nil })).Routes()
	assert.Equal(t, http.StatusNoContent, serve(t, ok, http.MethodGet, "/healthz", "").Code)

	down := NewHandler(&fakeService{}, healthFunc(func(context.Context) error { return errStoreDown })).Routes()
	rec := serve(t, down, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestListWorks_FeaturedAndCategory(t *testing.T) {
	svc := &fakeService{works: sampleWorks()}
	h := NewHandler(svc, nil).Routes()

	rec := serve(t, h, http.MethodGet, "/works?featured=true&category=Web", "")

	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[WorkList](t, rec)
	require.Len(t, list.Works, 1)
	assert.Equal(t, "site", list.Works[0].ID)
	require.NotNil(t, svc.gotFilter.Featured)
	assert.True(t, *svc.gotFilter.Featured)
	assert.Equal(t, "Web", *svc.gotFilter.Category)
}

func TestListWorks_NoFilters(t *testing.T) {
	svc := &fakeService{works: sampleWorks()}
	h := NewHandler(svc, nil).Routes()

	rec := serve(t, h, http.MethodGet, "/works?category=", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[WorkList](t, rec).Works, 3)
	assert.Nil(t, svc.gotFilter.Featured)
	assert.Nil(t, svc.gotFilter.Category)
}

func TestListWorks_UnknownCategoryIsEmptyList(t *testing.T) {
	h := NewHandler(&fakeService{works: sampleWorks()}, nil).Routes()

	rec := serve(t, h, http.MethodGet, "/works?category=Nope", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"works":[]}`, rec.Body.String())
}

func TestListWorks_BadFeatured(t *testing.T) {
	h := NewHandler(&fakeService{}, nil).Routes()

	rec := serve(t, h, http.MethodGet, "/works?featured=maybe", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	p := decode[problem.Problem](t, rec)
	require.NotNil(t, p.InvalidParams)
	assert.Equal(t, "featured", (*p.InvalidParams)[0].Name)
}

func TestListWorks_UpstreamFailureHidesDetail(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("%w: %w", domain.ErrUpstream, errStoreDown)}
	h := NewHandler(svc, nil).Routes()

	rec := serve(t, h, http.MethodGet, "/works", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	p := decode[problem.Problem](t, rec)
	require.NotNil(t, p.Detail)
	assert.Equal(t, "server error", *p.Detail)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestGetWork(t *testing.T) {
	h := NewHandler(&fakeService{works: sampleWorks()}, nil).Routes()

	rec := serve(t, h, http.MethodGet, "/works/cli", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CLI", decode[Work](t, rec).Title)

	rec = serve(t, h, http.MethodGet, "/works/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSkills(t *testing.T) {
	svc := &fakeService{skills: []domain.SkillCategory{
		{Name: "Backend", Skills: []domain.Skill{{Name: "Go", Level: 5, Category: "Backend"}}},
	}}
	h := NewHandler(svc, nil).Routes()

	rec := serve(t, h, http.MethodGet, "/skills?category=backend", "")

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[SkillCategoryList](t, rec)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "Go", got.Categories[0].Skills[0].Name)
	assert.Equal(t, "backend", *svc.gotCategory)
}

func TestListSkillCategories_EmptyIsArray(t *testing.T) {
	h := NewHandler(&fakeService{}, nil).Routes()

	rec := serve(t, h, http.MethodGet, "/skills/categories", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"categories":[]}`, rec.Body.String())
}

func TestGetAbout(t *testing.T) {
	svc := &fakeService{about: &domain.AboutInfo{
		About: domain.About{Name: "Jane", Title: "Engineer"},
		Education: []domain.Education{
			{Institution: "Uni", StartDate: "2018-04-01", EndDate: ptr("2022-03-31")},
		},
	}}
	h := NewHandler(svc, nil).Routes()

	rec := serve(t, h, http.MethodGet, "/about", "")

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[About](t, rec)
	assert.Equal(t, "Jane", got.Name)
	require.Len(t, got.Education, 1)
	assert.Equal(t, "2018.4", got.Education[0].StartDate)
	assert.Equal(t, "2022.3", got.Education[0].EndDate)
	assert.Empty(t, got.Experience)
	assert.NotNil(t, got.Experience)
	assert.Empty(t, got.SocialMedia)
	assert.Contains(t, rec.Body.String(), `"social_media":[]`)
}

func TestGetAbout_MissingIs404(t *testing.T) {
	h := NewHandler(&fakeService{}, nil).Routes()

	rec := serve(t, h, http.MethodGet, "/about", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHero(t *testing.T) {
	svc := &fakeService{
		hero: &domain.HeroIntroduction{ID: "1", Content: "hi"},
		items: []domain.TimelineItem{
			{ID: "a", Period: "2020", Title: "A", SortOrder: 1},
			{ID: "b", Period: "2021", Title: "B", SortOrder: 2},
		},
	}
	h := NewHandler(svc, nil).Routes()

	rec := serve(t, h, http.MethodGet, "/hero/introduction", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"1","content":"hi"}`, rec.Body.String())

	rec = serve(t, h, http.MethodGet, "/hero/timeline", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[Timeline](t, rec)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 1, got.Items[0].SortOrder)
}

func TestSubmitContact(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, nil).Routes()

	rec := serve(t, h, http.MethodPost, "/contact",
		`{"name":"Ann","email":"ann@example.com","message":"Hello there, nice site!"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[ContactResponse](t, rec)
	assert.True(t, got.Success)
	assert.Equal(t, contactAcceptedMessage, got.Message)
	assert.NotEmpty(t, got.ReceiptID)
	assert.Equal(t, "ann@example.com", svc.gotContact.Email)
}

func TestSubmitContact_LoggedOnly(t *testing.T) {
	svc := &fakeService{receipt: &domain.ContactReceipt{Live: false}}
	h := NewHandler(svc, nil).Routes()

	rec := serve(t, h, http.MethodPost, "/contact",
		`{"name":"Ann","email":"ann@example.com","message":"Hello there, nice site!"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contactLoggedMessage, decode[ContactResponse](t, rec).Message)
}

func TestSubmitContact_ShortMessageIs422(t *testing.T) {
	h := NewHandler(&fakeService{}, nil).Routes()

	rec := serve(t, h, http.MethodPost, "/contact",
		`{"name":"Ann","email":"ann@example.com","message":"hi"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	p := decode[problem.Problem](t, rec)
	require.NotNil(t, p.InvalidParams)
	assert.Equal(t, "message", (*p.InvalidParams)[0].Name)
}

func TestSubmitContact_MalformedJSON(t *testing.T) {
	h := NewHandler(&fakeService{}, nil).Routes()

	for _, body := range []string{`{"name":`, `[]`, `{"name":"a","extra":1}`} {
		rec := serve(t, h, http.MethodPost, "/contact", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestSubmitContact_DispatchFailure(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("%w: queue full", domain.ErrDispatch)}
	h := NewHandler(svc, nil).Routes()

	rec := serve(t, h, http.MethodPost, "/contact",
		`{"name":"Ann","email":"ann@example.com","message":"Hello there, nice site!"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "queue full")
}

func TestRecoverHTTPMiddleware(t *testing.T) {
	h := RecoverHTTPMiddleware()(NewHandler(&fakeService{panics: true}, nil).Routes())

	rec := serve(t, h, http.MethodGet, "/works", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "server error")
}

func TestWriteError_WrappedNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("about: %w", domain.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("anything else"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDisplayDate(t *testing.T) {
	cases := map[string]string{
		"2023-04-01":           "2023.4",
		"2023-11":              "2023.11",
		"2021-01-15T00:00:00Z": "2021.1",
		"sometime":             "sometime",
	}
	for in, want := range cases {
		assert.Equal(t, want, displayDate(in), in)
	}

	assert.Equal(t, ongoing, displayEndDate(nil))
	assert.Equal(t, ongoing, displayEndDate(ptr("")))
	assert.Equal(t, "2024.12", displayEndDate(ptr("2024-12-31")))
}
