package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio/core/portfolio/adapters/rest"
	"portfolio/core/portfolio/domain"
	"portfolio/modules/middleware/problem"
	"portfolio/modules/oapi"
	"portfolio/modules/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct{ works []domain.Work }

func (s stubStore) FindWorkByID(ctx context.Context, id string) (*domain.Work, error) {
	for _, w := range s.works {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, nil
}

func (s stubStore) FindWorks(ctx context.Context, f domain.WorkFilter) ([]domain.Work, error) {
	out := []domain.Work{}
	for _, w := range s.works {
		if f.Featured != nil && w.Featured != *f.Featured {
			continue
		}
		if f.Category != nil && !strings.EqualFold(w.Category, *f.Category) {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

type stubDispatcher struct{ got []domain.ContactMessage }

func (d *stubDispatcher) Dispatch(ctx context.Context, m domain.ContactMessage) error {
	d.got = append(d.got, m)
	return nil
}

func (d *stubDispatcher) Live() bool { return true }

func newTestApp(t *testing.T, d *stubDispatcher) *domain.Application {
	t.Helper()
	works := stubStore{works: []domain.Work{
		{ID: "site", Category: "Web", Featured: true, Technologies: []string{}},
		{ID: "blog", Category: "Web", Technologies: []string{}},
		{ID: "cli", Category: "Tools", Featured: true, Technologies: []string{}},
	}}
	return domain.NewApp(domain.Stores{Works: works}, d, nil)
}

func newTestServer(t *testing.T, prefix string, d *stubDispatcher) http.Handler {
	t.Helper()
	app := newTestApp(t, d)
	svc := NewPortfolioAPIService(rest.NewHandler(app, nil), oapi.FS, oapi.PortfolioSpec, prefix)
	s, err := server.New("127.0.0.1", 8080, server.WithServices(svc))
	require.NoError(t, err)
	return s.Handler()
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPortfolioAPI_PrefixNormalization(t *testing.T) {
	for in, want := range map[string]string{"": "", "/": "", "api/v1": "/api/v1", "/api/": "/api"} {
		assert.Equal(t, want, NewPortfolioAPIService(nil, oapi.FS, oapi.PortfolioSpec, in).prefix, in)
	}
}

func TestPortfolioAPI_ServesUnderPrefix(t *testing.T) {
	h := newTestServer(t, "/api", &stubDispatcher{})

	rec := do(h, http.MethodGet, "/api/works?featured=true&category=web", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Works []struct {
			ID string `json:"id"`
		} `json:"works"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Works, 1)
	assert.Equal(t, "site", body.Works[0].ID)

	rec = do(h, http.MethodGet, "/api/openapi.yaml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")

	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/works", "").Code)
}

func TestPortfolioAPI_RejectsBySchema(t *testing.T) {
	h := newTestServer(t, "", &stubDispatcher{})

	rec := do(h, http.MethodGet, "/works?featured=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestPortfolioAPI_LongUnknownCategoryIsEmpty(t *testing.T) {
	h := newTestServer(t, "", &stubDispatcher{})

	rec := do(h, http.MethodGet, "/works?category="+strings.Repeat("x", 300), "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"works":[]}`, rec.Body.String())
}

func TestPortfolioAPI_ShortContactMessage(t *testing.T) {
	d := &stubDispatcher{}
	h := newTestServer(t, "", d)

	rec := do(h, http.MethodPost, "/contact", `{"name":"Ann","email":"ann@example.com","message":"hi"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	var p problem.Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.NotNil(t, p.InvalidParams)
	names := make([]string, 0, len(*p.InvalidParams))
	for _, ip := range *p.InvalidParams {
		names = append(names, ip.Name)
	}
	assert.Contains(t, names, "message")
	assert.Empty(t, d.got)
}

func TestPortfolioAPI_ContactAccepted(t *testing.T) {
	d := &stubDispatcher{}
	h := newTestServer(t, "", d)

	rec := do(h, http.MethodPost, "/contact",
		`{"name":"Ann","email":"ann@example.com","subject":"Hi","message":"Hello there, nice site!"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, d.got, 1)
	assert.Equal(t, "Hi", d.got[0].MailSubject())
}
