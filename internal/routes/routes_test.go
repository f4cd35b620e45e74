package routes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/fitstudio/reassess/internal/app"
	"github.com/fitstudio/reassess/internal/config"
	"github.com/fitstudio/reassess/internal/db"
	"github.com/fitstudio/reassess/internal/repository"
	"github.com/fitstudio/reassess/internal/routes"
	"github.com/fitstudio/reassess/internal/service"
	"github.com/fitstudio/reassess/internal/web"
)

// fakeRenderer stands in for the headless browser in handler tests.
type fakeRenderer struct{}

func (fakeRenderer) Render(ctx context.Context, html, baseURL string) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

func newTestApp(t *testing.T) http.Handler {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	cfg := &config.Config{
		AppName:       "Reassess",
		AppEnv:        "development",
		AppURL:        "http://localhost:8090",
		Port:          "8090",
		SessionSecret: "test-secret",
		SessionExpiry: time.Hour,
		AdminEmail:    "coach@example.com",
		AdminPassword: "s3cret",
	}

	views, err := web.NewTemplateSet()
	require.NoError(t, err)

	repo := repository.NewAssessmentRepository(database)
	authService := service.NewAuthService(cfg.AdminEmail, cfg.AdminPasswordHash, cfg.AdminPassword, cfg.SessionSecret, cfg.SessionExpiry, cfg.IsProduction())

	return routes.SetupRoutes(&app.App{
		Cfg:               cfg,
		DB:                database,
		Views:             views,
		AuthService:       authService,
		AssessmentService: service.NewAssessmentService(repo),
		ReportService:     service.NewReportService(repo, views, fakeRenderer{}, cfg.AppURL),
	})
}

func postForm(handler http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func get(handler http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func submitForm(name string) url.Values {
	return url.Values{
		"client_name":                {name},
		"weight":                     {"72kg"},
		"measurements":               {"waist 80 / hip 100"},
		"missed_training_notes":      {"none"},
		"likes_dislikes_notes":       {"liked the split"},
		"water_goal_notes":           {"2L most days"},
		"diet_notes":                 {"on plan"},
		"improvement_items":          {"Strength", "Sleep"},
		"final_declaration_accepted": {"true"},
	}
}

func login(t *testing.T, handler http.Handler, next string) *http.Cookie {
	t.Helper()

	form := url.Values{
		"email":    {"coach@example.com"},
		"password": {"s3cret"},
	}
	if next != "" {
		form.Set("next", next)
	}

	rec := postForm(handler, "/login", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func TestHealth(t *testing.T) {
	handler := newTestApp(t)

	rec := get(handler, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRootRedirectsToForm(t *testing.T) {
	handler := newTestApp(t)

	rec := get(handler, "/")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/form", rec.Header().Get("Location"))
}

func TestSubmitAssessmentIsPublic(t *testing.T) {
	handler := newTestApp(t)

	rec := postForm(handler, "/form", submitForm("Ana"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thank you, Ana")
}

func TestSubmitAssessmentValidationReShowsForm(t *testing.T) {
	handler := newTestApp(t)

	form := submitForm("Ana")
	form.Set("weight", "  ")
	form.Set("diet_notes", "customized meal plan worked")

	rec := postForm(handler, "/form", form)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	// Submitted values are preserved in the re-shown form.
	assert.Contains(t, rec.Body.String(), "customized meal plan worked")
	assert.Contains(t, rec.Body.String(), "Please fill in the highlighted fields.")
}

func TestReportsRequireLogin(t *testing.T) {
	handler := newTestApp(t)

	for _, path := range []string{
		"/clients",
		"/clients/Ana/history",
		"/clients/Ana/comparison",
		"/clients/Ana/report.pdf",
	} {
		rec := get(handler, path)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Location"), "/login?next=", path)
	}
}

func TestLoginResumesOriginalDestination(t *testing.T) {
	handler := newTestApp(t)

	// Anonymous request is denied and remembers the destination.
	rec := get(handler, "/clients/Ana/history")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	next := loc.Query().Get("next")
	assert.Equal(t, "/clients/Ana/history", next)

	// Login carries the destination through.
	form := url.Values{
		"email":    {"COACH@example.com "},
		"password": {"s3cret"},
		"next":     {next},
	}
	loginRec := postForm(handler, "/login", form)
	require.Equal(t, http.StatusSeeOther, loginRec.Code)
	assert.Equal(t, "/clients/Ana/history", loginRec.Header().Get("Location"))

	// The issued session opens the original page.
	cookies := loginRec.Result().Cookies()
	require.NotEmpty(t, cookies)
	pageRec := get(handler, "/clients/Ana/history", cookies[0])
	assert.Equal(t, http.StatusOK, pageRec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	handler := newTestApp(t)

	rec := postForm(handler, "/login", url.Values{
		"email":    {"coach@example.com"},
		"password": {"wrong"},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestLoginRejectsOffsiteNext(t *testing.T) {
	handler := newTestApp(t)

	rec := postForm(handler, "/login", url.Values{
		"email":    {"coach@example.com"},
		"password": {"s3cret"},
		"next":     {"https://evil.example.com"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/clients", rec.Header().Get("Location"))
}

func TestRosterListsDistinctClients(t *testing.T) {
	handler := newTestApp(t)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, postForm(handler, "/form", submitForm("Ana")).Code)
	}
	require.Equal(t, http.StatusOK, postForm(handler, "/form", submitForm("Bia")).Code)

	cookie := login(t, handler, "")
	rec := get(handler, "/clients", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, `<span class="name">Ana</span>`))
	assert.Equal(t, 1, strings.Count(body, `<span class="name">Bia</span>`))
}

func TestHistoryViewShowsAssessments(t *testing.T) {
	handler := newTestApp(t)

	require.Equal(t, http.StatusOK, postForm(handler, "/form", submitForm("Ana")).Code)

	cookie := login(t, handler, "")
	rec := get(handler, "/clients/Ana/history", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "72kg")
	assert.Contains(t, rec.Body.String(), "Strength")
}

func TestHistoryViewEmptyClient(t *testing.T) {
	handler := newTestApp(t)

	cookie := login(t, handler, "")
	rec := get(handler, "/clients/Nobody/history", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "no assessments yet")
}

func TestExportPDF(t *testing.T) {
	handler := newTestApp(t)

	require.Equal(t, http.StatusOK, postForm(handler, "/form", submitForm("Ana")).Code)

	cookie := login(t, handler, "")
	rec := get(handler, "/clients/Ana/report.pdf", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "%PDF-fake", rec.Body.String())
}

func TestLogoutClearsSession(t *testing.T) {
	handler := newTestApp(t)

	cookie := login(t, handler, "")

	rec := postForm(handler, "/logout", url.Values{}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	cleared := rec.Result().Cookies()
	require.NotEmpty(t, cleared)
	assert.Empty(t, cleared[0].Value)

	// The cleared cookie no longer grants access.
	denied := get(handler, "/clients", cleared[0])
	assert.Equal(t, http.StatusSeeOther, denied.Code)
}

func TestSecurityHeadersSet(t *testing.T) {
	handler := newTestApp(t)

	rec := get(handler, "/health")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
