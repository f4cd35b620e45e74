package routes

import (
	"net/http"

	"github.com/fitstudio/reassess/internal/app"
	"github.com/fitstudio/reassess/internal/handler"
	"github.com/fitstudio/reassess/internal/middleware"
	"github.com/fitstudio/reassess/internal/web"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	assessment := handler.NewAssessmentHandler(app.AssessmentService, app.Views)
	report := handler.NewReportHandler(app.ReportService, app.Views)
	auth := handler.NewAuthHandler(app.AuthService, app.Views)
	health := handler.NewHealthHandler()

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Static files
	mux.Handle("GET /static/", web.StaticHandler())

	// Health
	mux.HandleFunc("GET /health", health.Health)

	// Submission form (intentionally public: clients self-report without an account)
	mux.HandleFunc("GET /{$}", assessment.Root)
	mux.HandleFunc("GET /form", assessment.FormPage)
	mux.HandleFunc("POST /form", assessment.Submit)

	// Auth
	mux.HandleFunc("GET /login", auth.LoginPage)
	mux.HandleFunc("POST /login", auth.Login)
	mux.HandleFunc("POST /logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES (admin reports)
	// ============================================================================

	mux.HandleFunc("GET /clients", middleware.RequireAdmin(report.ClientsPage))
	mux.HandleFunc("GET /clients/{name}/history", middleware.RequireAdmin(report.HistoryPage))
	mux.HandleFunc("GET /clients/{name}/comparison", middleware.RequireAdmin(report.ComparisonPage))
	mux.HandleFunc("GET /clients/{name}/report.pdf", middleware.RequireAdmin(report.ExportPDF))

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.SessionMiddleware(app.AuthService),
	)

	return handler
}
