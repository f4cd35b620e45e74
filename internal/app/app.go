package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fitstudio/reassess/internal/config"
	"github.com/fitstudio/reassess/internal/db"
	"github.com/fitstudio/reassess/internal/pdf"
	"github.com/fitstudio/reassess/internal/repository"
	"github.com/fitstudio/reassess/internal/service"
	"github.com/fitstudio/reassess/internal/web"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	Views             *web.TemplateSet
	AuthService       *service.AuthService
	AssessmentService *service.AssessmentService
	ReportService     *service.ReportService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Views
	views, err := web.NewTemplateSet()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %v", err)
	}

	// Repositories
	assessmentRepository := repository.NewAssessmentRepository(database)

	// Services
	authService := service.NewAuthService(
		cfg.AdminEmail,
		cfg.AdminPasswordHash,
		cfg.AdminPassword,
		cfg.SessionSecret,
		cfg.SessionExpiry,
		cfg.IsProduction(),
	)
	assessmentService := service.NewAssessmentService(assessmentRepository)
	reportService := service.NewReportService(
		assessmentRepository,
		views,
		pdf.NewChromeRenderer(cfg.ChromeBin),
		cfg.AppURL,
	)

	return &App{
		Cfg:               cfg,
		DB:                database,
		Views:             views,
		AuthService:       authService,
		AssessmentService: assessmentService,
		ReportService:     reportService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
