package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/steiza/a2docstore/internal/config"
	"github.com/steiza/a2docstore/internal/db"
	"github.com/steiza/a2docstore/internal/repository"
	"github.com/steiza/a2docstore/internal/service"
	"github.com/steiza/a2docstore/internal/storage"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	DocumentService *service.DocumentService
	AuthService     *service.AuthService
}

func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	documentRepository := repository.NewDocumentRepository(database)

	store, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	documentService := service.NewDocumentService(documentRepository, store)
	authService := service.NewAuthService(
		cfg.AdminPassword,
		cfg.AdminPasswordHash,
		cfg.CookieSecret,
		cfg.CookieExpiry,
		cfg.IsProduction(),
	)

	return &App{
		Cfg:             cfg,
		DB:              database,
		DocumentService: documentService,
		AuthService:     authService,
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
