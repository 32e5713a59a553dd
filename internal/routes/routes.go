package routes

import (
	"io/fs"
	"net/http"

	"github.com/steiza/a2docstore/internal/app"
	"github.com/steiza/a2docstore/internal/handler"
	"github.com/steiza/a2docstore/internal/middleware"
	"github.com/steiza/a2docstore/internal/ui"
)

func SetupRoutes(a *app.App) http.Handler {
	// Handlers
	document := handler.NewDocumentHandler(a.DocumentService)
	file := handler.NewFileHandler(a.DocumentService)
	auth := handler.NewAuthHandler(a.AuthService)

	mux := http.NewServeMux()

	// Static files
	static, _ := fs.Sub(ui.StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// Public routes
	mux.HandleFunc("GET /{$}", document.Index)
	mux.HandleFunc("GET /add", document.AddPage)
	mux.HandleFunc("POST /add", document.Add)
	mux.HandleFunc("GET /search", document.Search)
	mux.HandleFunc("GET /view/{id}", document.View)
	mux.HandleFunc("GET /file/{id}/{filename...}", file.Download)
	mux.HandleFunc("GET /orgs", document.Orgs)
	mux.HandleFunc("GET /submitters", document.Submitters)
	mux.HandleFunc("GET /auth/", auth.Auth)

	// Staff-only routes; the marker cookie is re-checked per request
	mux.HandleFunc("GET /edit/{id}", middleware.RequireAuth(document.EditPage))
	mux.HandleFunc("POST /edit/{id}", middleware.RequireAuth(document.Edit))
	mux.HandleFunc("POST /delete", middleware.RequireAuth(document.Delete))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Config(a.Cfg),
		middleware.RequestID,
		middleware.RequestLogging,
		middleware.CSRFProtection,
		middleware.Auth(a.AuthService),
	)
}
