package main

import (
	"net/http"

	"github.com/diewo77/invoicer/httpx"
	"github.com/diewo77/invoicer/internal/db"
	"github.com/diewo77/invoicer/internal/handlers"
	"github.com/diewo77/invoicer/internal/repository"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	origins map[string]bool
}

// NewApp creates a new application with all routes configured. corsOrigins
// is the list of origins allowed to call the API from a browser.
func NewApp(store *db.Store, corsOrigins []string) *App {
	app := &App{
		mux:     http.NewServeMux(),
		origins: make(map[string]bool, len(corsOrigins)),
	}
	for _, origin := range corsOrigins {
		app.origins[origin] = true
	}

	ch := handlers.NewClientHandler(repository.NewClients(store))
	ih := handlers.NewCatalogItemHandler(repository.NewCatalogItems(store))
	uh := handlers.NewUserHandler(repository.NewUsers(store))

	app.mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	app.mux.HandleFunc("GET /api/clients", ch.List)
	app.mux.HandleFunc("POST /api/clients", ch.Create)
	app.mux.HandleFunc("GET /api/clients/{id}", ch.Get)
	app.mux.HandleFunc("PUT /api/clients/{id}", ch.Update)
	app.mux.HandleFunc("DELETE /api/clients/{id}", ch.Delete)

	app.mux.HandleFunc("GET /api/catalog-items", ih.List)
	app.mux.HandleFunc("POST /api/catalog-items", ih.Create)
	app.mux.HandleFunc("GET /api/catalog-items/{id}", ih.Get)
	app.mux.HandleFunc("PUT /api/catalog-items/{id}", ih.Update)
	app.mux.HandleFunc("DELETE /api/catalog-items/{id}", ih.Delete)

	app.mux.HandleFunc("GET /api/users/me", uh.Get)
	app.mux.HandleFunc("PUT /api/users/me", uh.Upsert)

	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.withCORS(a.mux).ServeHTTP(w, r)
}

// withCORS reflects allowed origins and answers preflight requests.
func (a *App) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && a.origins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
