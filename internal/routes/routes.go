package routes

import (
	"net/http"
	"time"

	"newsadmin/internal/handlers"
	"newsadmin/internal/loader"
	"newsadmin/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	JWTSecret      string
	RequestTimeout time.Duration
	LoaderSource   loader.Source
	LoaderOptions  loader.Options
}

func InitRoutes(
	router *mux.Router,
	opts Options,
	newsPostHandler *handlers.NewsPostHandler,
	nodeHandler *handlers.NodeHandler,
	healthHandler *handlers.HealthHandler,
) {
	router.Use(middleware.Recoverer, middleware.RequestID, middleware.Logging)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	if healthHandler != nil {
		router.HandleFunc("/healthz", healthHandler.Healthz).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api").Subrouter()
	api.Use(
		middleware.Timeout(opts.RequestTimeout),
		middleware.Loaders(opts.LoaderSource, opts.LoaderOptions),
	)

	// --- Публичные маршруты ---
	api.HandleFunc("/newsposts", newsPostHandler.ListNewsPosts).Methods(http.MethodGet)
	api.HandleFunc("/newsposts/{id:[0-9]+}", newsPostHandler.GetNewsPost).Methods(http.MethodGet)
	api.HandleFunc("/nodes", nodeHandler.Nodes).Methods(http.MethodGet)

	// --- Защищённые JWT, только admin ---
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.JWTAuth(opts.JWTSecret), middleware.OnlyRole("admin"))

	admin.HandleFunc("/newsposts", newsPostHandler.CreateNewsPost).Methods(http.MethodPost)
	admin.HandleFunc("/newsposts/{id:[0-9]+}", newsPostHandler.UpdateNewsPost).Methods(http.MethodPatch)
	admin.HandleFunc("/newsposts/{id:[0-9]+}", newsPostHandler.DeleteNewsPost).Methods(http.MethodDelete)
}
