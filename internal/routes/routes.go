package routes

import (
	"net/http"

	"blogfeed/internal/handlers"
	"blogfeed/internal/metrics"
	"blogfeed/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	blogHandler *handlers.BlogHandler,
	healthHandler *handlers.HealthHandler,
	jwtSecret string,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging)
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware)

	router.HandleFunc("/healthz", healthHandler.Healthz).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/blogs", blogHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/blogs/search", blogHandler.Search).Methods(http.MethodGet)

	// черновики по id видны только автору, поэтому токен здесь необязательный
	byID := api.PathPrefix("").Subrouter()
	byID.Use(middleware.OptionalJWTAuth(jwtSecret))
	byID.HandleFunc("/blogs/{id}", blogHandler.Get).Methods(http.MethodGet)
	byID.HandleFunc("/blogs/{id}/read", blogHandler.Read).Methods(http.MethodPost)

	// --- Защищённые JWT ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuth(jwtSecret))

	protected.HandleFunc("/me/blogs", blogHandler.Mine).Methods(http.MethodGet)
	protected.HandleFunc("/blogs", blogHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/blogs/{id}", blogHandler.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/blogs/{id}", blogHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/blogs/{id}/publish", blogHandler.Publish).Methods(http.MethodPatch)
}
