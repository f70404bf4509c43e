package routes

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func optionsHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func InitRouter() *mux.Router {
	r := mux.NewRouter()

	// Health check endpoint for container health checks (root level)
	r.Handle("/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   "cashbyking-api",
		})
	})).Methods(http.MethodGet)

	// CORS: origins from CORS_ALLOWED_ORIGINS (comma-separated) plus local dev defaults
	origins := []string{
		"http://localhost:3000", "http://localhost:8080",
		"http://127.0.0.1:3000", "http://127.0.0.1:8080",
	}
	if originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS"); originsEnv != "" {
		for _, p := range strings.Split(originsEnv, ",") {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
	}
	r.Use(func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With", "X-Request-ID"}),
			handlers.AllowCredentials(),
		)(next)
	})

	api := r.PathPrefix("/api").Subrouter()

	// catch-all OPTIONS handler for CORS preflight
	api.PathPrefix("/").HandlerFunc(optionsHandler).Methods(http.MethodOptions)

	UsersRoutes(api)
	SetAdminRoutes(api)

	return r
}
