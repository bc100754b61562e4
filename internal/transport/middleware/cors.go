package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the public site to call the API from the listed origins.
// An empty list or "*" allows any origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Trace-ID"},
		ExposedHeaders: []string{"X-Trace-ID"},
		MaxAge:         600,
	})
	return c.Handler
}
