package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/angelmondragon/minicommerce-backend/api/responses"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",
}

// CORS returns middleware that applies the API's allowed origin policy. An empty
// origin list falls back to local development origins.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", HeaderIdempotencyKey, "If-None-Match", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader, responses.HeaderNextCursor, "ETag", "Server-Timing"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler
}
