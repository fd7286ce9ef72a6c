package api

import (
	"net/http"
	"os"

	"github.com/angelmondragon/minicommerce-backend/pkg/config"
)

// NewServer wraps handler in an http.Server bound to the configured port.
// PORT, when set by the platform, wins over MINICOMMERCE_APP_PORT.
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}
}
