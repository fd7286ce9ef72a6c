package middleware

import (
	"net/http"

	servertiming "github.com/mitchellh/go-server-timing"
)

// ServerTiming attaches a Server-Timing collector to each request; services add
// metrics to it through pkg/timing and the header is written with the response.
func ServerTiming() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return servertiming.Middleware(next, nil)
	}
}
