package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/minicommerce-backend/api/responses"
	"github.com/angelmondragon/minicommerce-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/minicommerce-backend/pkg/errors"
	"github.com/angelmondragon/minicommerce-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/minicommerce-backend/pkg/redis"
)

const (
	// HeaderIdempotencyKey names the client-supplied replay key.
	HeaderIdempotencyKey = "Idempotency-Key"
	headerReplayed       = "Idempotent-Replayed"
)

type idempotencyRule struct {
	method string
	path   string
	ttl    time.Duration
}

// idempotencyRules lists the create endpoints that replay responses. Order
// placement moves stock, so it keeps its record longer.
func idempotencyRules(ttls config.IdempotencyConfig) []idempotencyRule {
	return []idempotencyRule{
		{method: http.MethodPost, path: "/api/orders", ttl: ttls.CriticalTTL},
		{method: http.MethodPost, path: "/api/reviews", ttl: ttls.DefaultTTL},
	}
}

func routeTTL(rules []idempotencyRule, method, path string) (time.Duration, bool) {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	for _, rule := range rules {
		if rule.method == method && rule.path == path {
			return rule.ttl, true
		}
	}
	return 0, false
}

// Idempotency makes covered create endpoints safe to retry. The first request
// with a given Idempotency-Key reserves it; repeats with the same body get the
// stored response, repeats while the first is running get 409. Server errors
// and panics release the key so the client can retry. Requests without the header pass through.
func Idempotency(store pkgredis.IdempotencyStore, ttls config.IdempotencyConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	rules := idempotencyRules(ttls)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientKey := strings.TrimSpace(r.Header.Get(HeaderIdempotencyKey))
			ttl, covered := routeTTL(rules, r.Method, r.URL.Path)
			if !covered || clientKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := logg.WithField(r.Context(), "idempotency_key", clientKey)
			body, err := io.ReadAll(r.Body)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable request body"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			sum := sha256.Sum256(body)
			requestHash := hex.EncodeToString(sum[:])
			key := pkgredis.IdempotencyKey(r.Method+"|"+r.URL.Path, clientKey)

			existing, reserved, err := store.Reserve(ctx, key, requestHash, ttl)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "idempotency store unavailable"))
				return
			}
			if !reserved {
				if existing == nil {
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				replay(ctx, logg, w, existing, requestHash)
				return
			}

			defer func() {
				if rec := recover(); rec != nil {
					release(ctx, logg, store, key)
					panic(rec)
				}
			}()

			capture := &responseCapture{ResponseWriter: w}
			next.ServeHTTP(capture, r.WithContext(ctx))

			if capture.Status() >= http.StatusInternalServerError {
				release(ctx, logg, store, key)
				return
			}
			record := pkgredis.IdempotencyRecord{
				RequestHash: requestHash,
				Status:      capture.Status(),
				ContentType: capture.Header().Get("Content-Type"),
				Body:        capture.body.Bytes(),
			}
			if err := store.Complete(ctx, key, record, ttl); err != nil {
				logg.Error(ctx, "idempotency.store_failed", err)
			}
		})
	}
}

func release(ctx context.Context, logg *logger.Logger, store pkgredis.IdempotencyStore, key string) {
	if err := store.Release(ctx, key); err != nil {
		logg.Error(ctx, "idempotency.release_failed", err)
	}
}

func replay(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, record *pkgredis.IdempotencyRecord, requestHash string) {
	switch {
	case record.RequestHash != requestHash:
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key reused with different request body"))
	case record.Pending:
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "request with this idempotency key is still in progress"))
	default:
		if record.ContentType != "" {
			w.Header().Set("Content-Type", record.ContentType)
		}
		w.Header().Set(headerReplayed, "true")
		w.WriteHeader(record.Status)
		_, _ = w.Write(record.Body)
	}
}

// responseCapture tees the handler's response so it can be stored.
type responseCapture struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (c *responseCapture) WriteHeader(code int) {
	if c.status == 0 {
		c.status = code
	}
	c.ResponseWriter.WriteHeader(code)
}

func (c *responseCapture) Write(b []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}

func (c *responseCapture) Status() int {
	if c.status == 0 {
		return http.StatusOK
	}
	return c.status
}
