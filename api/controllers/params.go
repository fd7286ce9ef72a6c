package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/angelmondragon/minicommerce-backend/pkg/errors"
	"github.com/angelmondragon/minicommerce-backend/pkg/logger"
)

// pathID reads a positive int64 route parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+name).WithDetails(map[string]any{"field": name, "value": raw})
	}
	return id, nil
}

// entityContext tags the request's log context with the entity id being handled.
func entityContext(ctx context.Context, logg *logger.Logger, entity string, id int64) context.Context {
	if logg == nil {
		return ctx
	}
	return logg.WithEntityID(ctx, entity, id)
}
