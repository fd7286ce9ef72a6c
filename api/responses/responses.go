package responses

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	pkgerrors "github.com/angelmondragon/minicommerce-backend/pkg/errors"
	"github.com/angelmondragon/minicommerce-backend/pkg/etag"
	"github.com/angelmondragon/minicommerce-backend/pkg/logger"
	"github.com/angelmondragon/minicommerce-backend/pkg/types"
)

// HeaderNextCursor carries the cursor of the next page on list responses.
const HeaderNextCursor = "X-Next-Cursor"

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

// WriteSuccessStatus writes data as the bare JSON body. Only errors are enveloped.
func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

// WriteCreated writes data with a 201.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusCreated, data)
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteList writes a page of items and exposes the next cursor when one exists.
func WriteList(w http.ResponseWriter, items any, nextCursor string) {
	if nextCursor != "" {
		w.Header().Set(HeaderNextCursor, nextCursor)
	}
	WriteSuccess(w, items)
}

// WriteCacheable writes a 200 body tagged with a weak ETag, or 304 when the
// request's If-None-Match already names that representation.
func WriteCacheable(w http.ResponseWriter, r *http.Request, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	tag := etag.Generate(body)
	w.Header().Set("ETag", tag)
	if !etag.NoneMatch(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(append(body, '\n'))
}

// WriteError maps err to its status and public envelope. Server-side failures
// are logged as errors with the full cause chain; client errors as warnings.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed := pkgerrors.Resolve(err)
	meta := pkgerrors.MetadataFor(typed.Code())

	payload := types.ErrorEnvelope{
		Error: types.APIError{
			Code:    string(typed.Code()),
			Message: typed.PublicMessage(),
		},
	}
	if meta.DetailsAllowed {
		payload.Error.Details = typed.Details()
	}

	ctx = logg.WithFields(ctx, pkgerrors.Dump(typed).Fields())
	if meta.HTTPStatus >= http.StatusInternalServerError {
		logg.Error(ctx, "request.error", typed)
	} else {
		logg.Warn(ctx, "request.rejected")
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
