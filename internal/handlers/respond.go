package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
)

type contextKey string

const userIDKey contextKey = "userID"

// WithUserID stores the authenticated user id in ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user id, or "" for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Errors models.ValidationErrors `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// invalid writes a 400 carrying the field errors of err. It reports false when
// err is nil.
func invalid(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusBadRequest, validationResponse{Errors: verrs})
		return true
	}
	writeError(w, http.StatusBadRequest, err.Error())
	return true
}

// validID writes a 400 unless id is a well-formed identifier.
func validID(w http.ResponseWriter, field, id string) bool {
	if models.IsValidID(id) {
		return true
	}
	writeJSON(w, http.StatusBadRequest, validationResponse{Errors: models.ValidationErrors{
		{Field: field, Message: field + ".invalidFormat"},
	}})
	return false
}

// serverError maps domain errors to their status codes and logs everything else.
func serverError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidLimit),
		errors.Is(err, models.ErrInvalidSortField),
		errors.Is(err, models.ErrInvalidFavoriteKey):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrOfferNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrDuplicateEmail), errors.Is(err, models.ErrAlreadyFavorite):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrReferenceNotFound):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, models.ErrUnsupportedImage):
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, models.ErrStorageDisabled):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("request failed", "method", r.Method, "uri", r.URL.RequestURI(), "error", err)
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func notFound(w http.ResponseWriter, what string) {
	writeError(w, http.StatusNotFound, what+" not found")
}

// requireOwner writes 401 for anonymous requests and 403 when the
// authenticated user is not ownerID.
func requireOwner(w http.ResponseWriter, r *http.Request, ownerID string) bool {
	viewer := UserIDFromContext(r.Context())
	if viewer == "" {
		writeError(w, http.StatusUnauthorized, "Authorization required")
		return false
	}
	if viewer != ownerID {
		writeError(w, http.StatusForbidden, "Forbidden")
		return false
	}
	return true
}
