package handlers

import (
	"log/slog"
	"net/http"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
	"github.com/DiasNurdicanov/63990-six-cities-5/internal/services"
)

type FavoriteHandler struct {
	Service *services.FavoriteService
	Logger  *slog.Logger
}

// AddFavorite serves POST /favorites. Callers may only change their own list.
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var dto models.AddFavoriteOfferDto
	if !decodeJSON(w, r, &dto) {
		return
	}
	if invalid(w, dto.Validate()) {
		return
	}
	if !requireOwner(w, r, dto.UserID) {
		return
	}

	if err := h.Service.Add(r.Context(), dto); err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.Favorite{UserID: dto.UserID, OfferID: dto.OfferID})
}

func (h *FavoriteHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := getParam(r, "user_id")
	if !validID(w, "userId", userID) {
		return
	}

	offers, err := h.Service.FindByUser(r.Context(), userID)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

func (h *FavoriteHandler) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	userID, offerID := getParam(r, "user_id"), getParam(r, "offer_id")
	if !validID(w, "userId", userID) || !validID(w, "offerId", offerID) {
		return
	}

	exists, err := h.Service.Exists(r.Context(), userID, offerID)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isFavorite": exists})
}

func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, offerID := getParam(r, "user_id"), getParam(r, "offer_id")
	if !validID(w, "userId", userID) || !validID(w, "offerId", offerID) {
		return
	}
	if !requireOwner(w, r, userID) {
		return
	}

	removed, err := h.Service.Remove(r.Context(), userID, offerID)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	if !removed {
		notFound(w, "Favorite")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
