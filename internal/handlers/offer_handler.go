package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
	"github.com/DiasNurdicanov/63990-six-cities-5/internal/services"
)

type OfferHandler struct {
	Service *services.OfferService
	Logger  *slog.Logger
}

// ListOffers serves GET /offers?limit=&sort=&order=&favorite_of=.
func (h *OfferHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	q := models.ListingQuery{
		SortBy:      models.SortField(r.URL.Query().Get("sort")),
		Order:       models.SortOrder(r.URL.Query().Get("order")),
		FavoriteKey: models.FavoriteKey(r.URL.Query().Get("favorite_of")),
		ViewerID:    UserIDFromContext(r.Context()),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		q.Limit = limit
	}

	offers, err := h.Service.Find(r.Context(), q)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

func (h *OfferHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	var dto models.CreateOfferDto
	if !decodeJSON(w, r, &dto) {
		return
	}
	dto.AuthorID = userID
	if invalid(w, dto.Validate()) {
		return
	}

	offer, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, offer)
}

// PremiumOffers serves GET /offers/premium?city=&count=.
func (h *OfferHandler) PremiumOffers(w http.ResponseWriter, r *http.Request) {
	city, ok := models.ParseCity(r.URL.Query().Get("city"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, validationResponse{Errors: models.ValidationErrors{
			{Field: "city", Message: "city.invalid"},
		}})
		return
	}
	count := 0
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid count")
			return
		}
		count = n
	}

	offers, err := h.Service.FindPremium(r.Context(), city, count)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

func (h *OfferHandler) GetOfferByID(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if !validID(w, "offerId", id) {
		return
	}

	offer, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	if offer == nil {
		notFound(w, "Offer")
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

// ownedOffer loads the offer in the path and checks the caller authored it.
func (h *OfferHandler) ownedOffer(w http.ResponseWriter, r *http.Request) (*models.Offer, bool) {
	id := getParam(r, "id")
	if !validID(w, "offerId", id) {
		return nil, false
	}
	offer, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return nil, false
	}
	if offer == nil {
		notFound(w, "Offer")
		return nil, false
	}
	if !requireOwner(w, r, offer.AuthorID) {
		return nil, false
	}
	return offer, true
}

func (h *OfferHandler) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	offer, ok := h.ownedOffer(w, r)
	if !ok {
		return
	}

	var dto models.UpdateOfferDto
	if !decodeJSON(w, r, &dto) {
		return
	}
	if dto.IsEmpty() {
		writeError(w, http.StatusBadRequest, "Nothing to update")
		return
	}
	if invalid(w, dto.Validate()) {
		return
	}

	updated, err := h.Service.UpdateByID(r.Context(), offer.ID, dto)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	if updated == nil {
		notFound(w, "Offer")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *OfferHandler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	offer, ok := h.ownedOffer(w, r)
	if !ok {
		return
	}

	deleted, err := h.Service.DeleteByID(r.Context(), offer.ID)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	if deleted == nil {
		notFound(w, "Offer")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
