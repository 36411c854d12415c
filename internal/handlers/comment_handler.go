package handlers

import (
	"log/slog"
	"net/http"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
	"github.com/DiasNurdicanov/63990-six-cities-5/internal/services"
)

type CommentHandler struct {
	Service *services.CommentService
	Offers  *services.OfferService
	Logger  *slog.Logger
}

func (h *CommentHandler) ListByOffer(w http.ResponseWriter, r *http.Request) {
	offerID := getParam(r, "id")
	if !validID(w, "offerId", offerID) {
		return
	}

	exists, err := h.Offers.Exists(r.Context(), offerID)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	if !exists {
		notFound(w, "Offer")
		return
	}

	comments, err := h.Service.FindByOfferID(r.Context(), offerID)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	var dto models.CreateCommentDto
	if !decodeJSON(w, r, &dto) {
		return
	}
	dto.OfferID = getParam(r, "id")
	dto.AuthorID = userID
	if invalid(w, dto.Validate()) {
		return
	}

	comment, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) GetCommentByID(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if !validID(w, "commentId", id) {
		return
	}

	comment, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	if comment == nil {
		notFound(w, "Comment")
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) ownedComment(w http.ResponseWriter, r *http.Request) (*models.Comment, bool) {
	id := getParam(r, "id")
	if !validID(w, "commentId", id) {
		return nil, false
	}
	comment, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return nil, false
	}
	if comment == nil {
		notFound(w, "Comment")
		return nil, false
	}
	if !requireOwner(w, r, comment.AuthorID) {
		return nil, false
	}
	return comment, true
}

func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	comment, ok := h.ownedComment(w, r)
	if !ok {
		return
	}

	var dto models.UpdateCommentDto
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

	updated, err := h.Service.UpdateByID(r.Context(), comment.ID, dto)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	if updated == nil {
		notFound(w, "Comment")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	comment, ok := h.ownedComment(w, r)
	if !ok {
		return
	}

	deleted, err := h.Service.DeleteByID(r.Context(), comment.ID)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	if deleted == nil {
		notFound(w, "Comment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
