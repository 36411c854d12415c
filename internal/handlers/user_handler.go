package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
	"github.com/DiasNurdicanov/63990-six-cities-5/internal/services"
)

type UserHandler struct {
	Service *services.UserService
	Logger  *slog.Logger
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto models.CreateUserDto
	if !decodeJSON(w, r, &dto) {
		return
	}
	if invalid(w, dto.Validate()) {
		return
	}

	user, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var dto models.LoginUserDto
	if !decodeJSON(w, r, &dto) {
		return
	}
	if invalid(w, dto.Validate()) {
		return
	}

	tokens, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

// CheckAuth returns the user the bearer token belongs to.
func (h *UserHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	user, err := h.Service.FindByID(r.Context(), userID)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unknown user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if !validID(w, "id", id) {
		return
	}

	user, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	if user == nil {
		notFound(w, "User")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if !validID(w, "id", id) || !requireOwner(w, r, id) {
		return
	}

	var dto models.UpdateUserDto
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

	user, err := h.Service.UpdateByID(r.Context(), id, dto)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	if user == nil {
		notFound(w, "User")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if !validID(w, "id", id) || !requireOwner(w, r, id) {
		return
	}

	user, err := h.Service.DeleteByID(r.Context(), id)
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	if user == nil {
		notFound(w, "User")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadAvatar accepts a multipart form with a jpeg or png "avatar" file.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if !validID(w, "id", id) || !requireOwner(w, r, id) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, services.MaxAvatarSize+1<<20)
	if err := r.ParseMultipartForm(services.MaxAvatarSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, _, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing avatar file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxAvatarSize+1))
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}

	user, err := h.Service.UploadAvatar(r.Context(), id, data, http.DetectContentType(data))
	if err != nil {
		serverError(w, r, h.Logger, err)
		return
	}
	if user == nil {
		notFound(w, "User")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
