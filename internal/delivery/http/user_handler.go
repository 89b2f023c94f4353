package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusbuddy/internal/entity"
	"campusbuddy/internal/usecase"
)

type UserHandler struct {
	userUc    usecase.UserUsecase
	responder *Responder
}

func NewUserHandler(userUc usecase.UserUsecase, responder *Responder) *UserHandler {
	return &UserHandler{
		userUc:    userUc,
		responder: responder,
	}
}

// Method Get /api/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	h.responder.OK(w, CurrentUser(r))
}

// Method Put /api/users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req entity.UpdateProfileRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	user, err := h.userUc.UpdateProfile(r.Context(), CurrentUser(r), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, user)
}

// Method Get /api/users
func (h *UserHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := h.userUc.Index(r.Context(), entity.UserIndexFilter{
		Role:         entity.Role(query.Get("role")),
		Batch:        query.Get("batch"),
		SortByPoints: query.Get("sort") == "points",
		PageRequest:  pageRequest(r),
	})
	h.responder.OK(w, page)
}

// Method Get /api/users/online
func (h *UserHandler) Online(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUc.Online(r.Context())
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, users)
}

// Method Get /api/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userUc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, user)
}

// Method Put /api/users/{id}/role
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req entity.UpdateRoleRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	user, err := h.userUc.UpdateRole(r.Context(), CurrentUser(r), chi.URLParam(r, "id"), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, user)
}

// Method Post /api/users/{id}/revoke
func (h *UserHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	if err := h.userUc.RevokeTokens(r.Context(), CurrentUser(r), chi.URLParam(r, "id")); err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Message(w, "sessions revoked")
}

// Method Get /api/users/{id}/activity
func (h *UserHandler) Activity(w http.ResponseWriter, r *http.Request) {
	page, err := h.userUc.Activity(r.Context(), CurrentUser(r), entity.ActivityIndexFilter{
		UserId:      chi.URLParam(r, "id"),
		PageRequest: pageRequest(r),
	})
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, page)
}
