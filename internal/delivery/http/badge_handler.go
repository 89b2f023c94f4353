package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusbuddy/internal/entity"
	"campusbuddy/internal/usecase"
)

type BadgeHandler struct {
	badgeUc   usecase.BadgeUsecase
	responder *Responder
}

func NewBadgeHandler(badgeUc usecase.BadgeUsecase, responder *Responder) *BadgeHandler {
	return &BadgeHandler{
		badgeUc:   badgeUc,
		responder: responder,
	}
}

// Method Get /api/badges
func (h *BadgeHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	h.responder.OK(w, h.badgeUc.Catalog(r.Context()))
}

// Method Post /api/badges
func (h *BadgeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateBadgeRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	badge, err := h.badgeUc.Create(r.Context(), CurrentUser(r), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Created(w, badge)
}

// Method Get /api/badges/user/{userId}
func (h *BadgeHandler) UserBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := h.badgeUc.UserBadges(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, badges)
}

// Method Post /api/badges/award
func (h *BadgeHandler) Award(w http.ResponseWriter, r *http.Request) {
	var req entity.AwardBadgeRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	user, err := h.badgeUc.Award(r.Context(), CurrentUser(r), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, user)
}

// Method Post /api/badges/check-automatic
func (h *BadgeHandler) CheckAutomatic(w http.ResponseWriter, r *http.Request) {
	earned, err := h.badgeUc.CheckAutomatic(r.Context(), CurrentUser(r))
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, earned)
}
