package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusbuddy/internal/entity"
	"campusbuddy/internal/usecase"
)

type AnnouncementHandler struct {
	announcementUc usecase.AnnouncementUsecase
	responder      *Responder
}

func NewAnnouncementHandler(announcementUc usecase.AnnouncementUsecase, responder *Responder) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementUc: announcementUc,
		responder:      responder,
	}
}

// Method Get /api/announcements
func (h *AnnouncementHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := h.announcementUc.Index(r.Context(), entity.AnnouncementIndexFilter{
		Priority:    entity.Priority(query.Get("priority")),
		Tag:         query.Get("tag"),
		AuthorId:    query.Get("authorId"),
		PageRequest: pageRequest(r),
	})
	h.responder.OK(w, page)
}

// Method Get /api/announcements/{id}
func (h *AnnouncementHandler) Get(w http.ResponseWriter, r *http.Request) {
	announcement, err := h.announcementUc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, announcement)
}

// Method Post /api/announcements
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateAnnouncementRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	announcement, err := h.announcementUc.Create(r.Context(), CurrentUser(r), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Created(w, announcement)
}

// Method Put /api/announcements/{id}
func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req entity.UpdateAnnouncementRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	announcement, err := h.announcementUc.Update(r.Context(), CurrentUser(r), chi.URLParam(r, "id"), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, announcement)
}

// Method Delete /api/announcements/{id}
func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.announcementUc.Delete(r.Context(), CurrentUser(r), chi.URLParam(r, "id")); err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Message(w, "announcement deleted")
}

// Method Post /api/announcements/{id}/like
func (h *AnnouncementHandler) Like(w http.ResponseWriter, r *http.Request) {
	result, err := h.announcementUc.ToggleLike(r.Context(), CurrentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, result)
}
