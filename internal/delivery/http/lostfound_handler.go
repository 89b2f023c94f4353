package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusbuddy/internal/entity"
	"campusbuddy/internal/usecase"
)

type LostFoundHandler struct {
	lostFoundUc usecase.LostFoundUsecase
	responder   *Responder
}

func NewLostFoundHandler(lostFoundUc usecase.LostFoundUsecase, responder *Responder) *LostFoundHandler {
	return &LostFoundHandler{
		lostFoundUc: lostFoundUc,
		responder:   responder,
	}
}

// Method Get /api/lost-found
func (h *LostFoundHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := h.lostFoundUc.Index(r.Context(), entity.LostFoundIndexFilter{
		Status:      entity.LostFoundStatus(query.Get("status")),
		Category:    query.Get("category"),
		ReporterId:  query.Get("reporterId"),
		PageRequest: pageRequest(r),
	})
	h.responder.OK(w, page)
}

// Method Get /api/lost-found/{id}
func (h *LostFoundHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.lostFoundUc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, item)
}

// Method Post /api/lost-found
func (h *LostFoundHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateLostFoundRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	item, err := h.lostFoundUc.Create(r.Context(), CurrentUser(r), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Created(w, item)
}

// Method Put /api/lost-found/{id}
func (h *LostFoundHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req entity.UpdateLostFoundRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	item, err := h.lostFoundUc.Update(r.Context(), CurrentUser(r), chi.URLParam(r, "id"), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, item)
}

// Method Delete /api/lost-found/{id}
func (h *LostFoundHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.lostFoundUc.Delete(r.Context(), CurrentUser(r), chi.URLParam(r, "id")); err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Message(w, "item deleted")
}

// Method Post /api/lost-found/{id}/return
func (h *LostFoundHandler) MarkReturned(w http.ResponseWriter, r *http.Request) {
	item, err := h.lostFoundUc.MarkReturned(r.Context(), CurrentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, item)
}
