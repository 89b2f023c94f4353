package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusbuddy/internal/entity"
	"campusbuddy/internal/usecase"
)

type StatusHandler struct {
	statusUc  usecase.CampusStatusUsecase
	responder *Responder
}

func NewStatusHandler(statusUc usecase.CampusStatusUsecase, responder *Responder) *StatusHandler {
	return &StatusHandler{
		statusUc:  statusUc,
		responder: responder,
	}
}

// Method Get /api/status
func (h *StatusHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := h.statusUc.Index(r.Context(), entity.StatusIndexFilter{
		Status:      entity.FacilityStatus(query.Get("status")),
		Keyword:     query.Get("keyword"),
		PageRequest: pageRequest(r),
	})
	h.responder.OK(w, page)
}

// Method Get /api/status/search?q=
func (h *StatusHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.responder.OK(w, h.statusUc.Search(r.Context(), r.URL.Query().Get("q"), pageRequest(r)))
}

// Method Get /api/status/keywords/popular
func (h *StatusHandler) PopularKeywords(w http.ResponseWriter, r *http.Request) {
	h.responder.OK(w, h.statusUc.PopularKeywords(r.Context(), queryInt(r, "limit")))
}

// Method Get /api/status/{id}
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	status, err := h.statusUc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, status)
}

// Method Post /api/status
func (h *StatusHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req entity.CampusStatusRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	status, err := h.statusUc.Upsert(r.Context(), CurrentUser(r), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, status)
}

// Method Put /api/status/{id}
func (h *StatusHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req entity.UpdateCampusStatusRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	status, err := h.statusUc.Update(r.Context(), CurrentUser(r), chi.URLParam(r, "id"), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, status)
}

// Method Delete /api/status/{id}
func (h *StatusHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.statusUc.Delete(r.Context(), CurrentUser(r), chi.URLParam(r, "id")); err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Message(w, "status deleted")
}
