package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusbuddy/internal/entity"
	"campusbuddy/internal/usecase"
)

type FeedbackHandler struct {
	feedbackUc usecase.FeedbackUsecase
	responder  *Responder
}

func NewFeedbackHandler(feedbackUc usecase.FeedbackUsecase, responder *Responder) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackUc: feedbackUc,
		responder:  responder,
	}
}

// Method Get /api/feedback
func (h *FeedbackHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := h.feedbackUc.Index(r.Context(), CurrentUser(r), entity.FeedbackIndexFilter{
		Type:        entity.FeedbackType(query.Get("type")),
		Category:    query.Get("category"),
		Status:      entity.FeedbackStatus(query.Get("status")),
		PageRequest: pageRequest(r),
	})
	h.responder.OK(w, page)
}

// Method Get /api/feedback/mine
func (h *FeedbackHandler) Mine(w http.ResponseWriter, r *http.Request) {
	h.responder.OK(w, h.feedbackUc.Mine(r.Context(), CurrentUser(r), pageRequest(r)))
}

// Method Get /api/feedback/{id}
func (h *FeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.feedbackUc.Get(r.Context(), CurrentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, feedback)
}

// Method Post /api/feedback
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateFeedbackRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	feedback, err := h.feedbackUc.Create(r.Context(), CurrentUser(r), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Created(w, feedback)
}

// Method Post /api/feedback/{id}/vote
func (h *FeedbackHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req entity.VoteRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	result, err := h.feedbackUc.Vote(r.Context(), CurrentUser(r), chi.URLParam(r, "id"), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, result)
}

// Method Put /api/feedback/{id}/status
func (h *FeedbackHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req entity.UpdateFeedbackStatusRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	feedback, err := h.feedbackUc.UpdateStatus(r.Context(), CurrentUser(r), chi.URLParam(r, "id"), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, feedback)
}

// Method Delete /api/feedback/{id}
func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.feedbackUc.Delete(r.Context(), CurrentUser(r), chi.URLParam(r, "id")); err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Message(w, "feedback deleted")
}
