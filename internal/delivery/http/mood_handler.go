package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusbuddy/internal/entity"
	"campusbuddy/internal/usecase"
)

type MoodHandler struct {
	moodUc    usecase.MoodUsecase
	responder *Responder
}

func NewMoodHandler(moodUc usecase.MoodUsecase, responder *Responder) *MoodHandler {
	return &MoodHandler{
		moodUc:    moodUc,
		responder: responder,
	}
}

// Method Get /api/mood
func (h *MoodHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := h.moodUc.Index(r.Context(), CurrentUser(r), entity.MoodIndexFilter{
		Mood:        entity.Mood(r.URL.Query().Get("mood")),
		PageRequest: pageRequest(r),
	})
	h.responder.OK(w, page)
}

// Method Post /api/mood
func (h *MoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateMoodRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	entry, err := h.moodUc.Create(r.Context(), CurrentUser(r), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Created(w, entry)
}

// Method Put /api/mood/{id}/feedback
func (h *MoodHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req entity.MoodFeedbackRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	entry, err := h.moodUc.SetHelpful(r.Context(), CurrentUser(r), chi.URLParam(r, "id"), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, entry)
}

// Method Get /api/mood/tips
func (h *MoodHandler) Tips(w http.ResponseWriter, r *http.Request) {
	h.responder.OK(w, h.moodUc.Tips())
}

// Method Get /api/mood/stats
func (h *MoodHandler) Stats(w http.ResponseWriter, r *http.Request) {
	h.responder.OK(w, h.moodUc.Stats(r.Context(), CurrentUser(r)))
}
