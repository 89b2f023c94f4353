package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusbuddy/internal/entity"
	"campusbuddy/internal/usecase"
)

type ChatHandler struct {
	messageUc usecase.MessageUsecase
	responder *Responder
}

func NewChatHandler(messageUc usecase.MessageUsecase, responder *Responder) *ChatHandler {
	return &ChatHandler{
		messageUc: messageUc,
		responder: responder,
	}
}

// Method Get /api/chat/messages
func (h *ChatHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := h.messageUc.Index(r.Context(), entity.MessageIndexFilter{
		AuthorId:    r.URL.Query().Get("authorId"),
		PageRequest: pageRequest(r),
	})
	h.responder.OK(w, page)
}

// Method Get /api/chat/messages/{id}
func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	message, err := h.messageUc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, message)
}

// Method Post /api/chat/messages
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req entity.SendMessageRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	message, err := h.messageUc.Send(r.Context(), CurrentUser(r), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Created(w, message)
}

// Method Put /api/chat/messages/{id}
func (h *ChatHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req entity.EditMessageRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	message, err := h.messageUc.Edit(r.Context(), CurrentUser(r), chi.URLParam(r, "id"), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, message)
}

// Method Delete /api/chat/messages/{id}
func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.messageUc.Delete(r.Context(), CurrentUser(r), chi.URLParam(r, "id")); err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Message(w, "message deleted")
}

// Method Post /api/chat/messages/{id}/reactions
func (h *ChatHandler) React(w http.ResponseWriter, r *http.Request) {
	var req entity.ReactionRequest
	if err := decode(r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	message, err := h.messageUc.React(r.Context(), CurrentUser(r), chi.URLParam(r, "id"), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, message)
}

// Method Get /api/chat/summary
func (h *ChatHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.messageUc.Summary(r.Context(), queryInt(r, "limit"))
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.OK(w, summary)
}
