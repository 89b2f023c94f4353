package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"campusbuddy/internal/entity"
	"campusbuddy/pkg/apperror"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Responder renders envelopes. In production internal error details are replaced
// with a generic message.
type Responder struct {
	logger     *zap.Logger
	production bool
}

func NewResponder(logger *zap.Logger, production bool) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{logger: logger, production: production}
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (rs *Responder) OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func (rs *Responder) Created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Data: data})
}

func (rs *Responder) Message(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message})
}

// Error maps err through the taxonomy. Message carries the error code, or the
// authentication reason for 401s.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.From(err)

	message := appErr.Message
	if appErr.Kind == apperror.KindInternal || appErr.Kind == apperror.KindUnavailable {
		rs.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		if rs.production {
			message = apperror.ErrInternal.Message
		} else {
			message = appErr.Error()
		}
	}

	code := appErr.Code
	if appErr.Kind == apperror.KindAuthentication {
		code = appErr.Reason
	}
	writeJSON(w, appErr.Status, Response{Success: false, Error: message, Message: code})
}

// decode reads a JSON body into dst. An empty body leaves dst untouched.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperror.Validation("invalid request body")
	}
	return nil
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

// pageRequest reads ?page=&limit=. Usecases apply defaults and clamping.
func pageRequest(r *http.Request) entity.PageRequest {
	return entity.PageRequest{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	}
}
