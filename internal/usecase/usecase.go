package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"campusbuddy/internal/entity"
	"campusbuddy/internal/repository"
	"campusbuddy/pkg/apperror"
)

// Default page sizes per resource.
const (
	DefaultMessageLimit = 50
	DefaultListLimit    = 20
)

// TempIdPrefix marks ids synthesised when the store could not persist a create.
const TempIdPrefix = "temp_"

func newTempId() string {
	return TempIdPrefix + uuid.New().String()
}

// NewValidator reports field errors using json names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", fe.Field())
		case "oneof":
			msg = fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
		case "max":
			msg = fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		case "min":
			msg = fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		default:
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		return apperror.Wrap(err, apperror.ErrValidation, msg)
	}
	return apperror.Wrap(err, apperror.ErrValidation, "invalid payload")
}

// storeError maps a repository failure of a primary operation onto the taxonomy.
func storeError(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, repository.ErrDuplicate):
		return apperror.Wrap(err, apperror.ErrConflict, "already exists")
	case errors.Is(err, repository.ErrUnavailable):
		return apperror.Wrap(err, apperror.ErrUnavailable, "document store unavailable")
	default:
		return apperror.Wrap(err, apperror.ErrInternal, apperror.ErrInternal.Message)
	}
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

// EventPublisher pushes realtime events to connected clients.
type EventPublisher interface {
	Broadcast(ctx context.Context, event entity.Event)
	NotifyUser(ctx context.Context, userId string, event entity.Event)
}

type nopPublisher struct{}

func (nopPublisher) Broadcast(context.Context, entity.Event)          {}
func (nopPublisher) NotifyUser(context.Context, string, entity.Event) {}

// NopPublisher discards every event.
func NopPublisher() EventPublisher { return nopPublisher{} }

type Clock func() time.Time
