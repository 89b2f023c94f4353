package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"campusbuddy/internal/entity"
	"campusbuddy/internal/repository"
	"campusbuddy/pkg/apperror"
)

// MessageUsecase holds the chat rules. The REST handlers and the realtime
// gateway both call it, so the two entry points validate, authorize and emit
// events identically.
type MessageUsecase interface {
	Index(ctx context.Context, filter entity.MessageIndexFilter) entity.Page[entity.Message]
	Get(ctx context.Context, messageId string) (entity.Message, error)
	Send(ctx context.Context, actor entity.User, req entity.SendMessageRequest) (entity.Message, error)
	Edit(ctx context.Context, actor entity.User, messageId string, req entity.EditMessageRequest) (entity.Message, error)
	Delete(ctx context.Context, actor entity.User, messageId string) error
	React(ctx context.Context, actor entity.User, messageId string, req entity.ReactionRequest) (entity.Message, error)
	Summary(ctx context.Context, limit int) (entity.ChatSummary, error)
}

type messageUsecase struct {
	messageRepo   repository.MessageRepository
	effects       *Effects
	publisher     EventPublisher
	validator     *validator.Validate
	logger        *zap.Logger
	summaryWindow int
	now           Clock
}

func NewMessageUseCase(messageRepo repository.MessageRepository, effects *Effects, publisher EventPublisher, validate *validator.Validate, logger *zap.Logger, summaryWindow int) MessageUsecase {
	if publisher == nil {
		publisher = NopPublisher()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if summaryWindow <= 0 {
		summaryWindow = 100
	}
	return &messageUsecase{
		messageRepo:   messageRepo,
		effects:       effects,
		publisher:     publisher,
		validator:     validate,
		logger:        logger,
		summaryWindow: summaryWindow,
		now:           time.Now,
	}
}

func (u *messageUsecase) Index(ctx context.Context, filter entity.MessageIndexFilter) entity.Page[entity.Message] {
	filter.PageRequest = filter.PageRequest.Normalize(DefaultMessageLimit)
	messages, total, err := u.messageRepo.Index(ctx, filter)
	if err != nil {
		u.logger.Warn("list messages degraded to empty page", zap.Error(err))
		return entity.EmptyPage[entity.Message](filter.PageRequest)
	}
	return entity.NewPage(messages, total, filter.PageRequest)
}

func (u *messageUsecase) Get(ctx context.Context, messageId string) (entity.Message, error) {
	message, err := u.messageRepo.Get(ctx, messageId)
	if err != nil {
		return entity.Message{}, storeError(err, "message not found")
	}
	return message, nil
}

func (u *messageUsecase) Send(ctx context.Context, actor entity.User, req entity.SendMessageRequest) (entity.Message, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := u.validator.Struct(req); err != nil {
		return entity.Message{}, validationError(err)
	}

	message := entity.Message{
		Content:     req.Content,
		AuthorId:    actor.Id,
		AuthorName:  actor.Name,
		AuthorBatch: actor.Batch,
		Timestamp:   u.now(),
		Reactions:   []entity.Reaction{},
	}

	id, err := u.messageRepo.Create(ctx, message)
	if err != nil {
		if !errors.Is(err, repository.ErrUnavailable) {
			return entity.Message{}, storeError(err, "message not found")
		}
		u.logger.Warn("message not persisted, returning temporary id", zap.String("user_id", actor.Id), zap.Error(err))
		message.Id = newTempId()
		return message, nil
	}
	message.Id = id

	u.effects.Reward(ctx, actor.Id, entity.ActivityMessageSent, PointsMessageSent, message.Id)
	u.publisher.Broadcast(ctx, entity.Event{Name: entity.EventMessageReceive, Data: message})

	return message, nil
}

func (u *messageUsecase) Edit(ctx context.Context, actor entity.User, messageId string, req entity.EditMessageRequest) (entity.Message, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := u.validator.Struct(req); err != nil {
		return entity.Message{}, validationError(err)
	}

	existing, err := u.Get(ctx, messageId)
	if err != nil {
		return entity.Message{}, err
	}
	if existing.AuthorId != actor.Id {
		return entity.Message{}, apperror.Forbidden("only the author can edit this message")
	}

	message, err := u.messageRepo.UpdateContent(ctx, messageId, req.Content, u.now())
	if err != nil {
		return entity.Message{}, storeError(err, "message not found")
	}

	u.publisher.Broadcast(ctx, entity.Event{Name: entity.EventMessageEdit, Data: message})
	return message, nil
}

func (u *messageUsecase) Delete(ctx context.Context, actor entity.User, messageId string) error {
	existing, err := u.Get(ctx, messageId)
	if err != nil {
		return err
	}
	if existing.AuthorId != actor.Id && !actor.IsAdmin() {
		return apperror.Forbidden("only the author or an admin can delete this message")
	}

	if err := u.messageRepo.Delete(ctx, messageId); err != nil {
		return storeError(err, "message not found")
	}

	u.publisher.Broadcast(ctx, entity.Event{Name: entity.EventMessageDelete, Data: entity.MessageDeleted{MessageId: messageId}})
	return nil
}

func (u *messageUsecase) React(ctx context.Context, actor entity.User, messageId string, req entity.ReactionRequest) (entity.Message, error) {
	req.Emoji = strings.TrimSpace(req.Emoji)
	if err := u.validator.Struct(req); err != nil {
		return entity.Message{}, validationError(err)
	}

	message, err := u.messageRepo.ToggleReaction(ctx, messageId, req.Emoji, actor.Id)
	if err != nil {
		return entity.Message{}, storeError(err, "message not found")
	}

	u.publisher.Broadcast(ctx, entity.Event{Name: entity.EventMessageReaction, Data: message})
	return message, nil
}

func (u *messageUsecase) Summary(ctx context.Context, limit int) (entity.ChatSummary, error) {
	if limit <= 0 || limit > u.summaryWindow {
		limit = u.summaryWindow
	}

	messages, err := u.messageRepo.Recent(ctx, limit)
	if err != nil {
		u.logger.Warn("summary over empty window", zap.Error(err))
		messages = nil
	}
	return BuildSummary(messages), nil
}
