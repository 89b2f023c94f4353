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

var errAlreadyReturned = apperror.Validation("item already returned")

type LostFoundUsecase interface {
	Index(ctx context.Context, filter entity.LostFoundIndexFilter) entity.Page[entity.LostFoundItem]
	Get(ctx context.Context, itemId string) (entity.LostFoundItem, error)
	Create(ctx context.Context, actor entity.User, req entity.CreateLostFoundRequest) (entity.LostFoundItem, error)
	Update(ctx context.Context, actor entity.User, itemId string, req entity.UpdateLostFoundRequest) (entity.LostFoundItem, error)
	Delete(ctx context.Context, actor entity.User, itemId string) error
	MarkReturned(ctx context.Context, actor entity.User, itemId string) (entity.LostFoundItem, error)
}

type lostFoundUsecase struct {
	itemRepo  repository.LostFoundRepository
	effects   *Effects
	publisher EventPublisher
	validator *validator.Validate
	logger    *zap.Logger
	now       Clock
}

func NewLostFoundUsecase(itemRepo repository.LostFoundRepository, effects *Effects, publisher EventPublisher, validate *validator.Validate, logger *zap.Logger) LostFoundUsecase {
	if publisher == nil {
		publisher = NopPublisher()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &lostFoundUsecase{
		itemRepo:  itemRepo,
		effects:   effects,
		publisher: publisher,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

func (u *lostFoundUsecase) Index(ctx context.Context, filter entity.LostFoundIndexFilter) entity.Page[entity.LostFoundItem] {
	filter.PageRequest = filter.PageRequest.Normalize(DefaultListLimit)
	items, total, err := u.itemRepo.Index(ctx, filter)
	if err != nil {
		u.logger.Warn("list lost-found degraded to empty page", zap.Error(err))
		return entity.EmptyPage[entity.LostFoundItem](filter.PageRequest)
	}
	return entity.NewPage(items, total, filter.PageRequest)
}

func (u *lostFoundUsecase) Get(ctx context.Context, itemId string) (entity.LostFoundItem, error) {
	item, err := u.itemRepo.Get(ctx, itemId)
	if err != nil {
		return entity.LostFoundItem{}, storeError(err, "item not found")
	}
	return item, nil
}

func (u *lostFoundUsecase) Create(ctx context.Context, actor entity.User, req entity.CreateLostFoundRequest) (entity.LostFoundItem, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Location = strings.TrimSpace(req.Location)
	req.ContactInfo = strings.TrimSpace(req.ContactInfo)
	if err := u.validator.Struct(req); err != nil {
		return entity.LostFoundItem{}, validationError(err)
	}

	now := u.now()
	item := entity.LostFoundItem{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Status:       entity.LostFoundStatus(req.Status),
		ReporterId:   actor.Id,
		ReporterName: actor.Name,
		Location:     req.Location,
		ContactInfo:  req.ContactInfo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := u.itemRepo.Create(ctx, item)
	if err != nil {
		if !errors.Is(err, repository.ErrUnavailable) {
			return entity.LostFoundItem{}, storeError(err, "item not found")
		}
		u.logger.Warn("lost-found item not persisted, returning temporary id", zap.String("user_id", actor.Id), zap.Error(err))
		item.Id = newTempId()
		return item, nil
	}
	item.Id = id

	u.effects.Reward(ctx, actor.Id, entity.ActivityLostFoundReported, PointsLostFoundReported, id)
	return item, nil
}

func (u *lostFoundUsecase) Update(ctx context.Context, actor entity.User, itemId string, req entity.UpdateLostFoundRequest) (entity.LostFoundItem, error) {
	trimPtr(req.Title)
	trimPtr(req.Description)
	trimPtr(req.Location)
	trimPtr(req.ContactInfo)
	if err := u.validator.Struct(req); err != nil {
		return entity.LostFoundItem{}, validationError(err)
	}

	item, err := u.Get(ctx, itemId)
	if err != nil {
		return entity.LostFoundItem{}, err
	}
	if item.ReporterId != actor.Id {
		return entity.LostFoundItem{}, apperror.Forbidden("only the reporter can edit this item")
	}
	if item.Status == entity.LostFoundReturned {
		return entity.LostFoundItem{}, errAlreadyReturned
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Status != nil {
		item.Status = entity.LostFoundStatus(*req.Status)
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.ContactInfo != nil {
		item.ContactInfo = *req.ContactInfo
	}
	item.UpdatedAt = u.now()

	updated, err := u.itemRepo.Update(ctx, item)
	if errors.Is(err, repository.ErrNotFound) {
		// Returned between the read and the write.
		return entity.LostFoundItem{}, errAlreadyReturned
	}
	if err != nil {
		return entity.LostFoundItem{}, storeError(err, "item not found")
	}
	return updated, nil
}

func (u *lostFoundUsecase) Delete(ctx context.Context, actor entity.User, itemId string) error {
	item, err := u.Get(ctx, itemId)
	if err != nil {
		return err
	}
	if item.ReporterId != actor.Id && !actor.IsAdmin() {
		return apperror.Forbidden("only the reporter or an admin can delete this item")
	}

	if err := u.itemRepo.Delete(ctx, itemId); err != nil {
		return storeError(err, "item not found")
	}
	return nil
}

// MarkReturned is terminal: a second call on the same item is rejected.
// The reporter and, when different, the resolver each receive the return bonus.
func (u *lostFoundUsecase) MarkReturned(ctx context.Context, actor entity.User, itemId string) (entity.LostFoundItem, error) {
	item, err := u.Get(ctx, itemId)
	if err != nil {
		return entity.LostFoundItem{}, err
	}
	if item.Status == entity.LostFoundReturned {
		return entity.LostFoundItem{}, errAlreadyReturned
	}

	returned, err := u.itemRepo.MarkReturned(ctx, itemId, actor.Id, u.now())
	if errors.Is(err, repository.ErrNotFound) {
		return entity.LostFoundItem{}, errAlreadyReturned
	}
	if err != nil {
		return entity.LostFoundItem{}, storeError(err, "item not found")
	}

	u.effects.Reward(ctx, returned.ReporterId, entity.ActivityLostFoundReturned, PointsLostFoundReturned, itemId)
	if actor.Id != returned.ReporterId {
		u.effects.Reward(ctx, actor.Id, entity.ActivityLostFoundReturned, PointsLostFoundReturned, itemId)
		u.publisher.NotifyUser(ctx, returned.ReporterId, entity.Event{
			Name: entity.EventNotification,
			Data: entity.Notification{
				Type:    "lost_found_returned",
				Title:   "Item returned",
				Message: actor.Name + " marked \"" + returned.Title + "\" as returned",
				RefId:   itemId,
			},
		})
	}

	return returned, nil
}
