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

const (
	DefaultPopularKeywords = 10
	MaxPopularKeywords     = 50
)

type CampusStatusUsecase interface {
	Index(ctx context.Context, filter entity.StatusIndexFilter) entity.Page[entity.CampusStatus]
	Search(ctx context.Context, query string, req entity.PageRequest) entity.Page[entity.CampusStatus]
	Get(ctx context.Context, statusId string) (entity.CampusStatus, error)
	Upsert(ctx context.Context, actor entity.User, req entity.CampusStatusRequest) (entity.CampusStatus, error)
	Update(ctx context.Context, actor entity.User, statusId string, req entity.UpdateCampusStatusRequest) (entity.CampusStatus, error)
	Delete(ctx context.Context, actor entity.User, statusId string) error
	PopularKeywords(ctx context.Context, limit int) []entity.KeywordCount
}

type campusStatusUsecase struct {
	statusRepo repository.CampusStatusRepository
	effects    *Effects
	publisher  EventPublisher
	validator  *validator.Validate
	logger     *zap.Logger
	now        Clock
}

func NewCampusStatusUsecase(statusRepo repository.CampusStatusRepository, effects *Effects, publisher EventPublisher, validate *validator.Validate, logger *zap.Logger) CampusStatusUsecase {
	if publisher == nil {
		publisher = NopPublisher()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &campusStatusUsecase{
		statusRepo: statusRepo,
		effects:    effects,
		publisher:  publisher,
		validator:  validate,
		logger:     logger,
		now:        time.Now,
	}
}

func (u *campusStatusUsecase) Index(ctx context.Context, filter entity.StatusIndexFilter) entity.Page[entity.CampusStatus] {
	filter.Keyword = strings.ToLower(strings.TrimSpace(filter.Keyword))
	filter.Query = strings.TrimSpace(filter.Query)
	filter.PageRequest = filter.PageRequest.Normalize(DefaultListLimit)
	statuses, total, err := u.statusRepo.Index(ctx, filter)
	if err != nil {
		u.logger.Warn("list campus status degraded to empty page", zap.Error(err))
		return entity.EmptyPage[entity.CampusStatus](filter.PageRequest)
	}
	return entity.NewPage(statuses, total, filter.PageRequest)
}

func (u *campusStatusUsecase) Search(ctx context.Context, query string, req entity.PageRequest) entity.Page[entity.CampusStatus] {
	return u.Index(ctx, entity.StatusIndexFilter{Query: query, PageRequest: req})
}

func (u *campusStatusUsecase) Get(ctx context.Context, statusId string) (entity.CampusStatus, error) {
	status, err := u.statusRepo.Get(ctx, statusId)
	if err != nil {
		return entity.CampusStatus{}, storeError(err, "status not found")
	}
	return status, nil
}

// Upsert reports the current state of a facility. Reports for the same facility
// name, ignoring case and spacing, overwrite one document.
func (u *campusStatusUsecase) Upsert(ctx context.Context, actor entity.User, req entity.CampusStatusRequest) (entity.CampusStatus, error) {
	req.Facility = strings.Join(strings.Fields(req.Facility), " ")
	req.Description = strings.TrimSpace(req.Description)
	if err := u.validator.Struct(req); err != nil {
		return entity.CampusStatus{}, validationError(err)
	}

	now := u.now()
	status := entity.CampusStatus{
		Facility:      req.Facility,
		FacilityKey:   entity.FacilityKey(req.Facility),
		Status:        entity.FacilityStatus(req.Status),
		Description:   req.Description,
		Keywords:      entity.NormalizeKeywords(req.Keywords),
		LastUpdated:   now,
		UpdatedBy:     actor.Id,
		UpdatedByName: actor.Name,
		CreatedAt:     now,
	}

	stored, err := u.statusRepo.Upsert(ctx, status)
	if err != nil {
		if !errors.Is(err, repository.ErrUnavailable) {
			return entity.CampusStatus{}, storeError(err, "status not found")
		}
		u.logger.Warn("campus status not persisted, returning temporary id", zap.String("facility", status.Facility), zap.Error(err))
		status.Id = newTempId()
		return status, nil
	}

	u.announce(ctx, actor, stored)
	return stored, nil
}

func (u *campusStatusUsecase) Update(ctx context.Context, actor entity.User, statusId string, req entity.UpdateCampusStatusRequest) (entity.CampusStatus, error) {
	trimPtr(req.Description)
	if err := u.validator.Struct(req); err != nil {
		return entity.CampusStatus{}, validationError(err)
	}

	patch := entity.CampusStatusPatch{
		Description:   req.Description,
		UpdatedBy:     actor.Id,
		UpdatedByName: actor.Name,
		At:            u.now(),
	}
	if req.Status != nil {
		status := entity.FacilityStatus(*req.Status)
		patch.Status = &status
	}
	if req.Keywords != nil {
		patch.Keywords = entity.NormalizeKeywords(req.Keywords)
	}

	updated, err := u.statusRepo.Update(ctx, statusId, patch)
	if err != nil {
		return entity.CampusStatus{}, storeError(err, "status not found")
	}

	u.announce(ctx, actor, updated)
	return updated, nil
}

func (u *campusStatusUsecase) announce(ctx context.Context, actor entity.User, status entity.CampusStatus) {
	u.effects.Reward(ctx, actor.Id, entity.ActivityStatusUpdated, PointsStatusUpdated, status.Id)
	u.publisher.Broadcast(ctx, entity.Event{Name: entity.EventStatusUpdate, Data: status})
}

func (u *campusStatusUsecase) Delete(ctx context.Context, actor entity.User, statusId string) error {
	if !actor.IsAdmin() {
		return apperror.Forbidden("only admins can delete a facility status")
	}
	if err := u.statusRepo.Delete(ctx, statusId); err != nil {
		return storeError(err, "status not found")
	}
	return nil
}

func (u *campusStatusUsecase) PopularKeywords(ctx context.Context, limit int) []entity.KeywordCount {
	if limit <= 0 {
		limit = DefaultPopularKeywords
	}
	if limit > MaxPopularKeywords {
		limit = MaxPopularKeywords
	}
	counts, err := u.statusRepo.PopularKeywords(ctx, limit)
	if err != nil {
		u.logger.Warn("popular keywords degraded to empty list", zap.Error(err))
		return []entity.KeywordCount{}
	}
	return counts
}
