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

type AnnouncementUsecase interface {
	Index(ctx context.Context, filter entity.AnnouncementIndexFilter) entity.Page[entity.Announcement]
	Get(ctx context.Context, announcementId string) (entity.Announcement, error)
	Create(ctx context.Context, actor entity.User, req entity.CreateAnnouncementRequest) (entity.Announcement, error)
	Update(ctx context.Context, actor entity.User, announcementId string, req entity.UpdateAnnouncementRequest) (entity.Announcement, error)
	Delete(ctx context.Context, actor entity.User, announcementId string) error
	ToggleLike(ctx context.Context, actor entity.User, announcementId string) (entity.LikeResult, error)
}

type announcementUsecase struct {
	announcementRepo repository.AnnouncementRepository
	effects          *Effects
	publisher        EventPublisher
	validator        *validator.Validate
	logger           *zap.Logger
	now              Clock
}

func NewAnnouncementUsecase(announcementRepo repository.AnnouncementRepository, effects *Effects, publisher EventPublisher, validate *validator.Validate, logger *zap.Logger) AnnouncementUsecase {
	if publisher == nil {
		publisher = NopPublisher()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &announcementUsecase{
		announcementRepo: announcementRepo,
		effects:          effects,
		publisher:        publisher,
		validator:        validate,
		logger:           logger,
		now:              time.Now,
	}
}

func (u *announcementUsecase) Index(ctx context.Context, filter entity.AnnouncementIndexFilter) entity.Page[entity.Announcement] {
	filter.PageRequest = filter.PageRequest.Normalize(DefaultListLimit)
	filter.ActiveAt = u.now()
	items, total, err := u.announcementRepo.Index(ctx, filter)
	if err != nil {
		u.logger.Warn("list announcements degraded to empty page", zap.Error(err))
		return entity.EmptyPage[entity.Announcement](filter.PageRequest)
	}
	return entity.NewPage(items, total, filter.PageRequest)
}

// Get counts a view on every read.
func (u *announcementUsecase) Get(ctx context.Context, announcementId string) (entity.Announcement, error) {
	announcement, err := u.announcementRepo.IncrementViews(ctx, announcementId)
	if err != nil {
		return entity.Announcement{}, storeError(err, "announcement not found")
	}
	return announcement, nil
}

func normalizeTags(tags []string) []string {
	return entity.NormalizeKeywords(tags)
}

func (u *announcementUsecase) Create(ctx context.Context, actor entity.User, req entity.CreateAnnouncementRequest) (entity.Announcement, error) {
	if !actor.HasRole(entity.RoleAdmin, entity.RoleSocietyHead) {
		return entity.Announcement{}, apperror.Forbidden("only admins and society heads can post announcements")
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := u.validator.Struct(req); err != nil {
		return entity.Announcement{}, validationError(err)
	}

	now := u.now()
	expiresAt := now.Add(entity.DefaultAnnouncementLifetime)
	if req.ExpiresAt != nil {
		if !req.ExpiresAt.After(now) {
			return entity.Announcement{}, apperror.Validation("expiresAt must be in the future")
		}
		expiresAt = *req.ExpiresAt
	}
	priority := entity.PriorityMedium
	if req.Priority != "" {
		priority = entity.Priority(req.Priority)
	}

	announcement := entity.Announcement{
		Title:      req.Title,
		Content:    req.Content,
		AuthorId:   actor.Id,
		AuthorName: actor.Name,
		Priority:   priority,
		Tags:       normalizeTags(req.Tags),
		Timestamp:  now,
		ExpiresAt:  expiresAt,
		UpdatedAt:  now,
	}

	id, err := u.announcementRepo.Create(ctx, announcement)
	if err != nil {
		if !errors.Is(err, repository.ErrUnavailable) {
			return entity.Announcement{}, storeError(err, "announcement not found")
		}
		u.logger.Warn("announcement not persisted, returning temporary id", zap.String("user_id", actor.Id), zap.Error(err))
		announcement.Id = newTempId()
		return announcement, nil
	}
	announcement.Id = id

	u.effects.Reward(ctx, actor.Id, entity.ActivityAnnouncementPosted, PointsAnnouncementPosted, id)
	u.publisher.Broadcast(ctx, entity.Event{Name: entity.EventAnnouncementNew, Data: announcement})

	return announcement, nil
}

func (u *announcementUsecase) load(ctx context.Context, announcementId string) (entity.Announcement, error) {
	announcement, err := u.announcementRepo.Get(ctx, announcementId)
	if err != nil {
		return entity.Announcement{}, storeError(err, "announcement not found")
	}
	return announcement, nil
}

func (u *announcementUsecase) Update(ctx context.Context, actor entity.User, announcementId string, req entity.UpdateAnnouncementRequest) (entity.Announcement, error) {
	trimPtr(req.Title)
	trimPtr(req.Content)
	if err := u.validator.Struct(req); err != nil {
		return entity.Announcement{}, validationError(err)
	}

	announcement, err := u.load(ctx, announcementId)
	if err != nil {
		return entity.Announcement{}, err
	}
	if announcement.AuthorId != actor.Id {
		return entity.Announcement{}, apperror.Forbidden("only the author can edit this announcement")
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Content != nil {
		announcement.Content = *req.Content
	}
	if req.Priority != nil {
		announcement.Priority = entity.Priority(*req.Priority)
	}
	if req.Tags != nil {
		announcement.Tags = normalizeTags(req.Tags)
	}
	if req.ExpiresAt != nil {
		announcement.ExpiresAt = *req.ExpiresAt
	}
	announcement.UpdatedAt = u.now()

	updated, err := u.announcementRepo.Update(ctx, announcement)
	if err != nil {
		return entity.Announcement{}, storeError(err, "announcement not found")
	}
	return updated, nil
}

func (u *announcementUsecase) Delete(ctx context.Context, actor entity.User, announcementId string) error {
	announcement, err := u.load(ctx, announcementId)
	if err != nil {
		return err
	}
	if announcement.AuthorId != actor.Id && !actor.IsAdmin() {
		return apperror.Forbidden("only the author or an admin can delete this announcement")
	}

	if err := u.announcementRepo.Delete(ctx, announcementId); err != nil {
		return storeError(err, "announcement not found")
	}
	return nil
}

// ToggleLike likes the announcement, or removes the caller's existing like.
func (u *announcementUsecase) ToggleLike(ctx context.Context, actor entity.User, announcementId string) (entity.LikeResult, error) {
	announcement, err := u.load(ctx, announcementId)
	if err != nil {
		return entity.LikeResult{}, err
	}

	liked, err := u.announcementRepo.HasLiked(ctx, announcementId, actor.Id)
	if err != nil {
		return entity.LikeResult{}, storeError(err, "announcement not found")
	}

	if liked {
		removed, err := u.announcementRepo.RemoveLike(ctx, announcementId, actor.Id)
		if err != nil {
			return entity.LikeResult{}, storeError(err, "announcement not found")
		}
		if removed {
			if announcement, err = u.announcementRepo.AdjustLikes(ctx, announcementId, -1); err != nil {
				return entity.LikeResult{}, storeError(err, "announcement not found")
			}
		}
		return entity.LikeResult{Announcement: announcement, Liked: false}, nil
	}

	err = u.announcementRepo.AddLike(ctx, entity.AnnouncementLike{
		AnnouncementId: announcementId,
		UserId:         actor.Id,
		CreatedAt:      u.now(),
	})
	if errors.Is(err, repository.ErrDuplicate) {
		// A concurrent request from the same user already liked it.
		return entity.LikeResult{Announcement: announcement, Liked: true}, nil
	}
	if err != nil {
		return entity.LikeResult{}, storeError(err, "announcement not found")
	}

	if announcement, err = u.announcementRepo.AdjustLikes(ctx, announcementId, 1); err != nil {
		return entity.LikeResult{}, storeError(err, "announcement not found")
	}
	return entity.LikeResult{Announcement: announcement, Liked: true}, nil
}
