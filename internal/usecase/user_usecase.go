package usecase

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"campusbuddy/internal/entity"
	"campusbuddy/internal/repository"
	"campusbuddy/pkg/apperror"
)

// PresenceReader lists users that currently hold a realtime connection.
type PresenceReader interface {
	OnlineUsers(ctx context.Context) ([]string, error)
}

type UserUsecase interface {
	Get(ctx context.Context, userId string) (entity.User, error)
	Index(ctx context.Context, filter entity.UserIndexFilter) entity.Page[entity.User]
	Online(ctx context.Context) ([]entity.User, error)
	UpdateProfile(ctx context.Context, actor entity.User, req entity.UpdateProfileRequest) (entity.User, error)
	UpdateRole(ctx context.Context, actor entity.User, userId string, req entity.UpdateRoleRequest) (entity.User, error)
	RevokeTokens(ctx context.Context, actor entity.User, userId string) error
	Activity(ctx context.Context, actor entity.User, filter entity.ActivityIndexFilter) (entity.Page[entity.Activity], error)
}

type userUsecase struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
	presence     PresenceReader
	validator    *validator.Validate
	logger       *zap.Logger
	now          Clock
}

func NewUserUseCase(userRepo repository.UserRepository, activityRepo repository.ActivityRepository, presence PresenceReader, validate *validator.Validate, logger *zap.Logger) UserUsecase {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &userUsecase{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		presence:     presence,
		validator:    validate,
		logger:       logger,
		now:          time.Now,
	}
}

func (u *userUsecase) Get(ctx context.Context, userId string) (entity.User, error) {
	user, err := u.userRepo.Get(ctx, userId)
	if err != nil {
		return entity.User{}, storeError(err, "user not found")
	}
	return user, nil
}

func (u *userUsecase) Index(ctx context.Context, filter entity.UserIndexFilter) entity.Page[entity.User] {
	filter.PageRequest = filter.PageRequest.Normalize(DefaultListLimit)
	users, total, err := u.userRepo.Index(ctx, filter)
	if err != nil {
		u.logger.Warn("list users degraded to empty page", zap.Error(err))
		return entity.EmptyPage[entity.User](filter.PageRequest)
	}
	return entity.NewPage(users, total, filter.PageRequest)
}

// Online resolves the presence map into profiles. Ids whose profile cannot be
// read are still reported with the id alone.
func (u *userUsecase) Online(ctx context.Context) ([]entity.User, error) {
	ids, err := u.presence.OnlineUsers(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrUnavailable, "presence store unavailable")
	}

	users, err := u.userRepo.GetMany(ctx, ids)
	if err != nil {
		u.logger.Warn("online profiles unavailable", zap.Error(err))
		users = nil
	}

	known := make(map[string]bool, len(users))
	for _, user := range users {
		known[user.Id] = true
	}
	for _, id := range ids {
		if !known[id] {
			users = append(users, entity.User{Id: id, Badges: []entity.EarnedBadge{}})
		}
	}
	for i := range users {
		users[i].IsOnline = true
	}
	if users == nil {
		users = []entity.User{}
	}
	return users, nil
}

func (u *userUsecase) UpdateProfile(ctx context.Context, actor entity.User, req entity.UpdateProfileRequest) (entity.User, error) {
	trimPtr(req.Name)
	trimPtr(req.Batch)
	if err := u.validator.Struct(req); err != nil {
		return entity.User{}, validationError(err)
	}

	user, err := u.userRepo.UpdateProfile(ctx, actor.Id, req, u.now())
	if err != nil {
		return entity.User{}, storeError(err, "user not found")
	}
	return user, nil
}

func (u *userUsecase) UpdateRole(ctx context.Context, actor entity.User, userId string, req entity.UpdateRoleRequest) (entity.User, error) {
	if !actor.IsAdmin() {
		return entity.User{}, apperror.Forbidden("only admins can change roles")
	}
	if err := u.validator.Struct(req); err != nil {
		return entity.User{}, validationError(err)
	}

	user, err := u.userRepo.UpdateRole(ctx, userId, entity.Role(req.Role), u.now())
	if err != nil {
		return entity.User{}, storeError(err, "user not found")
	}
	return user, nil
}

// RevokeTokens invalidates every token issued to the user before now.
func (u *userUsecase) RevokeTokens(ctx context.Context, actor entity.User, userId string) error {
	if !actor.IsAdmin() {
		return apperror.Forbidden("only admins can revoke sessions")
	}
	if err := u.userRepo.RevokeTokens(ctx, userId, u.now()); err != nil {
		return storeError(err, "user not found")
	}
	return nil
}

func (u *userUsecase) Activity(ctx context.Context, actor entity.User, filter entity.ActivityIndexFilter) (entity.Page[entity.Activity], error) {
	filter.PageRequest = filter.PageRequest.Normalize(DefaultListLimit)
	if filter.UserId != actor.Id && !actor.IsAdmin() {
		return entity.Page[entity.Activity]{}, apperror.Forbidden("cannot view another user's activity")
	}

	items, total, err := u.activityRepo.Index(ctx, filter)
	if err != nil {
		u.logger.Warn("list activity degraded to empty page", zap.Error(err))
		return entity.EmptyPage[entity.Activity](filter.PageRequest), nil
	}
	return entity.NewPage(items, total, filter.PageRequest), nil
}
