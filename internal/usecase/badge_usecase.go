package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"campusbuddy/internal/entity"
	"campusbuddy/internal/repository"
	"campusbuddy/pkg/apperror"
)

// badgeRule grants Badge once Earned reports true for the user's totals.
type badgeRule struct {
	Badge  entity.Badge
	Earned func(stats entity.ActivityStats, points int) bool
}

func atLeast(kind entity.ActivityType, n int) func(entity.ActivityStats, int) bool {
	return func(stats entity.ActivityStats, _ int) bool { return stats[kind] >= n }
}

func pointsAtLeast(n int) func(entity.ActivityStats, int) bool {
	return func(_ entity.ActivityStats, points int) bool { return points >= n }
}

// badgeRules is evaluated top to bottom on every automatic check.
var badgeRules = []badgeRule{
	{
		Badge:  entity.Badge{Id: "first_message", Name: "First Words", Description: "Sent your first chat message", Icon: "💬", Category: "chat"},
		Earned: atLeast(entity.ActivityMessageSent, 1),
	},
	{
		Badge:  entity.Badge{Id: "chatterbox", Name: "Chatterbox", Description: "Sent 100 chat messages", Icon: "🗣️", Category: "chat"},
		Earned: atLeast(entity.ActivityMessageSent, 100),
	},
	{
		Badge:  entity.Badge{Id: "good_samaritan", Name: "Good Samaritan", Description: "Helped return a lost item", Icon: "🤝", Category: "community"},
		Earned: atLeast(entity.ActivityLostFoundReturned, 1),
	},
	{
		Badge:  entity.Badge{Id: "lost_found_helper", Name: "Lost & Found Helper", Description: "Reported 5 lost or found items", Icon: "🔍", Category: "community"},
		Earned: atLeast(entity.ActivityLostFoundReported, 5),
	},
	{
		Badge:  entity.Badge{Id: "mood_tracker", Name: "Mood Tracker", Description: "Logged your mood 7 times", Icon: "🌈", Category: "wellbeing"},
		Earned: atLeast(entity.ActivityMoodLogged, 7),
	},
	{
		Badge:  entity.Badge{Id: "campus_reporter", Name: "Campus Reporter", Description: "Posted 10 facility status updates", Icon: "📡", Category: "community"},
		Earned: atLeast(entity.ActivityStatusUpdated, 10),
	},
	{
		Badge:  entity.Badge{Id: "rising_star", Name: "Rising Star", Description: "Earned 100 points", Icon: "⭐", Category: "points"},
		Earned: pointsAtLeast(100),
	},
	{
		Badge:  entity.Badge{Id: "campus_legend", Name: "Campus Legend", Description: "Earned 1000 points", Icon: "🏆", Category: "points"},
		Earned: pointsAtLeast(1000),
	},
}

type BadgeUsecase interface {
	Catalog(ctx context.Context) []entity.Badge
	Create(ctx context.Context, actor entity.User, req entity.CreateBadgeRequest) (entity.Badge, error)
	UserBadges(ctx context.Context, userId string) ([]entity.EarnedBadge, error)
	Award(ctx context.Context, actor entity.User, req entity.AwardBadgeRequest) (entity.User, error)
	CheckAutomatic(ctx context.Context, actor entity.User) ([]entity.EarnedBadge, error)
}

type badgeUsecase struct {
	badgeRepo    repository.BadgeRepository
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
	effects      *Effects
	publisher    EventPublisher
	validator    *validator.Validate
	logger       *zap.Logger
	now          Clock
}

func NewBadgeUsecase(badgeRepo repository.BadgeRepository, userRepo repository.UserRepository, activityRepo repository.ActivityRepository, effects *Effects, publisher EventPublisher, validate *validator.Validate, logger *zap.Logger) BadgeUsecase {
	if publisher == nil {
		publisher = NopPublisher()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &badgeUsecase{
		badgeRepo:    badgeRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		effects:      effects,
		publisher:    publisher,
		validator:    validate,
		logger:       logger,
		now:          time.Now,
	}
}

func (u *badgeUsecase) Catalog(ctx context.Context) []entity.Badge {
	badges, err := u.badgeRepo.Index(ctx)
	if err != nil {
		u.logger.Warn("badge catalog degraded to empty list", zap.Error(err))
		return []entity.Badge{}
	}
	return badges
}

func (u *badgeUsecase) Create(ctx context.Context, actor entity.User, req entity.CreateBadgeRequest) (entity.Badge, error) {
	if !actor.IsAdmin() {
		return entity.Badge{}, apperror.Forbidden("only admins can create badges")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)
	if err := u.validator.Struct(req); err != nil {
		return entity.Badge{}, validationError(err)
	}

	id := slug(req.Id)
	if id == "" {
		id = slug(req.Name)
	}
	if id == "" {
		return entity.Badge{}, apperror.Validation("id must contain letters or digits")
	}

	badge := entity.Badge{
		Id:          id,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Category:    req.Category,
		CreatedAt:   u.now(),
	}
	if err := u.badgeRepo.Create(ctx, badge); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return entity.Badge{}, apperror.Conflict(fmt.Sprintf("badge %q already exists", id))
		}
		return entity.Badge{}, storeError(err, "badge not found")
	}
	return badge, nil
}

func (u *badgeUsecase) UserBadges(ctx context.Context, userId string) ([]entity.EarnedBadge, error) {
	user, err := u.userRepo.Get(ctx, userId)
	if err != nil {
		return nil, storeError(err, "user not found")
	}
	if user.Badges == nil {
		return []entity.EarnedBadge{}, nil
	}
	return user.Badges, nil
}

func (u *badgeUsecase) Award(ctx context.Context, actor entity.User, req entity.AwardBadgeRequest) (entity.User, error) {
	if !actor.HasRole(entity.RoleAdmin, entity.RoleSocietyHead) {
		return entity.User{}, apperror.Forbidden("only admins and society heads can award badges")
	}
	if err := u.validator.Struct(req); err != nil {
		return entity.User{}, validationError(err)
	}

	badge, err := u.badgeRepo.Get(ctx, req.BadgeId)
	if err != nil {
		return entity.User{}, storeError(err, "badge not found")
	}
	return u.grant(ctx, req.UserId, badge)
}

// grant performs the award in one update: the badge is pushed and the bonus
// added only if the user does not hold it yet.
func (u *badgeUsecase) grant(ctx context.Context, userId string, badge entity.Badge) (entity.User, error) {
	earned := badge.Earned(u.now())
	user, err := u.userRepo.AwardBadge(ctx, userId, earned, PointsBadgeAwarded)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return entity.User{}, apperror.Conflict("badge already awarded")
	case err != nil:
		return entity.User{}, storeError(err, "user not found")
	}

	u.effects.Log(ctx, userId, entity.ActivityBadgeEarned, PointsBadgeAwarded, badge.Id)
	u.publisher.NotifyUser(ctx, userId, entity.Event{
		Name: entity.EventNotification,
		Data: entity.Notification{
			Type:    "badge_earned",
			Title:   "New badge earned!",
			Message: fmt.Sprintf("You earned the %s badge", badge.Name),
			RefId:   badge.Id,
		},
	})
	return user, nil
}

// CheckAutomatic awards every rule badge the caller newly qualifies for.
// Points gained from one award count towards later rules in the same check.
func (u *badgeUsecase) CheckAutomatic(ctx context.Context, actor entity.User) ([]entity.EarnedBadge, error) {
	user, err := u.userRepo.Get(ctx, actor.Id)
	if err != nil {
		return nil, storeError(err, "user not found")
	}
	stats, err := u.activityRepo.Stats(ctx, actor.Id)
	if err != nil {
		return nil, storeError(err, "user not found")
	}

	awarded := []entity.EarnedBadge{}
	for _, rule := range badgeRules {
		if user.HasBadge(rule.Badge.Id) || !rule.Earned(stats, user.Points) {
			continue
		}

		template := rule.Badge
		template.CreatedAt = u.now()
		badge, err := u.badgeRepo.Ensure(ctx, template)
		if err != nil {
			return awarded, storeError(err, "badge not found")
		}

		updated, err := u.grant(ctx, user.Id, badge)
		if apperror.IsKind(err, apperror.KindConflict) {
			continue
		}
		if err != nil {
			return awarded, err
		}
		user = updated
		awarded = append(awarded, updated.Badges[len(updated.Badges)-1])
	}
	return awarded, nil
}

func slug(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
