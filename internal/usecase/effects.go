package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"campusbuddy/internal/entity"
	"campusbuddy/internal/repository"
)

// Points awarded per action.
const (
	PointsMessageSent        = 1
	PointsLostFoundReported  = 2
	PointsLostFoundReturned  = 10
	PointsMoodLogged         = 2
	PointsStatusUpdated      = 3
	PointsAnnouncementPosted = 5
	PointsBadgeAwarded       = 10
)

// FailureRecorder counts swallowed auxiliary failures.
type FailureRecorder interface {
	AuxiliaryFailed(effect string)
}

// Effects performs auxiliary writes: points, activity log and the online flag.
// They run after the primary operation has succeeded and never fail it; errors
// are logged and counted.
type Effects struct {
	users    repository.UserRepository
	activity repository.ActivityRepository
	logger   *zap.Logger
	failures FailureRecorder
	now      Clock
}

func NewEffects(users repository.UserRepository, activity repository.ActivityRepository, logger *zap.Logger, failures FailureRecorder) *Effects {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Effects{
		users:    users,
		activity: activity,
		logger:   logger,
		failures: failures,
		now:      time.Now,
	}
}

func (e *Effects) fail(effect, userId string, err error) {
	e.logger.Warn("auxiliary effect failed",
		zap.String("effect", effect),
		zap.String("user_id", userId),
		zap.Error(err),
	)
	if e.failures != nil {
		e.failures.AuxiliaryFailed(effect)
	}
}

// Reward adds points and appends an activity entry.
func (e *Effects) Reward(ctx context.Context, userId string, kind entity.ActivityType, points int, refId string) {
	ctx = context.WithoutCancel(ctx)
	if err := e.users.AddPoints(ctx, userId, points); err != nil {
		e.fail("points", userId, err)
	}
	e.Log(ctx, userId, kind, points, refId)
}

// Log appends an activity entry without touching points.
func (e *Effects) Log(ctx context.Context, userId string, kind entity.ActivityType, points int, refId string) {
	err := e.activity.Create(context.WithoutCancel(ctx), entity.Activity{
		UserId:    userId,
		Type:      kind,
		Points:    points,
		RefId:     refId,
		CreatedAt: e.now(),
	})
	if err != nil {
		e.fail("activity", userId, err)
	}
}

func (e *Effects) SetOnline(ctx context.Context, userId string, online bool) {
	if err := e.users.SetOnline(context.WithoutCancel(ctx), userId, online, e.now()); err != nil {
		e.fail("presence_flag", userId, err)
	}
}
