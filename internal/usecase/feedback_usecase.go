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

// SubmitterKeyer derives the anonymous key stored instead of the author's id.
type SubmitterKeyer interface {
	Key(userId string) string
}

type FeedbackUsecase interface {
	Index(ctx context.Context, actor entity.User, filter entity.FeedbackIndexFilter) entity.Page[entity.AnonymousFeedback]
	Mine(ctx context.Context, actor entity.User, req entity.PageRequest) entity.Page[entity.AnonymousFeedback]
	Get(ctx context.Context, actor entity.User, feedbackId string) (entity.AnonymousFeedback, error)
	Create(ctx context.Context, actor entity.User, req entity.CreateFeedbackRequest) (entity.AnonymousFeedback, error)
	Vote(ctx context.Context, actor entity.User, feedbackId string, req entity.VoteRequest) (entity.VoteResult, error)
	UpdateStatus(ctx context.Context, actor entity.User, feedbackId string, req entity.UpdateFeedbackStatusRequest) (entity.AnonymousFeedback, error)
	Delete(ctx context.Context, actor entity.User, feedbackId string) error
}

type feedbackUsecase struct {
	feedbackRepo repository.FeedbackRepository
	keyer        SubmitterKeyer
	validator    *validator.Validate
	logger       *zap.Logger
	now          Clock
}

func NewFeedbackUsecase(feedbackRepo repository.FeedbackRepository, keyer SubmitterKeyer, validate *validator.Validate, logger *zap.Logger) FeedbackUsecase {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &feedbackUsecase{
		feedbackRepo: feedbackRepo,
		keyer:        keyer,
		validator:    validate,
		logger:       logger,
		now:          time.Now,
	}
}

func (u *feedbackUsecase) list(ctx context.Context, filter entity.FeedbackIndexFilter) entity.Page[entity.AnonymousFeedback] {
	filter.PageRequest = filter.PageRequest.Normalize(DefaultListLimit)
	items, total, err := u.feedbackRepo.Index(ctx, filter)
	if err != nil {
		u.logger.Warn("list feedback degraded to empty page", zap.Error(err))
		return entity.EmptyPage[entity.AnonymousFeedback](filter.PageRequest)
	}
	return entity.NewPage(items, total, filter.PageRequest)
}

// Index hides unresolved feedback and complaints from non-admins.
func (u *feedbackUsecase) Index(ctx context.Context, actor entity.User, filter entity.FeedbackIndexFilter) entity.Page[entity.AnonymousFeedback] {
	filter.PublicOnly = !actor.IsAdmin()
	filter.SubmitterKey = ""
	return u.list(ctx, filter)
}

// Mine lists the caller's own submissions. Visibility still applies: a
// non-admin only sees their confessions and resolved entries.
func (u *feedbackUsecase) Mine(ctx context.Context, actor entity.User, req entity.PageRequest) entity.Page[entity.AnonymousFeedback] {
	return u.list(ctx, entity.FeedbackIndexFilter{
		SubmitterKey: u.keyer.Key(actor.Id),
		PublicOnly:   !actor.IsAdmin(),
		PageRequest:  req,
	})
}

func (u *feedbackUsecase) Get(ctx context.Context, actor entity.User, feedbackId string) (entity.AnonymousFeedback, error) {
	feedback, err := u.feedbackRepo.Get(ctx, feedbackId)
	if err != nil {
		return entity.AnonymousFeedback{}, storeError(err, "feedback not found")
	}
	if !feedback.VisibleTo(actor.IsAdmin()) {
		return entity.AnonymousFeedback{}, apperror.NotFound("feedback not found")
	}
	return feedback, nil
}

func (u *feedbackUsecase) Create(ctx context.Context, actor entity.User, req entity.CreateFeedbackRequest) (entity.AnonymousFeedback, error) {
	req.Category = strings.TrimSpace(req.Category)
	req.Content = strings.TrimSpace(req.Content)
	if err := u.validator.Struct(req); err != nil {
		return entity.AnonymousFeedback{}, validationError(err)
	}

	priority := entity.PriorityMedium
	if req.Priority != "" {
		priority = entity.Priority(req.Priority)
	}

	now := u.now()
	feedback := entity.AnonymousFeedback{
		Type:         entity.FeedbackType(req.Type),
		Category:     req.Category,
		Content:      req.Content,
		Priority:     priority,
		Status:       entity.FeedbackPending,
		SubmitterKey: u.keyer.Key(actor.Id),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := u.feedbackRepo.Create(ctx, feedback)
	if err != nil {
		if !errors.Is(err, repository.ErrUnavailable) {
			return entity.AnonymousFeedback{}, storeError(err, "feedback not found")
		}
		u.logger.Warn("feedback not persisted, returning temporary id", zap.Error(err))
		feedback.Id = newTempId()
		return feedback, nil
	}
	feedback.Id = id
	return feedback, nil
}

// Vote applies the up/down protocol: a first vote counts, repeating it
// withdraws it, and the opposite type moves one unit between the counters.
func (u *feedbackUsecase) Vote(ctx context.Context, actor entity.User, feedbackId string, req entity.VoteRequest) (entity.VoteResult, error) {
	if err := u.validator.Struct(req); err != nil {
		return entity.VoteResult{}, validationError(err)
	}
	incoming := entity.VoteType(req.VoteType)

	if _, err := u.Get(ctx, actor, feedbackId); err != nil {
		return entity.VoteResult{}, err
	}

	existing, err := u.feedbackRepo.GetVote(ctx, feedbackId, actor.Id)
	if err != nil {
		return entity.VoteResult{}, storeError(err, "feedback not found")
	}

	var previous *entity.VoteType
	if existing != nil {
		previous = &existing.VoteType
	}
	transition := entity.NextVote(previous, incoming)

	var userVote *entity.VoteType
	switch transition.Action {
	case entity.VoteInsert:
		err = u.feedbackRepo.InsertVote(ctx, entity.FeedbackVote{
			FeedbackId: feedbackId,
			UserId:     actor.Id,
			VoteType:   incoming,
			CreatedAt:  u.now(),
		})
		userVote = &incoming
	case entity.VoteRemove:
		err = u.feedbackRepo.DeleteVote(ctx, feedbackId, actor.Id)
	case entity.VoteSwitch:
		err = u.feedbackRepo.SwitchVote(ctx, feedbackId, actor.Id, incoming)
		userVote = &incoming
	}
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) || errors.Is(err, repository.ErrNotFound) {
			return entity.VoteResult{}, apperror.Conflict("vote changed concurrently, retry")
		}
		return entity.VoteResult{}, storeError(err, "feedback not found")
	}

	feedback, err := u.feedbackRepo.AdjustVotes(ctx, feedbackId, transition.UpvoteDelta, transition.DownvoteDelta)
	if err != nil {
		return entity.VoteResult{}, storeError(err, "feedback not found")
	}
	return entity.VoteResult{Feedback: feedback, UserVote: userVote}, nil
}

func (u *feedbackUsecase) UpdateStatus(ctx context.Context, actor entity.User, feedbackId string, req entity.UpdateFeedbackStatusRequest) (entity.AnonymousFeedback, error) {
	if !actor.IsAdmin() {
		return entity.AnonymousFeedback{}, apperror.Forbidden("only admins can change feedback status")
	}
	req.AdminResponse = strings.TrimSpace(req.AdminResponse)
	if err := u.validator.Struct(req); err != nil {
		return entity.AnonymousFeedback{}, validationError(err)
	}

	feedback, err := u.feedbackRepo.UpdateStatus(ctx, feedbackId, entity.FeedbackStatus(req.Status), req.AdminResponse, u.now())
	if err != nil {
		return entity.AnonymousFeedback{}, storeError(err, "feedback not found")
	}
	return feedback, nil
}

func (u *feedbackUsecase) Delete(ctx context.Context, actor entity.User, feedbackId string) error {
	if !actor.IsAdmin() {
		return apperror.Forbidden("only admins can delete feedback")
	}
	if err := u.feedbackRepo.Delete(ctx, feedbackId); err != nil {
		return storeError(err, "feedback not found")
	}
	return nil
}
