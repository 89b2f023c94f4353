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

// moodTips is the canned study tip returned for each mood.
var moodTips = map[entity.Mood]string{
	entity.MoodStressed:  "Break the work into 25-minute blocks with short breaks, and tackle the smallest task first to build momentum.",
	entity.MoodTired:     "Take a 20-minute power nap or a short walk outside, then review lighter material such as flashcards or notes.",
	entity.MoodMotivated: "Use this energy on your hardest subject now, and set a concrete goal for the session so it does not drift.",
	entity.MoodHappy:     "Good mood helps memory. Try explaining a topic to a friend or join a study group to lock in what you learned.",
	entity.MoodAnxious:   "Write down what is worrying you, then pick one small, specific next step. Slow breathing for a minute helps before you start.",
	entity.MoodFocused:   "Silence notifications and go deep on one problem set. Keep water nearby and do not switch tasks until the timer ends.",
}

// TipFor returns the study tip for a mood, or an empty string for unknown moods.
func TipFor(mood entity.Mood) string {
	return moodTips[mood]
}

type MoodUsecase interface {
	Index(ctx context.Context, actor entity.User, filter entity.MoodIndexFilter) entity.Page[entity.MoodEntry]
	Create(ctx context.Context, actor entity.User, req entity.CreateMoodRequest) (entity.MoodEntry, error)
	SetHelpful(ctx context.Context, actor entity.User, entryId string, req entity.MoodFeedbackRequest) (entity.MoodEntry, error)
	Tips() []entity.MoodTip
	Stats(ctx context.Context, actor entity.User) []entity.MoodCount
}

type moodUsecase struct {
	moodRepo  repository.MoodRepository
	effects   *Effects
	validator *validator.Validate
	logger    *zap.Logger
	now       Clock
}

func NewMoodUsecase(moodRepo repository.MoodRepository, effects *Effects, validate *validator.Validate, logger *zap.Logger) MoodUsecase {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &moodUsecase{
		moodRepo:  moodRepo,
		effects:   effects,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Index lists only the caller's own entries.
func (u *moodUsecase) Index(ctx context.Context, actor entity.User, filter entity.MoodIndexFilter) entity.Page[entity.MoodEntry] {
	filter.UserId = actor.Id
	filter.PageRequest = filter.PageRequest.Normalize(DefaultListLimit)
	entries, total, err := u.moodRepo.Index(ctx, filter)
	if err != nil {
		u.logger.Warn("list mood entries degraded to empty page", zap.Error(err))
		return entity.EmptyPage[entity.MoodEntry](filter.PageRequest)
	}
	return entity.NewPage(entries, total, filter.PageRequest)
}

func (u *moodUsecase) Create(ctx context.Context, actor entity.User, req entity.CreateMoodRequest) (entity.MoodEntry, error) {
	req.Note = strings.TrimSpace(req.Note)
	if err := u.validator.Struct(req); err != nil {
		return entity.MoodEntry{}, validationError(err)
	}

	mood := entity.Mood(req.Mood)
	entry := entity.MoodEntry{
		UserId:    actor.Id,
		Mood:      mood,
		Note:      req.Note,
		StudyTip:  TipFor(mood),
		CreatedAt: u.now(),
	}

	id, err := u.moodRepo.Create(ctx, entry)
	if err != nil {
		if !errors.Is(err, repository.ErrUnavailable) {
			return entity.MoodEntry{}, storeError(err, "mood entry not found")
		}
		u.logger.Warn("mood entry not persisted, returning temporary id", zap.String("user_id", actor.Id), zap.Error(err))
		entry.Id = newTempId()
		return entry, nil
	}
	entry.Id = id

	u.effects.Reward(ctx, actor.Id, entity.ActivityMoodLogged, PointsMoodLogged, id)
	return entry, nil
}

// SetHelpful overwrites any earlier answer.
func (u *moodUsecase) SetHelpful(ctx context.Context, actor entity.User, entryId string, req entity.MoodFeedbackRequest) (entity.MoodEntry, error) {
	if err := u.validator.Struct(req); err != nil {
		return entity.MoodEntry{}, validationError(err)
	}

	entry, err := u.moodRepo.Get(ctx, entryId)
	if err != nil {
		return entity.MoodEntry{}, storeError(err, "mood entry not found")
	}
	if entry.UserId != actor.Id {
		return entity.MoodEntry{}, apperror.Forbidden("only the owner can rate this tip")
	}

	updated, err := u.moodRepo.SetHelpful(ctx, entryId, *req.Helpful)
	if err != nil {
		return entity.MoodEntry{}, storeError(err, "mood entry not found")
	}
	return updated, nil
}

func (u *moodUsecase) Tips() []entity.MoodTip {
	tips := make([]entity.MoodTip, 0, len(entity.Moods))
	for _, mood := range entity.Moods {
		tips = append(tips, entity.MoodTip{Mood: mood, Tip: moodTips[mood]})
	}
	return tips
}

// Stats always reports every mood, zero-filled.
func (u *moodUsecase) Stats(ctx context.Context, actor entity.User) []entity.MoodCount {
	counts := make(map[entity.Mood]int, len(entity.Moods))
	stored, err := u.moodRepo.CountByMood(ctx, actor.Id)
	if err != nil {
		u.logger.Warn("mood stats degraded to zero counts", zap.Error(err))
	}
	for _, c := range stored {
		counts[c.Mood] = c.Count
	}

	stats := make([]entity.MoodCount, 0, len(entity.Moods))
	for _, mood := range entity.Moods {
		stats = append(stats, entity.MoodCount{Mood: mood, Count: counts[mood]})
	}
	return stats
}
