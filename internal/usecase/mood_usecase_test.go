package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusbuddy/internal/entity"
	"campusbuddy/pkg/apperror"
)

func newMoodFixture() (*moodUsecase, *fakeMoods, *fakeUsers) {
	repo := newFakeMoods()
	users := newFakeUsers(student, otherPerson)
	uc := NewMoodUsecase(repo, newTestEffects(users, &fakeActivity{}, nil), nil, nil).(*moodUsecase)
	uc.now = fixedClock
	return uc, repo, users
}

func TestEveryMoodHasATip(t *testing.T) {
	uc, _, _ := newMoodFixture()
	tips := uc.Tips()
	require.Len(t, tips, len(entity.Moods))
	for i, tip := range tips {
		assert.Equal(t, entity.Moods[i], tip.Mood)
		assert.NotEmpty(t, tip.Tip)
	}
	assert.Empty(t, TipFor("bored"))
}

func TestLogMood(t *testing.T) {
	uc, _, users := newMoodFixture()

	entry, err := uc.Create(context.Background(), student, entity.CreateMoodRequest{Mood: "stressed", Note: " finals week "})
	require.NoError(t, err)
	assert.Equal(t, TipFor(entity.MoodStressed), entry.StudyTip)
	assert.Equal(t, "finals week", entry.Note)
	assert.Nil(t, entry.Helpful)
	assert.Equal(t, PointsMoodLogged, users.pointsOf(student.Id))

	_, err = uc.Create(context.Background(), student, entity.CreateMoodRequest{Mood: "bored"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestLogMoodDegradesToTemporaryId(t *testing.T) {
	uc, repo, users := newMoodFixture()
	repo.err = errStoreDown

	entry, err := uc.Create(context.Background(), student, entity.CreateMoodRequest{Mood: "happy"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(entry.Id, TempIdPrefix))
	assert.Zero(t, users.pointsOf(student.Id))
}

func TestMoodHelpfulOverwrites(t *testing.T) {
	uc, _, _ := newMoodFixture()
	ctx := context.Background()
	entry, _ := uc.Create(ctx, student, entity.CreateMoodRequest{Mood: "tired"})

	yes, no := true, false
	_, err := uc.SetHelpful(ctx, otherPerson, entry.Id, entity.MoodFeedbackRequest{Helpful: &yes})
	assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))

	_, err = uc.SetHelpful(ctx, student, entry.Id, entity.MoodFeedbackRequest{})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	updated, err := uc.SetHelpful(ctx, student, entry.Id, entity.MoodFeedbackRequest{Helpful: &yes})
	require.NoError(t, err)
	assert.True(t, *updated.Helpful)

	updated, err = uc.SetHelpful(ctx, student, entry.Id, entity.MoodFeedbackRequest{Helpful: &no})
	require.NoError(t, err)
	assert.False(t, *updated.Helpful)
}

func TestMoodStatsZeroFilled(t *testing.T) {
	uc, repo, _ := newMoodFixture()
	ctx := context.Background()
	_, _ = uc.Create(ctx, student, entity.CreateMoodRequest{Mood: "happy"})
	_, _ = uc.Create(ctx, student, entity.CreateMoodRequest{Mood: "happy"})
	_, _ = uc.Create(ctx, otherPerson, entity.CreateMoodRequest{Mood: "anxious"})

	stats := uc.Stats(ctx, student)
	require.Len(t, stats, len(entity.Moods))
	for _, s := range stats {
		if s.Mood == entity.MoodHappy {
			assert.Equal(t, 2, s.Count)
		} else {
			assert.Zero(t, s.Count, s.Mood)
		}
	}

	repo.err = errStoreDown
	assert.Len(t, uc.Stats(ctx, student), len(entity.Moods))
	assert.Empty(t, uc.Index(ctx, student, entity.MoodIndexFilter{}).Data)
}
