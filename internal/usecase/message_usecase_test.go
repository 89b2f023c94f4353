package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusbuddy/internal/entity"
	"campusbuddy/pkg/apperror"
)

type messageFixture struct {
	uc        *messageUsecase
	messages  *fakeMessages
	users     *fakeUsers
	activity  *fakeActivity
	publisher *recordingPublisher
	failures  *countingFailures
}

func newMessageFixture() messageFixture {
	f := messageFixture{
		messages:  newFakeMessages(),
		users:     newFakeUsers(student, otherPerson, admin),
		activity:  &fakeActivity{},
		publisher: newRecordingPublisher(),
		failures:  &countingFailures{},
	}
	f.uc = NewMessageUseCase(f.messages, newTestEffects(f.users, f.activity, f.failures), f.publisher, nil, nil, 10).(*messageUsecase)
	f.uc.now = fixedClock
	return f
}

func TestSendMessageAwardsPointAndBroadcasts(t *testing.T) {
	f := newMessageFixture()

	msg, err := f.uc.Send(context.Background(), student, entity.SendMessageRequest{Content: "  hello campus  "})
	require.NoError(t, err)
	assert.Equal(t, "hello campus", msg.Content)
	assert.Equal(t, student.Id, msg.AuthorId)
	assert.Equal(t, "2027", msg.AuthorBatch)
	assert.Equal(t, testNow, msg.Timestamp)
	assert.NotEmpty(t, msg.Id)
	assert.False(t, strings.HasPrefix(msg.Id, TempIdPrefix))

	assert.Equal(t, PointsMessageSent, f.users.pointsOf(student.Id))
	assert.Equal(t, []entity.ActivityType{entity.ActivityMessageSent}, f.activity.types())
	assert.Equal(t, []string{entity.EventMessageReceive}, f.publisher.names())
}

func TestSendMessageRejectsBlankAndOversizedContent(t *testing.T) {
	f := newMessageFixture()

	_, err := f.uc.Send(context.Background(), student, entity.SendMessageRequest{Content: "   "})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Equal(t, "content is required", apperror.From(err).Message)

	_, err = f.uc.Send(context.Background(), student, entity.SendMessageRequest{Content: strings.Repeat("a", 1001)})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.uc.Send(context.Background(), student, entity.SendMessageRequest{Content: strings.Repeat("a", 1000)})
	assert.NoError(t, err)
}

func TestSendMessageDegradesToTemporaryId(t *testing.T) {
	f := newMessageFixture()
	f.messages.err = errStoreDown

	msg, err := f.uc.Send(context.Background(), student, entity.SendMessageRequest{Content: "is anyone there?"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg.Id, TempIdPrefix))
	assert.Zero(t, f.users.pointsOf(student.Id))
	assert.Empty(t, f.publisher.names())
}

func TestSendMessageSurvivesPointFailure(t *testing.T) {
	f := newMessageFixture()
	f.users.err = errStoreDown
	f.activity.err = errStoreDown

	_, err := f.uc.Send(context.Background(), student, entity.SendMessageRequest{Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.failures.counts["points"])
	assert.Equal(t, 1, f.failures.counts["activity"])
	assert.Equal(t, []string{entity.EventMessageReceive}, f.publisher.names())
}

func TestEditMessageAuthorOnly(t *testing.T) {
	f := newMessageFixture()
	ctx := context.Background()
	msg, err := f.uc.Send(ctx, student, entity.SendMessageRequest{Content: "first"})
	require.NoError(t, err)

	_, err = f.uc.Edit(ctx, admin, msg.Id, entity.EditMessageRequest{Content: "hijack"})
	assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))

	edited, err := f.uc.Edit(ctx, student, msg.Id, entity.EditMessageRequest{Content: "second"})
	require.NoError(t, err)
	assert.Equal(t, "second", edited.Content)
	assert.True(t, edited.Edited)
	require.NotNil(t, edited.EditedAt)

	_, err = f.uc.Edit(ctx, student, "missing", entity.EditMessageRequest{Content: "x"})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.Equal(t, []string{entity.EventMessageReceive, entity.EventMessageEdit}, f.publisher.names())
}

func TestDeleteMessageAuthorOrAdmin(t *testing.T) {
	f := newMessageFixture()
	ctx := context.Background()
	first, _ := f.uc.Send(ctx, student, entity.SendMessageRequest{Content: "one"})
	second, _ := f.uc.Send(ctx, student, entity.SendMessageRequest{Content: "two"})

	err := f.uc.Delete(ctx, otherPerson, first.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))

	require.NoError(t, f.uc.Delete(ctx, student, first.Id))
	require.NoError(t, f.uc.Delete(ctx, admin, second.Id))

	err = f.uc.Delete(ctx, student, first.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	last := f.publisher.broadcast[len(f.publisher.broadcast)-1]
	assert.Equal(t, entity.EventMessageDelete, last.Name)
	assert.Equal(t, entity.MessageDeleted{MessageId: second.Id}, last.Data)
}

func TestReactTogglesPerUser(t *testing.T) {
	f := newMessageFixture()
	ctx := context.Background()
	msg, _ := f.uc.Send(ctx, student, entity.SendMessageRequest{Content: "exam tomorrow"})

	reacted, err := f.uc.React(ctx, otherPerson, msg.Id, entity.ReactionRequest{Emoji: "👍"})
	require.NoError(t, err)
	require.Len(t, reacted.Reactions, 1)
	assert.Equal(t, 1, reacted.Reactions[0].Count)

	reacted, err = f.uc.React(ctx, student, msg.Id, entity.ReactionRequest{Emoji: "👍"})
	require.NoError(t, err)
	assert.Equal(t, 2, reacted.Reactions[0].Count)
	assert.Equal(t, []string{otherPerson.Id, student.Id}, reacted.Reactions[0].UserIds)

	_, _ = f.uc.React(ctx, student, msg.Id, entity.ReactionRequest{Emoji: "👍"})
	reacted, err = f.uc.React(ctx, otherPerson, msg.Id, entity.ReactionRequest{Emoji: "👍"})
	require.NoError(t, err)
	assert.Empty(t, reacted.Reactions)
}

func TestConcurrentReactionsAllLand(t *testing.T) {
	f := newMessageFixture()
	ctx := context.Background()
	msg, err := f.uc.Send(ctx, student, entity.SendMessageRequest{Content: "who is coming to the fest?"})
	require.NoError(t, err)
	f.messages.latency = 20 * time.Millisecond

	reactors := []entity.User{student, otherPerson, admin}
	var wg sync.WaitGroup
	for _, user := range reactors {
		wg.Add(1)
		go func(user entity.User) {
			defer wg.Done()
			_, err := f.uc.React(ctx, user, msg.Id, entity.ReactionRequest{Emoji: "👍"})
			assert.NoError(t, err)
		}(user)
	}
	wg.Wait()

	stored, err := f.messages.Get(ctx, msg.Id)
	require.NoError(t, err)
	require.Len(t, stored.Reactions, 1)
	assert.Equal(t, 3, stored.Reactions[0].Count)
	assert.ElementsMatch(t, []string{student.Id, otherPerson.Id, admin.Id}, stored.Reactions[0].UserIds)
}

func TestReactOnMissingMessage(t *testing.T) {
	f := newMessageFixture()

	_, err := f.uc.React(context.Background(), student, "nope", entity.ReactionRequest{Emoji: "👍"})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.Empty(t, f.publisher.names())
}

func TestIndexDegradesToEmptyPage(t *testing.T) {
	f := newMessageFixture()
	f.messages.err = errStoreDown

	page := f.uc.Index(context.Background(), entity.MessageIndexFilter{PageRequest: entity.PageRequest{Page: 3}})
	assert.Empty(t, page.Data)
	assert.NotNil(t, page.Data)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, DefaultMessageLimit, page.Limit)
	assert.False(t, page.HasMore)
}

func TestSummaryClampsToWindow(t *testing.T) {
	f := newMessageFixture()
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		_, err := f.uc.Send(ctx, student, entity.SendMessageRequest{Content: "library open?"})
		require.NoError(t, err)
	}

	summary, err := f.uc.Summary(ctx, 500)
	require.NoError(t, err)
	assert.Equal(t, 10, summary.MessageCount)

	summary, err = f.uc.Summary(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.MessageCount)

	f.messages.err = errStoreDown
	summary, err = f.uc.Summary(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "No messages to summarize yet.", summary.Summary)
}
