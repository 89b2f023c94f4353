package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"campusbuddy/internal/entity"
	"campusbuddy/internal/repository"
)

var testNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type fakeUsers struct {
	mu     sync.Mutex
	users  map[string]entity.User
	err    error
	points map[string]int
	online map[string]bool
}

func newFakeUsers(users ...entity.User) *fakeUsers {
	f := &fakeUsers{users: map[string]entity.User{}, points: map[string]int{}, online: map[string]bool{}}
	for _, u := range users {
		f.users[u.Id] = u
	}
	return f
}

func (f *fakeUsers) Get(_ context.Context, userId string) (entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return entity.User{}, f.err
	}
	u, ok := f.users[userId]
	if !ok {
		return entity.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetMany(ctx context.Context, userIds []string) ([]entity.User, error) {
	var out []entity.User
	for _, id := range userIds {
		if u, err := f.Get(ctx, id); err == nil {
			out = append(out, u)
		} else if f.err != nil {
			return nil, f.err
		}
	}
	return out, nil
}

func (f *fakeUsers) GetOrCreate(_ context.Context, user entity.User) (entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return entity.User{}, f.err
	}
	if existing, ok := f.users[user.Id]; ok {
		return existing, nil
	}
	f.users[user.Id] = user
	return user, nil
}

func (f *fakeUsers) Index(_ context.Context, _ entity.UserIndexFilter) ([]entity.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, 0, f.err
	}
	out := make([]entity.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, userId string, req entity.UpdateProfileRequest, at time.Time) (entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userId]
	if !ok {
		return entity.User{}, repository.ErrNotFound
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Batch != nil {
		u.Batch = *req.Batch
	}
	u.UpdatedAt = at
	f.users[userId] = u
	return u, nil
}

func (f *fakeUsers) UpdateRole(_ context.Context, userId string, role entity.Role, at time.Time) (entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userId]
	if !ok {
		return entity.User{}, repository.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = at
	f.users[userId] = u
	return u, nil
}

func (f *fakeUsers) RevokeTokens(_ context.Context, userId string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userId]
	if !ok {
		return repository.ErrNotFound
	}
	u.TokensValidAfter = &at
	f.users[userId] = u
	return nil
}

func (f *fakeUsers) AddPoints(_ context.Context, userId string, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.points[userId] += delta
	if u, ok := f.users[userId]; ok {
		u.Points += delta
		f.users[userId] = u
	}
	return nil
}

func (f *fakeUsers) SetOnline(_ context.Context, userId string, online bool, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.online[userId] = online
	return nil
}

func (f *fakeUsers) AwardBadge(_ context.Context, userId string, badge entity.EarnedBadge, bonus int) (entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userId]
	if !ok {
		return entity.User{}, repository.ErrNotFound
	}
	if u.HasBadge(badge.Id) {
		return entity.User{}, repository.ErrDuplicate
	}
	u.Badges = append(u.Badges, badge)
	u.Points += bonus
	f.users[userId] = u
	return u, nil
}

func (f *fakeUsers) pointsOf(userId string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.points[userId]
}

type fakeActivity struct {
	mu      sync.Mutex
	entries []entity.Activity
	stats   entity.ActivityStats
	err     error
}

func (f *fakeActivity) Create(_ context.Context, activity entity.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, activity)
	return nil
}

func (f *fakeActivity) Index(_ context.Context, filter entity.ActivityIndexFilter) ([]entity.Activity, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Activity
	for _, a := range f.entries {
		if a.UserId == filter.UserId {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeActivity) Stats(_ context.Context, userId string) (entity.ActivityStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stats != nil {
		return f.stats, nil
	}
	stats := entity.ActivityStats{}
	for _, a := range f.entries {
		if a.UserId == userId {
			stats[a.Type]++
		}
	}
	return stats, nil
}

func (f *fakeActivity) types() []entity.ActivityType {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.ActivityType, 0, len(f.entries))
	for _, a := range f.entries {
		out = append(out, a.Type)
	}
	return out
}

type recordingPublisher struct {
	mu        sync.Mutex
	broadcast []entity.Event
	notified  map[string][]entity.Event
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{notified: map[string][]entity.Event{}}
}

func (p *recordingPublisher) Broadcast(_ context.Context, event entity.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.broadcast = append(p.broadcast, event)
}

func (p *recordingPublisher) NotifyUser(_ context.Context, userId string, event entity.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notified[userId] = append(p.notified[userId], event)
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.broadcast))
	for _, e := range p.broadcast {
		out = append(out, e.Name)
	}
	return out
}

type countingFailures struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *countingFailures) AuxiliaryFailed(effect string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	c.counts[effect]++
}

func newTestEffects(users *fakeUsers, activity *fakeActivity, failures FailureRecorder) *Effects {
	e := NewEffects(users, activity, nil, failures)
	e.now = fixedClock
	return e
}

type fakeMessages struct {
	mu       sync.Mutex
	seq      int
	messages map[string]entity.Message
	order    []string
	err      error
	// latency widens race windows: reads sleep before answering.
	latency time.Duration
}

func newFakeMessages() *fakeMessages {
	return &fakeMessages{messages: map[string]entity.Message{}}
}

func (f *fakeMessages) Index(_ context.Context, _ entity.MessageIndexFilter) ([]entity.Message, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, 0, f.err
	}
	out := make([]entity.Message, 0, len(f.order))
	for i := len(f.order) - 1; i >= 0; i-- {
		out = append(out, f.messages[f.order[i]])
	}
	return out, int64(len(out)), nil
}

func (f *fakeMessages) Recent(_ context.Context, limit int) ([]entity.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	start := 0
	if len(f.order) > limit {
		start = len(f.order) - limit
	}
	out := []entity.Message{}
	for _, id := range f.order[start:] {
		out = append(out, f.messages[id])
	}
	return out, nil
}

func (f *fakeMessages) Get(_ context.Context, messageId string) (entity.Message, error) {
	time.Sleep(f.latency)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return entity.Message{}, f.err
	}
	m, ok := f.messages[messageId]
	if !ok {
		return entity.Message{}, repository.ErrNotFound
	}
	return m, nil
}

func (f *fakeMessages) Create(_ context.Context, message entity.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.seq++
	message.Id = fmt.Sprintf("msg-%d", f.seq)
	f.messages[message.Id] = message
	f.order = append(f.order, message.Id)
	return message.Id, nil
}

func (f *fakeMessages) UpdateContent(_ context.Context, messageId, content string, editedAt time.Time) (entity.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.messages[messageId]
	if !ok {
		return entity.Message{}, repository.ErrNotFound
	}
	m.Content = content
	m.Edited = true
	m.EditedAt = &editedAt
	f.messages[messageId] = m
	return m, nil
}

func (f *fakeMessages) ToggleReaction(_ context.Context, messageId, emoji, userId string) (entity.Message, error) {
	time.Sleep(f.latency)
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.messages[messageId]
	if !ok {
		return entity.Message{}, repository.ErrNotFound
	}
	m.Reactions = entity.ToggleReaction(m.Reactions, emoji, userId)
	f.messages[messageId] = m
	return m, nil
}

func (f *fakeMessages) Delete(_ context.Context, messageId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.messages[messageId]; !ok {
		return repository.ErrNotFound
	}
	delete(f.messages, messageId)
	return nil
}

type fakeLostFound struct {
	mu    sync.Mutex
	seq   int
	items map[string]entity.LostFoundItem
	err   error
}

func newFakeLostFound() *fakeLostFound {
	return &fakeLostFound{items: map[string]entity.LostFoundItem{}}
}

func (f *fakeLostFound) Index(_ context.Context, _ entity.LostFoundIndexFilter) ([]entity.LostFoundItem, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, 0, f.err
	}
	out := []entity.LostFoundItem{}
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, int64(len(out)), nil
}

func (f *fakeLostFound) Get(_ context.Context, itemId string) (entity.LostFoundItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[itemId]
	if !ok {
		return entity.LostFoundItem{}, repository.ErrNotFound
	}
	return item, nil
}

func (f *fakeLostFound) Create(_ context.Context, item entity.LostFoundItem) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.seq++
	item.Id = fmt.Sprintf("item-%d", f.seq)
	f.items[item.Id] = item
	return item.Id, nil
}

func (f *fakeLostFound) Update(_ context.Context, item entity.LostFoundItem) (entity.LostFoundItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.items[item.Id]
	if !ok || stored.Status == entity.LostFoundReturned {
		return entity.LostFoundItem{}, repository.ErrNotFound
	}
	f.items[item.Id] = item
	return item, nil
}

func (f *fakeLostFound) Delete(_ context.Context, itemId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[itemId]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, itemId)
	return nil
}

func (f *fakeLostFound) MarkReturned(_ context.Context, itemId, resolverId string, at time.Time) (entity.LostFoundItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[itemId]
	if !ok || item.Status == entity.LostFoundReturned {
		return entity.LostFoundItem{}, repository.ErrNotFound
	}
	item.Status = entity.LostFoundReturned
	item.ResolvedBy = resolverId
	item.ReturnedAt = &at
	f.items[itemId] = item
	return item, nil
}

type fakeFeedback struct {
	mu    sync.Mutex
	seq   int
	items map[string]entity.AnonymousFeedback
	votes map[string]entity.FeedbackVote
	last  entity.FeedbackIndexFilter
	err   error
}

func newFakeFeedback() *fakeFeedback {
	return &fakeFeedback{items: map[string]entity.AnonymousFeedback{}, votes: map[string]entity.FeedbackVote{}}
}

func voteKey(feedbackId, userId string) string { return feedbackId + "/" + userId }

func (f *fakeFeedback) Index(_ context.Context, filter entity.FeedbackIndexFilter) ([]entity.AnonymousFeedback, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = filter
	if f.err != nil {
		return nil, 0, f.err
	}
	out := []entity.AnonymousFeedback{}
	for _, item := range f.items {
		if filter.PublicOnly && !item.VisibleTo(false) {
			continue
		}
		if filter.SubmitterKey != "" && item.SubmitterKey != filter.SubmitterKey {
			continue
		}
		out = append(out, item)
	}
	return out, int64(len(out)), nil
}

func (f *fakeFeedback) Get(_ context.Context, feedbackId string) (entity.AnonymousFeedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[feedbackId]
	if !ok {
		return entity.AnonymousFeedback{}, repository.ErrNotFound
	}
	return item, nil
}

func (f *fakeFeedback) Create(_ context.Context, feedback entity.AnonymousFeedback) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.seq++
	feedback.Id = fmt.Sprintf("fb-%d", f.seq)
	f.items[feedback.Id] = feedback
	return feedback.Id, nil
}

func (f *fakeFeedback) UpdateStatus(_ context.Context, feedbackId string, status entity.FeedbackStatus, adminResponse string, at time.Time) (entity.AnonymousFeedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[feedbackId]
	if !ok {
		return entity.AnonymousFeedback{}, repository.ErrNotFound
	}
	item.Status = status
	if adminResponse != "" {
		item.AdminResponse = adminResponse
	}
	item.UpdatedAt = at
	f.items[feedbackId] = item
	return item, nil
}

func (f *fakeFeedback) Delete(_ context.Context, feedbackId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[feedbackId]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, feedbackId)
	return nil
}

func (f *fakeFeedback) GetVote(_ context.Context, feedbackId, userId string) (*entity.FeedbackVote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	vote, ok := f.votes[voteKey(feedbackId, userId)]
	if !ok {
		return nil, nil
	}
	return &vote, nil
}

func (f *fakeFeedback) InsertVote(_ context.Context, vote entity.FeedbackVote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := voteKey(vote.FeedbackId, vote.UserId)
	if _, ok := f.votes[key]; ok {
		return repository.ErrDuplicate
	}
	f.votes[key] = vote
	return nil
}

func (f *fakeFeedback) DeleteVote(_ context.Context, feedbackId, userId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := voteKey(feedbackId, userId)
	if _, ok := f.votes[key]; !ok {
		return repository.ErrNotFound
	}
	delete(f.votes, key)
	return nil
}

func (f *fakeFeedback) SwitchVote(_ context.Context, feedbackId, userId string, voteType entity.VoteType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := voteKey(feedbackId, userId)
	vote, ok := f.votes[key]
	if !ok {
		return repository.ErrNotFound
	}
	vote.VoteType = voteType
	f.votes[key] = vote
	return nil
}

func (f *fakeFeedback) AdjustVotes(_ context.Context, feedbackId string, upDelta, downDelta int) (entity.AnonymousFeedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[feedbackId]
	if !ok {
		return entity.AnonymousFeedback{}, repository.ErrNotFound
	}
	item.Upvotes = max(0, item.Upvotes+upDelta)
	item.Downvotes = max(0, item.Downvotes+downDelta)
	f.items[feedbackId] = item
	return item, nil
}

type fakeKeyer struct{}

func (fakeKeyer) Key(userId string) string { return "key:" + userId }

type fakeMoods struct {
	mu      sync.Mutex
	seq     int
	entries map[string]entity.MoodEntry
	err     error
}

func newFakeMoods() *fakeMoods {
	return &fakeMoods{entries: map[string]entity.MoodEntry{}}
}

func (f *fakeMoods) Index(_ context.Context, filter entity.MoodIndexFilter) ([]entity.MoodEntry, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, 0, f.err
	}
	out := []entity.MoodEntry{}
	for _, e := range f.entries {
		if e.UserId == filter.UserId {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeMoods) Get(_ context.Context, entryId string) (entity.MoodEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[entryId]
	if !ok {
		return entity.MoodEntry{}, repository.ErrNotFound
	}
	return e, nil
}

func (f *fakeMoods) Create(_ context.Context, entry entity.MoodEntry) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.seq++
	entry.Id = fmt.Sprintf("mood-%d", f.seq)
	f.entries[entry.Id] = entry
	return entry.Id, nil
}

func (f *fakeMoods) SetHelpful(_ context.Context, entryId string, helpful bool) (entity.MoodEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[entryId]
	if !ok {
		return entity.MoodEntry{}, repository.ErrNotFound
	}
	e.Helpful = &helpful
	f.entries[entryId] = e
	return e, nil
}

func (f *fakeMoods) CountByMood(_ context.Context, userId string) ([]entity.MoodCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	counts := map[entity.Mood]int{}
	for _, e := range f.entries {
		if e.UserId == userId {
			counts[e.Mood]++
		}
	}
	out := []entity.MoodCount{}
	for mood, n := range counts {
		out = append(out, entity.MoodCount{Mood: mood, Count: n})
	}
	return out, nil
}

type fakeStatuses struct {
	mu       sync.Mutex
	seq      int
	byKey    map[string]entity.CampusStatus
	keywords []entity.KeywordCount
	limit    int
	err      error

	lastPatch entity.CampusStatusPatch
}

func newFakeStatuses() *fakeStatuses {
	return &fakeStatuses{byKey: map[string]entity.CampusStatus{}}
}

func (f *fakeStatuses) Index(_ context.Context, _ entity.StatusIndexFilter) ([]entity.CampusStatus, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, 0, f.err
	}
	out := []entity.CampusStatus{}
	for _, s := range f.byKey {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStatuses) Get(_ context.Context, statusId string) (entity.CampusStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.byKey {
		if s.Id == statusId {
			return s, nil
		}
	}
	return entity.CampusStatus{}, repository.ErrNotFound
}

func (f *fakeStatuses) Upsert(_ context.Context, status entity.CampusStatus) (entity.CampusStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return entity.CampusStatus{}, f.err
	}
	if existing, ok := f.byKey[status.FacilityKey]; ok {
		status.Id = existing.Id
		status.CreatedAt = existing.CreatedAt
	} else {
		f.seq++
		status.Id = fmt.Sprintf("status-%d", f.seq)
	}
	f.byKey[status.FacilityKey] = status
	return status, nil
}

func (f *fakeStatuses) Update(_ context.Context, statusId string, patch entity.CampusStatusPatch) (entity.CampusStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPatch = patch
	for key, s := range f.byKey {
		if s.Id != statusId {
			continue
		}
		if patch.Status != nil {
			s.Status = *patch.Status
		}
		if patch.Description != nil {
			s.Description = *patch.Description
		}
		if patch.Keywords != nil {
			s.Keywords = patch.Keywords
		}
		s.LastUpdated = patch.At
		s.UpdatedBy = patch.UpdatedBy
		s.UpdatedByName = patch.UpdatedByName
		f.byKey[key] = s
		return s, nil
	}
	return entity.CampusStatus{}, repository.ErrNotFound
}

func (f *fakeStatuses) Delete(_ context.Context, statusId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, s := range f.byKey {
		if s.Id == statusId {
			delete(f.byKey, key)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStatuses) PopularKeywords(_ context.Context, limit int) ([]entity.KeywordCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.keywords, nil
}

type fakeBadges struct {
	mu     sync.Mutex
	badges map[string]entity.Badge
	err    error
}

func newFakeBadges(badges ...entity.Badge) *fakeBadges {
	f := &fakeBadges{badges: map[string]entity.Badge{}}
	for _, b := range badges {
		f.badges[b.Id] = b
	}
	return f
}

func (f *fakeBadges) Index(_ context.Context) ([]entity.Badge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []entity.Badge{}
	for _, b := range f.badges {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBadges) Get(_ context.Context, badgeId string) (entity.Badge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.badges[badgeId]
	if !ok {
		return entity.Badge{}, repository.ErrNotFound
	}
	return b, nil
}

func (f *fakeBadges) Create(_ context.Context, badge entity.Badge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.badges[badge.Id]; ok {
		return repository.ErrDuplicate
	}
	f.badges[badge.Id] = badge
	return nil
}

func (f *fakeBadges) Ensure(_ context.Context, badge entity.Badge) (entity.Badge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.badges[badge.Id]; ok {
		return existing, nil
	}
	f.badges[badge.Id] = badge
	return badge, nil
}

var (
	student     = entity.User{Id: "u-student", Name: "Sam", Batch: "2027", Role: entity.RoleStudent}
	otherPerson = entity.User{Id: "u-other", Name: "Alex", Role: entity.RoleStudent}
	admin       = entity.User{Id: "u-admin", Name: "Dean", Role: entity.RoleAdmin}
	societyHead = entity.User{Id: "u-head", Name: "Robin", Role: entity.RoleSocietyHead}
)

var errStoreDown = fmt.Errorf("%w: connection refused", repository.ErrUnavailable)
