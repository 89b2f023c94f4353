package entity

import "time"

type FeedbackType string

const (
	FeedbackTypeFeedback   FeedbackType = "feedback"
	FeedbackTypeComplaint  FeedbackType = "complaint"
	FeedbackTypeConfession FeedbackType = "confession"
)

type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "pending"
	FeedbackReviewed FeedbackStatus = "reviewed"
	FeedbackResolved FeedbackStatus = "resolved"
)

type AnonymousFeedback struct {
	Id            string         `bson:"_id" json:"id"`
	Type          FeedbackType   `bson:"type" json:"type"`
	Category      string         `bson:"category" json:"category"`
	Content       string         `bson:"content" json:"content"`
	Priority      Priority       `bson:"priority" json:"priority"`
	Status        FeedbackStatus `bson:"status" json:"status"`
	Upvotes       int            `bson:"upvotes" json:"upvotes"`
	Downvotes     int            `bson:"downvotes" json:"downvotes"`
	AdminResponse string         `bson:"adminResponse,omitempty" json:"adminResponse,omitempty"`
	SubmitterKey  string         `bson:"submitterKey" json:"-"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// VisibleTo applies the moderation rule: confessions are public, feedback and
// complaints become public once resolved. Admins see everything.
func (f AnonymousFeedback) VisibleTo(isAdmin bool) bool {
	if isAdmin {
		return true
	}
	return f.Type == FeedbackTypeConfession || f.Status == FeedbackResolved
}

type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

type FeedbackVote struct {
	Id         string    `bson:"_id" json:"id"`
	FeedbackId string    `bson:"feedbackId" json:"feedbackId"`
	UserId     string    `bson:"userId" json:"userId"`
	VoteType   VoteType  `bson:"voteType" json:"voteType"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

type VoteAction int

const (
	VoteInsert VoteAction = iota
	VoteRemove
	VoteSwitch
)

// VoteTransition describes what a vote does given the user's previous vote.
type VoteTransition struct {
	Action        VoteAction
	UpvoteDelta   int
	DownvoteDelta int
}

func NextVote(previous *VoteType, incoming VoteType) VoteTransition {
	sign := func(t VoteType, n int) (int, int) {
		if t == VoteUp {
			return n, 0
		}
		return 0, n
	}
	switch {
	case previous == nil:
		up, down := sign(incoming, 1)
		return VoteTransition{Action: VoteInsert, UpvoteDelta: up, DownvoteDelta: down}
	case *previous == incoming:
		up, down := sign(incoming, -1)
		return VoteTransition{Action: VoteRemove, UpvoteDelta: up, DownvoteDelta: down}
	default:
		addUp, addDown := sign(incoming, 1)
		subUp, subDown := sign(*previous, -1)
		return VoteTransition{Action: VoteSwitch, UpvoteDelta: addUp + subUp, DownvoteDelta: addDown + subDown}
	}
}

type FeedbackIndexFilter struct {
	Type     FeedbackType
	Category string
	Status   FeedbackStatus
	// PublicOnly restricts to confessions and resolved items.
	PublicOnly   bool
	SubmitterKey string
	PageRequest
}

type CreateFeedbackRequest struct {
	Type     string `json:"type" validate:"required,oneof=feedback complaint confession"`
	Category string `json:"category" validate:"required,max=50"`
	Content  string `json:"content" validate:"required,max=2000"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

type VoteRequest struct {
	VoteType string `json:"voteType" validate:"required,oneof=up down"`
}

type UpdateFeedbackStatusRequest struct {
	Status        string `json:"status" validate:"required,oneof=pending reviewed resolved"`
	AdminResponse string `json:"adminResponse" validate:"max=2000"`
}

type VoteResult struct {
	Feedback AnonymousFeedback `json:"feedback"`
	UserVote *VoteType         `json:"userVote"`
}
