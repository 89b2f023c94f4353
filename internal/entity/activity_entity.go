package entity

import "time"

type ActivityType string

const (
	ActivityMessageSent        ActivityType = "message_sent"
	ActivityAnnouncementPosted ActivityType = "announcement_posted"
	ActivityLostFoundReported  ActivityType = "lost_found_reported"
	ActivityLostFoundReturned  ActivityType = "lost_found_returned"
	ActivityMoodLogged         ActivityType = "mood_logged"
	ActivityStatusUpdated      ActivityType = "status_updated"
	ActivityBadgeEarned        ActivityType = "badge_earned"
)

type Activity struct {
	Id        string       `bson:"_id" json:"id"`
	UserId    string       `bson:"userId" json:"userId"`
	Type      ActivityType `bson:"type" json:"type"`
	Points    int          `bson:"points" json:"points"`
	RefId     string       `bson:"refId,omitempty" json:"refId,omitempty"`
	CreatedAt time.Time    `bson:"createdAt" json:"createdAt"`
}

// ActivityStats counts a user's activity log entries per type.
type ActivityStats map[ActivityType]int

type ActivityIndexFilter struct {
	UserId string
	PageRequest
}
