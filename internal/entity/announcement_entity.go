package entity

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

const DefaultAnnouncementLifetime = 30 * 24 * time.Hour

type Announcement struct {
	Id         string    `bson:"_id" json:"id"`
	Title      string    `bson:"title" json:"title"`
	Content    string    `bson:"content" json:"content"`
	AuthorId   string    `bson:"authorId" json:"authorId"`
	AuthorName string    `bson:"authorName" json:"authorName"`
	Priority   Priority  `bson:"priority" json:"priority"`
	Tags       []string  `bson:"tags" json:"tags"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
	ExpiresAt  time.Time `bson:"expiresAt" json:"expiresAt"`
	Views      int       `bson:"views" json:"views"`
	Likes      int       `bson:"likes" json:"likes"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

type AnnouncementLike struct {
	Id             string    `bson:"_id" json:"id"`
	AnnouncementId string    `bson:"announcementId" json:"announcementId"`
	UserId         string    `bson:"userId" json:"userId"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

type AnnouncementIndexFilter struct {
	Priority Priority
	Tag      string
	AuthorId string
	// ActiveAt hides announcements whose expiresAt is not after this instant.
	ActiveAt time.Time
	PageRequest
}

type CreateAnnouncementRequest struct {
	Title     string     `json:"title" validate:"required,max=200"`
	Content   string     `json:"content" validate:"required,max=5000"`
	Priority  string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Tags      []string   `json:"tags" validate:"max=10,dive,max=32"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

type UpdateAnnouncementRequest struct {
	Title     *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Content   *string    `json:"content" validate:"omitempty,min=1,max=5000"`
	Priority  *string    `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Tags      []string   `json:"tags" validate:"max=10,dive,max=32"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

type LikeResult struct {
	Announcement Announcement `json:"announcement"`
	Liked        bool         `json:"liked"`
}
