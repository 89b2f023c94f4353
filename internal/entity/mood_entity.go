package entity

import "time"

type Mood string

const (
	MoodStressed  Mood = "stressed"
	MoodTired     Mood = "tired"
	MoodMotivated Mood = "motivated"
	MoodHappy     Mood = "happy"
	MoodAnxious   Mood = "anxious"
	MoodFocused   Mood = "focused"
)

var Moods = []Mood{MoodStressed, MoodTired, MoodMotivated, MoodHappy, MoodAnxious, MoodFocused}

type MoodEntry struct {
	Id        string    `bson:"_id" json:"id"`
	UserId    string    `bson:"userId" json:"userId"`
	Mood      Mood      `bson:"mood" json:"mood"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
	StudyTip  string    `bson:"studyTip" json:"studyTip"`
	Helpful   *bool     `bson:"helpful,omitempty" json:"helpful,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type MoodIndexFilter struct {
	UserId string
	Mood   Mood
	PageRequest
}

type CreateMoodRequest struct {
	Mood string `json:"mood" validate:"required,oneof=stressed tired motivated happy anxious focused"`
	Note string `json:"note" validate:"max=500"`
}

type MoodFeedbackRequest struct {
	Helpful *bool `json:"helpful" validate:"required"`
}

type MoodTip struct {
	Mood Mood   `json:"mood"`
	Tip  string `json:"tip"`
}

type MoodCount struct {
	Mood  Mood `bson:"_id" json:"mood"`
	Count int  `bson:"count" json:"count"`
}
