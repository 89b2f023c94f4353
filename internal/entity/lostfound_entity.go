package entity

import "time"

type LostFoundStatus string

const (
	LostFoundLost     LostFoundStatus = "lost"
	LostFoundFound    LostFoundStatus = "found"
	LostFoundReturned LostFoundStatus = "returned"
)

type LostFoundItem struct {
	Id           string          `bson:"_id" json:"id"`
	Title        string          `bson:"title" json:"title"`
	Description  string          `bson:"description" json:"description"`
	Category     string          `bson:"category" json:"category"`
	Status       LostFoundStatus `bson:"status" json:"status"`
	ReporterId   string          `bson:"reporterId" json:"reporterId"`
	ReporterName string          `bson:"reporterName" json:"reporterName"`
	Location     string          `bson:"location" json:"location"`
	ContactInfo  string          `bson:"contactInfo" json:"contactInfo"`
	ResolvedBy   string          `bson:"resolvedBy,omitempty" json:"resolvedBy,omitempty"`
	ReturnedAt   *time.Time      `bson:"returnedAt,omitempty" json:"returnedAt,omitempty"`
	CreatedAt    time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time       `bson:"updatedAt" json:"updatedAt"`
}

type LostFoundIndexFilter struct {
	Status     LostFoundStatus
	Category   string
	ReporterId string
	PageRequest
}

type CreateLostFoundRequest struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"required,max=2000"`
	Category    string `json:"category" validate:"required,oneof=electronics books clothing accessories documents keys other"`
	Status      string `json:"status" validate:"required,oneof=lost found"`
	Location    string `json:"location" validate:"required,max=200"`
	ContactInfo string `json:"contactInfo" validate:"required,max=200"`
}

// UpdateLostFoundRequest never accepts "returned"; that transition has its own endpoint.
type UpdateLostFoundRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description" validate:"omitempty,min=1,max=2000"`
	Category    *string `json:"category" validate:"omitempty,oneof=electronics books clothing accessories documents keys other"`
	Status      *string `json:"status" validate:"omitempty,oneof=lost found"`
	Location    *string `json:"location" validate:"omitempty,min=1,max=200"`
	ContactInfo *string `json:"contactInfo" validate:"omitempty,min=1,max=200"`
}
