package entity

import (
	"strings"
	"time"
)

type FacilityStatus string

const (
	FacilityAvailable   FacilityStatus = "available"
	FacilityBusy        FacilityStatus = "busy"
	FacilityClosed      FacilityStatus = "closed"
	FacilityMaintenance FacilityStatus = "maintenance"
)

type CampusStatus struct {
	Id            string         `bson:"_id" json:"id"`
	Facility      string         `bson:"facility" json:"facility"`
	FacilityKey   string         `bson:"facilityKey" json:"-"`
	Status        FacilityStatus `bson:"status" json:"status"`
	Description   string         `bson:"description" json:"description"`
	Keywords      []string       `bson:"keywords" json:"keywords"`
	LastUpdated   time.Time      `bson:"lastUpdated" json:"lastUpdated"`
	UpdatedBy     string         `bson:"updatedBy" json:"updatedBy"`
	UpdatedByName string         `bson:"updatedByName" json:"updatedByName"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
}

// FacilityKey is the upsert key: case-insensitive with collapsed whitespace.
func FacilityKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// NormalizeKeywords lowercases, trims and de-duplicates keywords, keeping first-seen order.
func NormalizeKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

type StatusIndexFilter struct {
	Status  FacilityStatus
	Keyword string
	// Query matches facility, description or keywords case-insensitively.
	Query string
	PageRequest
}

type CampusStatusRequest struct {
	Facility    string   `json:"facility" validate:"required,max=100"`
	Status      string   `json:"status" validate:"required,oneof=available busy closed maintenance"`
	Description string   `json:"description" validate:"max=500"`
	Keywords    []string `json:"keywords" validate:"max=20,dive,max=32"`
}

type UpdateCampusStatusRequest struct {
	Status      *string  `json:"status" validate:"omitempty,oneof=available busy closed maintenance"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Keywords    []string `json:"keywords" validate:"max=20,dive,max=32"`
}

// CampusStatusPatch names only the fields an update touches. Nil leaves a field as stored.
type CampusStatusPatch struct {
	Status        *FacilityStatus
	Description   *string
	Keywords      []string
	UpdatedBy     string
	UpdatedByName string
	At            time.Time
}

type KeywordCount struct {
	Keyword string `bson:"_id" json:"keyword"`
	Count   int    `bson:"count" json:"count"`
}
