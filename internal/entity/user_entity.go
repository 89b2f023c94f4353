package entity

import "time"

type Role string

const (
	RoleStudent     Role = "student"
	RoleAdmin       Role = "admin"
	RoleSocietyHead Role = "society_head"
)

// EarnedBadge is a catalog Badge copied onto the user at award time.
type EarnedBadge struct {
	Id          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Icon        string    `bson:"icon" json:"icon"`
	Category    string    `bson:"category" json:"category"`
	EarnedAt    time.Time `bson:"earnedAt" json:"earnedAt"`
}

type User struct {
	Id               string        `bson:"_id" json:"id"`
	Name             string        `bson:"name" json:"name"`
	Email            string        `bson:"email" json:"email"`
	Batch            string        `bson:"batch" json:"batch"`
	Role             Role          `bson:"role" json:"role"`
	Points           int           `bson:"points" json:"points"`
	Badges           []EarnedBadge `bson:"badges" json:"badges"`
	IsOnline         bool          `bson:"isOnline" json:"isOnline"`
	LastSeen         *time.Time    `bson:"lastSeen,omitempty" json:"lastSeen,omitempty"`
	TokensValidAfter *time.Time    `bson:"tokensValidAfter,omitempty" json:"-"`
	CreatedAt        time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt" json:"updatedAt"`
}

func (u User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) HasBadge(badgeId string) bool {
	for _, b := range u.Badges {
		if b.Id == badgeId {
			return true
		}
	}
	return false
}

// NewUserFromIdentity builds the minimal profile used when none exists yet.
func NewUserFromIdentity(identity Identity, now time.Time) User {
	name := identity.Name
	if name == "" {
		name = identity.Email
	}
	if name == "" {
		name = "Student"
	}
	return User{
		Id:        identity.UserId,
		Name:      name,
		Email:     identity.Email,
		Role:      RoleStudent,
		Points:    0,
		Badges:    []EarnedBadge{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type UserIndexFilter struct {
	Role         Role
	Batch        string
	SortByPoints bool
	PageRequest
}

type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=80"`
	Batch *string `json:"batch" validate:"omitempty,max=40"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student admin society_head"`
}
