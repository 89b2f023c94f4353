package entity

import "time"

type Badge struct {
	Id          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Icon        string    `bson:"icon" json:"icon"`
	Category    string    `bson:"category" json:"category"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

func (b Badge) Earned(at time.Time) EarnedBadge {
	return EarnedBadge{
		Id:          b.Id,
		Name:        b.Name,
		Description: b.Description,
		Icon:        b.Icon,
		Category:    b.Category,
		EarnedAt:    at,
	}
}

type CreateBadgeRequest struct {
	Id          string `json:"id" validate:"omitempty,max=64"`
	Name        string `json:"name" validate:"required,max=80"`
	Description string `json:"description" validate:"required,max=300"`
	Icon        string `json:"icon" validate:"max=16"`
	Category    string `json:"category" validate:"required,max=40"`
}

type AwardBadgeRequest struct {
	UserId  string `json:"userId" validate:"required"`
	BadgeId string `json:"badgeId" validate:"required"`
}
