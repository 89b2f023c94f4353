package entity

import "time"

type Reaction struct {
	Emoji   string   `bson:"emoji" json:"emoji"`
	UserIds []string `bson:"userIds" json:"userIds"`
	Count   int      `bson:"count" json:"count"`
}

type Message struct {
	Id          string     `bson:"_id" json:"id"`
	Content     string     `bson:"content" json:"content"`
	AuthorId    string     `bson:"authorId" json:"authorId"`
	AuthorName  string     `bson:"authorName" json:"authorName"`
	AuthorBatch string     `bson:"authorBatch" json:"authorBatch"`
	Timestamp   time.Time  `bson:"timestamp" json:"timestamp"`
	Edited      bool       `bson:"edited" json:"edited"`
	EditedAt    *time.Time `bson:"editedAt,omitempty" json:"editedAt,omitempty"`
	Reactions   []Reaction `bson:"reactions" json:"reactions"`
}

// ToggleReaction adds userId under emoji, or removes it if already present.
// Entries whose user list becomes empty are dropped. The input is not mutated.
func ToggleReaction(reactions []Reaction, emoji, userId string) []Reaction {
	out := make([]Reaction, 0, len(reactions)+1)
	found := false
	for _, r := range reactions {
		if r.Emoji != emoji {
			out = append(out, r)
			continue
		}
		found = true
		users := make([]string, 0, len(r.UserIds)+1)
		had := false
		for _, id := range r.UserIds {
			if id == userId {
				had = true
				continue
			}
			users = append(users, id)
		}
		if !had {
			users = append(users, userId)
		}
		if len(users) == 0 {
			continue
		}
		out = append(out, Reaction{Emoji: emoji, UserIds: users, Count: len(users)})
	}
	if !found {
		out = append(out, Reaction{Emoji: emoji, UserIds: []string{userId}, Count: 1})
	}
	return out
}

type MessageIndexFilter struct {
	AuthorId string
	PageRequest
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

type EditMessageRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

type ReactionRequest struct {
	Emoji string `json:"emoji" validate:"required,max=16"`
}
