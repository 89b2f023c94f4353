package entity

import "time"

type TopicCount struct {
	Topic   string   `json:"topic"`
	Count   int      `json:"count"`
	Samples []string `json:"samples"`
}

type ParticipantCount struct {
	UserId string `json:"userId"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

type QuotedMessage struct {
	MessageId  string `json:"messageId"`
	AuthorName string `json:"authorName"`
	Quote      string `json:"quote"`
}

// ChatSummary is a templated report over a window of recent messages.
type ChatSummary struct {
	Summary          string             `json:"summary"`
	MessageCount     int                `json:"messageCount"`
	ParticipantCount int                `json:"participantCount"`
	Topics           []TopicCount       `json:"topics"`
	TopParticipants  []ParticipantCount `json:"topParticipants"`
	Questions        []QuotedMessage    `json:"questions"`
	Important        []QuotedMessage    `json:"important"`
	From             *time.Time         `json:"from,omitempty"`
	To               *time.Time         `json:"to,omitempty"`
}
