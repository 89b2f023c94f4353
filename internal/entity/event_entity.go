package entity

// Realtime event names shared by the REST layer and the gateway.
const (
	EventMessageSend     = "message:send"
	EventMessageReceive  = "message:receive"
	EventMessageEdit     = "message:edit"
	EventMessageDelete   = "message:delete"
	EventMessageReaction = "message:reaction"
	EventUserOnline      = "user:online"
	EventUserOffline     = "user:offline"
	EventUserTyping      = "user:typing"
	EventAnnouncementNew = "announcement:new"
	EventStatusUpdate    = "status:update"
	EventNotification    = "notification"
	EventError           = "error"
)

// Event is the frame exchanged over a realtime connection.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data,omitempty"`
}

type MessageDeleted struct {
	MessageId string `json:"messageId"`
}

type PresenceChange struct {
	UserId string `json:"userId"`
	Name   string `json:"name,omitempty"`
}

type TypingIndicator struct {
	UserId   string `json:"userId"`
	Name     string `json:"name"`
	IsTyping bool   `json:"isTyping"`
}

type Notification struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	RefId   string `json:"refId,omitempty"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}
