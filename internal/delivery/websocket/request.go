package websocket

import "encoding/json"

// inbound is one frame received from a client: {"event": "...", "data": {...}}.
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type SendMessage struct {
	Content string `json:"content"`
}

type EditMessage struct {
	MessageId string `json:"messageId"`
	Content   string `json:"content"`
}

type DeleteMessage struct {
	MessageId string `json:"messageId"`
}

type ReactMessage struct {
	MessageId string `json:"messageId"`
	Emoji     string `json:"emoji"`
}

type Typing struct {
	IsTyping bool `json:"isTyping"`
}
