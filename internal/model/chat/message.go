package chat

import "time"

// Sender values for Message.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is one turn of a conversation. Messages are never mutated after
// creation; the ID doubles as a stable render key for the client.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
