package chat

import "time"

// Session captures one chat surface instance. The message log lives in the
// chat service; reopening a session discards it and seeds a fresh greeting.
type Session struct {
	ID        string    `json:"id"`
	Open      bool      `json:"open"`
	CreatedAt time.Time `json:"createdAt"`
}
