// Package voice holds the wire types exchanged with the device speech
// capability. Speech recognition and synthesis run on the device; the
// backend only consumes the recognizer event stream and issues utterances.
package voice

// EventType identifies one recognizer callback.
type EventType string

// Recognizer events arrive in this temporal order for one recording
// session: start, zero or more results, then end or error.
const (
	EventStart  EventType = "start"
	EventResult EventType = "result"
	EventEnd    EventType = "end"
	EventError  EventType = "error"
)

// Event is a single speech-recognizer callback relayed by the device.
type Event struct {
	Type       EventType `json:"type"`
	Transcript string    `json:"transcript,omitempty"`
	IsFinal    bool      `json:"isFinal,omitempty"`
	Code       string    `json:"errorCode,omitempty"`
}

// Utterance is a text-to-speech request sent back to the device.
type Utterance struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Rate     float32 `json:"rate"`
	Pitch    float32 `json:"pitch"`
}
