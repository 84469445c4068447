// Package voice carries the websocket voice bridge. The device runs the
// platform recognizer and synthesizer; this handler relays its event stream
// into the conversation session and pushes bot replies, plus utterances to
// speak, back out.
package voice

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ecosrev/ecosrev-backend/internal/config"
	chatmodel "github.com/ecosrev/ecosrev-backend/internal/model/chat"
	voicemodel "github.com/ecosrev/ecosrev-backend/internal/model/voice"
	chatservice "github.com/ecosrev/ecosrev-backend/internal/service/chat"
	voiceservice "github.com/ecosrev/ecosrev-backend/internal/service/voice"
)

// Handler upgrades chat sessions to the websocket voice bridge.
type Handler struct {
	chatSvc  *chatservice.Service
	voiceCfg config.VoiceConfig
	upgrader websocket.Upgrader
}

// New creates the websocket handler.
func New(chatSvc *chatservice.Service, voiceCfg config.VoiceConfig) *Handler {
	return &Handler{
		chatSvc:  chatSvc,
		voiceCfg: voiceCfg,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/ws/{sessionID}", h.handleWebSocket)
}

// Inbound frame types sent by the device.
const (
	frameRecordStart = "record-start" // begin a recognition session
	frameRecordStop  = "record-stop"  // ask the recognizer to stop
	frameRecognizer  = "recognizer"   // one recognizer callback event
	frameText        = "text"         // typed submission over the same channel
)

// Outbound frame types pushed to the device.
const (
	frameMessages  = "messages"   // appended user/bot messages
	frameSpeak     = "speak"      // utterance to synthesize
	frameSpeakStop = "speak-stop" // cancel current utterance
	frameListening = "listening"  // recording state change
	frameError     = "error"
)

type inboundFrame struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp int64           `json:"timestamp,omitempty"`
}

type outboundFrame struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// wsConn serializes writes; gorilla connections allow one writer at a time.
type wsConn struct {
	mu        sync.Mutex
	ws        *websocket.Conn
	sessionID string
}

func (c *wsConn) send(frameType string, data any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(outboundFrame{
		Type:      frameType,
		SessionID: c.sessionID,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
}

// wsBridge implements the voice capability contract over the websocket. The
// actual recognizer and synthesizer live on the device; every operation is
// a control frame.
type wsBridge struct {
	conn     *wsConn
	voiceCfg config.VoiceConfig
}

// RequestPermission asks the device to prompt for microphone access. A
// denial comes back asynchronously as a recognizer error event.
func (b *wsBridge) RequestPermission(_ context.Context) (bool, error) {
	return true, b.conn.send(frameListening, map[string]string{"permission": "requested"})
}

func (b *wsBridge) Start(_ context.Context, opts voiceservice.Options) error {
	return b.conn.send(frameListening, map[string]any{"active": true, "language": opts.Language})
}

func (b *wsBridge) Stop(_ context.Context) error {
	return b.conn.send(frameListening, map[string]any{"active": false})
}

// Stop cancels the current utterance, keeping at most one playing.
func (b *wsBridge) StopSpeaking(_ context.Context) error {
	return b.conn.send(frameSpeakStop, nil)
}

func (b *wsBridge) Speak(_ context.Context, text string) error {
	return b.conn.send(frameSpeak, voicemodel.Utterance{
		Text:     text,
		Language: b.voiceCfg.Language,
		Rate:     b.voiceCfg.Rate,
		Pitch:    b.voiceCfg.Pitch,
	})
}

// speaker adapts wsBridge to the chat service Speaker contract.
type speaker struct{ bridge *wsBridge }

func (s speaker) Stop(ctx context.Context) error { return s.bridge.StopSpeaking(ctx) }
func (s speaker) Speak(ctx context.Context, text string) error { return s.bridge.Speak(ctx, text) }

// handleWebSocket runs one voice bridge connection for an open session.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "sessionID is required", http.StatusBadRequest)
		return
	}
	if _, err := h.chatSvc.Transcript(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[voice] websocket upgrade failed: %v", err)
		return
	}
	defer ws.Close()

	conn := &wsConn{ws: ws, sessionID: sessionID}
	bridge := &wsBridge{conn: conn, voiceCfg: h.voiceCfg}
	recorder := voiceservice.NewRecorder(bridge, func(ctx context.Context, transcript string) {
		// A final transcript is handled exactly like typed input.
		h.submitText(ctx, conn, bridge, transcript)
	})

	h.readLoop(r.Context(), conn, bridge, recorder)
}

func (h *Handler) readLoop(ctx context.Context, conn *wsConn, bridge *wsBridge, recorder *voiceservice.Recorder) {
	for {
		var frame inboundFrame
		if err := conn.ws.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[voice] session %s closed unexpectedly: %v", conn.sessionID, err)
			}
			return
		}

		switch frame.Type {
		case frameRecordStart:
			var opts voiceservice.Options
			if len(frame.Data) > 0 {
				if err := json.Unmarshal(frame.Data, &opts); err != nil {
					h.sendError(conn, "invalid record-start payload")
					continue
				}
			}
			if opts.Language == "" {
				opts.Language = h.voiceCfg.Language
			}
			if err := recorder.Start(ctx, opts); err != nil {
				h.sendError(conn, err.Error())
			}

		case frameRecordStop:
			if err := recorder.Stop(ctx); err != nil {
				h.sendError(conn, err.Error())
			}

		case frameRecognizer:
			var ev voicemodel.Event
			if err := json.Unmarshal(frame.Data, &ev); err != nil {
				h.sendError(conn, "invalid recognizer event")
				continue
			}
			if err := recorder.Process(ctx, ev); err != nil {
				h.sendError(conn, err.Error())
			}

		case frameText:
			var payload struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(frame.Data, &payload); err != nil {
				h.sendError(conn, "invalid text payload")
				continue
			}
			h.submitText(ctx, conn, bridge, payload.Text)

		default:
			h.sendError(conn, "unknown frame type: "+frame.Type)
		}
	}
}

// submitText runs the submission through the conversation session and
// pushes the appended messages back, speaking the bot answer aloud.
func (h *Handler) submitText(ctx context.Context, conn *wsConn, bridge *wsBridge, text string) {
	messages, err := h.chatSvc.Submit(ctx, conn.sessionID, text)
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}
	if len(messages) == 0 {
		return
	}
	if err := conn.send(frameMessages, messages); err != nil {
		log.Printf("[voice] push messages to session %s: %v", conn.sessionID, err)
		return
	}
	for _, msg := range messages {
		if msg.Sender == chatmodel.SenderBot {
			h.chatSvc.Speak(ctx, speaker{bridge: bridge}, msg.Text)
		}
	}
}

func (h *Handler) sendError(conn *wsConn, message string) {
	if err := conn.send(frameError, map[string]string{"message": message}); err != nil {
		log.Printf("[voice] send error frame: %v", err)
	}
}
