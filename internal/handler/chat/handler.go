package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	chatmodel "github.com/ecosrev/ecosrev-backend/internal/model/chat"
	chatservice "github.com/ecosrev/ecosrev-backend/internal/service/chat"
	"github.com/ecosrev/ecosrev-backend/pkg/utils"
)

// Handler exposes the conversation session over HTTP.
type Handler struct {
	chatSvc *chatservice.Service
}

// New creates the chat handler.
func New(chatSvc *chatservice.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/session", h.handleOpen)
	r.Post("/chat/session/{sessionID}/open", h.handleReopen)
	r.Delete("/chat/session/{sessionID}", h.handleClose)
	r.Post("/chat/session/{sessionID}/messages", h.handleSubmit)
	r.Get("/chat/session/{sessionID}/messages", h.handleTranscript)
}

type sessionResponse struct {
	Session  chatmodel.Session   `json:"session"`
	Messages []chatmodel.Message `json:"messages"`
}

// handleOpen provisions a new session seeded with the greeting.
func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	session, greeting, err := h.chatSvc.Open(r.Context(), "")
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusCreated, sessionResponse{
		Session:  session,
		Messages: []chatmodel.Message{greeting},
	})
}

// handleReopen resets an existing session: the old transcript is discarded
// and a fresh greeting seeded, matching the chat surface becoming visible.
func (h *Handler) handleReopen(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	session, greeting, err := h.chatSvc.Open(r.Context(), sessionID)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, sessionResponse{
		Session:  session,
		Messages: []chatmodel.Message{greeting},
	})
}

func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.chatSvc.Close(r.Context(), sessionID); err != nil {
		h.respondSessionError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

// handleSubmit appends the user message and the matched bot answer. Empty
// input is a no-op and returns an empty message list.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	messages, err := h.chatSvc.Submit(r.Context(), sessionID, payload.Text)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	if messages == nil {
		messages = []chatmodel.Message{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	messages, err := h.chatSvc.Transcript(r.Context(), sessionID)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (h *Handler) respondSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, chatservice.ErrSessionNotFound) {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondError(w, http.StatusInternalServerError, err.Error())
}
