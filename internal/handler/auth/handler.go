package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	authservice "github.com/ecosrev/ecosrev-backend/internal/service/auth"
	"github.com/ecosrev/ecosrev-backend/pkg/utils"
)

// Handler proxies registration, login and profile calls to the remote user
// service.
type Handler struct {
	client *authservice.Client
	tokens *authservice.FileTokenStore
}

// New creates the auth handler.
func New(client *authservice.Client, tokens *authservice.FileTokenStore) *Handler {
	return &Handler{client: client, tokens: tokens}
}

// RegisterRoutes mounts the auth routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
	r.Get("/auth/me", h.handleMe)
	r.Put("/auth/me", h.handleUpdateMe)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"nome"`
		Email    string `json:"email"`
		Password string `json:"senha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "nome, email and senha are required")
		return
	}

	if err := h.client.Register(r.Context(), payload.Name, payload.Email, payload.Password); err != nil {
		h.respondRemoteError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// handleLogin exchanges credentials for a token and remembers it in the
// local token store so later scans need no re-login.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"senha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	creds, err := h.client.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		h.respondRemoteError(w, err)
		return
	}

	if h.tokens != nil {
		if err := h.tokens.Write(&creds); err != nil {
			log.Printf("[auth] persist credentials: %v", err)
		}
	}
	utils.RespondJSON(w, http.StatusOK, creds)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("access-token")
	if token == "" {
		utils.RespondError(w, http.StatusUnauthorized, "access-token header is required")
		return
	}

	user, err := h.client.Me(r.Context(), token)
	if err != nil {
		h.respondRemoteError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, user)
}

func (h *Handler) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("access-token")
	if token == "" {
		utils.RespondError(w, http.StatusUnauthorized, "access-token header is required")
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.client.UpdateMe(r.Context(), token, fields); err != nil {
		h.respondRemoteError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// respondRemoteError maps remote statuses through and hides transport
// failures behind 502.
func (h *Handler) respondRemoteError(w http.ResponseWriter, err error) {
	var statusErr *authservice.StatusError
	if errors.As(err, &statusErr) {
		utils.RespondError(w, statusErr.Status, statusErr.Message)
		return
	}
	utils.RespondError(w, http.StatusBadGateway, err.Error())
}
