package rewards

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	rewardsservice "github.com/ecosrev/ecosrev-backend/internal/service/rewards"
	"github.com/ecosrev/ecosrev-backend/pkg/utils"
)

// LedgerFactory builds a ledger client bound to one user token. Tests swap
// in fakes here.
type LedgerFactory func(token string) rewardsservice.Ledger

// Handler exposes the QR redemption flow.
type Handler struct {
	newLedger LedgerFactory
}

// New creates the rewards handler backed by the remote ledger.
func New(baseURL string) *Handler {
	return &Handler{newLedger: func(token string) rewardsservice.Ledger {
		return rewardsservice.NewClient(baseURL, token)
	}}
}

// NewWithFactory creates the handler with a custom ledger factory.
func NewWithFactory(factory LedgerFactory) *Handler {
	return &Handler{newLedger: factory}
}

// RegisterRoutes mounts the rewards routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/rewards/scan", h.handleScan)
	r.Get("/rewards/points", h.handlePoints)
}

// handleScan credits a scanned QR voucher. A malformed payload is a client
// error and leaves the balance untouched; the app re-arms the scanner on
// 400. Ledger failures surface as 502 so the user sees a dismissable
// notice and may retry.
func (h *Handler) handleScan(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("access-token")
	if token == "" {
		utils.RespondError(w, http.StatusUnauthorized, "access-token header is required")
		return
	}

	var payload struct {
		UserID  string `json:"userId"`
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	svc := rewardsservice.NewService(h.newLedger(token))
	award, err := svc.Redeem(r.Context(), payload.UserID, payload.Payload)
	if err != nil {
		if errors.Is(err, rewardsservice.ErrInvalidVoucher) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, award)
}

// handlePoints proxies the current balance.
func (h *Handler) handlePoints(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("access-token")
	if token == "" {
		utils.RespondError(w, http.StatusUnauthorized, "access-token header is required")
		return
	}

	points, err := h.newLedger(token).Points(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]int{"pontos": points})
}
