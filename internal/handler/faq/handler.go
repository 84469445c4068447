package faq

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	faqmodel "github.com/ecosrev/ecosrev-backend/internal/model/faq"
	"github.com/ecosrev/ecosrev-backend/pkg/utils"
)

// Handler serves the loaded FAQ intents.
type Handler struct {
	store faqmodel.Store
}

// New creates the FAQ handler.
func New(store faqmodel.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the FAQ routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/faq/intents", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{"intents": h.store.List()})
}
