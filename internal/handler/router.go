package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ecosrev/ecosrev-backend/internal/config"
	authhandler "github.com/ecosrev/ecosrev-backend/internal/handler/auth"
	chathandler "github.com/ecosrev/ecosrev-backend/internal/handler/chat"
	faqhandler "github.com/ecosrev/ecosrev-backend/internal/handler/faq"
	rewardshandler "github.com/ecosrev/ecosrev-backend/internal/handler/rewards"
	voicehandler "github.com/ecosrev/ecosrev-backend/internal/handler/voice"
	faqmodel "github.com/ecosrev/ecosrev-backend/internal/model/faq"
	authservice "github.com/ecosrev/ecosrev-backend/internal/service/auth"
	chatservice "github.com/ecosrev/ecosrev-backend/internal/service/chat"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(cfg *config.Config, store faqmodel.Store, chatSvc *chatservice.Service, authClient *authservice.Client, tokens *authservice.FileTokenStore) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.Server.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "access-token"},
	}))

	faqHandler := faqhandler.New(store)
	chatHandler := chathandler.New(chatSvc)
	voiceHandler := voicehandler.New(chatSvc, cfg.Voice)
	rewardsHandler := rewardshandler.New(cfg.Ledger.BaseURL)
	authHandler := authhandler.New(authClient, tokens)

	r.Route("/api", func(api chi.Router) {
		faqHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		voiceHandler.RegisterRoutes(api)
		rewardsHandler.RegisterRoutes(api)
		authHandler.RegisterRoutes(api)
	})

	return r
}
