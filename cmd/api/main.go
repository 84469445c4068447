package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ecosrev/ecosrev-backend/internal/config"
	"github.com/ecosrev/ecosrev-backend/internal/handler"
	faqmodel "github.com/ecosrev/ecosrev-backend/internal/model/faq"
	authservice "github.com/ecosrev/ecosrev-backend/internal/service/auth"
	chatservice "github.com/ecosrev/ecosrev-backend/internal/service/chat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	intents := faqmodel.Seed()
	if cfg.Chat.FAQFile != "" {
		loaded, err := faqmodel.LoadFile(cfg.Chat.FAQFile)
		if err != nil {
			log.Fatalf("failed to load FAQ file: %v", err)
		}
		intents = loaded
		log.Printf("loaded %d FAQ intents from %s", len(intents), cfg.Chat.FAQFile)
	}

	store, err := faqmodel.NewMemoryStore(intents)
	if err != nil {
		log.Fatalf("invalid FAQ intents: %v", err)
	}

	chatSvc := chatservice.NewService(store, cfg.Chat.Greeting)
	authClient := authservice.NewClient(cfg.Ledger.BaseURL)
	tokens := authservice.NewFileTokenStore(cfg.Ledger.TokenFile)

	router := handler.NewRouter(cfg, store, chatSvc, authClient, tokens)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("EcosRev backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
