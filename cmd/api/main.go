package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/game-guru/backend/internal/config"
	"github.com/zhouzirui/game-guru/backend/internal/handler"
	"github.com/zhouzirui/game-guru/backend/internal/model/game"
	"github.com/zhouzirui/game-guru/backend/internal/service/chat"
	"github.com/zhouzirui/game-guru/backend/internal/service/recommend"
	"github.com/zhouzirui/game-guru/backend/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatal().Err(err).Msg("failed to configure logger")
	}
	if envErr != nil {
		log.Warn().Err(envErr).Msg("no .env file loaded, continuing with system environment variables only")
	}

	catalog, err := loadCatalog(cfg.Guru.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Guru.CatalogPath).Msg("failed to load game catalog")
	}

	mode, err := recommend.ParseMode(cfg.Guru.MatchMode)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid match mode")
	}

	responder, err := recommend.NewResponder(ctx, catalog, recommend.Config{
		Mode:          mode,
		SynopsisLimit: cfg.Guru.SynopsisLimit,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build recommendation pipeline")
	}

	chatService := chat.NewService(catalog, responder, chat.Options{
		Timing: chat.Timing{
			ReplyDelay:   cfg.Guru.ReplyDelay,
			StaggerDelay: cfg.Guru.StaggerDelay,
		},
		SessionTTL: cfg.Guru.SessionTTL,
	})
	defer chatService.Shutdown()

	log.Info().
		Int("games", catalog.Len()).
		Str("mode", string(mode)).
		Dur("reply_delay", cfg.Guru.ReplyDelay).
		Dur("session_ttl", cfg.Guru.SessionTTL).
		Msg("game guru initialized")

	router := handler.NewRouter(catalog, chatService)

	startServer(ctx, cfg.Server, router)
}

// loadCatalog reads the catalog file when configured, otherwise uses the built-in seed.
func loadCatalog(path string) (*game.MemoryStore, error) {
	if path == "" {
		return game.NewMemoryStore(game.Seed()), nil
	}
	games, err := game.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return game.NewMemoryStore(games), nil
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("Game Guru backend listening")
	if err := runServer(ctx, srv); err != nil {
		log.Error().Err(err).Msg("server error")
		return
	}
	log.Info().Msg("server stopped")
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
