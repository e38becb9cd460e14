package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/game-guru/backend/internal/handler/chat"
	gameHandler "github.com/zhouzirui/game-guru/backend/internal/handler/game"
	"github.com/zhouzirui/game-guru/backend/internal/handler/stream"
	"github.com/zhouzirui/game-guru/backend/internal/handler/ws"
	middlewarePkg "github.com/zhouzirui/game-guru/backend/internal/middleware"
	"github.com/zhouzirui/game-guru/backend/internal/model/game"
	chatService "github.com/zhouzirui/game-guru/backend/internal/service/chat"
	"github.com/zhouzirui/game-guru/backend/pkg/utils"
)

const streamHeartbeat = 15 * time.Second

// NewRouter wires HTTP routes to core services.
func NewRouter(catalog game.Catalog, chatSvc *chatService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.AccessLog)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	// Create handlers
	games := gameHandler.New(catalog)
	chatHandler := chat.New(chatSvc)
	streamHandler := stream.New(chatSvc, streamHeartbeat)
	wsHandler := ws.New(chatSvc)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]any{
				"status":   "ok",
				"sessions": chatSvc.Count(),
				"games":    len(catalog.List()),
			})
		})

		games.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)

		// Transcript push: SSE for browsers, WebSocket for interactive clients
		streamHandler.RegisterRoutes(api)
		wsHandler.RegisterRoutes(api)
	})

	return r
}
