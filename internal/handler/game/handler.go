package game

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/game-guru/backend/internal/model/game"
	"github.com/zhouzirui/game-guru/backend/pkg/utils"
)

// Handler 游戏目录的HTTP处理器
type Handler struct {
	catalog game.Catalog
}

// New 创建游戏目录处理器
func New(catalog game.Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// RegisterRoutes 注册游戏目录相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/games", h.handleListGames)
	r.Get("/games/{gameID}", h.handleGetGame)
}

func (h *Handler) handleListGames(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.catalog.List())
}

func (h *Handler) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := h.catalog.FindByID(chi.URLParam(r, "gameID"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "game not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, g)
}
