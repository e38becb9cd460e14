package game

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/game-guru/backend/internal/model/game"
)

func setupRouter() *chi.Mux {
	r := chi.NewRouter()
	New(game.NewMemoryStore(game.Seed())).RegisterRoutes(r)
	return r
}

func TestListGames(t *testing.T) {
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/games", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	var games []game.Game
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &games))
	assert.Len(t, games, len(game.Seed()))
	assert.Equal(t, "catan", games[0].ID)
}

func TestGetGame(t *testing.T) {
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/games/pandemic", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	var g game.Game
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &g))
	assert.Equal(t, "Pandemic", g.Name)
	assert.Equal(t, []game.Category{game.Cooperative, game.Strategy}, g.Categories)
}

func TestGetGameNotFound(t *testing.T) {
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/games/unknown", nil))

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
