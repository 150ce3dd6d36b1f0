package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zenjiro/pose-game/vizserver/types"
)

func TestHome(t *testing.T) {
	watchers := types.NewWatcherMap()
	game := &types.GameDescription{Name: "pose-game", Tps: 60, Width: 1280, Height: 720}

	req := httptest.NewRequest("GET", "/", nil)
	res := httptest.NewRecorder()

	Home(watchers, game)(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "application/json", res.Header().Get("Content-Type"))

	var body struct {
		App      string                 `json:"app"`
		Game     *types.GameDescription `json:"game"`
		Watchers int                    `json:"watchers"`
	}
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "pose-game", body.App)
	assert.Equal(t, 60, body.Game.Tps)
	assert.Equal(t, 0, body.Watchers)
}
