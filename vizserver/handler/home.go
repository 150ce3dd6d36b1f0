package handler

import (
	"encoding/json"
	"net/http"

	"github.com/zenjiro/pose-game/vizserver/types"
)

type homeResponse struct {
	App      string                 `json:"app"`
	Game     *types.GameDescription `json:"game"`
	Watchers int                    `json:"watchers"`
}

func Home(watchers *types.WatcherMap, game *types.GameDescription) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := json.Marshal(homeResponse{
			App:      "pose-game",
			Game:     game,
			Watchers: watchers.Size(),
		})
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}
}
