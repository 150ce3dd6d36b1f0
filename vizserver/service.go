// Package vizserver exposes the live render-description stream to browser
// clients over websocket. It is a read-only observer of the game; nothing
// here feeds back into gameplay.
package vizserver

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	apphandler "github.com/zenjiro/pose-game/vizserver/handler"
	"github.com/zenjiro/pose-game/vizserver/types"
)

type VizService struct {
	addr     string
	game     *types.GameDescription
	vizEvent string
	watchers *types.WatcherMap
}

func NewVizService(addr string, game *types.GameDescription, vizEvent string) *VizService {
	return &VizService{
		addr:     addr,
		game:     game,
		vizEvent: vizEvent,
		watchers: types.NewWatcherMap(),
	}
}

func (viz *VizService) ListenAndServe() error {
	logger := os.Stdout
	router := mux.NewRouter()

	router.Handle("/", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Home(viz.watchers, viz.game)),
	)).Methods("GET")

	router.Handle("/ws", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Websocket(viz.watchers, viz.game, viz.vizEvent)),
	)).Methods("GET")

	log.Println("VIZ Listening on " + viz.addr)

	return http.ListenAndServe(viz.addr, router)
}

func (viz *VizService) NumberWatchers() int {
	return viz.watchers.Size()
}
