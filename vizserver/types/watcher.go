package types

import (
	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"

	commontypes "github.com/zenjiro/pose-game/common/types"
)

// Watcher is one connected viz client.
type Watcher struct {
	id   string
	Conn *websocket.Conn
}

func NewWatcher(conn *websocket.Conn) *Watcher {
	return &Watcher{
		id:   uuid.NewV4().String(),
		Conn: conn,
	}
}

func (w *Watcher) GetId() string {
	return w.id
}

type WatcherMap struct {
	*commontypes.SyncMap
}

func NewWatcherMap() *WatcherMap {
	return &WatcherMap{
		commontypes.NewSyncMap(),
	}
}

func (wmap *WatcherMap) Get(id string) *Watcher {
	if res, ok := (wmap.GetGeneric(id)).(*Watcher); ok {
		return res
	}

	return nil
}

// GameDescription is what the viz needs to know about the running game.
type GameDescription struct {
	Name   string `json:"name"`
	Tps    int    `json:"tps"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
