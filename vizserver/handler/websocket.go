package handler

import (
	"fmt"
	"log"
	"net/http"

	notify "github.com/bitly/go-notify"
	"github.com/gorilla/websocket"

	"github.com/zenjiro/pose-game/common/utils"
	"github.com/zenjiro/pose-game/vizserver/types"
)

type wsincomingmessage struct {
	messageType int
	p           []byte
	err         error
}

type vizInitMessage struct {
	Type string                 `json:"type"`
	Data *types.GameDescription `json:"data"`
}

// Websocket streams render frames published on the given notify event to
// one connected client.
func Websocket(watchers *types.WatcherMap, game *types.GameDescription, vizEvent string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		}

		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Print("upgrade:", err)
			return
		}

		watcher := types.NewWatcher(c)
		watchers.Set(watcher.GetId(), watcher)

		defer func(c *websocket.Conn) {
			watchers.Remove(watcher.GetId())
			c.Close()
		}(c)

		initErr := c.WriteJSON(vizInitMessage{Type: "init", Data: game})
		if initErr != nil {
			utils.Debug("viz-server", "Could not send init message; "+initErr.Error())
			return
		}

		clientclosedsocket := make(chan bool)
		c.SetCloseHandler(func(code int, text string) error {
			clientclosedsocket <- true
			return nil
		})

		// Read incoming messages; mandatory to notice when the websocket is
		// closed client side.
		incomingmsg := make(chan wsincomingmessage)
		go func(client *websocket.Conn, ch chan wsincomingmessage) {
			messageType, p, err := client.ReadMessage()
			ch <- wsincomingmessage{messageType, p, err}
		}(c, incomingmsg)

		vizmsgchan := make(chan interface{})
		notify.Start(vizEvent, vizmsgchan)
		defer notify.Stop(vizEvent, vizmsgchan)

		for {
			select {
			case <-clientclosedsocket:
				return
			case msg := <-incomingmsg:
				if msg.err != nil {
					return
				}
			case vizmsg := <-vizmsgchan:
				vizmsgString, ok := vizmsg.(string)
				utils.Assert(ok, "Failed to cast vizmessage into string")

				c.WriteMessage(websocket.TextMessage, []byte(fmt.Sprintf("{\"type\":\"frame\", \"data\": %s}", vizmsgString)))
			}
		}
	}
}
