//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"github.com/e-gun/TopicaGoServer/internal/vlt"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var (
	Upgrader = websocket.Upgrader{}
)

//
// THE ROUTE
//

// RtWebsocket - progress info for an extraction (multiple clients at a time)
func RtWebsocket(c echo.Context) error {
	const (
		FAILCON = "RtWebsocket(): ws connection failed"
	)

	ws, err := Upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		Msg.NOTE(FAILCON)
		return nil
	}

	progresspoll := &vlt.WSClient{
		Conn: ws,
		Pool: vlt.WebsocketPool,
	}

	vlt.WebsocketPool.Add <- progresspoll
	progresspoll.ReceiveID()

	// WSMessageLoop() sends the client back to Pool.Remove when the extraction vanishes from the hub
	progresspoll.WSMessageLoop()
	return nil
}
