//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/e-gun/TopicaGoServer/internal/lnch"
	"github.com/e-gun/TopicaGoServer/internal/vv"
	"github.com/gorilla/websocket"
)

var Msg = lnch.NewMessageMakerWithDefaults()

//
// WEBSOCKET INFRASTRUCTURE: see https://tutorialedge.net/projects/chat-system-in-go-and-react/part-4-handling-multiple-clients/
//

// PollData - progress info that formatpoll() will turn into one status line for the client
type PollData struct {
	StageCt  int    `json:"Stagecount"`
	StageNum int    `json:"Stagenumber"`
	Stage    string `json:"Currentstage"`
	Msg      string `json:"Statusmessage"`
	Elapsed  string `json:"Elapsed"`
	ID       string `json:"ID"`
}

type WSClient struct {
	ID   string
	Conn *websocket.Conn
	Pool *WSPool
}

type WSPool struct {
	Add       chan *WSClient
	Remove    chan *WSClient
	ClientMap map[*WSClient]bool
	JSO       chan *WSJSOut
	ReadID    chan string
}

type WSJSOut struct {
	V     string `json:"value"`
	ID    string `json:"ID"`
	Close string `json:"close"`
}

// ReceiveID - get the extraction job id from the client; record it; then exit
func (c *WSClient) ReceiveID() {
	const (
		FAIL1 = `WSClient.ReceiveID() failed`
		FAIL2 = `WSClient.ReceiveID() never received the extraction id`
	)

	quit := time.Now().Add(time.Second * 1)

	for {
		_, m, err := c.Conn.ReadMessage()
		if err != nil {
			Msg.FYI(FAIL1)
			return
		}

		if len(m) != 0 {
			id := string(m)
			id = strings.Replace(id, `"`, "", -1)
			c.ID = id
			c.Pool.ReadID <- id
			break
		}

		if time.Now().After(quit) {
			Msg.FYI(FAIL2)
			break
		}
	}
}

// WSMessageLoop - output the constantly updated extraction progress to the websocket; then exit
func (c *WSClient) WSMessageLoop() {
	const (
		FAIL    = `WSClient.WSMessageLoop() never found '%s' among the active extractions`
		SUCCESS = `WSClient.WSMessageLoop() found '%s' among the active extractions`
	)

	getxtrinfo := func() WSXtrInfo {
		responder := WSXIReply{Key: c.ID, Response: make(chan WSXtrInfo)}
		WSInfo.RequestInfo <- responder
		return <-responder.Response
	}

	// wait for the extraction to exist
	quit := time.Now().Add(time.Second * 1)

	for {
		xtrinfo := getxtrinfo()
		if xtrinfo.XtrCount != 0 && xtrinfo.Exists {
			Msg.FYI(fmt.Sprintf(SUCCESS, c.ID))
			break
		}

		if time.Now().After(quit) {
			Msg.FYI(fmt.Sprintf(FAIL, c.ID))
			break
		}
	}

	var pd PollData
	pd.ID = c.ID

	// loop until the extraction finishes
	for {
		xtrinfo := getxtrinfo()
		if xtrinfo.Exists {
			pd.StageCt = xtrinfo.StageCt
			pd.StageNum = xtrinfo.StageNum
			pd.Stage = xtrinfo.Stage
			pd.Msg = xtrinfo.Summary
		} else {
			break
		}

		pd.Elapsed = fmt.Sprintf("%.1fs", time.Now().Sub(xtrinfo.Launched).Seconds())

		jso := &WSJSOut{
			V:     formatpoll(pd),
			ID:    c.ID,
			Close: "open",
		}

		c.Pool.JSO <- jso
		time.Sleep(vv.WSPOLLINGPAUSE)
	}
	WebsocketPool.Remove <- c
}

// WSPoolStartListening - the WSPool will listen for activity on its various channels (only called once at app startup)
func (pool *WSPool) WSPoolStartListening() {
	const (
		MSG1 = "Starting polling loop for %s"
		MSG2 = "WSPool client failed on WriteMessage()"
	)

	writemsg := func(jso *WSJSOut) {
		for cl := range pool.ClientMap {
			if cl.ID == jso.ID {
				js, y := json.Marshal(jso)
				Msg.EC(y)
				e := cl.Conn.WriteMessage(websocket.TextMessage, js)
				if e != nil {
					Msg.WARN(MSG2)
					delete(pool.ClientMap, cl)
				}
			}
		}
	}

	for {
		select {
		case id := <-pool.Add:
			pool.ClientMap[id] = true
		case id := <-pool.Remove:
			delete(pool.ClientMap, id)
		case id := <-pool.ReadID:
			Msg.PEEK(fmt.Sprintf(MSG1, id))
		case wrt := <-pool.JSO:
			writemsg(wrt)
		}
	}
}

// WSFillNewPool - build a new WSPool (one and only one built at app startup)
func WSFillNewPool() *WSPool {
	return &WSPool{
		Add:       make(chan *WSClient),
		Remove:    make(chan *WSClient),
		ClientMap: make(map[*WSClient]bool),
		JSO:       make(chan *WSJSOut),
		ReadID:    make(chan string),
	}
}

// formatpoll - build the status line to send to the client on the other side
func formatpoll(pd PollData) string {
	// example:
	// Extracting 3 topics from »themes.docx«: stage 4 of 5: fitting the topic model (2.3s)

	const (
		STG = `%s: stage %d of %d: %s (%s)`
		PRE = `%s: warming up... (%s)`
	)

	if pd.StageNum == 0 || pd.Stage == "" {
		// registered, but the first stage has not reported yet
		return fmt.Sprintf(PRE, pd.Msg, pd.Elapsed)
	}

	return fmt.Sprintf(STG, pd.Msg, pd.StageNum, pd.StageCt, pd.Stage, pd.Elapsed)
}
