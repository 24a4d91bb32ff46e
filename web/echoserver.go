//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/e-gun/TopicaGoServer/internal/lnch"
	"github.com/e-gun/TopicaGoServer/internal/vlt"
	"github.com/e-gun/TopicaGoServer/internal/vv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var (
	Msg = lnch.NewMessageMakerWithDefaults()
)

// StartEchoServer - start serving; this blocks and does not return while the program remains alive
func StartEchoServer() {
	const (
		LLOGFMT = "r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
		RLOGFMT = "${remote_ip}\t${custom}\t${status}\t${bytes_out}\t${uri}\n"
	)

	// ctf - a CustomTagFunc return a short user agent
	ctf := func(c echo.Context, buf *bytes.Buffer) (int, error) {
		ua := strings.Split(c.Request().UserAgent(), " ")
		if len(ua) == 0 {
			return 0, nil
		} else {
			last := ua[len(ua)-1]
			buf.Write([]byte(last))
			return 1, nil
		}
	}

	//
	// SETUP
	//

	e := echo.New()

	if lnch.Config.Authenticate {
		// assume that anyone who is using authentication is serving via the internet and so set timeouts
		e.Server.ReadTimeout = vv.TIMEOUTRD
		e.Server.WriteTimeout = vv.TIMEOUTWR

		// also assume that internet exposure yields scanning attempts that will spam 404s & 500s; block IPs that do this
		// see "police.go" for these functions
		go vlt.IPBlacklistKeeper()
		go vlt.ResponseStatsKeeper()
		e.Use(vlt.PoliceRequestAndResponse)
	}

	switch lnch.Config.EchoLog {
	case 3:
		e.Use(middleware.Logger())
	case 2:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: RLOGFMT, CustomTagFunc: ctf}))
	case 1:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: LLOGFMT}))
	default:
		// do nothing
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(vv.MAXECHOREQPERSECONDPERIP)))

	e.Use(middleware.Recover())

	if lnch.Config.Gzip {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
	}

	//
	// TOPICA ROUTES
	//

	//
	// [a] extraction ("rt-extract.go")
	//

	e.POST("/extract-topics/", RtExtractTopics) // curl -F "file=@notes.docx" -F "num_topics=5" localhost:8000/extract-topics/

	//
	// [b] frontpage ("rt-frontpage.go")
	//

	e.GET("/", RtFrontpage)

	//
	// [c] graphing ("rt-graph.go")
	//

	e.GET("/extract/graph/:id", RtTopicGraph) // "u: /extract/graph/6323642d-3d97-4aa7-a4d9-3b74868f8749"

	//
	// [d] session management ("rt-session.go")
	//

	e.GET("/setoption/:opt/:val", RtSetOption) // "u: /setoption/topiccount/12"
	e.GET("/reset/session", RtResetSession)

	e.GET("/sc/set/:num", RtSessionSetsCookie)
	e.GET("/sc/get/:num", RtSessionGetCookie)

	//
	// [e] websocket ("rt-websocket.go")
	//

	e.GET("/ws", RtWebsocket)

	e.HideBanner = true
	e.HidePort = false
	e.Debug = false
	e.DisableHTTP2 = true
	e.Logger.Fatal(e.Start(fmt.Sprintf("%s:%d", lnch.Config.HostIP, lnch.Config.HostPort)))
}
