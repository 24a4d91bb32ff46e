//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"os"

	"github.com/e-gun/TopicaGoServer/internal/db"
	"github.com/e-gun/TopicaGoServer/internal/lnch"
	"github.com/e-gun/TopicaGoServer/internal/mm"
	"github.com/e-gun/TopicaGoServer/internal/tpc"
	"github.com/e-gun/TopicaGoServer/internal/vlt"
	"github.com/e-gun/TopicaGoServer/internal/vv"
	"github.com/e-gun/TopicaGoServer/web"
	"github.com/pkg/profile"
)

var (
	Msg = lnch.NewMessageMakerWithDefaults()
)

// main - read the configuration, light the hubs, open the cache, start serving
func main() {
	const (
		LAUN = "%s initialized and serving"
	)

	//
	// [1] CONFIG
	//

	lnch.LookForConfigFile()
	lnch.ConfigAtLaunch()

	// every package carries a pre-config messenger; now that the config exists, bring them all up to date
	lnch.UpdateMessageMakerWithConfig(Msg)
	lnch.UpdateMessageMakerWithConfig(lnch.Msg)
	lnch.UpdateMessageMakerWithConfig(db.Msg)
	lnch.UpdateMessageMakerWithConfig(tpc.Msg)
	lnch.UpdateMessageMakerWithConfig(vlt.Msg)
	lnch.UpdateMessageMakerWithConfig(web.Msg)

	if !lnch.Config.QuietStart {
		lnch.PrintVersion(*lnch.Config)
		lnch.PrintBuildInfo(*lnch.Config)
		fmt.Printf(vv.TERMINALTEXT+"\n\n", vv.PROJYEAR, vv.PROJAUTH, vv.PROJMAIL)
	}

	//
	// [2] PROFILING (if requested)
	//

	if lnch.Config.ProfileCPU {
		defer profile.Start().Stop()
	}

	if lnch.Config.ProfileMEM && !lnch.Config.ProfileCPU {
		defer profile.Start(profile.MemProfile).Stop()
	}

	//
	// [3] THE HUBS
	//

	go mm.PathInfoHub()
	go vlt.WSExtractionInfoHub()
	go vlt.WebsocketPool.WSPoolStartListening()

	if lnch.Config.TickerActive {
		go Msg.Ticker(vv.TICKERDELAY)
	}

	//
	// [4] THE MODELING MACHINERY
	//

	tpc.StopwordsAtLaunch()
	tpc.ModelAtLaunch()

	//
	// [5] THE RESULT CACHE
	//

	if lnch.Config.WipeCache {
		// "-00" on the command line: erase and exit
		db.CacheLaunch()
		db.CacheReset()
		os.Exit(0)
	}

	db.CacheLaunch()
	db.CacheCount(mm.MSGNOTE)
	db.CacheSize(mm.MSGPEEK)

	//
	// [6] READY
	//

	Msg.MAND(fmt.Sprintf(LAUN, vv.MYNAME))
	Msg.LogPaths("main() post-initialization")

	runselftests()

	web.StartEchoServer()
}
