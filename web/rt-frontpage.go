//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/e-gun/TopicaGoServer/internal/gen"
	"github.com/e-gun/TopicaGoServer/internal/lnch"
	"github.com/e-gun/TopicaGoServer/internal/mm"
	"github.com/e-gun/TopicaGoServer/internal/vlt"
	"github.com/e-gun/TopicaGoServer/internal/vv"
	"github.com/labstack/echo/v4"
)

//
// ROUTING
//

// RtFrontpage - send the status JSON for "/"
func RtFrontpage(c echo.Context) error {
	const (
		WELCOME  = "%s (%s)"
		HOWTO    = `POST a .docx to "/extract-topics/" as 'file'; add 'num_topics' to override the session default`
		STATTMPL = "%s: %d"
	)

	c.Response().After(func() { Msg.LogPaths("RtFrontpage()") })

	// will set if missing
	user := vlt.ReadUUIDCookie(c)
	s := vlt.AllSessions.GetSess(user)

	gc := lnch.GitCommit
	if gc == "" {
		gc = "UNKNOWN"
	}
	ver := fmt.Sprintf("Version: %s [git: %s]", vv.VERSION+lnch.VersSuppl, gc)

	env := fmt.Sprintf("%s: %s - %s (%d workers)", runtime.Version(), runtime.GOOS, runtime.GOARCH, lnch.Config.WorkerCount)

	// svd() will report what requests have been made
	svd := func() []string {
		responder := mm.PIReply{Request: true, Response: make(chan map[string]int)}
		mm.PIRequest <- responder
		ctr := <-responder.Response

		exclude := []string{"main() post-initialization"}
		keys := gen.StringMapKeysIntoSlice(ctr)
		keys = gen.SetSubtraction(keys, exclude)
		sort.Strings(keys)

		var pairs []string
		for k := range keys {
			this := strings.TrimPrefix(keys[k], "Rt")
			this = strings.TrimSuffix(this, "()")
			pairs = append(pairs, fmt.Sprintf(STATTMPL, this, ctr[keys[k]]))
		}
		return pairs
	}

	// totx() will report how many extractions are in flight right now
	totx := func() int {
		responder := make(chan int)
		vlt.WSInfo.TotalXtr <- responder
		return <-responder
	}

	type frontpageJSON struct {
		Welcome     string   `json:"welcome"`
		Usage       string   `json:"usage"`
		Version     string   `json:"version"`
		Environment string   `json:"environment"`
		Uptime      string   `json:"uptime"`
		Requests    []string `json:"requests"`
		Active      int      `json:"activeextractions"`
		Vaulted     int      `json:"vaultedreports"`
		TopicCount  int      `json:"sessiontopiccount"`
	}

	fpj := frontpageJSON{
		Welcome:     fmt.Sprintf(WELCOME, vv.MYNAME, vv.SHORTNAME),
		Usage:       HOWTO,
		Version:     ver,
		Environment: env,
		Uptime:      time.Since(vv.LaunchTime).Truncate(time.Second).String(),
		Requests:    svd(),
		Active:      totx(),
		Vaulted:     vlt.AllReports.Count(),
		TopicCount:  s.TopicCount,
	}

	return gen.JSONresponse(c, fpj)
}
