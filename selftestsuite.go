//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/e-gun/TopicaGoServer/internal/dox"
	"github.com/e-gun/TopicaGoServer/internal/lnch"
	"github.com/e-gun/TopicaGoServer/internal/mm"
	"github.com/e-gun/TopicaGoServer/internal/str"
	"github.com/e-gun/TopicaGoServer/internal/tpc"
	"github.com/e-gun/TopicaGoServer/internal/vv"
)

// time tests and integrity tests: upload a document the answers to which are known; complain if the answers come back wrong

// selftestparagraphs - three planted topics, four paragraphs each
var selftestparagraphs = []string{
	"The telescope at the mountain observatory tracked a spiral nebula all night.",
	"Astronomers adjusted the telescope mirrors before the observatory dome opened.",
	"A faint nebula drifted across the field of the observatory telescope.",
	"The observatory published a catalogue of every nebula the telescope resolved.",
	"The village bakery fired its oven before dawn to bake the first bread.",
	"Fresh dough rested on the bakery counter while the oven reached temperature.",
	"Loaves of rye bread cooled on racks beside the bakery oven.",
	"The baker shaped the dough and slid the bread into the glowing oven.",
	"The glacier calved into the fjord with a roar that echoed off the ice.",
	"Meltwater streamed from the glacier across blue ice into the cold fjord.",
	"Surveyors measured how far the glacier had retreated up the fjord this season.",
	"Seals rested on drifting ice where the glacier met the open fjord.",
}

// runselftests - loop selftestsuite()
func runselftests() {
	if lnch.Config.SelfTest > 0 {
		go func() {
			for i := 0; i < lnch.Config.SelfTest; i++ {
				Msg.MAND(fmt.Sprintf("Running Selftest %d of %d", i+1, lnch.Config.SelfTest))
				selftestsuite()
			}
		}()
	}
}

// selftestsuite - extract topics from a synthetic document over the wire and in-process; exit non-zero on any wrong answer
func selftestsuite() {
	const (
		K     = 3
		MSG1  = "extract %d topics from a %d-paragraph document"
		MSG2  = "upload the same document a second time"
		MSG3  = "run the pipeline in-process twice"
		MSG4  = "frontpage status report"
		MSG5  = "graph the %d topics of report »%s«"
		MSG6  = "refuse bad uploads and unknown reports"
		FAIL1 = "[%s] POST /extract-topics/ answered %d"
		FAIL2 = "[%s] asked for %d topics; got k=%d and %d topics"
		FAIL3 = "[%s] topic %d is misnumbered: '%s'"
		FAIL4 = "[%s] the same document yielded different topics"
		FAIL5 = "[%s] the pipeline failed in-process: %v"
		FAIL6 = "[%s] GET %s answered %d"
		FAIL7 = "[%s] expected %d from %s; got %d"
		SKIP1 = "skipping the graph test: graphing is disabled"
		DIE1  = "selftestsuite flunked %d check(s)"
		EXIT1 = "exiting selftestsuite mode"
	)

	stm := lnch.NewMessageMakerConfigured()
	stm.SNm = "TGS-SELFTEST"
	stm.LLvl = mm.MSGFYI

	failures := 0
	flunk := func(f string, a ...any) {
		failures++
		stm.Emit(fmt.Sprintf(f, a...), mm.MSGCRIT)
	}

	// give StartEchoServer() a moment to come up
	time.Sleep(vv.WSPOLLINGPAUSE * 3)
	stm.Emit("entering selftestsuite mode (3 segments)", mm.MSGMAND)

	start := time.Now()
	previous := time.Now()

	td, err := os.MkdirTemp("", "tgs-selftest-")
	if err != nil {
		stm.EC(err)
		return
	}
	defer func() { _ = os.RemoveAll(td) }()

	doc := filepath.Join(td, "selftest.docx")
	if err = dox.WriteDocx(doc, selftestparagraphs); err != nil {
		stm.EC(err)
		return
	}

	u := fmt.Sprintf("http://%s:%d", lnch.Config.HostIP, lnch.Config.HostPort)

	// upload - the form has to be rebuilt for every POST
	upload := func(name string, k string) (int, str.ExtractionOutputJSON) {
		var oj str.ExtractionOutputJSON
		body := &bytes.Buffer{}
		mpw := multipart.NewWriter(body)

		part, e := mpw.CreateFormFile("file", name)
		if e != nil {
			stm.EC(e)
			return 0, oj
		}

		fi, e := os.Open(doc)
		if e != nil {
			stm.EC(e)
			return 0, oj
		}
		_, e = io.Copy(part, fi)
		stm.EC(e)
		stm.EC(fi.Close())
		stm.EC(mpw.WriteField("num_topics", k))
		stm.EC(mpw.Close())

		rsp, e := http.Post(u+"/extract-topics/", mpw.FormDataContentType(), body)
		if e != nil {
			stm.EC(e)
			return 0, oj
		}
		defer func() { _ = rsp.Body.Close() }()

		// failures arrive as a different shape; its "id" and "message" keys still land
		bb, e := io.ReadAll(rsp.Body)
		stm.EC(e)
		stm.EC(json.Unmarshal(bb, &oj))
		return rsp.StatusCode, oj
	}

	//
	// [I] EXTRACTION
	//

	stm.Emit("[I] 3 extraction tests", mm.MSGWARN)

	code, first := upload("selftest.docx", fmt.Sprintf("%d", K))
	if code != http.StatusOK {
		flunk(FAIL1, "A1", code)
	}
	if first.K != K || len(first.Topics) != K {
		flunk(FAIL2, "A1", K, first.K, len(first.Topics))
	}
	for i := 0; i < len(first.Topics); i++ {
		if !strings.HasPrefix(first.Topics[i], fmt.Sprintf("%d) ", i+1)) {
			flunk(FAIL3, "A1", i+1, first.Topics[i])
		}
	}
	stm.Timer("A1", fmt.Sprintf(MSG1, K, len(selftestparagraphs)), start, previous)
	previous = time.Now()

	// identical bytes have to produce identical topics, cached or refit
	code, again := upload("selftest.docx", fmt.Sprintf("%d", K))
	if code != http.StatusOK {
		flunk(FAIL1, "A2", code)
	}
	if !reflect.DeepEqual(first.Topics, again.Topics) {
		flunk(FAIL4, "A2")
	}
	stm.Timer("A2", MSG2, start, previous)
	previous = time.Now()

	// no web layer in the way this time
	t1, e1 := tpc.ExtractTopics(doc, tpc.Settings{K: K})
	t2, e2 := tpc.ExtractTopics(doc, tpc.Settings{K: K})
	if e1 != nil {
		flunk(FAIL5, "A3", e1)
	} else if e2 != nil {
		flunk(FAIL5, "A3", e2)
	} else if !reflect.DeepEqual(titlesof(t1), titlesof(t2)) {
		flunk(FAIL4, "A3")
	}
	stm.Timer("A3", MSG3, start, previous)
	previous = time.Now()

	//
	// [II] THE OTHER ROUTES
	//

	stm.Emit("[II] 2 route tests", mm.MSGWARN)

	status := func(loc string) int {
		rsp, e := http.Get(u + loc)
		if e != nil {
			stm.EC(e)
			return 0
		}
		_ = rsp.Body.Close()
		return rsp.StatusCode
	}

	if c := status("/"); c != http.StatusOK {
		flunk(FAIL6, "B1", "/", c)
	}
	stm.Timer("B1", MSG4, start, previous)
	previous = time.Now()

	if lnch.Config.GraphDisabled {
		stm.Emit(SKIP1, mm.MSGWARN)
	} else {
		g := "/extract/graph/" + first.ID
		if c := status(g); c != http.StatusOK {
			flunk(FAIL6, "B2", g, c)
		}
		stm.Timer("B2", fmt.Sprintf(MSG5, K, first.ID), start, previous)
		previous = time.Now()
	}

	//
	// [III] REFUSALS
	//

	stm.Emit("[III] 3 refusal tests", mm.MSGWARN)

	if c, _ := upload("selftest.txt", fmt.Sprintf("%d", K)); c != http.StatusBadRequest {
		flunk(FAIL7, "C1", http.StatusBadRequest, ".txt upload", c)
	}

	if c, _ := upload("selftest.docx", "0"); c != http.StatusBadRequest {
		flunk(FAIL7, "C1", http.StatusBadRequest, "num_topics=0", c)
	}

	if !lnch.Config.GraphDisabled {
		g := "/extract/graph/nosuchreport"
		if c := status(g); c != http.StatusNotFound {
			flunk(FAIL7, "C1", http.StatusNotFound, g, c)
		}
	}
	stm.Timer("C1", MSG6, start, previous)

	if failures > 0 {
		stm.Emit(fmt.Sprintf(DIE1, failures), mm.MSGMAND)
		stm.ExitOrHang(1)
	}

	stm.Emit(EXIT1, mm.MSGMAND)
}

// titlesof - just the titles, in order
func titlesof(ll []str.TopicLabel) []string {
	tt := make([]string, len(ll))
	for i := 0; i < len(ll); i++ {
		tt[i] = ll[i].Title
	}
	return tt
}
