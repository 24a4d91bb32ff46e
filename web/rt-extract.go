//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/e-gun/TopicaGoServer/internal/db"
	"github.com/e-gun/TopicaGoServer/internal/gen"
	"github.com/e-gun/TopicaGoServer/internal/lnch"
	"github.com/e-gun/TopicaGoServer/internal/str"
	"github.com/e-gun/TopicaGoServer/internal/tpc"
	"github.com/e-gun/TopicaGoServer/internal/vlt"
	"github.com/e-gun/TopicaGoServer/internal/vv"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

//
// ROUTING
//

// RtExtractTopics - receive a .docx, model it, send back the topic titles
func RtExtractTopics(c echo.Context) error {
	const (
		TOOMANYIP    = "Cannot start this extraction. Your ip address (%s) is already running the maximum number of simultaneous extractions allowed: %d."
		TOOMANYTOTAL = "Cannot start this extraction. The server is already running the maximum number of simultaneous extractions allowed: %d."
		BADTYPE      = "Only .docx files are supported."
		BADK         = "'num_topics' should be an integer between 1 and %d; '%s' is not."
		TOOBIG       = "»%s« is too large; the limit is %dMB."
		NOFILE       = "The request did not contain a 'file' field."
		SPENT        = "could not store the upload"
		SUMM         = "Extracting %d topics from »%s«"
	)

	c.Response().After(func() { Msg.LogPaths("RtExtractTopics()") })

	start := time.Now()
	user := vlt.ReadUUIDCookie(c)
	s := vlt.AllSessions.GetSess(user)

	// the client may pick its own job id so it can open "/ws" before this handler replies
	jobid := gen.Purgechars(lnch.Config.BadChars, c.FormValue("id"))
	if jobid == "" {
		jobid = uuid.New().String()
	}

	fail := func(code int, m string) error {
		return c.JSONPretty(code, str.ExtractionFailureJSON{ID: jobid, Message: m}, vv.JSONINDENT)
	}

	// [A] ARE WE GOING TO DO THIS AT ALL?

	getxtrcount := func(ip string) int {
		responder := vlt.WSXICount{Key: ip, Response: make(chan int)}
		vlt.WSInfo.IPXtrCount <- responder
		return <-responder.Response
	}

	if getxtrcount(c.RealIP()) >= vv.MAXEXTRACTPERIPADDR {
		m := fmt.Sprintf(TOOMANYIP, c.RealIP(), getxtrcount(c.RealIP()))
		return fail(http.StatusTooManyRequests, m)
	}

	gettotalcount := func() int {
		responder := make(chan int)
		vlt.WSInfo.TotalXtr <- responder
		return <-responder
	}

	if gettotalcount() >= vv.MAXEXTRACTTOTAL {
		return fail(http.StatusTooManyRequests, fmt.Sprintf(TOOMANYTOTAL, vv.MAXEXTRACTTOTAL))
	}

	// [B] VALIDATE WHAT WAS SENT

	k := s.TopicCount
	if kv := c.FormValue("num_topics"); kv != "" {
		n, e := strconv.Atoi(gen.Purgechars(lnch.Config.BadChars, kv))
		if e != nil || n < 1 || n > vv.LDAMAXTOPICS {
			return fail(http.StatusBadRequest, fmt.Sprintf(BADK, vv.LDAMAXTOPICS, kv))
		}
		k = n
	}

	fh, e := c.FormFile("file")
	if e != nil {
		return fail(http.StatusBadRequest, NOFILE)
	}

	fn := gen.Purgechars(lnch.Config.BadChars, fh.Filename)
	if !strings.HasSuffix(strings.ToLower(fn), ".docx") {
		return fail(http.StatusBadRequest, BADTYPE)
	}

	if fh.Size > vv.MAXUPLOADBYTES {
		return fail(http.StatusRequestEntityTooLarge, fmt.Sprintf(TOOBIG, fn, vv.MAXUPLOADBYTES/1024/1024))
	}

	// [C] SPOOL TO A TEMP FILE AND FINGERPRINT AS YOU GO

	src, e := fh.Open()
	if e != nil {
		return fail(http.StatusInternalServerError, SPENT)
	}
	defer func() { _ = src.Close() }()

	tmp, e := os.CreateTemp("", vv.TMPUPLOADPATT)
	if e != nil {
		return fail(http.StatusInternalServerError, SPENT)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	// md5 names a cache row; nobody is defending anything with it
	fingerprinter := md5.New()

	_, ce := io.Copy(io.MultiWriter(tmp, fingerprinter), src)
	if err := tmp.Close(); ce != nil || err != nil {
		return fail(http.StatusInternalServerError, SPENT)
	}

	// identical bytes + a different schedule or topic count = a different report
	fmt.Fprintf(fingerprinter, "k=%d;%+v", k, tpc.ActiveModel)
	fp := hex.EncodeToString(fingerprinter.Sum(nil))

	// [D] MAYBE THE WORK HAS ALREADY BEEN DONE...

	if db.CacheCheck(fp) {
		r := db.CacheFetch(fp)
		if r != nil {
			r.ID = jobid
			r.Cached = true
			r.Requested = start
			r.Elapsed = time.Since(start).Seconds()
			vlt.AllReports.InsertReport(*r)
			return extractionreply(c, r)
		}
	}

	// [E] NO, SO REGISTER THE JOB AND RUN THE PIPELINE

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	vlt.WSInfo.InsertInfo <- vlt.WSXtrInfo{
		ID:        jobid,
		User:      user,
		Exists:    true,
		StageCt:   tpc.PipelineStages,
		XtrCount:  1,
		Summary:   fmt.Sprintf(SUMM, k, fn),
		Launched:  start,
		RealIP:    c.RealIP(),
		CancelFnc: cancel,
	}

	defer func() { vlt.WSInfo.Del <- jobid }()

	stage := 0
	notify := func(m string) {
		stage++
		vlt.WSInfo.UpdateStage <- vlt.WSXIKVs{Key: jobid, Val: m}
		vlt.WSInfo.UpdateStageNum <- vlt.WSXIKVi{Key: jobid, Val: stage}
	}

	labels, err := tpc.ExtractTopics(tmp.Name(), tpc.Settings{K: k, Ctx: ctx, Notify: notify})

	if err != nil {
		switch {
		case errors.Is(err, tpc.ErrInputNotFound):
			return fail(http.StatusNotFound, err.Error())
		case errors.Is(err, tpc.ErrInputUnparsable), errors.Is(err, tpc.ErrInsufficientContent), errors.Is(err, tpc.ErrInvalidTopicCount):
			return fail(http.StatusBadRequest, err.Error())
		default:
			// ErrModelFitFailure, ErrExtractionHalted, anything unforeseen
			return fail(http.StatusInternalServerError, err.Error())
		}
	}

	// [F] DONE: VAULT IT, CACHE IT, REPORT IT

	r := str.TopicReport{
		ID:          jobid,
		Filename:    fn,
		K:           k,
		Labels:      labels,
		Fingerprint: fp,
		Requested:   start,
		Elapsed:     time.Since(start).Seconds(),
		Cached:      false,
	}

	vlt.AllReports.InsertReport(r)
	db.CacheAdd(fp, &r)

	return extractionreply(c, &r)
}

// extractionreply - number the titles and wrap the report for the client
func extractionreply(c echo.Context, r *str.TopicReport) error {
	const (
		MSG1 = "✅ Topics extracted successfully!"
	)

	tt := r.Titles()
	numbered := make([]string, len(tt))
	for i := range tt {
		numbered[i] = fmt.Sprintf("%d) %s", i+1, tt[i])
	}

	oj := str.ExtractionOutputJSON{
		ID:       r.ID,
		Filename: r.Filename,
		K:        r.K,
		Topics:   numbered,
		Message:  MSG1,
		Cached:   r.Cached,
		Elapsed:  fmt.Sprintf("%.1fs", r.Elapsed),
	}

	return gen.JSONresponse(c, oj)
}
