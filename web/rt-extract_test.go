//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/e-gun/TopicaGoServer/internal/dox"
	"github.com/e-gun/TopicaGoServer/internal/lnch"
	"github.com/e-gun/TopicaGoServer/internal/mm"
	"github.com/e-gun/TopicaGoServer/internal/str"
	"github.com/e-gun/TopicaGoServer/internal/vlt"
	"github.com/labstack/echo/v4"
)

// the handler talks to the extraction info hub and the path counter; start them once for the package
var hubsonce sync.Once

func starthubs() {
	hubsonce.Do(func() {
		lnch.Config = lnch.BuildDefaultConfig()
		go vlt.WSExtractionInfoHub()
		go mm.PathInfoHub()
	})
}

// three themes, four paragraphs each; every theme term clears both document frequency bounds
var stationparagraphs = []string{
	"The locomotive thundered past the rural station along the gleaming railway.",
	"Engineers polished the locomotive before the railway opened its newest station.",
	"Commuters crowded the station while the locomotive idled on the old railway.",
	"Every railway timetable listed the locomotive arriving at the central station.",
	"Workers climbed ladders in the orchard to harvest the ripened apples.",
	"A late frost in the orchard threatened the apples before the autumn harvest.",
	"Baskets of apples filled the barn when the orchard harvest finally ended.",
	"The orchard keeper promised a generous harvest of crisp red apples.",
	"The violinist rehearsed a gentle melody before the evening concert began.",
	"Her violin carried the melody across the hall during the winter concert.",
	"Critics praised the concert for the haunting melody of the first violin.",
	"A broken string delayed the concert until the violin found its melody again.",
}

// postdocx - build a .docx from pp, wrap it in a multipart form, and run it through RtExtractTopics
func postdocx(t *testing.T, filename string, fields map[string]string, pp []string) *httptest.ResponseRecorder {
	t.Helper()
	starthubs()

	fn := filepath.Join(t.TempDir(), filename)
	if err := dox.WriteDocx(fn, pp); err != nil {
		t.Fatal(err)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}

	df, err := os.Open(fn)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = io.Copy(fw, df); err != nil {
		t.Fatal(err)
	}
	_ = df.Close()

	for k, v := range fields {
		if err = w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err = w.Close(); err != nil {
		t.Fatal(err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/extract-topics/", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()

	if err = RtExtractTopics(e.NewContext(req, rec)); err != nil {
		t.Fatalf("RtExtractTopics() returned error: %v", err)
	}

	return rec
}

func TestRtExtractTopicsBadExtension(t *testing.T) {
	rec := postdocx(t, "notes.txt", nil, stationparagraphs)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("a .txt upload got status %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var fj str.ExtractionFailureJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &fj); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fj.Message, ".docx") {
		t.Errorf("the failure message should name the required file type, got: %q", fj.Message)
	}
}

func TestRtExtractTopicsBadTopicCount(t *testing.T) {
	for _, k := range []string{"zero", "0", "-3", "100000"} {
		rec := postdocx(t, "stations.docx", map[string]string{"num_topics": k}, stationparagraphs)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("num_topics=%q got status %d, want %d", k, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestRtExtractTopicsHappyPath(t *testing.T) {
	rec := postdocx(t, "stations.docx", map[string]string{"num_topics": "3"}, stationparagraphs)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var oj str.ExtractionOutputJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &oj); err != nil {
		t.Fatal(err)
	}

	if oj.K != 3 {
		t.Errorf("reported K = %d, want 3", oj.K)
	}
	if len(oj.Topics) != 3 {
		t.Fatalf("got %d topics, want 3: %v", len(oj.Topics), oj.Topics)
	}
	for i, tp := range oj.Topics {
		pre := fmt.Sprintf("%d) ", i+1)
		if !strings.HasPrefix(tp, pre) {
			t.Errorf("topic %d should start with %q, got %q", i, pre, tp)
		}
		if len(tp) <= len(pre) {
			t.Errorf("topic %d has no title text: %q", i, tp)
		}
	}
	if oj.Cached {
		t.Error("a first extraction should not report itself as cached")
	}
	if oj.Filename != "stations.docx" {
		t.Errorf("filename echoed as %q, want %q", oj.Filename, "stations.docx")
	}
	if !strings.Contains(oj.Message, "successfully") {
		t.Errorf("unexpected message: %q", oj.Message)
	}
	if oj.ID == "" {
		t.Error("the reply should carry a report id")
	}

	// the finished report should now be vaulted for the graph route
	if !vlt.AllReports.IsInVault(oj.ID) {
		t.Error("the finished report is not in the vault")
	}
}
