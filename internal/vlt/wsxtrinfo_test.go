//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"context"
	"sync"
	"testing"
	"time"
)

var hubonce sync.Once

func starthub() {
	hubonce.Do(func() { go WSExtractionInfoHub() })
}

// waituntil - poll the hub for id until want is satisfied or the deadline passes
func waituntil(t *testing.T, id string, want func(WSXtrInfo) bool) WSXtrInfo {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		xi := WSFetchXtrInfo(id)
		if want(xi) {
			return xi
		}
		if time.Now().After(deadline) {
			t.Fatalf("the hub never reported the expected state for '%s'; last seen: %+v", id, xi)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestExtractionInfoHubLifecycle(t *testing.T) {
	starthub()

	id := "job-lifecycle"

	if xi := WSFetchXtrInfo(id); xi.Exists {
		t.Fatal("an unregistered extraction exists")
	}

	WSInfo.InsertInfo <- WSXtrInfo{
		ID:       id,
		User:     "user-a",
		Exists:   true,
		StageCt:  5,
		XtrCount: 1,
		Summary:  `Extracting 3 topics from »themes.docx«`,
		Launched: time.Now(),
		RealIP:   "10.0.0.9",
	}

	xi := waituntil(t, id, func(xi WSXtrInfo) bool { return xi.Exists })
	if xi.StageCt != 5 || xi.Summary == "" {
		t.Errorf("the inserted info came back wrong: %+v", xi)
	}

	WSInfo.UpdateStage <- WSXIKVs{Key: id, Val: "cleaning the text"}
	WSInfo.UpdateStageNum <- WSXIKVi{Key: id, Val: 2}

	xi = waituntil(t, id, func(xi WSXtrInfo) bool { return xi.StageNum == 2 && xi.Stage != "" })
	if xi.Stage != "cleaning the text" {
		t.Errorf("stage is %q; want %q", xi.Stage, "cleaning the text")
	}

	ipc := WSXICount{Key: "10.0.0.9", Response: make(chan int)}
	WSInfo.IPXtrCount <- ipc
	if n := <-ipc.Response; n != 1 {
		t.Errorf("IPXtrCount says %d extractions for the address; want 1", n)
	}

	tot := make(chan int)
	WSInfo.TotalXtr <- tot
	if n := <-tot; n != 1 {
		t.Errorf("TotalXtr says %d active extractions; want 1", n)
	}

	WSInfo.Del <- id
	waituntil(t, id, func(xi WSXtrInfo) bool { return !xi.Exists })

	// a queued stage update must not revive a finished extraction
	WSInfo.UpdateStage <- WSXIKVs{Key: id, Val: "zombie stage"}
	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 3; i++ {
		if xi := WSFetchXtrInfo(id); xi.Exists {
			t.Fatal("a stage update revived a finished extraction")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestExtractionInfoHubReset(t *testing.T) {
	starthub()

	ctx, cancel := context.WithCancel(context.Background())

	WSInfo.InsertInfo <- WSXtrInfo{
		ID:        "job-cancelme",
		User:      "user-b",
		Exists:    true,
		XtrCount:  1,
		Launched:  time.Now(),
		RealIP:    "10.0.0.10",
		CancelFnc: cancel,
	}

	WSInfo.Reset <- "user-b"

	select {
	case <-ctx.Done():
		// cancelled, as requested
	case <-time.After(2 * time.Second):
		t.Fatal("Reset never cancelled the extraction context")
	}

	WSInfo.Del <- "job-cancelme"
}
