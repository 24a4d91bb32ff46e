//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"
)

//
// CHANNEL-BASED EXTRACTINFO REPORTING TO COMMUNICATE PROGRESS BETWEEN ROUTINES: the extraction route writes; the websocket reads
//

// WSXtrInfo - struct used to deliver info about extractions in progress
type WSXtrInfo struct {
	ID        string
	User      string
	Exists    bool
	StageNum  int
	StageCt   int
	XtrCount  int
	Stage     string
	Summary   string
	Launched  time.Time
	RealIP    string
	CancelFnc context.CancelFunc
}

// WSXIKVi - WSExtractionInfoHub helper struct for setting an int Val on the item at map[Key]
type WSXIKVi struct {
	Key string
	Val int
}

// WSXIKVs - WSExtractionInfoHub helper struct for setting a string Val on the item at map[Key]
type WSXIKVs struct {
	Key string
	Val string
}

// WSXIReply - WSExtractionInfoHub helper struct for returning the WSXtrInfo stored at map[Key]
type WSXIReply struct {
	Key      string
	Response chan WSXtrInfo
}

type WSXICount struct {
	Key      string
	Response chan int
}

type WSInfoHubInterface struct {
	UpdateStage    chan WSXIKVs
	UpdateStageNum chan WSXIKVi
	RequestInfo    chan WSXIReply
	InsertInfo     chan WSXtrInfo
	IPXtrCount     chan WSXICount
	TotalXtr       chan chan int
	Del            chan string
	Reset          chan string
}

// BuildWSInfoHubIf - build the WSInfoHubInterface that will interact with WSExtractionInfoHub (one and only one built at app startup)
func BuildWSInfoHubIf() *WSInfoHubInterface {
	return &WSInfoHubInterface{
		UpdateStage:    make(chan WSXIKVs, 2*runtime.NumCPU()),
		UpdateStageNum: make(chan WSXIKVi, 2*runtime.NumCPU()),
		RequestInfo:    make(chan WSXIReply),
		InsertInfo:     make(chan WSXtrInfo),
		IPXtrCount:     make(chan WSXICount),
		TotalXtr:       make(chan chan int),
		Del:            make(chan string),
		Reset:          make(chan string),
	}
}

// WSExtractionInfoHub - the loop that lets you read/write from/to the various WSXtrInfo channels via the WSInfo global (a *WSInfoHubInterface)
func WSExtractionInfoHub() {
	const (
		CANC    = "WSExtractionInfoHub() reports that '%s' was cancelled"
		FINWAIT = 10
		FINCHK  = 60
	)

	var (
		Allinfo  = make(map[string]WSXtrInfo)
		Finished = make(map[string]time.Time)
	)

	reporter := func(r WSXIReply) {
		if _, ok := Allinfo[r.Key]; ok {
			r.Response <- Allinfo[r.Key]
		} else {
			// "false" triggers a break in rt-websocket.go
			r.Response <- WSXtrInfo{Exists: false}
		}
	}

	fetchifexists := func(id string) WSXtrInfo {
		if _, ok := Allinfo[id]; ok {
			return Allinfo[id]
		} else {
			// any non-zero value for XtrCount is fine; the test in rt-websocket.go is just for 0
			return WSXtrInfo{ID: id, Exists: true, XtrCount: 1}
		}
	}

	ipcount := func(id string) int {
		count := 0
		for _, v := range Allinfo {
			if v.RealIP == id {
				count++
			}
		}
		return count
	}

	// see also the notes at RtResetSession()
	cancelall := func(u string) {
		for _, v := range Allinfo {
			if v.User == u && v.CancelFnc != nil {
				v.CancelFnc()
				Msg.PEEK(fmt.Sprintf(CANC, v.ID))
			}
		}
	}

	// the stage channels are buffered: a queued update can be drained after Del and would otherwise respawn the job
	storeunlessfinished := func(xi WSXtrInfo) {
		if _, ok := Finished[xi.ID]; !ok {
			Allinfo[xi.ID] = xi
		}
	}

	// storeunlessfinished() requires a cleanup function too...
	cleanfinished := func() {
		for {
			for f := range Finished {
				ft := Finished[f]
				later := ft.Add(time.Second * FINWAIT)
				if time.Now().After(later) {
					delete(Finished, f)
				}
			}
			time.Sleep(time.Second * FINCHK)
		}
	}

	go cleanfinished()

	// the main loop; it will never exit
	for {
		select {
		case rq := <-WSInfo.RequestInfo:
			reporter(rq)
		case wr := <-WSInfo.UpdateStage:
			x := fetchifexists(wr.Key)
			x.Stage = wr.Val
			storeunlessfinished(x)
		case wr := <-WSInfo.UpdateStageNum:
			x := fetchifexists(wr.Key)
			x.StageNum = wr.Val
			storeunlessfinished(x)
		case xi := <-WSInfo.InsertInfo:
			storeunlessfinished(xi)
		case ipc := <-WSInfo.IPXtrCount:
			ipc.Response <- ipcount(ipc.Key)
		case tot := <-WSInfo.TotalXtr:
			tot <- len(Allinfo)
		case reset := <-WSInfo.Reset:
			cancelall(reset)
		case del := <-WSInfo.Del:
			Finished[del] = time.Now()
			delete(Allinfo, del)
		}
	}
}

func WSFetchXtrInfo(id string) WSXtrInfo {
	responder := WSXIReply{Key: id, Response: make(chan WSXtrInfo)}
	WSInfo.RequestInfo <- responder
	return <-responder.Response
}

//
// FOR DEBUGGING ONLY
//

// wsclientreport - report the # and names of the active wsclients every N seconds
func wsclientreport(d time.Duration) {
	// add the following to main.go: "go wsclientreport()"
	for {
		cl := WebsocketPool.ClientMap
		var cc []string
		for k := range cl {
			cc = append(cc, k.ID)
		}
		Msg.NOTE(fmt.Sprintf("%d WebsocketPool clients: %s", len(cl), strings.Join(cc, ", ")))
		time.Sleep(d)
	}
}
