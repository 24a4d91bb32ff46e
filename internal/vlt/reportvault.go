//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"sync"

	"github.com/e-gun/TopicaGoServer/internal/str"
	"github.com/e-gun/TopicaGoServer/internal/vv"
)

// MakeReportVault - called only once; yields the AllReports vault
func MakeReportVault() ReportVault {
	return ReportVault{
		ReportMap: make(map[string]str.TopicReport),
		arrivals:  make([]string, 0, vv.MAXREPORTVAULT),
		mutex:     sync.RWMutex{},
	}
}

// ReportVault - there should be only one of these; it holds the recent TopicReports so the graph route can find them
type ReportVault struct {
	ReportMap map[string]str.TopicReport
	arrivals  []string
	mutex     sync.RWMutex
}

func (rv *ReportVault) InsertReport(r str.TopicReport) {
	rv.mutex.Lock()
	defer rv.mutex.Unlock()
	if _, ok := rv.ReportMap[r.ID]; !ok {
		rv.arrivals = append(rv.arrivals, r.ID)
	}
	rv.ReportMap[r.ID] = r

	// the vault is a convenience, not a store: the oldest reports make way for the newest
	for len(rv.arrivals) > vv.MAXREPORTVAULT {
		delete(rv.ReportMap, rv.arrivals[0])
		rv.arrivals = rv.arrivals[1:]
	}
}

func (rv *ReportVault) IsInVault(id string) bool {
	rv.mutex.Lock()
	defer rv.mutex.Unlock()
	_, b := rv.ReportMap[id]
	return b
}

// GetReport - the report stored at id; a zero-valued report if the id is unknown or has been evicted
func (rv *ReportVault) GetReport(id string) str.TopicReport {
	rv.mutex.Lock()
	defer rv.mutex.Unlock()
	return rv.ReportMap[id]
}

func (rv *ReportVault) Count() int {
	rv.mutex.Lock()
	defer rv.mutex.Unlock()
	return len(rv.ReportMap)
}
