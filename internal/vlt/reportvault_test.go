//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"fmt"
	"testing"
	"time"

	"github.com/e-gun/TopicaGoServer/internal/str"
	"github.com/e-gun/TopicaGoServer/internal/vv"
)

func TestReportVaultRoundTrip(t *testing.T) {
	rv := MakeReportVault()

	r := str.TopicReport{
		ID:        "report-alpha",
		Filename:  "themes.docx",
		K:         3,
		Requested: time.Now(),
	}

	if rv.IsInVault(r.ID) {
		t.Fatal("found a report in an empty vault")
	}

	rv.InsertReport(r)

	if !rv.IsInVault(r.ID) {
		t.Fatal("a stored report could not be found")
	}

	got := rv.GetReport(r.ID)
	if got.Filename != r.Filename || got.K != r.K {
		t.Errorf("fetched report does not match: got %v", got)
	}

	// an update must not count as a second arrival
	r.K = 5
	rv.InsertReport(r)
	if rv.Count() != 1 {
		t.Errorf("vault count after update is %d; want 1", rv.Count())
	}
	if rv.GetReport(r.ID).K != 5 {
		t.Error("the updated report was not stored")
	}
}

func TestReportVaultEviction(t *testing.T) {
	rv := MakeReportVault()

	over := 3
	for i := 0; i < vv.MAXREPORTVAULT+over; i++ {
		rv.InsertReport(str.TopicReport{ID: fmt.Sprintf("report-%03d", i)})
	}

	if rv.Count() != vv.MAXREPORTVAULT {
		t.Fatalf("vault holds %d reports; want %d", rv.Count(), vv.MAXREPORTVAULT)
	}

	// the first arrivals are gone; the most recent survive
	for i := 0; i < over; i++ {
		if rv.IsInVault(fmt.Sprintf("report-%03d", i)) {
			t.Errorf("report-%03d should have been evicted", i)
		}
	}
	for i := over; i < vv.MAXREPORTVAULT+over; i++ {
		if !rv.IsInVault(fmt.Sprintf("report-%03d", i)) {
			t.Errorf("report-%03d went missing", i)
		}
	}

	unknown := rv.GetReport("report-000")
	if unknown.ID != "" {
		t.Error("an evicted report should fetch as a zero value")
	}
}
