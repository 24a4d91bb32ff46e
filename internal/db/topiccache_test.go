//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/e-gun/TopicaGoServer/internal/str"
	_ "modernc.org/sqlite"
)

func litecache(t *testing.T) {
	t.Helper()

	dbh, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("could not open a scratch cache: %v", err)
	}

	LiteDB = dbh
	t.Cleanup(func() {
		LiteDB = nil
		_ = dbh.Close()
	})

	CacheInit()
}

func TestCacheRoundTrip(t *testing.T) {
	litecache(t)

	fp := "0123456789abcdef0123456789abcdef"

	if CacheCheck(fp) {
		t.Fatal("CacheCheck() found a fingerprint in an empty cache")
	}

	want := &str.TopicReport{
		ID:          "11111111-2222-3333-4444-555555555555",
		Filename:    "themes.docx",
		K:           3,
		Fingerprint: fp,
		Labels: []str.TopicLabel{
			{Topic: 1, Title: "Telescope Nebula Galaxy", Terms: []str.TermWeight{{Term: "telescope", Weight: 9.5}}},
			{Topic: 2, Title: "Dough Yeast Oven", Terms: []str.TermWeight{{Term: "dough", Weight: 8.25}}},
			{Topic: 3, Title: "Sail Rigging Harbor", Terms: []str.TermWeight{{Term: "sail", Weight: 7.75}}},
		},
		Requested: time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC),
		Elapsed:   1.25,
	}

	CacheAdd(fp, want)

	if !CacheCheck(fp) {
		t.Fatal("CacheCheck() missed a fingerprint that was just stored")
	}

	have := CacheFetch(fp)
	if have == nil {
		t.Fatal("CacheFetch() missed a report that was just stored")
	}

	if have.ID != want.ID || have.Filename != want.Filename || have.K != want.K {
		t.Errorf("CacheFetch() returned %+v, want %+v", have, want)
	}

	if len(have.Labels) != 3 {
		t.Fatalf("CacheFetch() returned %d labels, want 3", len(have.Labels))
	}

	for i := range want.Labels {
		if have.Labels[i].Title != want.Labels[i].Title {
			t.Errorf("label %d title = %q, want %q", i, have.Labels[i].Title, want.Labels[i].Title)
		}
	}

	if have.Labels[0].Terms[0] != want.Labels[0].Terms[0] {
		t.Errorf("label 0 lead term = %v, want %v", have.Labels[0].Terms[0], want.Labels[0].Terms[0])
	}

	if !have.Requested.Equal(want.Requested) {
		t.Errorf("requested time = %v, want %v", have.Requested, want.Requested)
	}
}

func TestCacheMiss(t *testing.T) {
	litecache(t)

	if CacheFetch("ffffffffffffffffffffffffffffffff") != nil {
		t.Error("CacheFetch() invented a report for an unknown fingerprint")
	}
}

func TestCacheReset(t *testing.T) {
	litecache(t)

	fp := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	CacheAdd(fp, &str.TopicReport{ID: "x", Fingerprint: fp, K: 1})

	CacheReset()

	// the check should lazily rebuild the table and then report a miss
	if CacheCheck(fp) {
		t.Error("CacheCheck() found a fingerprint after the cache was dropped")
	}
}

func TestCacheDisabled(t *testing.T) {
	// with no backend wired the cache quietly declines everything
	if CacheCheck("0123456789abcdef0123456789abcdef") {
		t.Error("CacheCheck() returned true with no backend")
	}
	if CacheFetch("0123456789abcdef0123456789abcdef") != nil {
		t.Error("CacheFetch() returned a report with no backend")
	}
	CacheAdd("0123456789abcdef0123456789abcdef", &str.TopicReport{})
}
