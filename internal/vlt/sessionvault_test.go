//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"testing"

	"github.com/e-gun/TopicaGoServer/internal/lnch"
	"github.com/e-gun/TopicaGoServer/internal/str"
)

func TestSessionVault(t *testing.T) {
	lnch.Config = lnch.BuildDefaultConfig()

	sv := MakeSessionVault()

	// an unknown id yields a default session, not a zero value
	s := sv.GetSess("visitor-1")
	if s.ID != "visitor-1" {
		t.Errorf("default session has ID %q; want %q", s.ID, "visitor-1")
	}
	if s.TopicCount != lnch.Config.TopicCount {
		t.Errorf("default session has TopicCount %d; want %d", s.TopicCount, lnch.Config.TopicCount)
	}

	// GetSess does not store
	if sv.IsInVault("visitor-1") {
		t.Fatal("GetSess should not insert a session")
	}

	s.TopicCount = 7
	sv.InsertSess(s)
	if !sv.IsInVault("visitor-1") {
		t.Fatal("an inserted session could not be found")
	}
	if sv.GetSess("visitor-1").TopicCount != 7 {
		t.Error("the stored session did not come back")
	}

	sv.InsertSess(str.ServerSession{ID: "visitor-2"})
	sv.Delete("visitor-1")
	if sv.IsInVault("visitor-1") {
		t.Error("a deleted session is still in the vault")
	}
	if !sv.IsInVault("visitor-2") {
		t.Error("Delete removed the wrong session")
	}
}
