//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/e-gun/TopicaGoServer/internal/lnch"
	"github.com/e-gun/TopicaGoServer/internal/str"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

//
// THREAD SAFE INFRASTRUCTURE: MUTEX
//

// MakeSessionVault - called only once; yields the AllSessions vault
func MakeSessionVault() SessionVault {
	return SessionVault{
		SessionMap: make(map[string]str.ServerSession),
		mutex:      sync.RWMutex{},
	}
}

// SessionVault - there should be only one of these; and it contains all the sessions
type SessionVault struct {
	SessionMap map[string]str.ServerSession
	mutex      sync.RWMutex
}

func (sv *SessionVault) InsertSess(s str.ServerSession) {
	sv.mutex.Lock()
	defer sv.mutex.Unlock()
	sv.SessionMap[s.ID] = s
}

func (sv *SessionVault) Delete(id string) {
	sv.mutex.Lock()
	defer sv.mutex.Unlock()
	delete(sv.SessionMap, id)
}

func (sv *SessionVault) IsInVault(id string) bool {
	sv.mutex.Lock()
	defer sv.mutex.Unlock()
	_, b := sv.SessionMap[id]
	return b
}

func (sv *SessionVault) GetSess(id string) str.ServerSession {
	sv.mutex.Lock()
	defer sv.mutex.Unlock()
	s, e := sv.SessionMap[id]
	if e != true {
		s = lnch.MakeDefaultSession(id)
	}
	return s
}

// cookies here for import issues

// ReadUUIDCookie - find the ID of the client
func ReadUUIDCookie(c echo.Context) string {
	cookie, err := c.Cookie("ID")
	if err != nil {
		id := WriteUUIDCookie(c)
		return id
	}
	id := cookie.Value

	if !AllSessions.IsInVault(id) {
		AllSessions.InsertSess(lnch.MakeDefaultSession(id))
	}

	return id
}

// WriteUUIDCookie - set the ID of the client
func WriteUUIDCookie(c echo.Context) string {
	cookie := new(http.Cookie)
	cookie.Name = "ID"
	cookie.Path = "/"
	cookie.Value = uuid.New().String()
	cookie.Expires = time.Now().Add(4800 * time.Hour)
	c.SetCookie(cookie)
	Msg.TMI(fmt.Sprintf("WriteUUIDCookie() - new ID set: %s", cookie.Value))
	return cookie.Value
}
