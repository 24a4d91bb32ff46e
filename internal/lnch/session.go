package lnch

import (
	"github.com/e-gun/TopicaGoServer/internal/str"
)

// MakeDefaultSession - fill in the blanks when setting up a new session
func MakeDefaultSession(id string) str.ServerSession {
	// note that SessionMap clears every time the server restarts

	var s str.ServerSession
	s.ID = id
	s.GraphOK = !Config.GraphDisabled
	s.TopicCount = Config.TopicCount
	s.LoginName = "Anonymous"

	return s
}
