//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/e-gun/TopicaGoServer/internal/lnch"
	"github.com/e-gun/TopicaGoServer/internal/str"
	"github.com/e-gun/TopicaGoServer/internal/vlt"
	"github.com/e-gun/TopicaGoServer/internal/vv"
	"github.com/labstack/echo/v4"
)

//
// ROUTING
//

// RtSetOption - modify the session in light of the selection made
func RtSetOption(c echo.Context) error {
	const (
		FAIL1 = "RtSetOption() was given bad input: %s/%s"
		FAIL2 = "RtSetOption() hit an impossible case"
	)
	user := vlt.ReadUUIDCookie(c)
	opt := c.Param("opt")
	val := c.Param("val")

	s := vlt.AllSessions.GetSess(user)

	ynoptionlist := []string{"graph"}

	if slices.Contains(ynoptionlist, opt) {
		valid := []string{"yes", "no"}
		if slices.Contains(valid, val) {
			var b bool
			if val == "yes" {
				b = true
			} else {
				b = false
			}
			switch opt {
			case "graph":
				s.GraphOK = b
			default:
				Msg.WARN(FAIL2)
			}
		} else {
			Msg.WARN(fmt.Sprintf(FAIL1, opt, val))
		}
	}

	spinoptionlist := []string{"topiccount"}
	if slices.Contains(spinoptionlist, opt) {
		intval, e := strconv.Atoi(val)
		if e == nil {
			switch opt {
			case "topiccount":
				if 1 <= intval && intval <= vv.LDAMAXTOPICS {
					s.TopicCount = intval
				} else if intval < 1 {
					s.TopicCount = 1
				} else {
					s.TopicCount = vv.LDAMAXTOPICS
				}
			default:
				Msg.WARN(FAIL2)
			}
		} else {
			Msg.WARN(fmt.Sprintf(FAIL1, opt, val))
		}
	}

	vlt.AllSessions.InsertSess(s)
	return c.String(http.StatusOK, "")
}

// RtResetSession - delete and then reset the session
func RtResetSession(c echo.Context) error {
	id := vlt.ReadUUIDCookie(c)

	vlt.AllSessions.Delete(id)

	// cancel any extractions in progress: you are about to do a .CancelFnc()
	vlt.WSInfo.Reset <- id

	// the cancel lands between pipeline stages: ExtractTopics() checks its context before the slow ones

	// reset the user ID and session
	newid := vlt.WriteUUIDCookie(c)
	vlt.AllSessions.InsertSess(lnch.MakeDefaultSession(newid))

	e := c.Redirect(http.StatusFound, "/")
	Msg.EC(e)
	return nil
}

// RtSessionSetsCookie - turn the session into a cookie
func RtSessionSetsCookie(c echo.Context) error {
	const (
		FAIL = "RtSessionSetsCookie() could not marshal the session"
	)
	num := c.Param("num")
	user := vlt.ReadUUIDCookie(c)
	s := vlt.AllSessions.GetSess(user)

	v, e := json.Marshal(s)
	if e != nil {
		v = []byte{}
		Msg.WARN(FAIL)
	}
	swap := strings.NewReplacer(`"`, "%22", ",", "%2C", " ", "%20")
	vs := swap.Replace(string(v))

	// note that cookie.Path = "/" is essential; otherwise different cookies for different contexts: "/extract" vs "/"
	cookie := new(http.Cookie)
	cookie.Name = "session" + num
	cookie.Path = "/"
	cookie.Value = vs
	cookie.Expires = time.Now().Add(4800 * time.Hour)
	c.SetCookie(cookie)

	return c.JSONPretty(http.StatusOK, "", vv.JSONINDENT)
}

// RtSessionGetCookie - turn a stored cookie into a session
func RtSessionGetCookie(c echo.Context) error {
	// this code has input trust issues...
	const (
		FAIL1 = "RtSessionGetCookie failed to read cookie %s for %s"
		FAIL2 = "RtSessionGetCookie failed to unmarshal cookie %s for %s"
	)

	user := vlt.ReadUUIDCookie(c)
	num := c.Param("num")
	cookie, err := c.Cookie("session" + num)
	if err != nil {
		Msg.WARN(fmt.Sprintf(FAIL1, num, user))
		return c.String(http.StatusOK, "")
	}

	var s str.ServerSession
	// invalid character '%' looking for beginning of object key string:
	// {%22ID%22:%22723073ae-09a7-4b24-a5d6-7e20603d8c44%22%2C%22graph%22:true%2C...}
	swap := strings.NewReplacer("%22", `"`, "%2C", ",", "%20", " ")
	cv := swap.Replace(cookie.Value)

	err = json.Unmarshal([]byte(cv), &s)
	if err != nil {
		Msg.WARN(fmt.Sprintf(FAIL2, num, user))
		return c.String(http.StatusOK, "")
	}

	vlt.AllSessions.InsertSess(s)

	e := c.Redirect(http.StatusFound, "/")
	Msg.EC(e)
	return nil
}
