//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

//
// SERVERSESSIONS
//

type ServerSession struct {
	ID         string
	GraphOK    bool `json:"graph"`
	TopicCount int  `json:"topiccount"`
	LoginName  string
	TmpInt     int
	TmpStr     string
}
