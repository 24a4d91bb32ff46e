//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

var (
	AllSessions   = MakeSessionVault()
	AllReports    = MakeReportVault()
	WebsocketPool = WSFillNewPool()
	WSInfo        = BuildWSInfoHubIf()
)
