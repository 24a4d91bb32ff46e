//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

type CurrentConfiguration struct {
	Authenticate  bool
	BadChars      string
	BlackAndWhite bool
	CacheBackend  string // "sqlite", "pgsql" or "none"
	EchoLog       int    // 0: "none", 1: "terse", 2: "prolix", 3: "prolix+remoteip"
	GraphDisabled bool
	Gzip          bool
	HostIP        string
	HostPort      int
	LogLevel      int
	ManualGC      bool // see MessageMaker.LogPaths()
	PGLogin       PostgresLogin
	ProfileCPU    bool
	ProfileMEM    bool
	QuietStart    bool
	SelfTest      int
	TickerActive  bool
	TopicCount    int
	WipeCache     bool
	WorkerCount   int
}
