//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

import "time"

const (
	MYNAME    = "Topica Golang Server"
	SHORTNAME = "TGS"
	VERSION   = "1.3.1"

	BLACKANDWHITE       = false
	CACHEDISABLED       = "none"
	CACHEPROVIDERDFLT   = "sqlite" // "sqlite", "pgsql" or "none"
	CACHETABLENAME      = "topic_model_cache"
	CONFIGLOCATION      = "."
	CONFIGALTAPTH       = "%s/.config/" // %s = os.UserHomeDir()
	CONFIGBASIC         = "tgs-conf.json"
	CONFIGPROLIX        = "tgs-prolix-conf.json"
	DEFAULTECHOLOGLEVEL = 0
	DEFAULTGOLOGLEVEL   = 0
	DEFAULTPSQLHOST     = "127.0.0.1"
	DEFAULTPSQLUSER     = "topica_wr"
	DEFAULTPSQLPORT     = 5432
	DEFAULTPSQLDB       = "topicaDB"
	JSONINDENT          = "  "

	// it takes only a couple of requests to load the front page; uploads are single requests; 60 is generous
	MAXECHOREQPERSECONDPERIP = 60
	MAXEXTRACTPERIPADDR      = 2
	MAXEXTRACTTOTAL          = 4
	MAXREPORTVAULT           = 64               // reports remembered for /extract/graph/:id before the oldest are dropped
	MAXUPLOADBYTES           = 32 * 1024 * 1024 // .docx files are zipped xml; 32MB of zip is a very long document

	SERVEDFROMHOST = "127.0.0.1"
	SERVEDFROMPORT = 8000
	SQLITEFILENAME = "tgs-topiccache.db"

	TICKERISACTIVE = false
	TICKERDELAY    = 30 * time.Second
	TIMEOUTRD      = 15 * time.Second  // only set if Config.Authenticate is true (and so in a "serve the net" situation)
	TIMEOUTWR      = 120 * time.Second // generous, but fitting a long document takes a while
	TMPUPLOADPATT  = "tgs-upload-*.docx"

	// uploaded filenames and session option values get echoed back at people: strip anything that could puncture the html or the json
	UNACCEPTABLEINPUT = `|"'!@:,=+_\/`

	USEGZIP        = false
	WRITEPERMS     = 0644
	WSPOLLINGPAUSE = 10000000 * 10 // 10000000 * 10 = every .1s
)
