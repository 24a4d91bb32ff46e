//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/e-gun/TopicaGoServer/internal/vv"
	_ "modernc.org/sqlite"
)

// OpenSQLiteCache - open, and if need be create, the on-disk report cache
func OpenSQLiteCache() *sql.DB {
	const (
		ERR1  = "OpenSQLiteCache() cannot find UserHomeDir"
		FAIL1 = "OpenSQLiteCache() could not open '%s'"
		MSG1  = "OpenSQLiteCache() opened '%s'"
		WAL   = "PRAGMA journal_mode=WAL"
	)

	fn := vv.SQLITEFILENAME
	h, e := os.UserHomeDir()
	if e != nil {
		// the fallback is a cache file in the working directory
		Msg.MAND(ERR1)
	} else {
		_ = os.MkdirAll(fmt.Sprintf(vv.CONFIGALTAPTH, h), 0700)
		fn = fmt.Sprintf(vv.CONFIGALTAPTH, h) + vv.SQLITEFILENAME
	}

	lite, err := sql.Open("sqlite", fn)
	if err != nil {
		Msg.MAND(fmt.Sprintf(FAIL1, fn))
		Msg.ExitOrHang(0)
	}

	// WAL lets simultaneous extractions read while one of them writes
	if _, err = lite.Exec(WAL); err != nil {
		Msg.MAND(fmt.Sprintf(FAIL1, fn))
		Msg.ExitOrHang(0)
	}

	Msg.PEEK(fmt.Sprintf(MSG1, fn))
	return lite
}
