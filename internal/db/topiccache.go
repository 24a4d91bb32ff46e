//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"bytes"
	"compress/gzip"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/e-gun/TopicaGoServer/internal/lnch"
	"github.com/e-gun/TopicaGoServer/internal/str"
	"github.com/e-gun/TopicaGoServer/internal/vv"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//
// THE REPORT CACHE
//

// a fingerprint names one (document bytes, topic count, schedule) triple; identical requests can skip
// modeling and replay the stored report

var (
	// SQLPool - live when the "pgsql" backend is configured
	SQLPool *pgxpool.Pool

	// LiteDB - live when the "sqlite" backend is configured
	LiteDB *sql.DB
)

// CacheLaunch - open the configured backend and make sure the cache table exists
func CacheLaunch() {
	switch lnch.Config.CacheBackend {
	case "pgsql":
		SQLPool = FillDBConnectionPool(*lnch.Config)
		CacheInit()
	case "sqlite":
		LiteDB = OpenSQLiteCache()
		CacheInit()
	default:
		// "none": every request gets recomputed
	}
}

// CacheInit - create vv.CACHETABLENAME
func CacheInit() {
	const (
		CREATE = `
			CREATE TABLE %s
			(
			  fingerprint character(32),
			  reportsize  int,
			  reportdata  bytea
			)`
		EXISTS = "already exists"
	)

	ex := fmt.Sprintf(CREATE, vv.CACHETABLENAME)

	var err error
	switch {
	case SQLPool != nil:
		_, err = SQLPool.Exec(context.Background(), ex)
	case LiteDB != nil:
		_, err = LiteDB.Exec(ex)
	default:
		return
	}

	if err != nil {
		if !strings.Contains(err.Error(), EXISTS) {
			Msg.EC(err)
		}
	} else {
		Msg.FYI("CacheInit(): success")
	}
}

// CacheCheck - has a report with this fingerprint already been stored?
func CacheCheck(fp string) bool {
	const (
		Q       = `SELECT fingerprint FROM %s WHERE fingerprint = '%s' LIMIT 1`
		F       = `CacheCheck() found %s`
		DNE     = "does not exist"
		NOTABLE = "no such table"
	)

	q := fmt.Sprintf(Q, vv.CACHETABLENAME, fp)

	lazyinit := func(m string) {
		if strings.Contains(m, DNE) || strings.Contains(m, NOTABLE) {
			CacheInit()
		}
	}

	switch {
	case SQLPool != nil:
		foundrow, err := SQLPool.Query(context.Background(), q)
		if err != nil {
			lazyinit(err.Error())
			return false
		}

		type simplestring struct {
			S string
		}

		ss, err := pgx.CollectOneRow(foundrow, pgx.RowToStructByPos[simplestring])
		if err != nil {
			// "no rows in result set" if the fingerprint is not stored
			return false
		}
		Msg.TMI(fmt.Sprintf(F, ss.S))
		return true
	case LiteDB != nil:
		var s string
		if err := LiteDB.QueryRow(q).Scan(&s); err != nil {
			lazyinit(err.Error())
			return false
		}
		Msg.TMI(fmt.Sprintf(F, s))
		return true
	default:
		return false
	}
}

// CacheAdd - store one finished report under its fingerprint
func CacheAdd(fp string, r *str.TopicReport) {
	const (
		MSG1 = "CacheAdd(): "
		FAIL = "CacheAdd() failed when calling json.Marshal(): nothing stored"
		INSP = `INSERT INTO %s (fingerprint, reportsize, reportdata) VALUES ('%s', $1, $2)`
		INSL = `INSERT INTO %s (fingerprint, reportsize, reportdata) VALUES ('%s', ?, ?)`
		GZ   = gzip.BestSpeed
	)

	if r == nil {
		return
	}

	rb, err := json.Marshal(r)
	if err != nil {
		Msg.NOTE(FAIL)
		return
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, GZ)
	Msg.EC(err)
	_, err = zw.Write(rb)
	Msg.EC(err)
	err = zw.Close()
	Msg.EC(err)

	b := buf.Bytes()

	switch {
	case SQLPool != nil:
		_, err = SQLPool.Exec(context.Background(), fmt.Sprintf(INSP, vv.CACHETABLENAME, fp), len(b), b)
	case LiteDB != nil:
		_, err = LiteDB.Exec(fmt.Sprintf(INSL, vv.CACHETABLENAME, fp), len(b), b)
	default:
		return
	}

	Msg.EC(err)
	Msg.TMI(MSG1 + fp)
}

// CacheFetch - pull a stored report back out; nil is a miss
func CacheFetch(fp string) *str.TopicReport {
	const (
		MSG1 = "CacheFetch() pulled an unreadable report for %s"
		Q    = `SELECT reportdata FROM %s WHERE fingerprint = '%s' LIMIT 1`
	)

	q := fmt.Sprintf(Q, vv.CACHETABLENAME, fp)

	var blob []byte

	switch {
	case SQLPool != nil:
		foundrow, err := SQLPool.Query(context.Background(), q)
		if err != nil {
			return nil
		}
		defer foundrow.Close()
		for foundrow.Next() {
			if e := foundrow.Scan(&blob); e != nil {
				return nil
			}
		}
	case LiteDB != nil:
		if err := LiteDB.QueryRow(q).Scan(&blob); err != nil {
			return nil
		}
	default:
		return nil
	}

	if len(blob) == 0 {
		return nil
	}

	// the data in the table is zipped and needs unzipping
	zr, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		Msg.NOTE(fmt.Sprintf(MSG1, fp))
		return nil
	}

	decompr, err := io.ReadAll(zr)
	_ = zr.Close()
	if err != nil {
		Msg.NOTE(fmt.Sprintf(MSG1, fp))
		return nil
	}

	r := &str.TopicReport{}
	if err = json.Unmarshal(decompr, r); err != nil {
		Msg.NOTE(fmt.Sprintf(MSG1, fp))
		return nil
	}

	return r
}

// CacheReset - drop vv.CACHETABLENAME
func CacheReset() {
	const (
		MSG1 = "CacheReset() dropped "
		MSG2 = "CacheReset(): 'DROP TABLE %s' returned an (ignored) error: \n\t%s"
		E    = `DROP TABLE %s`
	)

	ex := fmt.Sprintf(E, vv.CACHETABLENAME)

	var err error
	switch {
	case SQLPool != nil:
		_, err = SQLPool.Exec(context.Background(), ex)
	case LiteDB != nil:
		_, err = LiteDB.Exec(ex)
	default:
		return
	}

	if err != nil {
		Msg.TMI(fmt.Sprintf(MSG2, vv.CACHETABLENAME, err.Error()))
	} else {
		Msg.NOTE(MSG1 + vv.CACHETABLENAME)
	}
}

// CacheCount - report the number of stored reports at the given priority
func CacheCount(priority int) {
	const (
		SZQ  = "SELECT COUNT(fingerprint) AS total FROM " + vv.CACHETABLENAME
		MSG4 = "Number of cached topic reports: %d"
	)

	var size int64

	switch {
	case SQLPool != nil:
		if err := SQLPool.QueryRow(context.Background(), SZQ).Scan(&size); err != nil {
			size = 0
		}
	case LiteDB != nil:
		if err := LiteDB.QueryRow(SZQ).Scan(&size); err != nil {
			size = 0
		}
	default:
		return
	}

	Msg.Emit(fmt.Sprintf(MSG4, size), priority)
}

// CacheSize - report the disk footprint of the stored reports at the given priority
func CacheSize(priority int) {
	const (
		SZQ  = "SELECT COALESCE(SUM(reportsize), 0) AS total FROM " + vv.CACHETABLENAME
		MSG4 = "Disk space used by cached reports is currently %dKB"
	)

	var size int64

	switch {
	case SQLPool != nil:
		if err := SQLPool.QueryRow(context.Background(), SZQ).Scan(&size); err != nil {
			size = 0
		}
	case LiteDB != nil:
		if err := LiteDB.QueryRow(SZQ).Scan(&size); err != nil {
			size = 0
		}
	default:
		return
	}

	Msg.Emit(fmt.Sprintf(MSG4, size/1024), priority)
}
