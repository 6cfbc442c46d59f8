// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package trace

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"
	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

const createTable = `
CREATE TABLE IF NOT EXISTS lp_trace (
	run_id  TEXT    NOT NULL,
	seq     INTEGER NOT NULL,
	kind    TEXT    NOT NULL,
	at_us   INTEGER NOT NULL,
	cycle   INTEGER NOT NULL,
	pin     INTEGER NOT NULL,
	level   INTEGER NOT NULL,
	note    TEXT    NOT NULL,
	PRIMARY KEY (run_id, seq)
)`

const insertEvent = `INSERT INTO lp_trace
	(run_id, seq, kind, at_us, cycle, pin, level, note)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// SQLite writes events to a SQLite database in batches.
// Each SQLite recorder tags its rows with a unique run id.
type SQLite struct {
	db    *sql.DB
	stmt  *sql.Stmt
	RunID string

	mu        sync.Mutex
	seq       int64
	pending   []Event
	batchSize int
}

// NewSQLite opens (creating if needed) the database at path.
// Buffered events are flushed when the program exits through atexit.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	stmt, err := db.Prepare(insertEvent)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	s := &SQLite{
		db:        db,
		stmt:      stmt,
		RunID:     xid.New().String(),
		batchSize: 1000,
	}
	atexit.Register(func() {
		if err := s.Flush(); err != nil {
			glog.Errorf("trace flush: %v", err)
		}
	})
	return s, nil
}

// Record buffers the event.
func (s *SQLite) Record(e Event) {
	s.mu.Lock()
	s.pending = append(s.pending, e)
	full := len(s.pending) >= s.batchSize
	s.mu.Unlock()
	if full {
		if err := s.Flush(); err != nil {
			glog.Errorf("trace flush: %v", err)
		}
	}
}

// Flush writes the buffered events in one transaction.
func (s *SQLite) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 || s.db == nil {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	st := tx.Stmt(s.stmt)
	for _, e := range s.pending {
		s.seq++
		_, err := st.Exec(s.RunID, s.seq, e.Kind.String(), e.At.Microseconds(),
			int64(e.Cycle), e.Pin, e.Level, e.Note)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.pending = s.pending[:0]
	return nil
}

// Events reads back the events of this run in order.
func (s *SQLite) Events() ([]Event, error) {
	rows, err := s.db.Query(`SELECT kind, at_us, cycle, pin, level, note
		FROM lp_trace WHERE run_id = ? ORDER BY seq`, s.RunID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var (
			kind  string
			at    int64
			cycle int64
			e     Event
		)
		if err := rows.Scan(&kind, &at, &cycle, &e.Pin, &e.Level, &e.Note); err != nil {
			return nil, err
		}
		k, err := parseKind(kind)
		if err != nil {
			return nil, err
		}
		e.Kind = k
		e.At = time.Duration(at) * time.Microsecond
		e.Cycle = uint64(cycle)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close flushes and closes the database.
func (s *SQLite) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stmt.Close()
	err := s.db.Close()
	s.db = nil
	return err
}

func parseKind(s string) (Kind, error) {
	for k := Wake; k <= Fault; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown trace kind %q", s)
}
