// Package decisionlog records the decisions of each planning cycle in a sqlite database so runs
// can be inspected and compared offline.
package decisionlog

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"go.viam.com/pathdecider/decision"
)

const schema = `
CREATE TABLE IF NOT EXISTS cycles (
	cycle_id    TEXT PRIMARY KEY,
	recorded_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS decisions (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	cycle_id          TEXT NOT NULL,
	seq               INTEGER NOT NULL,
	obstacle_id       TEXT NOT NULL,
	longitudinal      TEXT,
	lateral           TEXT,
	longitudinal_tags TEXT NOT NULL,
	lateral_tags      TEXT NOT NULL,
	FOREIGN KEY (cycle_id) REFERENCES cycles(cycle_id)
);

CREATE INDEX IF NOT EXISTS decisions_cycle ON decisions(cycle_id, seq);
`

// Row is one recorded obstacle. Decisions are stored in their string form; an empty string means
// no stage decided that axis.
type Row struct {
	CycleID          string
	ObstacleID       string
	Longitudinal     string
	Lateral          string
	LongitudinalTags []string
	LateralTags      []string
}

// Recorder writes ledgers to a sqlite database.
type Recorder struct {
	db  *sql.DB
	now func() time.Time
}

// NewRecorder opens or creates the database at dbPath.
func NewRecorder(dbPath string) (*Recorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open decision log")
	}
	for _, stmt := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON", schema} {
		if _, err := db.Exec(stmt); err != nil {
			return nil, multierr.Combine(errors.Wrap(err, "migrate decision log"), db.Close())
		}
	}
	return &Recorder{db: db, now: time.Now}, nil
}

// NewCycleID returns a fresh cycle id.
func NewCycleID() string {
	return uuid.New().String()
}

// Close closes the database.
func (r *Recorder) Close() error {
	return r.db.Close()
}

// Record stores every entry of ledger under cycleID. A cycle can only be recorded once.
func (r *Recorder) Record(cycleID string, ledger *decision.PathDecision) (err error) {
	if cycleID == "" {
		return errors.New("cycle id is required")
	}
	if ledger == nil {
		return errors.New("cannot record a nil path decision")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer func() {
		if err != nil {
			err = multierr.Combine(err, tx.Rollback())
		}
	}()

	if _, err = tx.Exec(`INSERT INTO cycles (cycle_id, recorded_at) VALUES (?, ?)`,
		cycleID, r.now().UTC().Format(time.RFC3339Nano)); err != nil {
		return errors.Wrapf(err, "insert cycle %q", cycleID)
	}

	for seq, entry := range ledger.Entries() {
		lonTags, err := json.Marshal(nonNil(entry.LongitudinalTags))
		if err != nil {
			return err
		}
		latTags, err := json.Marshal(nonNil(entry.LateralTags))
		if err != nil {
			return err
		}
		if _, err = tx.Exec(
			`INSERT INTO decisions (cycle_id, seq, obstacle_id, longitudinal, lateral, longitudinal_tags, lateral_tags)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			cycleID, seq, entry.Obstacle.ID,
			stringOrNull(entry.Longitudinal), stringOrNull(entry.Lateral),
			string(lonTags), string(latTags),
		); err != nil {
			return errors.Wrapf(err, "insert decision for obstacle %q", entry.Obstacle.ID)
		}
	}

	return errors.Wrap(tx.Commit(), "commit")
}

// Decisions returns the rows recorded for cycleID in ledger order.
func (r *Recorder) Decisions(cycleID string) ([]Row, error) {
	rows, err := r.db.Query(
		`SELECT obstacle_id, longitudinal, lateral, longitudinal_tags, lateral_tags
		 FROM decisions WHERE cycle_id = ? ORDER BY seq`, cycleID)
	if err != nil {
		return nil, errors.Wrap(err, "query decisions")
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			row              = Row{CycleID: cycleID}
			lon, lat         sql.NullString
			lonTags, latTags string
		)
		if err := rows.Scan(&row.ObstacleID, &lon, &lat, &lonTags, &latTags); err != nil {
			return nil, errors.Wrap(err, "scan decision")
		}
		row.Longitudinal = lon.String
		row.Lateral = lat.String
		if err := json.Unmarshal([]byte(lonTags), &row.LongitudinalTags); err != nil {
			return nil, errors.Wrap(err, "decode longitudinal tags")
		}
		if err := json.Unmarshal([]byte(latTags), &row.LateralTags); err != nil {
			return nil, errors.Wrap(err, "decode lateral tags")
		}
		out = append(out, row)
	}
	return out, errors.Wrap(rows.Err(), "iterate decisions")
}

// Cycles returns the recorded cycle ids, oldest first.
func (r *Recorder) Cycles() ([]string, error) {
	rows, err := r.db.Query(`SELECT cycle_id FROM cycles ORDER BY recorded_at, rowid`)
	if err != nil {
		return nil, errors.Wrap(err, "query cycles")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scan cycle")
		}
		ids = append(ids, id)
	}
	return ids, errors.Wrap(rows.Err(), "iterate cycles")
}

func stringOrNull(s interface{ String() string }) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: s.String(), Valid: true}
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
