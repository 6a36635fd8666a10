package logohex

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bodgit/logohex/bitmap"
	"github.com/bodgit/logohex/mono"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// HistoryDB remembers packed logos and the firmware generated from them.
type HistoryDB struct {
	db *sql.DB
}

// FirmwareEntry is a single generated firmware.
type FirmwareEntry struct {
	Name    string
	Base    uint16
	SHA1    string
	Mode    string
	Rule    string
	Created time.Time
}

// NewHistoryDB opens, creating if necessary, the history database in file.
func NewHistoryDB(file string) (*HistoryDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS logo (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, mode TEXT NOT NULL, rule TEXT NOT NULL, packed BLOB NOT NULL, UNIQUE(sha1, mode, rule))"); err != nil {
		return nil, errors.WithStack(err)
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS firmware (id INTEGER PRIMARY KEY NOT NULL, logo_id INTEGER NOT NULL, name TEXT NOT NULL, base INTEGER NOT NULL, created INTEGER NOT NULL, FOREIGN KEY(logo_id) REFERENCES logo(id))"); err != nil {
		return nil, errors.WithStack(err)
	}

	return &HistoryDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *HistoryDB) Close() error {
	return db.db.Close()
}

// FindLogo returns the packed logo previously stored for the SHA1, mode and
// binarizer rule. It returns a nil buffer if there is none.
func (db *HistoryDB) FindLogo(sha1 string, mode mono.Mode, rule string) (int64, *bitmap.Buffer, error) {
	var id int64
	var packed []byte
	switch err := db.db.QueryRow("SELECT id, packed FROM logo WHERE sha1 = ? AND mode = ? AND rule = ?", sha1, mode.String(), rule).Scan(&id, &packed); err {
	case sql.ErrNoRows:
		return 0, nil, nil
	case nil:
		b := new(bitmap.Buffer)
		if err := b.UnmarshalBinary(packed); err != nil {
			return 0, nil, errors.Wrapf(err, "logo %d", id)
		}
		return id, b, nil
	default:
		return 0, nil, errors.WithStack(err)
	}
}

// AddLogo stores the packed logo for the SHA1, mode and rule, returning its
// id.
func (db *HistoryDB) AddLogo(sha1 string, mode mono.Mode, rule string, b *bitmap.Buffer) (int64, error) {
	packed, err := b.MarshalBinary()
	if err != nil {
		return 0, err
	}

	if _, err := db.db.Exec("INSERT OR IGNORE INTO logo (sha1, mode, rule, packed) VALUES (?, ?, ?, ?)", sha1, mode.String(), rule, packed); err != nil {
		return 0, errors.WithStack(err)
	}

	var id int64
	if err := db.db.QueryRow("SELECT id FROM logo WHERE sha1 = ? AND mode = ? AND rule = ?", sha1, mode.String(), rule).Scan(&id); err != nil {
		return 0, errors.WithStack(err)
	}
	return id, nil
}

// AddFirmware records a firmware generated from the logo with the given id.
func (db *HistoryDB) AddFirmware(logo int64, name string, base uint16) error {
	if _, err := db.db.Exec("INSERT INTO firmware (logo_id, name, base, created) VALUES (?, ?, ?, ?)", logo, name, int64(base), time.Now().Unix()); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Firmwares returns every generated firmware, oldest first.
func (db *HistoryDB) Firmwares() ([]FirmwareEntry, error) {
	rows, err := db.db.Query("SELECT f.name, f.base, l.sha1, l.mode, l.rule, f.created FROM firmware AS f JOIN logo AS l ON f.logo_id = l.id ORDER BY f.id")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	var entries []FirmwareEntry
	for rows.Next() {
		var e FirmwareEntry
		var base, created int64
		if err := rows.Scan(&e.Name, &base, &e.SHA1, &e.Mode, &e.Rule, &created); err != nil {
			return nil, errors.WithStack(err)
		}
		e.Base = uint16(base)
		e.Created = time.Unix(created, 0)
		entries = append(entries, e)
	}

	return entries, errors.WithStack(rows.Err())
}
