package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/teenjuna/seqbuf/internal"
)

var (
	// ErrClosed is returned by Storage methods when the storage has been closed.
	ErrClosed = errors.New("storage is closed")
)

const (
	memory = ":memory:"
)

// Storage is a FIFO of encoded batches backed by SQLite.
//
// Batches are shifted in the order they were pushed. The storage is emptied when it is opened:
// it holds overflow of a running process, not data that should survive a restart.
type Storage struct {
	cfg *Config
	db  *sql.DB
}

// New creates a new Storage with the provided configuration functions.
//
// Default configuration:
//   - File: ":memory:" (private in-memory database)
//   - BusyTimeout: 5000
//
// Returns an error if the SQLite database cannot be opened or initialized.
func New(configFuncs ...ConfigFunc) (*Storage, error) {
	cfg := &Config{}
	cfg.File(memory)
	cfg.BusyTimeout(5000)
	for _, cf := range configFuncs {
		cf(cfg)
	}

	db, err := open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	if err := setup(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setup: %w", err)
	}

	storage := Storage{
		cfg: cfg,
		db:  db,
	}

	return &storage, nil
}

// Push appends a batch. The data is the encoded batch and size is the number of items in it.
//
// Returns [ErrClosed] if the storage has been closed.
func (s *Storage) Push(data []byte, size int) (BatchID, error) {
	res, err := s.db.Exec(
		`
		insert into batch (
			data,
			size,
			pushed_at
		) values (
			:data,
			:size,
			:pushed_at
		)
		`,
		sql.Named("data", data),
		sql.Named("size", size),
		sql.Named("pushed_at", toTimestamp(time.Now())),
	)
	if err != nil {
		return 0, closedOr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	return id, nil
}

// Shift removes the oldest batch and returns it. It returns nil if the storage is empty.
//
// Returns [ErrClosed] if the storage has been closed.
func (s *Storage) Shift() (*Batch, error) {
	rows, err := s.db.Query(
		`
		delete from batch
		where id = (select min(id) from batch)
		returning id, data, size, pushed_at
		`,
	)
	if err != nil {
		return nil, closedOr(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		return nil, nil
	}

	var (
		b        Batch
		pushedAt int64
	)
	if err := rows.Scan(&b.ID, &b.Data, &b.Size, &pushedAt); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	b.PushedAt = fromTimestamp(pushedAt)

	return &b, nil
}

// Stats returns the number of stored batches and the number of items across them.
func (s *Storage) Stats() (*Stats, error) {
	var stats Stats
	err := s.db.QueryRow(
		`
		select
			count(*) as batches,
			coalesce(sum(size), 0) as items
		from
			batch
		`,
	).Scan(
		&stats.Batches,
		&stats.Items,
	)
	if err != nil {
		return nil, closedOr(err)
	}

	return &stats, nil
}

// Close closes the underlying SQLite database.
//
// After closing, all methods on Storage will return [ErrClosed].
func (s *Storage) Close() error {
	return s.db.Close()
}

type BatchID = int64

// Batch is a stored group of encoded items.
type Batch struct {
	// ID grows with every push, so it also orders batches.
	ID BatchID
	// Data is the encoded batch content.
	Data []byte
	// Size is the number of items in the batch.
	Size int
	// PushedAt is the time when the batch was pushed.
	PushedAt time.Time
}

// Stats represents statistics about the storage.
type Stats struct {
	Batches int
	Items   int
}

func open(cfg *Config) (*sql.DB, error) {
	params := url.Values{}
	params.Add("_txlock", "immediate")
	params.Add("_timeout", strconv.Itoa(cfg.timeout))

	name := cfg.file
	if name == memory {
		// Every storage gets its own named shared-cache database, so connections of one storage
		// see the same data and two storages never do.
		name = internal.RandomName("seqbuf-", 10)
		params.Add("mode", "memory")
		params.Add("cache", "shared")
	} else {
		params.Add("_journal", "wal")
		params.Add("_sync", "normal")
	}

	uri := url.URL{Scheme: "file", Opaque: name, RawQuery: params.Encode()}
	db, err := sql.Open("sqlite3", uri.String())
	if err != nil {
		return nil, err
	}

	// The spill cache serializes access, so one connection is enough.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)

	return db, nil
}

func setup(db *sql.DB) error {
	if _, err := db.Exec(
		`
		create table if not exists batch (
			id        integer primary key autoincrement,
			data      blob not null,
			size      int not null,
			pushed_at int not null
		) strict
		`,
	); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	// Leftovers of a previous process are not ours to deliver.
	if _, err := db.Exec("delete from batch"); err != nil {
		return fmt.Errorf("clear batches: %w", err)
	}

	return nil
}

func closedOr(err error) error {
	if err != nil && err.Error() == "sql: database is closed" {
		return ErrClosed
	}
	return err
}

func toTimestamp(time time.Time) int64 {
	return time.UnixNano()
}

func fromTimestamp(timestamp int64) time.Time {
	return time.Unix(0, timestamp)
}
