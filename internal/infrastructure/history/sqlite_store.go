// Package history persists completed chain runs.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/pkg/filesystem"
	"github.com/doeshing/vox-go/internal/ports"
)

// SQLiteStore persists chain runs in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the ~/.vox/history/history.db database.
// When the database cannot be opened the store degrades to the JSON file
// fallback under the same directory.
func NewSQLiteStore() *SQLiteStore {
	return newSQLiteStoreAt(filesystem.VoxDir("history", "history.db"))
}

func newSQLiteStoreAt(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS chain_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		timestamp TEXT,
		raw_text TEXT,
		commands TEXT,
		attempted INTEGER,
		halted_early INTEGER,
		overall_success INTEGER,
		duration_ms INTEGER
	);`)
	return err
}

// Save implements ports.HistoryRepository.
func (s *SQLiteStore) Save(record domain.ChainRecord) error {
	if s.db == nil {
		return (&FileStore{path: s.fallbackPath()}).Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO chain_runs
		(run_id, timestamp, raw_text, commands, attempted, halted_early, overall_success, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.RunID,
		record.Timestamp.Format(domain.TimestampFormat),
		record.RawText,
		record.Commands,
		record.Attempted,
		boolToInt(record.HaltedEarly),
		boolToInt(record.OverallSuccess),
		record.DurationMS,
	)
	return err
}

// List implements ports.HistoryRepository, newest first.
func (s *SQLiteStore) List(limit int) ([]domain.ChainRecord, error) {
	if s.db == nil {
		return (&FileStore{path: s.fallbackPath()}).List(limit)
	}
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(`SELECT run_id, timestamp, raw_text, commands, attempted, halted_early, overall_success, duration_ms
		FROM chain_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Search implements ports.HistoryRepository, matching raw text or commands.
func (s *SQLiteStore) Search(keyword string, limit int) ([]domain.ChainRecord, error) {
	if s.db == nil {
		return (&FileStore{path: s.fallbackPath()}).Search(keyword, limit)
	}
	if limit <= 0 {
		limit = domain.DefaultHistorySearchLimit
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	like := "%" + keyword + "%"
	rows, err := s.db.Query(`SELECT run_id, timestamp, raw_text, commands, attempted, halted_early, overall_success, duration_ms
		FROM chain_runs WHERE raw_text LIKE ? OR commands LIKE ? ORDER BY id DESC LIMIT ?`, like, like, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Clear implements ports.HistoryRepository.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return (&FileStore{path: s.fallbackPath()}).Clear()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM chain_runs`)
	return err
}

// Ping reports whether the backing database is reachable.
func (s *SQLiteStore) Ping() error {
	if s.db == nil {
		return fmt.Errorf("sqlite unavailable, using file fallback at %s", s.fallbackPath())
	}
	return s.db.Ping()
}

func (s *SQLiteStore) fallbackPath() string {
	return filepath.Join(filepath.Dir(s.path), "history.json")
}

func scanRecords(rows *sql.Rows) ([]domain.ChainRecord, error) {
	var records []domain.ChainRecord
	for rows.Next() {
		var (
			r       domain.ChainRecord
			ts      string
			halted  int
			success int
		)
		if err := rows.Scan(&r.RunID, &ts, &r.RawText, &r.Commands, &r.Attempted, &halted, &success, &r.DurationMS); err != nil {
			return nil, err
		}
		if parsed, err := time.Parse(domain.TimestampFormat, ts); err == nil {
			r.Timestamp = parsed
		}
		r.HaltedEarly = halted != 0
		r.OverallSuccess = success != 0
		records = append(records, r)
	}
	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
