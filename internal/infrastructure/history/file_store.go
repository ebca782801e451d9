package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/pkg/filesystem"
	"github.com/doeshing/vox-go/internal/ports"
)

// FileStore appends chain records to a jsonl file. It is the degraded
// fallback when SQLite cannot be opened.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a new store under ~/.vox/history/history.json.
func NewFileStore() *FileStore {
	return &FileStore{path: filesystem.VoxDir("history", "history.json")}
}

// Save implements ports.HistoryRepository.
func (f *FileStore) Save(record domain.ChainRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// List implements ports.HistoryRepository, newest first.
func (f *FileStore) List(limit int) ([]domain.ChainRecord, error) {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	records, err := f.records()
	if err != nil {
		return nil, err
	}
	// File order is oldest first; reverse and cut.
	out := make([]domain.ChainRecord, 0, limit)
	for i := len(records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, records[i])
	}
	return out, nil
}

// Search implements ports.HistoryRepository.
func (f *FileStore) Search(keyword string, limit int) ([]domain.ChainRecord, error) {
	if limit <= 0 {
		limit = domain.DefaultHistorySearchLimit
	}
	records, err := f.records()
	if err != nil {
		return nil, err
	}
	keyword = strings.ToLower(keyword)
	out := make([]domain.ChainRecord, 0, limit)
	for i := len(records) - 1; i >= 0 && len(out) < limit; i-- {
		r := records[i]
		if strings.Contains(strings.ToLower(r.RawText), keyword) ||
			strings.Contains(strings.ToLower(r.Commands), keyword) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Clear removes the history file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileStore) records() ([]domain.ChainRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var records []domain.ChainRecord
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		var rec domain.ChainRecord
		if err := json.Unmarshal(line, &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

var _ ports.HistoryRepository = (*FileStore)(nil)
