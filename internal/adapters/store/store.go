// Package store persists captured logins as JSON files in the data directory.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SessionStore = (*Store)(nil)

// Store implements ports.SessionStore using one JSON file per login plus a
// latest_login.json that always mirrors the newest one.
type Store struct {
	dir string
	mu  sync.RWMutex
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for records saved without a login time.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store rooted at dir. The directory is created on first save.
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{
		dir: filepath.Clean(dir),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes a timestamped snapshot and replaces latest_login.json.
func (s *Store) Save(record domain.LoginRecord) (string, error) {
	if record.LoginTime.IsZero() {
		record.LoginTime = s.now()
	}
	if record.Username == "" {
		record.Username = domain.UnknownUsername
	}

	data, err := encode(record)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return "", domain.Wrap(domain.ErrStoreCreateFailed, err)
	}

	snapshot := domain.LoginSnapshotPath(s.dir, record.LoginTime)
	// Cookies are credentials.
	if err := os.WriteFile(snapshot, data, domain.PrivateFilePerm); err != nil {
		return "", zerr.With(domain.Wrap(domain.ErrStoreWriteFailed, err), "path", snapshot)
	}

	latest := domain.LatestLoginPath(s.dir)
	if err := writeAtomic(latest, data); err != nil {
		return "", zerr.With(domain.Wrap(domain.ErrStoreWriteFailed, err), "path", latest)
	}

	return snapshot, nil
}

// Latest returns the most recent login.
// Returns nil, nil if none has been saved.
func (s *Store) Latest() (*domain.LoginRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return readRecord(domain.LatestLoginPath(s.dir))
}

// History lists saved snapshots, newest first. Files that cannot be decoded are skipped.
func (s *Store) History() ([]domain.LoginSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.Wrap(domain.ErrStoreReadFailed, err)
	}

	summaries := make([]domain.LoginSummary, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, domain.LoginFilePrefix) || filepath.Ext(name) != ".json" {
			continue
		}
		record, err := readRecord(filepath.Join(s.dir, name))
		if err != nil || record == nil {
			continue
		}
		summaries = append(summaries, domain.LoginSummary{
			File:      name,
			LoginTime: record.LoginTime,
			Username:  record.Username,
			Platform:  record.Platform,
			Cookies:   len(record.Cookies),
		})
	}

	slices.SortStableFunc(summaries, func(a, b domain.LoginSummary) int {
		if c := b.LoginTime.Compare(a.LoginTime); c != 0 {
			return c
		}
		return strings.Compare(b.File, a.File)
	})
	return summaries, nil
}

func readRecord(path string) (*domain.LoginRecord, error) {
	//nolint:gosec // Path is built from the configured data directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(domain.Wrap(domain.ErrStoreReadFailed, err), "path", path)
	}

	var record domain.LoginRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(domain.Wrap(domain.ErrStoreUnmarshalFailed, err), "path", path)
	}
	return &record, nil
}

// encode renders the record as indented JSON, leaving non-ASCII text and
// URL query characters unescaped.
func encode(record domain.LoginRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return nil, domain.Wrap(domain.ErrStoreMarshalFailed, err)
	}
	return buf.Bytes(), nil
}

// writeAtomic replaces path so readers never observe a partial file.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".latest-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
