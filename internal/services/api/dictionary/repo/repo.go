// Package repo persists dictionary entries to a flat JSON file
//
// The dictionary is small and read far more often than written, so the
// whole file is the unit of storage: reads parse it in full and writes
// replace it atomically via a temp file and rename
package repo

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	perr "pitchfork/internal/platform/errors"
	"pitchfork/internal/platform/logger"
	"pitchfork/internal/services/api/dictionary/domain"
)

// FileName is the dictionary file name under the data directory
const FileName = "extended_dict.json"

// Store is a file backed entry store safe for concurrent use
type Store struct {
	path string
	mu   sync.RWMutex
	log  logger.Logger
}

// NewFile creates a Store rooted at dir
func NewFile(dir string) *Store {
	return &Store{
		path: filepath.Join(dir, FileName),
		log:  *logger.Named("dictrepo"),
	}
}

// Path returns the backing file path
func (s *Store) Path() string { return s.path }

// Load reads all entries. A missing file is an empty dictionary
//
// Duplicate words are merged on read with the later entry winning, so a
// hand-edited file cannot leave the store ambiguous
func (s *Store) Load(ctx context.Context) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) ([]domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Entry{}, nil
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "dictionary read failed")
	}

	var entries []domain.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "dictionary file is not valid JSON")
	}

	return s.dedupe(entries), nil
}

// dedupe keeps the last entry per word, preserving first-seen order
func (s *Store) dedupe(entries []domain.Entry) []domain.Entry {
	seen := make(map[string]int, len(entries))
	out := entries[:0:0]
	for _, e := range entries {
		if i, ok := seen[e.Word]; ok {
			s.log.Warn().Str("word", e.Word).Msg("duplicate dictionary word, later entry wins")
			out[i] = e
			continue
		}
		seen[e.Word] = len(out)
		out = append(out, e)
	}
	return out
}

// FindByWord returns the entries whose word matches exactly
func (s *Store) FindByWord(ctx context.Context, word string) ([]domain.Entry, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	found := entries[:0:0]
	for _, e := range entries {
		if e.Word == word {
			found = append(found, e)
		}
	}
	return found, nil
}

// SaveAll replaces the whole dictionary with entries
func (s *Store) SaveAll(ctx context.Context, entries []domain.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(entries)
}

// Upsert inserts or replaces the entry keyed by word and returns it
func (s *Store) Upsert(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadLocked(ctx)
	if err != nil {
		return domain.Entry{}, err
	}

	replaced := false
	for i := range entries {
		if entries[i].Word == e.Word {
			entries[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, e)
	}

	if err := s.saveLocked(entries); err != nil {
		return domain.Entry{}, err
	}
	return e, nil
}

// Delete removes all entries for word. Returns not found when absent
func (s *Store) Delete(ctx context.Context, word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}

	kept := entries[:0:0]
	for _, e := range entries {
		if e.Word != word {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return perr.NotFoundf("no dictionary entry for word %q", word)
	}

	return s.saveLocked(kept)
}

// saveLocked writes entries to a temp file in the same directory and
// renames it over the target so readers never see a partial file
func (s *Store) saveLocked(entries []domain.Entry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "dictionary mkdir failed")
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "dictionary encode failed")
	}

	tmp := filepath.Join(dir, "."+FileName+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "dictionary temp write failed")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "dictionary rename failed")
	}
	return nil
}
