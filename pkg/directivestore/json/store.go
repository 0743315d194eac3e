package json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/miketth/wise/pkg/geometry"
)

const saveInterval = time.Minute

// DirectiveStore keeps directives in memory and replaces the JSON file
// atomically whenever it is saved.
type DirectiveStore struct {
	directives map[string]geometry.Directive
	filename   string
	lock       sync.Mutex
	dirty      bool
}

func NewDirectiveStore(filename string) (*DirectiveStore, error) {
	store := &DirectiveStore{
		directives: make(map[string]geometry.Directive),
		filename:   filename,
	}

	raw, err := os.ReadFile(filename)
	switch {
	case os.IsNotExist(err):
		store.dirty = true
		return store, nil
	case err != nil:
		return nil, fmt.Errorf("read file: %w", err)
	case len(raw) == 0:
		return store, nil
	}

	if err := json.Unmarshal(raw, &store.directives); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	return store, nil
}

// Close flushes pending changes.
func (s *DirectiveStore) Close() error {
	return s.Save()
}

func (s *DirectiveStore) Save() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.dirty {
		return nil
	}

	data, err := json.MarshalIndent(s.directives, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	if err := writeFileAtomic(s.filename, append(data, '\n')); err != nil {
		return err
	}

	s.dirty = false
	return nil
}

// writeFileAtomic writes next to filename and renames over it, so readers
// see either the old or the new content.
func writeFileAtomic(filename string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("replace %s: %w", filename, err)
	}

	return nil
}

// SaveLooper flushes the store every saveInterval and once more when ctx
// ends.
func (s *DirectiveStore) SaveLooper(ctx context.Context) error {
	ticker := time.NewTicker(saveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := s.Save(); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			return ctx.Err()

		case <-ticker.C:
			if err := s.Save(); err != nil {
				return fmt.Errorf("save: %w", err)
			}
		}
	}
}

func (s *DirectiveStore) LastDirective(bundleID string) (geometry.Directive, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	directive, ok := s.directives[bundleID]
	return directive, ok, nil
}

func (s *DirectiveStore) SetLastDirective(bundleID string, directive geometry.Directive) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if current, ok := s.directives[bundleID]; ok && current == directive {
		return nil
	}
	s.directives[bundleID] = directive
	s.dirty = true
	return nil
}
