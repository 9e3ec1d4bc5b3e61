package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spigell/resume-screener/internal/dialogue"
)

// FileStore keeps one indented JSON document per session in a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates dir when it does not exist.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("session directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(id string) string {
	return filepath.Join(f.dir, id+".json")
}

func (f *FileStore) Create(_ context.Context, s *Session) error {
	if s == nil {
		return fmt.Errorf("cannot create nil session")
	}
	if err := validateID(s.ID); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.OpenFile(f.path(s.ID), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s: %w", s.ID, ErrExists)
	}
	if err != nil {
		return err
	}

	if err := encode(file, s); err != nil {
		file.Close()
		os.Remove(f.path(s.ID))
		return err
	}
	return file.Close()
}

func (f *FileStore) Get(_ context.Context, id string) (*Session, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.read(id)
}

func (f *FileStore) AppendTurns(_ context.Context, id string, turns ...dialogue.Turn) error {
	if err := validateID(id); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.read(id)
	if err != nil {
		return err
	}
	s.appendTurns(turns...)

	return f.write(s)
}

func (f *FileStore) read(id string) (*Session, error) {
	file, err := os.Open(f.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var s Session
	if err := json.NewDecoder(file).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	if s.Turns == nil {
		s.Turns = []dialogue.Turn{}
	}
	return &s, nil
}

// write replaces the session file through a temporary file in the same directory.
func (f *FileStore) write(s *Session) error {
	tmp, err := os.CreateTemp(f.dir, s.ID+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := encode(tmp, s); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), f.path(s.ID))
}

func encode(file *os.File, s *Session) error {
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	return nil
}
