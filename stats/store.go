package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Store persists a Record. Load never fails and Save is best-effort, so
// neither surfaces errors to the game.
type Store interface {
	Load() Record
	Save(Record)
}

// FileStore keeps a Record as an indented JSON object in a single file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load returns the stored record, or a zeroed record if the file is missing
// or cannot be parsed.
func (s *FileStore) Load() Record {
	r, err := s.read()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debugf("no stats file at %v, starting fresh", s.path)
		return Record{}
	case err != nil:
		log.Warnf("ignoring unreadable stats file %v: %v", s.path, err)
		return Record{}
	}

	return r
}

func (s *FileStore) Save(r Record) {
	if err := s.write(r); err != nil {
		log.Warnf("could not save stats to %v: %v", s.path, err)
		return
	}

	log.Debugf("saved stats to %v", s.path)
}

func (s *FileStore) read() (Record, error) {
	var r Record
	data, err := os.ReadFile(s.path)
	if err != nil {
		return r, err
	}

	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("could not parse stats file %v: %w", s.path, err)
	}

	return r.sanitize(), nil
}

// write replaces the file atomically so an interrupted save leaves the
// previous contents intact.
func (s *FileStore) write(r Record) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create stats directory %v: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}

	_, err = tmp.Write(append(data, '\n'))
	err = errors.Join(err, tmp.Close())
	if err == nil {
		err = os.Rename(tmp.Name(), s.path)
	}

	if err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return nil
}

// MemoryStore keeps the record in memory only.
type MemoryStore struct {
	Record Record
	Saves  int
}

func (m *MemoryStore) Load() Record {
	return m.Record
}

func (m *MemoryStore) Save(r Record) {
	m.Record = r
	m.Saves++
}
