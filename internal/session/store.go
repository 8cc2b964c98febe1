package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samandr77/docflow/internal/entity"
)

// FileStore keeps the session as a JSON file. It is the only durable state
// of the client.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get() (entity.Session, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return entity.Session{}, false, nil
	}

	if err != nil {
		return entity.Session{}, false, fmt.Errorf("read session file: %w", err)
	}

	var sess entity.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return entity.Session{}, false, fmt.Errorf("decode session: %w", err)
	}

	if sess.IsZero() {
		return entity.Session{}, false, nil
	}

	return sess, true, nil
}

func (s *FileStore) Set(sess entity.Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp := s.path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	return nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}

	return nil
}
