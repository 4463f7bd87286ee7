// Package session holds the SessionSlot implementations: the named slot where the logged-in Account is kept.
package session

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/placement/core/directory"
)

const fileExt = ".json"

// FileSlot stores the session in <dir>/<name>.json.
type FileSlot struct {
	path string
	mu   sync.Mutex
}

var _ directory.SessionSlot = (*FileSlot)(nil)

func NewFileSlot(dir, name string) (*FileSlot, error) {
	if name == "" {
		return nil, errors.New("session slot name is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "creating session dir %s", dir)
	}
	return &FileSlot{path: filepath.Join(dir, name+fileExt)}, nil
}

func (s *FileSlot) Path() string { return s.path }

func (s *FileSlot) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := ioutil.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, directory.ErrNoSession
		}
		return nil, errors.Wrapf(err, "reading %s", s.path)
	}
	if len(data) == 0 {
		return nil, directory.ErrNoSession
	}
	return data, nil
}

// Write replaces the slot content atomically.
func (s *FileSlot) Write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := ioutil.TempFile(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return errors.Wrap(err, "creating temp session file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing temp session file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp session file")
	}
	return errors.Wrapf(os.Rename(tmp.Name(), s.path), "replacing %s", s.path)
}

func (s *FileSlot) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %s", s.path)
	}
	return nil
}
