package memory

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the memory log in a line-oriented file, one JSON record
// per line. Every call re-reads the file; nothing is cached between calls.
type FileStore struct {
	path string
	lock *pathLock
}

// NewFileStore returns a store for the log at path. Nothing is created on
// disk until the first write; a missing file reads as an empty log.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("memory log path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve memory log path: %w", err)
	}
	return &FileStore{path: abs, lock: lockFor(abs)}, nil
}

// Path returns the absolute path of the log file.
func (s *FileStore) Path() string {
	return s.path
}

// Record appends ex, trims the log to the last maxExchanges entries and
// rewrites the file. A non-positive maxExchanges uses DefaultMaxExchanges.
func (s *FileStore) Record(ex Exchange, maxExchanges int) (Stats, error) {
	unlock, err := s.lock.lock()
	if err != nil {
		return Stats{}, writeError(s.path, err)
	}
	defer unlock()

	log, skipped, err := s.load()
	if err != nil {
		return Stats{Skipped: skipped}, readError(s.path, err)
	}

	log, evicted := trim(append(log, ex), resolveMax(maxExchanges))
	if err := s.persist(log); err != nil {
		return Stats{Skipped: skipped}, writeError(s.path, err)
	}

	return Stats{Stored: len(log), Evicted: evicted, Skipped: skipped}, nil
}

// Recent returns the last maxExchanges entries, oldest first.
func (s *FileStore) Recent(maxExchanges int) ([]Exchange, Stats, error) {
	unlock := s.lock.rlock()
	defer unlock()

	log, skipped, err := s.load()
	if err != nil {
		return nil, Stats{Skipped: skipped}, readError(s.path, err)
	}
	return Window(log, resolveMax(maxExchanges)), Stats{Stored: len(log), Skipped: skipped}, nil
}

// Clear replaces the log with an empty file.
func (s *FileStore) Clear() error {
	unlock, err := s.lock.lock()
	if err != nil {
		return writeError(s.path, err)
	}
	defer unlock()

	if err := s.persist(nil); err != nil {
		return writeError(s.path, err)
	}
	return nil
}

// Close is a no-op; the file is only open for the duration of a call.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) load() ([]Exchange, int, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, err
	}
	defer f.Close()

	return Decode(f)
}

// persist writes log to a temp file next to the target and renames it into
// place, so the log is either fully replaced or left untouched.
func (s *FileStore) persist(log []Exchange) (err error) {
	dir, base := filepath.Split(s.path)

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = Encode(w, log); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return err
	}
	if err = tmp.Chmod(fileMode(s.path)); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// fileMode keeps the permissions of an existing log; new logs get 0644.
func fileMode(path string) fs.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}
