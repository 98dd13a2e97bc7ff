package memory

import "sync"

// pathLock serializes access to one storage path. The in-process RWMutex
// is always taken first, then the advisory file lock shared with other
// processes.
type pathLock struct {
	mu       sync.RWMutex
	lockPath string
}

var pathLocks sync.Map // absolute storage path -> *pathLock

func lockFor(path string) *pathLock {
	l, _ := pathLocks.LoadOrStore(path, &pathLock{lockPath: path + ".lock"})
	return l.(*pathLock)
}

// lock takes the exclusive lock for a read-modify-write.
func (l *pathLock) lock() (func(), error) {
	l.mu.Lock()
	release, err := flock(l.lockPath, true)
	if err != nil {
		l.mu.Unlock()
		return nil, err
	}
	return func() {
		release()
		l.mu.Unlock()
	}, nil
}

// rlock takes the shared lock for a read. If the sidecar lock file cannot
// be opened the read proceeds under the in-process lock only; writers
// replace the log by rename, so a reader still sees a whole file.
func (l *pathLock) rlock() func() {
	l.mu.RLock()
	release, err := flock(l.lockPath, false)
	if err != nil {
		release = func() {}
	}
	return func() {
		release()
		l.mu.RUnlock()
	}
}
