//go:build !unix

package memory

// flock is a no-op where advisory file locks are unavailable; callers still
// hold the in-process lock and writes still go through an atomic rename.
func flock(string, bool) (func(), error) {
	return func() {}, nil
}
