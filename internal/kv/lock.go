package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	lockFileName   = "vibrant.lock"
	defaultTimeout = 500 * time.Millisecond
	initialBackoff = 5 * time.Millisecond
	maxBackoff     = 50 * time.Millisecond
)

// writeLocker serializes writes to the database across processes using an
// OS file lock. The OS drops the lock when the holder exits.
type writeLocker struct {
	path string
	file *os.File
}

func newWriteLocker(dataDir string) *writeLocker {
	return &writeLocker{path: filepath.Join(dataDir, lockFileName)}
}

// acquire polls for the exclusive lock with capped exponential backoff
func (l *writeLocker) acquire(timeout time.Duration) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	l.file = f

	deadline := time.Now().Add(timeout)
	backoff := initialBackoff

	for {
		if err := l.tryLock(); err == nil {
			l.writeHolder()
			return nil
		}

		if time.Now().After(deadline) {
			holder := l.readHolder()
			l.file.Close()
			l.file = nil
			return fmt.Errorf("write lock timeout after %v (holder: %s)", timeout, holder)
		}

		time.Sleep(backoff)
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (l *writeLocker) release() {
	if l.file == nil {
		return
	}
	l.file.Truncate(0)
	l.unlock()
	l.file.Close()
	l.file = nil
}

// writeHolder records the holding pid for timeout diagnostics
func (l *writeLocker) writeHolder() {
	l.file.Truncate(0)
	l.file.Seek(0, 0)
	fmt.Fprintf(l.file, "pid:%d\ntime:%s\n", os.Getpid(), time.Now().Format(time.RFC3339))
}

func (l *writeLocker) readHolder() string {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return "unknown"
	}

	var pid, since string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		switch {
		case strings.HasPrefix(line, "pid:"):
			pid = strings.TrimPrefix(line, "pid:")
		case strings.HasPrefix(line, "time:"):
			since = strings.TrimPrefix(line, "time:")
		}
	}
	if pid == "" {
		return "unknown"
	}

	if n, err := strconv.Atoi(pid); err == nil && !isProcessAlive(n) {
		return fmt.Sprintf("pid:%s since %s (stale)", pid, since)
	}
	return fmt.Sprintf("pid:%s since %s", pid, since)
}
