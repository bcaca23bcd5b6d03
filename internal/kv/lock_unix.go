//go:build unix

package kv

import (
	"os"
	"syscall"
)

func (l *writeLocker) tryLock() error {
	return syscall.Flock(int(l.file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
}

func (l *writeLocker) unlock() {
	syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
}

// isProcessAlive sends signal 0, which only checks for existence
func isProcessAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
