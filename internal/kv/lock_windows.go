//go:build windows

package kv

import (
	"golang.org/x/sys/windows"
)

// tryLock locks the first byte of the file without waiting
func (l *writeLocker) tryLock() error {
	ol := new(windows.Overlapped)
	return windows.LockFileEx(
		windows.Handle(l.file.Fd()),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		0,
		1,
		0,
		ol,
	)
}

func (l *writeLocker) unlock() {
	ol := new(windows.Overlapped)
	windows.UnlockFileEx(windows.Handle(l.file.Fd()), 0, 1, 0, ol)
}

// stillActive is the GetExitCodeProcess value for a running process
const stillActive = 259

func isProcessAlive(pid int) bool {
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return false
	}
	defer windows.CloseHandle(handle)

	var exitCode uint32
	if err := windows.GetExitCodeProcess(handle, &exitCode); err != nil {
		return false
	}
	return exitCode == stillActive
}
