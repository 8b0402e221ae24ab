//go:build !windows
// +build !windows

package illumiterm

import "golang.org/x/sys/unix"

// hangupPID sends SIGHUP to pid's process group. Children are started with
// setsid, so the group id equals the pid; fall back to the process alone if
// the group is gone.
func hangupPID(pid int) error {
	if err := unix.Kill(-pid, unix.SIGHUP); err != nil {
		return unix.Kill(pid, unix.SIGHUP)
	}
	return nil
}
