//go:build windows
// +build windows

package illumiterm

import "os"

// hangupPID terminates pid. Windows has no hangup signal.
func hangupPID(pid int) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return p.Kill()
}
