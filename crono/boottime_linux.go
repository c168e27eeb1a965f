//go:build linux

package crono

import (
	"time"

	"golang.org/x/sys/unix"
)

// bootTime estimates the host boot instant in Unix nanoseconds.
func bootTime() (uint64, bool) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, false
	}
	uptime := time.Duration(info.Uptime) * time.Second
	return uint64(time.Now().Add(-uptime).UnixNano()), true
}
