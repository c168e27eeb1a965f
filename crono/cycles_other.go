//go:build !amd64

package crono

import "time"

// Without a readable timestamp counter the monotonic clock stands in.
func cycleCounter() uint64 {
	return uint64(time.Since(processEpoch).Nanoseconds())
}
