//go:build amd64

package crono

// rdtsc reads the x86 timestamp counter.
func rdtsc() uint64

func cycleCounter() uint64 { return rdtsc() }
