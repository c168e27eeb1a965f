package crono

import (
	"fmt"
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

const chainRounds = 5

// Fingerprint folds the CPU identity and, where known, the boot time.
// It reports false when the CPU could not be identified.
func (SystemSource) Fingerprint() (uint64, bool) {
	cpu := cpuid.CPU
	if cpu.VendorID == cpuid.VendorUnknown && cpu.BrandName == "" {
		return 0, false
	}
	id := []byte(fmt.Sprintf("%s|%s|%d|%d|%d|%d",
		cpu.VendorString, cpu.BrandName, cpu.Family, cpu.Model, cpu.Stepping, cpu.LogicalCores))
	fp := avalancheMix(uint64(cpu.VendorID)<<32|uint64(cpu.Family), id)
	if boot, ok := bootTime(); ok {
		fp ^= boot
	}
	return fp, true
}

// DetectParallelism returns the number of logical cores, at least one.
func DetectParallelism() int {
	n := cpuid.CPU.LogicalCores
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ChainID derives a host-bound identifier from the platform fingerprint and
// a fresh RAM fingerprint, rendered as 16 hex digits.
func ChainID(s *Sampler) string {
	chain := s.RAMFingerprint()
	if fp, ok := s.Fingerprint(); ok {
		chain ^= fp
	}
	for i := 0; i < chainRounds; i++ {
		chain = endomorph(chain, s.CycleCounter()^chain)
	}
	return fmt.Sprintf("%016x", chain)
}
