// =======================
// crono/entropy.go
// =======================

package crono

import (
	"crypto/rand"
	"runtime"
	"time"
)

// Sample buffer sizes and the cache-noise trial count.
const (
	RAMSampleSize        = 4096
	MemoryWalkSize       = 1024
	MemoryWalkStride     = 7
	GhostSaltSize        = 2048
	CacheNoiseIterations = 1000
)

// Source exposes the hardware and OS capabilities the sampler draws from.
// Implementations must be safe for concurrent use.
type Source interface {
	// CycleCounter reads the platform timestamp counter.
	CycleCounter() uint64
	// WallNano is the wall clock in nanoseconds since the Unix epoch.
	WallNano() uint64
	// MonotonicNano is a monotonic nanosecond reading.
	MonotonicNano() uint64
	// Fill overwrites p with random bytes.
	Fill(p []byte)
}

// Fingerprinter is an optional Source capability describing the host.
// Hosts that cannot identify themselves do not implement it.
type Fingerprinter interface {
	Fingerprint() (uint64, bool)
}

var processEpoch = time.Now()

// SystemSource reads the real clocks, cycle counter and crypto/rand.
type SystemSource struct{}

func (SystemSource) CycleCounter() uint64 { return cycleCounter() }

func (SystemSource) WallNano() uint64 { return uint64(time.Now().UnixNano()) }

func (SystemSource) MonotonicNano() uint64 { return uint64(time.Since(processEpoch).Nanoseconds()) }

func (SystemSource) Fill(p []byte) {
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(p)
}

// Sampler derives EntropySamples from a Source. Every call draws fresh
// values and owns its sampling buffer for the duration of the call only.
type Sampler struct {
	src Source
}

// NewSampler wraps src. A nil src means SystemSource.
func NewSampler(src Source) *Sampler {
	if src == nil {
		src = SystemSource{}
	}
	return &Sampler{src: src}
}

// Source returns the underlying capability set.
func (s *Sampler) Source() Source { return s.src }

func (s *Sampler) CycleCounter() uint64 { return s.src.CycleCounter() }

func (s *Sampler) WallNano() uint64 { return s.src.WallNano() }

func (s *Sampler) MonotonicNano() uint64 { return s.src.MonotonicNano() }

// RAMFingerprint folds a fresh 4096-byte random buffer.
func (s *Sampler) RAMFingerprint() uint64 {
	return s.fold(RAMSampleSize, 1)
}

// MemoryWalk folds every 7th byte of a fresh 1024-byte random buffer.
func (s *Sampler) MemoryWalk() uint64 {
	return s.fold(MemoryWalkSize, MemoryWalkStride)
}

// GhostSalt folds a fresh 2048-byte random buffer.
func (s *Sampler) GhostSalt() uint64 {
	return s.fold(GhostSaltSize, 1)
}

// CacheNoise times trivial arithmetic with the cycle counter and folds the deltas.
func (s *Sampler) CacheNoise() uint64 {
	var sum uint64
	var sink uint64
	for i := 0; i < CacheNoiseIterations; i++ {
		t1 := s.src.CycleCounter()
		sink += uint64(i * i)
		t2 := s.src.CycleCounter()
		sum += t2 - t1
	}
	runtime.KeepAlive(sink)
	return sum ^ (sum << 7)
}

func (s *Sampler) fold(size, stride int) uint64 {
	buf := make([]byte, size)
	s.src.Fill(buf)
	v := foldShift(buf, stride)
	clear(buf)
	return v
}

// Fingerprint reports the host fingerprint when the Source offers one.
func (s *Sampler) Fingerprint() (uint64, bool) {
	fp, ok := s.src.(Fingerprinter)
	if !ok {
		return 0, false
	}
	return fp.Fingerprint()
}
