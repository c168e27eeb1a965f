package crono

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// countingSource records fill sizes and ticks the cycle counter.
type countingSource struct {
	fixedSource
	fills []int
	ticks uint64
}

func (c *countingSource) Fill(p []byte) {
	c.fills = append(c.fills, len(p))
	c.fixedSource.Fill(p)
}

func (c *countingSource) CycleCounter() uint64 {
	c.ticks += 3
	return c.ticks
}

func TestSamplerBufferSizes(t *testing.T) {
	src := &countingSource{fixedSource: *newFixedSource()}
	s := NewSampler(src)
	s.RAMFingerprint()
	s.MemoryWalk()
	s.GhostSalt()
	assert.Equal(t, []int{RAMSampleSize, MemoryWalkSize, GhostSaltSize}, src.fills)
}

func TestSamplerFolds(t *testing.T) {
	src := newFixedSource()
	s := NewSampler(src)

	buf := make([]byte, RAMSampleSize)
	src.Fill(buf)
	assert.Equal(t, foldShift(buf, 1), s.RAMFingerprint())

	buf = make([]byte, MemoryWalkSize)
	src.Fill(buf)
	assert.Equal(t, foldShift(buf, MemoryWalkStride), s.MemoryWalk())

	buf = make([]byte, GhostSaltSize)
	src.Fill(buf)
	assert.Equal(t, foldShift(buf, 1), s.GhostSalt())
}

func TestCacheNoiseFoldsDeltas(t *testing.T) {
	src := &countingSource{fixedSource: *newFixedSource()}
	s := NewSampler(src)
	// Every pair of reads is 3 ticks apart.
	sum := uint64(3 * CacheNoiseIterations)
	assert.Equal(t, sum^(sum<<7), s.CacheNoise())

	frozen := NewSampler(newFixedSource())
	assert.Equal(t, uint64(0), frozen.CacheNoise())
}

func TestSystemSourceSamplesVary(t *testing.T) {
	s := NewSampler(nil)
	assert.NotEqual(t, s.RAMFingerprint(), s.RAMFingerprint())
	assert.NotZero(t, s.WallNano())

	a := s.MonotonicNano()
	b := s.MonotonicNano()
	assert.GreaterOrEqual(t, b, a)
}

func TestFingerprintCapabilityIsOptional(t *testing.T) {
	_, ok := NewSampler(newFixedSource()).Fingerprint()
	assert.False(t, ok)

	fp, ok := NewSampler(fingerprintSource{fixedSource: newFixedSource(), fp: 99}).Fingerprint()
	assert.True(t, ok)
	assert.Equal(t, uint64(99), fp)
}
