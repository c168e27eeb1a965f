package crono

import (
	"errors"
	"sync/atomic"
)

// fixedSource returns constant clock readings and fills buffers from an
// xorshift stream restarted on every call.
type fixedSource struct {
	tsc, wall, mono uint64
	pattern         uint32
}

func newFixedSource() *fixedSource {
	return &fixedSource{
		tsc:     0x0123456789abcdef,
		wall:    1_700_000_000_000_000_000,
		mono:    987_654_321,
		pattern: 0x5a5a1234,
	}
}

func (f *fixedSource) CycleCounter() uint64  { return f.tsc }
func (f *fixedSource) WallNano() uint64      { return f.wall }
func (f *fixedSource) MonotonicNano() uint64 { return f.mono }

func (f *fixedSource) Fill(p []byte) {
	x := f.pattern
	for i := range p {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		p[i] = byte(x)
	}
}

// fingerprintSource adds the optional capability.
type fingerprintSource struct {
	*fixedSource
	fp uint64
}

func (f fingerprintSource) Fingerprint() (uint64, bool) { return f.fp, true }

// stubKEM returns a fixed shared secret, or an error when failing is set.
type stubKEM struct {
	secret  []byte
	failing bool
	calls   atomic.Int64
}

func (k *stubKEM) Encapsulate() ([]byte, error) {
	k.calls.Add(1)
	if k.failing {
		return nil, errors.New("stub encapsulation failure")
	}
	return k.secret, nil
}

var stubSecret = []byte("0123456789abcdef0123456789abcdef")

func frozenHasher(opts ...Option) *Hasher {
	base := []Option{
		WithSource(newFixedSource()),
		WithEncapsulator(&stubKEM{secret: stubSecret}),
		WithWorkers(2),
	}
	return NewHasher(NewPrimeTable(42), append(base, opts...)...)
}
