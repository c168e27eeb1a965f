package crono

import (
	"encoding/binary"
	"sync"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/schemes"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
	"k8s.io/klog/v2"
)

const (
	squeezeSize = 32
	seedSize    = 64
)

// Squeezer is a deterministic fixed-output sponge.
type Squeezer interface {
	Squeeze(out, in []byte)
}

// Shake128 squeezes with SHAKE128.
type Shake128 struct{}

func (Shake128) Squeeze(out, in []byte) { sha3.ShakeSum128(out, in) }

// Encapsulator runs one key encapsulation and returns the shared secret.
type Encapsulator interface {
	Encapsulate() ([]byte, error)
}

// CirclKEM encapsulates against a throwaway public key filled with random
// bytes. The key has no private counterpart and is never validated.
type CirclKEM struct {
	scheme kem.Scheme
	src    Source
}

// NewCirclKEM looks up a circl KEM scheme by name, e.g. "Kyber512" or "ML-KEM-512".
func NewCirclKEM(name string, src Source) (*CirclKEM, error) {
	scheme := schemes.ByName(name)
	if scheme == nil {
		return nil, errors.Errorf("unknown KEM scheme %q", name)
	}
	if src == nil {
		src = SystemSource{}
	}
	return &CirclKEM{scheme: scheme, src: src}, nil
}

// Name is the scheme name.
func (k *CirclKEM) Name() string { return k.scheme.Name() }

func (k *CirclKEM) Encapsulate() ([]byte, error) {
	raw := make([]byte, k.scheme.PublicKeySize())
	k.src.Fill(raw)
	pk, err := k.scheme.UnmarshalBinaryPublicKey(raw)
	if err != nil {
		return nil, errors.Wrap(err, "unpack throwaway public key")
	}
	_, ss, err := k.scheme.Encapsulate(pk)
	if err != nil {
		return nil, errors.Wrapf(err, "%s encapsulation", k.scheme.Name())
	}
	return ss, nil
}

// QuantumMixer folds a squeeze round and an encapsulation round into each word.
type QuantumMixer struct {
	squeezer Squeezer
	kem      Encapsulator

	fallbackOnce sync.Once
}

// NewQuantumMixer builds a mixer. A nil encap means every encapsulation round
// uses the seed fallback; a nil squeezer means Shake128.
func NewQuantumMixer(squeezer Squeezer, encap Encapsulator) *QuantumMixer {
	if squeezer == nil {
		squeezer = Shake128{}
	}
	return &QuantumMixer{squeezer: squeezer, kem: encap}
}

// Mix applies both rounds to every word in place.
func (q *QuantumMixer) Mix(words []uint64, data []byte) {
	buf := make([]byte, 8+len(data))
	copy(buf[8:], data)
	for i := range words {
		words[i] ^= q.squeezeRound(buf, words[i])
		words[i] ^= q.encapsulationRound(buf, words[i])
	}
}

// squeezeRound squeezes word||data to 32 bytes and returns the first 8 as LE.
func (q *QuantumMixer) squeezeRound(buf []byte, word uint64) uint64 {
	binary.LittleEndian.PutUint64(buf, word)
	var out [squeezeSize]byte
	q.squeezer.Squeeze(out[:], buf)
	return binary.LittleEndian.Uint64(out[:8])
}

// encapsulationRound derives a 64-byte seed from word||data and XORs its
// head with the head of a fresh shared secret.
func (q *QuantumMixer) encapsulationRound(buf []byte, word uint64) uint64 {
	binary.LittleEndian.PutUint64(buf, word)
	var seed [seedSize]byte
	q.squeezer.Squeeze(seed[:], buf)
	mix := binary.LittleEndian.Uint64(seed[:8])

	if q.kem == nil {
		q.logFallback(errors.New("no KEM configured"))
		return mix
	}
	ss, err := q.kem.Encapsulate()
	if err != nil {
		q.logFallback(err)
		return mix
	}
	var head [8]byte
	copy(head[:], ss)
	return mix ^ binary.LittleEndian.Uint64(head[:])
}

func (q *QuantumMixer) logFallback(err error) {
	q.fallbackOnce.Do(func() {
		klog.V(1).Infof("encapsulation round using seed fallback: %v", err)
	})
}
