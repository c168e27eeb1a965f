// =======================
// crono/hasher.go
// =======================

package crono

import (
	"time"

	"k8s.io/klog/v2"
)

// Hasher runs the round pipeline. It is safe for concurrent use as long as
// its Source and Encapsulator are.
type Hasher struct {
	table   *PrimeTable
	sampler *Sampler
	binding *BindingEngine
	mixer   *QuantumMixer
}

// Option configures a Hasher.
type Option func(*hasherConfig)

type hasherConfig struct {
	source   Source
	squeezer Squeezer
	encap    Encapsulator
	noKEM    bool
	kemName  string
	workers  int
}

// WithSource replaces the entropy capability set.
func WithSource(src Source) Option { return func(c *hasherConfig) { c.source = src } }

// WithSqueezer replaces the sponge primitive.
func WithSqueezer(s Squeezer) Option { return func(c *hasherConfig) { c.squeezer = s } }

// WithEncapsulator replaces the key-encapsulation primitive. A nil e
// disables it, so every encapsulation round uses the seed fallback.
func WithEncapsulator(e Encapsulator) Option {
	return func(c *hasherConfig) { c.encap = e; c.noKEM = e == nil }
}

// WithKEMScheme selects a circl KEM scheme by name.
func WithKEMScheme(name string) Option { return func(c *hasherConfig) { c.kemName = name } }

// WithWorkers fixes the binding worker count; n <= 0 detects it.
func WithWorkers(n int) Option { return func(c *hasherConfig) { c.workers = n } }

// NewHasher builds a Hasher around a prime table created once at startup.
// A nil table is built from the current wall clock.
func NewHasher(table *PrimeTable, opts ...Option) *Hasher {
	cfg := hasherConfig{kemName: DefaultKEMScheme}
	for _, opt := range opts {
		opt(&cfg)
	}
	if table == nil {
		table = NewPrimeTable(uint64(time.Now().UnixNano()))
	}
	sampler := NewSampler(cfg.source)

	encap := cfg.encap
	if encap == nil && !cfg.noKEM {
		k, err := NewCirclKEM(cfg.kemName, sampler.Source())
		if err != nil {
			klog.V(1).Infof("KEM unavailable, encapsulation rounds fall back to the seed: %v", err)
		} else {
			encap = k
		}
	}

	return &Hasher{
		table:   table,
		sampler: sampler,
		binding: NewBindingEngine(sampler, cfg.workers),
		mixer:   NewQuantumMixer(cfg.squeezer, encap),
	}
}

// Sampler exposes the hasher's entropy sampler.
func (h *Hasher) Sampler() *Sampler { return h.sampler }

// Table is the prime table in use.
func (h *Hasher) Table() *PrimeTable { return h.table }

// Hash returns the lowercase hex digest, BitStrength/4 characters long.
func (h *Hasher) Hash(req Request) string {
	return encodeWords(h.run(req).words)
}

// HashWithMetadata returns the digest together with the samples and binding
// factor of the same pipeline run.
func (h *Hasher) HashWithMetadata(req Request) Metadata {
	return newMetadata(h.run(req))
}

func (h *Hasher) run(req Request) digest {
	req = req.Normalize()
	start := time.Now()

	d := digest{
		words: make([]uint64, req.BitStrength.Words()),
		tsc:   h.sampler.CycleCounter(),
		nano:  h.sampler.WallNano(),
		mode:  req.Mode,
		bits:  req.BitStrength,
	}
	steady := h.sampler.MonotonicNano()
	data := req.Input

	for _, r := range req.Mode.Rounds() {
		switch r {
		case RoundInit:
			h.initRound(d.words, data, d.tsc, d.nano, steady)
		case RoundSecond:
			h.secondRound(d.words, data, d.nano)
		case RoundExtra:
			extraRound(d.words, data, steady)
		case RoundMemoryWalk:
			broadcast(d.words, h.sampler.MemoryWalk())
		}
	}

	if req.Binding > 0 {
		d.binding = h.binding.Factor(req.Binding)
		broadcast(d.words, d.binding)
	}
	broadcast(d.words, h.sampler.GhostSalt())

	h.mixer.Mix(d.words, data)

	klog.V(1).Infof("%s-%d: %d words, binding=%#x, took %s",
		req.Mode, req.BitStrength, len(d.words), d.binding, time.Since(start))
	return d
}

func (h *Hasher) initRound(words []uint64, data []byte, tsc, nano, steady uint64) {
	ram := h.sampler.RAMFingerprint()
	cache := h.sampler.CacheNoise()
	for i := range words {
		w := tsc ^ (nano << ((i % 8) + 1)) ^ steady ^ ram ^ cache ^ h.table.Primary(i)
		w = avalancheMix(w, data)
		w = endomorph(w, tsc)
		w = constMix(w)
		words[i] = h.table.ModPrimary(w)
	}
}

func (h *Hasher) secondRound(words []uint64, data []byte, nano uint64) {
	for i := range words {
		w := endomorph(words[i], nano)
		w = avalancheMix(w, data)
		w = constMix(w)
		words[i] = h.table.ModSecondary(w, i%4)
	}
}

func extraRound(words []uint64, data []byte, steady uint64) {
	for i := range words {
		words[i] = avalancheMix(endomorph(words[i], steady), data)
	}
}
