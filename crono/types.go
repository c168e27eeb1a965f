// =======================
// crono/types.go
// =======================

package crono

import (
	"math"
	"strings"
	"time"
)

const (
	// BindingModulus bounds every binding accumulator.
	BindingModulus uint64 = 0xFFFFFFFFFFFFFD

	DefaultBitStrength = Bits256
	DefaultMode        = Balanced
	DefaultKEMScheme   = "Kyber512"

	wordBits = 64
)

// Mode selects which optional rounds run.
type Mode int

const (
	Fast Mode = iota
	Balanced
	Secure
	Entropic
)

var modeNames = [...]string{"FAST", "BALANCED", "SECURE", "ENTROPIC"}

func (m Mode) String() string {
	if m < Fast || m > Entropic {
		return "UNKNOWN"
	}
	return modeNames[m]
}

// ParseMode maps a mode name to a Mode. Unknown names yield Balanced and false.
func ParseMode(s string) (Mode, bool) {
	for i, name := range modeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Mode(i), true
		}
	}
	return DefaultMode, false
}

// Round names one stage of the word pipeline.
type Round int

const (
	RoundInit Round = iota
	RoundSecond
	RoundExtra
	RoundMemoryWalk
)

func (r Round) String() string {
	switch r {
	case RoundInit:
		return "init"
	case RoundSecond:
		return "second"
	case RoundExtra:
		return "extra"
	case RoundMemoryWalk:
		return "memory-walk"
	}
	return "unknown"
}

// Rounds returns the mode-dependent rounds in execution order.
// Binding and ghost-salt injection run for every mode and are not listed.
func (m Mode) Rounds() []Round {
	switch m {
	case Secure:
		return []Round{RoundInit, RoundSecond, RoundExtra}
	case Entropic:
		return []Round{RoundInit, RoundSecond, RoundExtra, RoundMemoryWalk}
	default:
		return []Round{RoundInit, RoundSecond}
	}
}

// BitStrength is the digest width in bits.
type BitStrength int

const (
	Bits128  BitStrength = 128
	Bits256  BitStrength = 256
	Bits512  BitStrength = 512
	Bits1024 BitStrength = 1024
	Bits2048 BitStrength = 2048
)

// BitStrengths lists the supported widths in ascending order.
var BitStrengths = []BitStrength{Bits128, Bits256, Bits512, Bits1024, Bits2048}

// Valid reports whether b is one of the enumerated widths.
func (b BitStrength) Valid() bool {
	for _, s := range BitStrengths {
		if b == s {
			return true
		}
	}
	return false
}

// NormalizeBitStrength substitutes DefaultBitStrength for unsupported widths.
func NormalizeBitStrength(bits int) (BitStrength, bool) {
	b := BitStrength(bits)
	if !b.Valid() {
		return DefaultBitStrength, false
	}
	return b, true
}

// Words is the word vector length for b, never less than one.
func (b BitStrength) Words() int {
	n := int(b) / wordBits
	if n < 1 {
		n = 1
	}
	return n
}

// HexLen is the length of the encoded digest.
func (b BitStrength) HexLen() int {
	return b.Words() * 16
}

// Request describes one hash invocation.
type Request struct {
	Input       []byte
	Mode        Mode
	BitStrength BitStrength
	// Binding is the wall-clock time spent on the binding factor; zero disables it.
	Binding time.Duration
}

// Normalize clamps mode, bit strength and binding into the supported domain.
func (r Request) Normalize() Request {
	if r.Mode < Fast || r.Mode > Entropic {
		r.Mode = DefaultMode
	}
	if !r.BitStrength.Valid() {
		r.BitStrength = DefaultBitStrength
	}
	if r.Binding < 0 {
		r.Binding = 0
	}
	return r
}

// DurationFromMillis converts fractional milliseconds to a Duration.
// NaN and non-positive values disable binding; huge values saturate.
func DurationFromMillis(ms float64) time.Duration {
	if !(ms > 0) {
		return 0
	}
	ns := ms * float64(time.Millisecond)
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ns)
}

// Metadata is the record printed next to a digest.
type Metadata struct {
	Hash          string `json:"hash"`
	TSC           uint64 `json:"tsc"`
	Nano          uint64 `json:"nano"`
	BindingFactor string `json:"binding_factor"`
	Mode          string `json:"mode"`
	BitStrength   int    `json:"bit_strength"`
}

// digest is the pipeline's raw outcome before encoding.
type digest struct {
	words   []uint64
	tsc     uint64
	nano    uint64
	binding uint64
	mode    Mode
	bits    BitStrength
}
