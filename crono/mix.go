package crono

import "math/bits"

const (
	endomorphConstant uint64 = 0xD1B54A32D192ED03

	constSalt1 uint64 = 0xA5A5A5A5A5A5A5A5
	constSalt2 uint64 = 0xDEADBEEF1337BEEF
	constSalt3 uint64 = 0xC0FFEE1234567890
)

// rotl rotates left by n mod 64.
func rotl(x uint64, n int) uint64 {
	return bits.RotateLeft64(x, n&63)
}

// avalancheMix folds every input byte into seed at a rotating bit position.
func avalancheMix(seed uint64, data []byte) uint64 {
	for i, b := range data {
		seed ^= uint64(b) << (i % 8)
		seed = rotl(seed, (i%13)+1)
		seed ^= ^rotl(seed, 47)
	}
	return seed
}

// endomorph is the seed-dependent non-linear transform.
func endomorph(x, seed uint64) uint64 {
	x ^= seed
	x *= endomorphConstant
	x = rotl(x, 13)
	x ^= seed
	x *= endomorphConstant
	return x
}

// constMix mixes x with fixed salts.
func constMix(x uint64) uint64 {
	r := rotl(x^constSalt1, 17)
	m := (r ^ constSalt2) * constSalt3
	return m ^ (m >> 31)
}

// foldShift XOR-folds buf into 64 bits, shifting byte i left by i mod 8.
// Only every stride-th byte is sampled.
func foldShift(buf []byte, stride int) uint64 {
	var acc uint64
	for i := 0; i < len(buf); i += stride {
		acc ^= uint64(buf[i]) << (i % 8)
	}
	return acc
}

// broadcast XORs v into every word.
func broadcast(words []uint64, v uint64) {
	for i := range words {
		words[i] ^= v
	}
}
