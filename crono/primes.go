package crono

import (
	"math/bits"
	"math/rand/v2"
)

const (
	PrimaryPrimes   = 64
	SecondaryPrimes = 8
)

var basePrimary = [PrimaryPrimes]uint64{
	0x428a2f98d728ae22, 0x7137449123ef65cd,
	0xb5c0fbcfec4d3b2f, 0xe9b5dba58189dbbc,
	0x3956c25bf348b538, 0x59f111f1b605d019,
	0x923f82a4af194f9b, 0xab1c5ed5da6d8118,
	0xd807aa98a3030242, 0x12835b0145706fbe,
	0x243185be4ee4b28c, 0x550c7dc3d5ffb4e2,
	0x72be5d74f27b896f, 0x80deb1fe3b1696b1,
	0x9bdc06a725c71235, 0xc19bf174cf692694,
	0xe49b69c19ef14ad2, 0xefbe4786384f25e3,
	0x0fc19dc68b8cd5b5, 0x240ca1cc77ac9c65,
	0x2de92c6f592b0275, 0x4a7484aa6ea6e483,
	0x5cb0a9dcbd41fbd4, 0x76f988da831153b5,
	0x983e5152ee66dfab, 0xa831c66d2db43210,
	0xb00327c898fb213f, 0xbf597fc7beef0ee4,
	0xc6e00bf33da88fc2, 0xd5a79147930aa725,
	0x06ca6351e003826f, 0x142929670a0e6e70,
	0x27b70a8546d22ffc, 0x2e1b21385c26c926,
	0x4d2c6dfc5ac42aed, 0x53380d139d95b3df,
	0x650a73548baf63de, 0x766a0abb3c77b2a8,
	0x81c2c92e47edaee6, 0x92722c851482353b,
	0xa2bfe8a14cf10364, 0xa81a664bbc423001,
	0xc24b8b70d0f89791, 0xc76c51a30654be30,
	0xd192e819d6ef5218, 0xd69906245565a910,
	0xf40e35855771202a, 0x106aa07032bbd1b8,
	0x19a4c116b8d2d0c8, 0x1e376c085141ab53,
	0x2748774cdf8eeb99, 0x34b0bcb5e19b48a8,
	0x391c0cb3c5c95a63, 0x4ed8aa4ae3418acb,
	0x5b9cca4f7763e373, 0x682e6ff3d6b2b8a3,
	0x748f82ee5defb2fc, 0x78a5636f43172f60,
	0x84c87814a1f0ab72, 0x8cc702081a6439ec,
}

var baseSecondary = [SecondaryPrimes]uint64{
	0xcbbb9d5dc1059ed8, 0x629a292a367cd507,
	0x9159015a3070dd17, 0x152fecd8f70e5939,
	0x7f4a7c15e0f1a7b3, 0xabcd12345678ef99,
	0x99ff00aa11335577, 0xcafebabedeadcafe,
}

// PrimeTable holds the moduli used by the reduction steps.
// It is built once and only read afterwards, so it is safe to share.
type PrimeTable struct {
	primary   [PrimaryPrimes]uint64
	secondary [SecondaryPrimes]uint64
	seed      uint64
}

// NewPrimeTable returns a table whose primary constants are shuffled with seed.
func NewPrimeTable(seed uint64) *PrimeTable {
	t := &PrimeTable{
		primary:   basePrimary,
		secondary: baseSecondary,
		seed:      seed,
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	r.Shuffle(len(t.primary), func(i, j int) {
		t.primary[i], t.primary[j] = t.primary[j], t.primary[i]
	})
	return t
}

// Seed is the shuffle seed the table was built with.
func (t *PrimeTable) Seed() uint64 { return t.seed }

// Primary returns the shuffled constant at i mod 64.
func (t *PrimeTable) Primary(i int) uint64 {
	return t.primary[i%PrimaryPrimes]
}

// Secondary returns the fixed constant at i mod 8.
func (t *PrimeTable) Secondary(i int) uint64 {
	return t.secondary[i%SecondaryPrimes]
}

// ModPrimary reduces x by the primary constant selected by x itself.
func (t *PrimeTable) ModPrimary(x uint64) uint64 {
	return x % nonZero(t.primary[x%PrimaryPrimes])
}

// ModSecondary rotates x by (index*11) mod 64 and reduces it by secondary[index mod 8].
func (t *PrimeTable) ModSecondary(x uint64, index int) uint64 {
	rotated := bits.RotateLeft64(x, (index*11)%64)
	return rotated % nonZero(t.Secondary(index))
}

func nonZero(d uint64) uint64 {
	if d == 0 {
		return 1
	}
	return d
}
