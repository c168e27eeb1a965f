package crono

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// encodeWords renders each word as 16 big-endian hex digits, lowest index first.
func encodeWords(words []uint64) string {
	buf := make([]byte, 8*len(words))
	for i, w := range words {
		binary.BigEndian.PutUint64(buf[8*i:], w)
	}
	return hex.EncodeToString(buf)
}

func newMetadata(d digest) Metadata {
	return Metadata{
		Hash:          encodeWords(d.words),
		TSC:           d.tsc,
		Nano:          d.nano,
		BindingFactor: fmt.Sprintf("%#x", d.binding),
		Mode:          d.mode.String(),
		BitStrength:   int(d.bits),
	}
}

// String renders the record as an indented JSON block.
func (m Metadata) String() string {
	j, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Sprintf("{hash:%s mode:%s bit_strength:%d}", m.Hash, m.Mode, m.BitStrength)
	}
	return string(j)
}

// SecureString squeezes wall-clock seconds and fresh randomness into a hex
// string of min(n, 32) bytes, i.e. up to 64 characters.
func SecureString(s *Sampler, sq Squeezer, n int) string {
	if sq == nil {
		sq = Shake128{}
	}
	if n > 32 {
		n = 32
	}
	if n < 0 {
		n = 0
	}
	seed := make([]byte, 24)
	binary.LittleEndian.PutUint64(seed, s.WallNano()/1e9)
	s.Source().Fill(seed[8:])
	var out [32]byte
	sq.Squeeze(out[:], seed)
	return hex.EncodeToString(out[:n])
}
