package crono

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChainIDFormat(t *testing.T) {
	id := ChainID(NewSampler(nil))
	assert.Len(t, id, 16)
	assert.True(t, isLowerHex(id))
}

func TestChainIDUsesFingerprintWhenPresent(t *testing.T) {
	plain := NewSampler(newFixedSource())
	withFP := NewSampler(fingerprintSource{fixedSource: newFixedSource(), fp: 0xabcdef})

	assert.Equal(t, ChainID(plain), ChainID(plain))
	assert.Equal(t, ChainID(withFP), ChainID(withFP))
	assert.NotEqual(t, ChainID(plain), ChainID(withFP))
}

func TestSystemFingerprint(t *testing.T) {
	fp, ok := SystemSource{}.Fingerprint()
	if !ok {
		t.Skip("host does not expose a CPU identity")
	}
	assert.NotZero(t, fp)
}
