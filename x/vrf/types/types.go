package types

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Proof carries the verified randomness an oracle produced for a
// request. The output is treated as an opaque verified value; curve
// level proof checking happens off-chain in the oracle network.
type Proof struct {
	KeyHash string `json:"key_hash"`
	PreSeed uint64 `json:"pre_seed"`
	Output  string `json:"output"`
}

// Validate checks structural validity of a proof.
func (p Proof) Validate() error {
	if p.KeyHash == "" {
		return ErrInvalidProof.Wrap("empty key hash")
	}
	bz, err := hex.DecodeString(p.Output)
	if err != nil || len(bz) == 0 {
		return ErrInvalidProof.Wrap("output must be non-empty hex")
	}
	return nil
}

// DeriveRandomWords expands the proof output into numWords independent
// words by hashing the output with a word index.
func DeriveRandomWords(output string, numWords uint32) ([]uint64, error) {
	bz, err := hex.DecodeString(output)
	if err != nil {
		return nil, ErrInvalidProof.Wrap("output must be hex")
	}
	words := make([]uint64, numWords)
	for i := uint32(0); i < numWords; i++ {
		buf := make([]byte, len(bz)+4)
		copy(buf, bz)
		binary.BigEndian.PutUint32(buf[len(bz):], i)
		sum := sha256.Sum256(buf)
		words[i] = binary.BigEndian.Uint64(sum[:8])
	}
	return words, nil
}
