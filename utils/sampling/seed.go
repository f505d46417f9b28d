package sampling

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/zeebo/blake3"
)

// KeySize is the byte size of the keys derived by DeriveKey.
const KeySize = 32

// DeriveKey hashes a domain label and an arbitrary length seed into a
// KeySize byte key. The label separates the streams drawn from a same seed.
func DeriveKey(seed []byte, label string) []byte {
	hasher := blake3.New()
	buf := new(bytes.Buffer)

	binary.Write(buf, binary.BigEndian, uint64(len(label)))
	buf.WriteString(label)
	binary.Write(buf, binary.BigEndian, seed)

	hasher.Write(buf.Bytes())
	sum := hasher.Sum(nil)
	return sum[:KeySize]
}

// NewKeyedPRNGFromSeed returns a KeyedPRNG keyed with DeriveKey(seed, label).
func NewKeyedPRNGFromSeed(seed []byte, label string) (*KeyedPRNG, error) {
	prng, err := NewKeyedPRNG(DeriveKey(seed, label))
	if err != nil {
		return nil, fmt.Errorf("cannot NewKeyedPRNGFromSeed: %w", err)
	}
	return prng, nil
}
