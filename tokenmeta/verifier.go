// Package tokenmeta authenticates token symbol/decimals annotations
// against a compiled-in Merkle root.
package tokenmeta

import (
	"bytes"
	"encoding/binary"
	"errors"

	"golang.org/x/crypto/blake2b"
)

// EntrySize is the encoded size of one token-metadata entry: a version
// byte, the 32-byte token id, a zero-padded 12-byte symbol and a decimals
// byte.
const EntrySize = 46

// proofPrefixLen is the big-endian remaining-proof-size field that follows
// the entry in the first frame.
const proofPrefixLen = 2

// Root is the Merkle root all token metadata must authenticate against.
// b3380866c595544781e9da0ccd79399de8878abfb0bf40545b57a287387d419d
var Root = [32]byte{
	0xb3, 0x38, 0x08, 0x66, 0xc5, 0x95, 0x54, 0x47,
	0x81, 0xe9, 0xda, 0x0c, 0xcd, 0x79, 0x39, 0x9d,
	0xe8, 0x87, 0x8a, 0xbf, 0xb0, 0xbf, 0x40, 0x54,
	0x5b, 0x57, 0xa2, 0x87, 0x38, 0x7d, 0x41, 0x9d,
}

var (
	// ErrShortFrame is returned when the first frame is too small to
	// hold an entry and the proof-size field.
	ErrShortFrame = errors.New("tokenmeta: first frame shorter than entry and proof size")

	// ErrProofSize is returned when a proof length is not a whole
	// number of 32-byte siblings or runs past the declared total.
	ErrProofSize = errors.New("tokenmeta: invalid proof size")
)

// HashPair combines two sibling hashes in byte order, so proofs need not
// encode which side each sibling is on.
func HashPair(a, b [32]byte) [32]byte {
	h, _ := blake2b.New256(nil)
	if bytes.Compare(a[:], b[:]) < 0 {
		h.Write(a[:])
		h.Write(b[:])
	} else {
		h.Write(b[:])
		h.Write(a[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Verifier folds a streamed Merkle proof over the hash of one metadata
// entry. It holds only the rolling hash and the residual proof budget, so
// a proof of any depth verifies in constant space.
type Verifier struct {
	root      [32]byte
	proofSize int
	rolling   [32]byte
}

// NewVerifier consumes the first metadata frame: the 46-byte entry, two
// bytes of remaining proof size, then as many 32-byte siblings as the
// frame carries.
func NewVerifier(root [32]byte, data []byte) (*Verifier, error) {
	prefixLen := EntrySize + proofPrefixLen
	if len(data) < prefixLen {
		return nil, ErrShortFrame
	}

	proofSize := int(binary.BigEndian.Uint16(data[EntrySize:prefixLen]))
	if proofSize%32 != 0 {
		return nil, ErrProofSize
	}

	v := &Verifier{
		root:      root,
		proofSize: proofSize,
		rolling:   blake2b.Sum256(data[:EntrySize]),
	}
	if err := v.Update(data[prefixLen:]); err != nil {
		return nil, err
	}
	return v, nil
}

// Update folds one frame of sibling hashes into the rolling hash.
func (v *Verifier) Update(proof []byte) error {
	if len(proof)%32 != 0 || len(proof) > v.proofSize {
		return ErrProofSize
	}
	for i := 0; i < len(proof); i += 32 {
		var sibling [32]byte
		copy(sibling[:], proof[i:i+32])
		v.rolling = HashPair(v.rolling, sibling)
	}
	v.proofSize -= len(proof)
	return nil
}

// Complete reports whether the full declared proof has been consumed.
func (v *Verifier) Complete() bool {
	return v.proofSize == 0
}

// Valid reports whether the folded proof reaches the root. It is only
// meaningful once the verifier is complete.
func (v *Verifier) Valid() bool {
	return v.rolling == v.root
}
