// Package keychain derives the device's secp256k1 keys along five-element
// HD paths, computes group membership of public keys, and signs digests
// deterministically.
package keychain

import (
	"encoding/binary"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"golang.org/x/crypto/blake2b"
)

// PathLen is the number of child indexes in a derivation path.
const PathLen = 5

// PathByteLen is the serialized size of a path: five big-endian 32-bit
// indexes.
const PathByteLen = PathLen * 4

// GroupCount is the number of address groups the chain shards into.
const GroupCount = 4

var (
	// ErrBadPath is returned when serialized path bytes are not exactly
	// five 32-bit indexes.
	ErrBadPath = errors.New("keychain: derivation path must be 5 indexes")

	// ErrBadGroup is returned when the requested group parameters are
	// inconsistent.
	ErrBadGroup = errors.New("keychain: invalid group parameters")
)

// Path is a five-element HD derivation path. Hardened indexes carry the
// top bit.
type Path [PathLen]uint32

// ParsePath deserializes a path from its 20-byte big-endian form.
func ParsePath(data []byte) (Path, error) {
	var path Path
	if len(data) != PathByteLen {
		return path, ErrBadPath
	}
	for i := 0; i < PathLen; i++ {
		path[i] = binary.BigEndian.Uint32(data[i*4:])
	}
	return path, nil
}

// KeyChain derives keys from a device seed.
type KeyChain struct {
	master *hdkeychain.ExtendedKey
}

// New builds a key chain from the device master seed.
func New(seed []byte) (*KeyChain, error) {
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}
	return &KeyChain{master: master}, nil
}

// DerivePriv derives the private key at the given path.
func (k *KeyChain) DerivePriv(path Path) (*btcec.PrivateKey, error) {
	key := k.master
	for _, index := range path {
		var err error
		key, err = key.Derive(index)
		if err != nil {
			return nil, err
		}
	}
	return key.ECPrivKey()
}

// DerivePub derives the public key at the given path. With a zero group
// count the path is used as-is. With a nonzero group count the final path
// index is incremented until the key lands in the target group; the index
// that produced the key is returned alongside it.
func (k *KeyChain) DerivePub(path Path, groupCount, targetGroup uint8) (
	*btcec.PublicKey, uint32, error) {

	if err := checkGroup(groupCount, targetGroup); err != nil {
		return nil, 0, err
	}
	for {
		priv, err := k.DerivePriv(path)
		if err != nil {
			return nil, 0, err
		}
		pub := priv.PubKey()
		if groupCount == 0 ||
			PubKeyGroup(pub, groupCount) == targetGroup {
			return pub, path[PathLen-1], nil
		}
		path[PathLen-1]++
	}
}

func checkGroup(groupCount, targetGroup uint8) error {
	if groupCount == 0 && targetGroup == 0 {
		return nil
	}
	if targetGroup >= groupCount || groupCount != GroupCount {
		return ErrBadGroup
	}
	return nil
}

// PubKeyGroup computes which group a public key belongs to: the DJB2 hash
// of the Blake2b digest of the compressed key, forced odd, folded to one
// byte and reduced modulo the group count.
func PubKeyGroup(pub *btcec.PublicKey, groupCount uint8) uint8 {
	hash := blake2b.Sum256(pub.SerializeCompressed())
	scriptHint := djb2(hash[:]) | 1
	return xorBytes(scriptHint) % groupCount
}

// djb2 is the classic string hash with 32-bit wraparound.
func djb2(data []byte) int32 {
	hash := int32(5381)
	for _, c := range data {
		hash = (hash << 5) + hash + int32(c)
	}
	return hash
}

// xorBytes folds a 32-bit value to one byte by xoring its big-endian
// bytes.
func xorBytes(v int32) uint8 {
	u := uint32(v)
	return uint8(u>>24) ^ uint8(u>>16) ^ uint8(u>>8) ^ uint8(u)
}

// SignHash produces the deterministic DER-encoded ECDSA signature of a
// 32-byte digest.
func SignHash(priv *btcec.PrivateKey, hash []byte) []byte {
	return ecdsa.Sign(priv, hash).Serialize()
}
