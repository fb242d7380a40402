package keychain

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/alphvault/alphvault/base58"
)

// Address prefix bytes for the hash-based lockup forms.
const (
	AddressPrefixP2PKH byte = 0
	AddressPrefixP2SH  byte = 2
)

// EncodeAddress renders a prefix byte and 32-byte hash as a Base58
// address.
func EncodeAddress(prefix byte, hash [32]byte) string {
	return string(base58.EncodeSlices([]byte{prefix}, hash[:]))
}

// AddressFromPubKey renders the pay-to-public-key-hash address of a public
// key.
func AddressFromPubKey(pub *btcec.PublicKey) string {
	hash := blake2b.Sum256(pub.SerializeCompressed())
	return EncodeAddress(AddressPrefixP2PKH, hash)
}

// AddressFromRawPubKey renders the address of an already-compressed
// 33-byte public key, as carried by unlock scripts.
func AddressFromRawPubKey(compressed [33]byte) string {
	hash := blake2b.Sum256(compressed[:])
	return EncodeAddress(AddressPrefixP2PKH, hash)
}
