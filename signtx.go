package alphvault

import (
	"hash"

	"golang.org/x/crypto/blake2b"

	"github.com/alphvault/alphvault/codec"
	"github.com/alphvault/alphvault/keychain"
	"github.com/alphvault/alphvault/nvm"
	"github.com/alphvault/alphvault/review"
	"github.com/alphvault/alphvault/txwire"
)

// SignTxContext is the signing session: it owns the streaming transaction
// decoder, the digest accumulator and the staging buffer for sub-encodings
// for the lifetime of one transaction. At every suspension point the bytes
// fed to the decoder equal the bytes fed to the hasher.
type SignTxContext struct {
	path     keychain.Path
	decoder  txwire.TxDecoder
	tempData *nvm.SwappingBuffer
	hasher   hash.Hash
	reviewer *review.TxReviewer

	started  bool
	complete bool
}

// NewSignTxContext builds a session staging sub-encodings into tempData
// and reviewing through the given reviewer. A nil hasher selects
// Blake2b-256; tests may substitute their own.
func NewSignTxContext(tempData *nvm.SwappingBuffer,
	reviewer *review.TxReviewer, hasher hash.Hash) *SignTxContext {

	if hasher == nil {
		hasher, _ = blake2b.New256(nil)
	}
	return &SignTxContext{
		tempData: tempData,
		hasher:   hasher,
		reviewer: reviewer,
	}
}

// Path returns the derivation path of the session.
func (s *SignTxContext) Path() keychain.Path {
	return s.path
}

// Complete reports whether the full transaction has decoded.
func (s *SignTxContext) Complete() bool {
	return s.complete
}

// Started reports whether a session is in flight.
func (s *SignTxContext) Started() bool {
	return s.started
}

// Reset tears the session down.
func (s *SignTxContext) Reset() {
	s.path = keychain.Path{}
	s.decoder.Reset()
	s.tempData.Reset(0)
	s.hasher.Reset()
	s.started = false
	s.complete = false
	tx := &s.decoder.Inner
	tx.Inputs.OnItem = nil
	tx.FixedOutputs.OnItem = nil
}

// Init starts a new session for the given serialized path, implicitly
// aborting any session in flight.
func (s *SignTxContext) Init(pathBytes []byte, keys *keychain.KeyChain) error {
	s.Reset()
	path, err := keychain.ParsePath(pathBytes)
	if err != nil {
		return err
	}
	s.path = path

	// The device address drives self-change elision and the
	// external-inputs flag.
	pub, _, err := keys.DerivePub(path, 0, 0)
	if err != nil {
		return err
	}
	s.reviewer.SetDeviceAddress(keychain.AddressFromPubKey(pub))

	tx := &s.decoder.Inner
	tx.Inputs.OnItem = func(in *txwire.TxInput, index int) error {
		err := s.reviewer.ReviewInput(in, index, tx.Inputs.Len())
		s.tempData.Reset(0)
		return err
	}
	tx.FixedOutputs.OnItem = func(out *txwire.AssetOutput, index int) error {
		err := s.reviewer.ReviewOutput(out, index, s.tempData.ReadAll())
		s.tempData.Reset(0)
		return err
	}
	s.started = true
	return nil
}

// HandleTxData feeds one frame of unsigned-transaction bytes through the
// decoder, reviewing each field as it completes. Exactly the consumed
// bytes are folded into the digest before the call returns.
func (s *SignTxContext) HandleTxData(data []byte) error {
	if !s.started || s.complete {
		return review.ErrState
	}
	buf := codec.NewBuffer(data, s.tempData)
	err := s.decodeTx(buf)
	s.hasher.Write(buf.Range(0, buf.Index()))
	if err != nil {
		return err
	}
	return nil
}

func (s *SignTxContext) decodeTx(buf *codec.Buffer) error {
	for {
		step := s.decoder.Stage().Step
		done, err := s.decoder.Step(buf)
		if err != nil {
			if userFault(err) {
				return err
			}
			return codec.ErrInvalidData
		}
		if !done {
			return nil
		}
		if err := s.reviewer.OnTxStep(&s.decoder.Inner, step); err != nil {
			return err
		}
		if s.decoder.Complete() {
			s.complete = true
			return nil
		}
	}
}

// userFault reports whether a decode-loop error carries user intent, a
// policy decision or a staging overflow rather than a malformed encoding,
// and must not be flattened into a decoding failure.
func userFault(err error) bool {
	code := statusFromError(err)
	return code == CodeUserCancelled || code == CodeBlindSigningDisabled ||
		code == CodeOverflow
}

// TxID finalizes and returns the accumulated transaction digest.
func (s *SignTxContext) TxID() [32]byte {
	var id [32]byte
	copy(id[:], s.hasher.Sum(nil))
	return id
}
