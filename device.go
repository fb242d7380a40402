// Package alphvault implements the command surface of a hardware-wallet
// signing device for an Alephium-style UTXO chain: a streaming transaction
// decoder fed by framed commands, a review flow rendering every visible
// field for approval, and deterministic signing of the accumulated digest.
package alphvault

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/alphvault/alphvault/keychain"
	"github.com/alphvault/alphvault/nvm"
	"github.com/alphvault/alphvault/review"
	"github.com/alphvault/alphvault/tokenmeta"
)

// Version is the application version reported by GetVersion.
var Version = [3]byte{0, 2, 0}

const (
	pathLen = keychain.PathByteLen
	hashLen = 32

	// scriptOffset is the number of leading transaction bytes up to and
	// including the script-presence byte, which sits right behind version
	// and network id at index scriptOffset-1.
	scriptOffset = 3

	// callContractFlag is the script-presence byte value of a contract
	// call.
	callContractFlag = 0x01
)

// Device wires the signing core together: persistent storage, key
// derivation, the review flow and the session context. One device handles
// one command at a time; a fresh first transaction frame aborts any
// session in flight.
type Device struct {
	keys     *keychain.KeyChain
	settings *nvm.Settings
	prompter review.Prompter
	reviewer *review.TxReviewer
	signCtx  *SignTxContext
}

// NewDevice assembles a device around the given store, seed-derived key
// chain and display surface.
func NewDevice(store *nvm.Store, keys *keychain.KeyChain,
	prompter review.Prompter) *Device {

	reviewBuf := nvm.NewSwappingBuffer(store.Region("review", nvm.StoreSize))
	tempBuf := nvm.NewSwappingBuffer(store.Region("tempdata", nvm.StoreSize))
	settings := store.Settings()
	reviewer := review.NewTxReviewer(reviewBuf, settings, prompter,
		tokenmeta.Root)
	return &Device{
		keys:     keys,
		settings: settings,
		prompter: prompter,
		reviewer: reviewer,
		signCtx:  NewSignTxContext(tempBuf, reviewer, nil),
	}
}

// Settings exposes the persisted device configuration.
func (d *Device) Settings() *nvm.Settings {
	return d.settings
}

// HandleAPDU dispatches one raw command frame and returns the response
// payload and status word.
func (d *Device) HandleAPDU(raw []byte) ([]byte, ErrorCode) {
	apdu, err := parseAPDU(raw)
	if err != nil {
		return nil, statusFromError(err)
	}
	if apdu.Cla != apduCla {
		return nil, CodeBadCla
	}

	var resp []byte
	switch Ins(apdu.Ins) {
	case InsGetVersion:
		resp, err = d.handleGetVersion()
	case InsGetPubKey:
		resp, err = d.handleGetPubKey(apdu)
	case InsSignHash:
		resp, err = d.handleSignHash(apdu)
	case InsSignTx:
		resp, err = d.handleSignTx(apdu)
		if err != nil {
			d.resetSession()
		}
	default:
		return nil, CodeBadIns
	}
	if err != nil {
		code := statusFromError(err)
		log.Debugf("ins %d failed: %v", apdu.Ins, err)
		return nil, code
	}
	return resp, CodeOk
}

func (d *Device) handleGetVersion() ([]byte, error) {
	return []byte{Version[0], Version[1], Version[2]}, nil
}

func (d *Device) handleGetPubKey(apdu *APDU) ([]byte, error) {
	// One trailing byte flags whether the address must be confirmed on
	// the device before the key is released.
	if len(apdu.Data) != pathLen+1 {
		return nil, errBadLen
	}
	path, err := keychain.ParsePath(apdu.Data[:pathLen])
	if err != nil {
		return nil, err
	}
	pub, hdIndex, err := d.keys.DerivePub(path, apdu.P1, apdu.P2)
	if err != nil {
		return nil, err
	}

	if apdu.Data[pathLen] != 0 {
		err := d.prompter.ReviewFields("Verify Address", []review.Field{{
			Name:  "Address",
			Value: keychain.AddressFromPubKey(pub),
		}})
		if err != nil {
			return nil, err
		}
	}

	resp := pub.SerializeUncompressed()
	var index [4]byte
	binary.BigEndian.PutUint32(index[:], hdIndex)
	return append(resp, index[:]...), nil
}

func (d *Device) handleSignHash(apdu *APDU) ([]byte, error) {
	if len(apdu.Data) != pathLen+hashLen {
		return nil, errBadLen
	}
	path, err := keychain.ParsePath(apdu.Data[:pathLen])
	if err != nil {
		return nil, err
	}
	digest := apdu.Data[pathLen:]
	err = d.prompter.ReviewFields("Review Hash", []review.Field{{
		Name:  "Hash",
		Value: hex.EncodeToString(digest),
	}})
	if err != nil {
		return nil, err
	}
	priv, err := d.keys.DerivePriv(path)
	if err != nil {
		return nil, err
	}
	return keychain.SignHash(priv, digest), nil
}

// handleSignTx dispatches the signing frames by their (p1, p2) selector:
// token metadata and proofs first, then the transaction itself.
func (d *Device) handleSignTx(apdu *APDU) ([]byte, error) {
	switch {
	case apdu.P1 == 0 && apdu.P2 == 0:
		// First frame: token-entry count, then initial metadata. Any
		// session in flight is abandoned.
		if d.signCtx.Started() {
			d.signCtx.Reset()
		}
		if len(apdu.Data) == 0 {
			return nil, errBadLen
		}
		tokenCount := int(apdu.Data[0])
		if err := d.reviewer.Init(tokenCount); err != nil {
			return nil, err
		}
		if tokenCount == 0 {
			return nil, nil
		}
		return nil, d.reviewer.HandleTokenMetadata(apdu.Data[1:])

	case apdu.P1 == 0 && apdu.P2 == 1:
		return nil, d.reviewer.HandleTokenMetadata(apdu.Data)

	case apdu.P1 == 0 && apdu.P2 == 2:
		return nil, d.reviewer.HandleTokenProof(apdu.Data)

	case apdu.P1 == 1 && apdu.P2 == 0:
		// First transaction frame: derivation path, then the encoded
		// transaction. A fresh first frame cancels any session in
		// flight. The script-presence byte is pre-inspected to gate
		// blind signing before any decoding happens.
		if d.signCtx.Started() {
			d.resetSession()
		}
		if len(apdu.Data) < pathLen+scriptOffset {
			return nil, errBadLen
		}
		txData := apdu.Data[pathLen:]
		execScript := txData[scriptOffset-1] == callContractFlag
		if execScript {
			if err := d.reviewer.CheckBlindSigning(); err != nil {
				return nil, err
			}
		}
		d.reviewer.SetTxExecuteScript(execScript)
		if err := d.signCtx.Init(apdu.Data[:pathLen], d.keys); err != nil {
			return nil, err
		}
		return d.continueSignTx(txData)

	case apdu.P1 == 1 && apdu.P2 == 1:
		return d.continueSignTx(apdu.Data)

	default:
		return nil, errBadP1P2
	}
}

// continueSignTx feeds one transaction frame and, once the decoder
// reports done, closes the review and signs the digest.
func (d *Device) continueSignTx(data []byte) ([]byte, error) {
	if err := d.signCtx.HandleTxData(data); err != nil {
		return nil, err
	}
	if !d.signCtx.Complete() {
		return nil, nil
	}

	if err := d.reviewer.ApproveTx(); err != nil {
		return nil, err
	}
	txID := d.signCtx.TxID()
	if err := d.reviewer.ReviewTxID(txID); err != nil {
		return nil, err
	}
	priv, err := d.keys.DerivePriv(d.signCtx.Path())
	if err != nil {
		return nil, err
	}
	sig := keychain.SignHash(priv, txID[:])
	log.Infof("signed tx %x", txID)
	d.resetSession()
	return sig, nil
}

func (d *Device) resetSession() {
	d.signCtx.Reset()
	d.reviewer.Reset()
}
