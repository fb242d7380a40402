// Package review drives the human approval flow of a signing session: it
// stages rendered strings in the swapping buffer, verifies token metadata,
// and walks the user through every visible field of the transaction.
package review

import (
	"encoding/hex"
	"math/big"
	"strconv"

	"github.com/alphvault/alphvault/base58"
	"github.com/alphvault/alphvault/codec"
	"github.com/alphvault/alphvault/keychain"
	"github.com/alphvault/alphvault/nvm"
	"github.com/alphvault/alphvault/tokenmeta"
	"github.com/alphvault/alphvault/txwire"
)

// MaxTokens bounds the token-metadata table.
const MaxTokens = 5

// metadataVersion is the only entry version the device understands.
const metadataVersion = 0

// firstOutputIndex is the ordinal of the first reviewed output; outputs
// are shown one-indexed.
const firstOutputIndex = 1

// tokenSymbolLen is the zero-padded symbol width inside a metadata entry.
const tokenSymbolLen = 12

// TxReviewer owns the review state of one signing session: the swapping
// buffer holding rendered strings and the verified token-metadata table,
// the external-inputs flag, and the running fee.
type TxReviewer struct {
	buf      *nvm.SwappingBuffer
	settings *nvm.Settings
	prompter Prompter
	root     [32]byte

	deviceAddress     string
	hasExternalInputs bool
	nextOutputIndex   int
	gasAmount         int32
	fee               *big.Int
	tokenMetadataLen  int
	verifier          *tokenmeta.Verifier
	execScript        bool
}

// NewTxReviewer builds a reviewer staging into the given buffer and
// authenticating token metadata against the given Merkle root.
func NewTxReviewer(buf *nvm.SwappingBuffer, settings *nvm.Settings,
	prompter Prompter, root [32]byte) *TxReviewer {

	return &TxReviewer{
		buf:             buf,
		settings:        settings,
		prompter:        prompter,
		root:            root,
		nextOutputIndex: firstOutputIndex,
	}
}

// Init arms the reviewer for a new session expecting the given number of
// token-metadata entries.
func (r *TxReviewer) Init(tokenCount int) error {
	if tokenCount > MaxTokens {
		return ErrTokenCount
	}
	r.Reset()
	r.tokenMetadataLen = tokenCount * tokenmeta.EntrySize
	return nil
}

// Reset clears all session state.
func (r *TxReviewer) Reset() {
	r.buf.Reset(0)
	r.deviceAddress = ""
	r.hasExternalInputs = false
	r.nextOutputIndex = firstOutputIndex
	r.gasAmount = 0
	r.fee = nil
	r.tokenMetadataLen = 0
	r.verifier = nil
	r.execScript = false
}

// SetDeviceAddress records the address self-change outputs are elided
// against.
func (r *TxReviewer) SetDeviceAddress(addr string) {
	r.deviceAddress = addr
}

// SetTxExecuteScript records whether the session signs a script
// transaction.
func (r *TxReviewer) SetTxExecuteScript(exec bool) {
	r.execScript = exec
}

// CheckBlindSigning fails the session when script transactions are not
// allowed by the persisted setting.
func (r *TxReviewer) CheckBlindSigning() error {
	if r.settings.BlindSigningEnabled() {
		return nil
	}
	r.prompter.NotifyBlindSigningDisabled()
	return ErrBlindSigningDisabled
}

// HandleTokenMetadata consumes a first metadata frame: a 46-byte entry,
// the remaining-proof size and any leading siblings. The entry is staged
// into the metadata table; the proof keeps streaming through
// HandleTokenProof until its budget reaches zero.
func (r *TxReviewer) HandleTokenMetadata(data []byte) error {
	if r.verifier != nil {
		return ErrState
	}
	verifier, err := tokenmeta.NewVerifier(r.root, data)
	if err != nil {
		return err
	}
	if data[0] != metadataVersion {
		return ErrMetadataVersion
	}
	if err := r.writeTokenMetadata(data[:tokenmeta.EntrySize]); err != nil {
		return err
	}
	if !verifier.Complete() {
		r.verifier = verifier
		return nil
	}
	if !verifier.Valid() {
		return ErrTokenNotAuthentic
	}
	return nil
}

// HandleTokenProof consumes a residual proof frame of the entry currently
// being verified.
func (r *TxReviewer) HandleTokenProof(data []byte) error {
	if r.verifier == nil {
		return ErrState
	}
	if err := r.verifier.Update(data); err != nil {
		return err
	}
	if !r.verifier.Complete() {
		return nil
	}
	valid := r.verifier.Valid()
	r.verifier = nil
	if !valid {
		return ErrTokenNotAuthentic
	}
	return nil
}

// writeTokenMetadata appends an entry to the table at the bottom of the
// buffer.
func (r *TxReviewer) writeTokenMetadata(entry []byte) error {
	size, err := r.buf.Write(entry)
	if err != nil {
		return err
	}
	if size > r.tokenMetadataLen {
		return ErrTokenCount
	}
	return nil
}

// tokenMetadata looks a token id up in the table, returning its trimmed
// symbol and decimals.
func (r *TxReviewer) tokenMetadata(id [32]byte) (string, int, bool) {
	count := r.tokenMetadataLen / tokenmeta.EntrySize
	for i := 0; i < count; i++ {
		from := i * tokenmeta.EntrySize
		entry := r.buf.Read(from, from+tokenmeta.EntrySize)
		if [32]byte(entry[1:33]) != id {
			continue
		}
		symbol := entry[33 : 33+tokenSymbolLen]
		end := 0
		for end < len(symbol) && symbol[end] != 0 {
			end++
		}
		return string(symbol[:end]), int(entry[tokenmeta.EntrySize-1]), true
	}
	return "", 0, false
}

// OnTxStep reacts to a completed top-level transaction field. The network
// page is shown in the prologue; the gas fields accumulate into the fee.
func (r *TxReviewer) OnTxStep(tx *txwire.UnsignedTx, step uint16) error {
	switch step {
	case txwire.StepNetworkID:
		return r.prompter.ReviewFields("Review Network", []Field{{
			Name:  "Network",
			Value: networkName(tx.NetworkID.Value),
		}})
	case txwire.StepGasAmount:
		r.gasAmount = tx.GasAmount.Value
	case txwire.StepGasPrice:
		fee := tx.GasPrice.ToBig()
		fee.Mul(fee, big.NewInt(int64(r.gasAmount)))
		r.fee = fee
	}
	return nil
}

func networkName(id byte) string {
	switch id {
	case 0:
		return "mainnet"
	case 1:
		return "testnet"
	default:
		return "devnet"
	}
}

// ReviewInput folds one decoded input into the external-inputs flag and,
// after the last input, raises the warning page if any input is not
// controlled by the device.
func (r *TxReviewer) ReviewInput(in *txwire.TxInput, index, total int) error {
	switch in.Unlock.Kind() {
	case txwire.UnlockP2PKH:
		if !r.hasExternalInputs {
			addr := keychain.AddressFromRawPubKey(in.Unlock.PublicKey.Bytes)
			r.hasExternalInputs = addr != r.deviceAddress
		}
	case txwire.UnlockP2MPKH, txwire.UnlockP2SH:
		r.hasExternalInputs = true
	case txwire.UnlockSameAsPrevious:
		// Inherits the provenance of the previous input; the flag is
		// unchanged.
	}

	if index == total-1 && r.hasExternalInputs {
		log.Debugf("external inputs present, warning after input %d", index)
		return r.prompter.WarnExternalInputs()
	}
	return nil
}

// ReviewOutput renders one decoded output and prompts for it. Outputs
// paying the device's own address are elided as self-change. tempData
// carries the staged raw lockup encoding of a multi-signature recipient.
func (r *TxReviewer) ReviewOutput(out *txwire.AssetOutput, index int,
	tempData []byte) error {

	if index == 0 {
		if err := r.prompter.StartReview(); err != nil {
			return err
		}
	}
	err := r.reviewOutput(out, tempData)
	r.buf.Reset(r.tokenMetadataLen)
	return err
}

func (r *TxReviewer) reviewOutput(out *txwire.AssetOutput, tempData []byte) error {
	addrFrom := r.buf.Index()
	addrTo, err := r.writeOutputAddress(&out.Lockup, tempData)
	if err != nil {
		return err
	}
	address := string(r.buf.Read(addrFrom, addrTo))
	if address == r.deviceAddress {
		log.Debugf("eliding self-change output to %s", address)
		return nil
	}

	title := "Output #" + strconv.Itoa(r.nextOutputIndex)
	r.nextOutputIndex++

	amountFrom := r.buf.Index()
	amountTo, err := r.buf.Write([]byte(out.Amount.ToCoin()))
	if err != nil {
		return err
	}
	fields := []Field{
		{Name: "Amount", Value: string(r.buf.Read(amountFrom, amountTo))},
		{Name: "To", Value: address},
	}

	if !out.Tokens.Empty() {
		if out.Tokens.Len() > 1 {
			return ErrTokenPerOutput
		}
		tokenFields, err := r.tokenFields(out.Tokens.Current())
		if err != nil {
			return err
		}
		fields = append(fields, tokenFields...)
	}
	return r.prompter.ReviewFields(title, fields)
}

// writeOutputAddress stages the recipient address into the buffer and
// returns its end offset.
func (r *TxReviewer) writeOutputAddress(lockup *txwire.LockupScript,
	tempData []byte) (int, error) {

	switch lockup.Kind() {
	case txwire.LockupP2PKH, txwire.LockupP2SH:
		addr := keychain.EncodeAddress(byte(lockup.Kind()), lockup.Hash.Bytes)
		return r.buf.Write([]byte(addr))
	case txwire.LockupP2MPKH:
		// The encoding can outgrow the RAM window: Base58 runs
		// directly over the swapping buffer.
		return base58.EncodeRegion(r.buf, tempData)
	default:
		return 0, ErrUnsupportedLockup
	}
}

// tokenFields renders the token id and amount of an output. The amount is
// shifted by the verified decimals when the table knows the token, and
// labeled raw otherwise.
func (r *TxReviewer) tokenFields(token *txwire.Token) ([]Field, error) {
	idFrom := r.buf.Index()
	idTo, err := r.buf.Write([]byte(hex.EncodeToString(token.ID.Bytes[:])))
	if err != nil {
		return nil, err
	}
	idField := Field{
		Name:  "Token ID",
		Value: string(r.buf.Read(idFrom, idTo)),
	}

	symbol, decimals, ok := r.tokenMetadata(token.ID.Bytes)
	var amountField Field
	if ok {
		amountField = Field{
			Name:  "Token Amount",
			Value: symbol + " " + token.Amount.StringWithDecimals(decimals),
		}
	} else {
		amountField = Field{
			Name:  "Raw Token Amount",
			Value: token.Amount.String(),
		}
	}
	return []Field{idField, amountField}, nil
}

// ApproveTx closes the review with the fee page. A review that elided
// every output is presented as a self-transfer.
func (r *TxReviewer) ApproveTx() error {
	feeField := Field{Name: "Fees", Value: codec.FormatCoin(r.fee)}
	if r.nextOutputIndex == firstOutputIndex {
		return r.prompter.ReviewSelfTransfer(feeField)
	}
	fields := []Field{feeField}
	if r.execScript {
		fields = append([]Field{{Name: "Type", Value: "contract call"}},
			fields...)
	}
	return r.prompter.FinishReview(fields)
}

// ReviewTxID shows the final transaction id before signing.
func (r *TxReviewer) ReviewTxID(txID [32]byte) error {
	return r.prompter.ReviewFields("Review Tx Id", []Field{{
		Name:  "TxId",
		Value: hex.EncodeToString(txID[:]),
	}})
}
