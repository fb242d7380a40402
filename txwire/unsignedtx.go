package txwire

import "github.com/alphvault/alphvault/codec"

// The top-level field steps of an unsigned transaction, in decode order.
// The step of the top-level stream decoder identifies which field is in
// flight; callers key per-field actions off the step that just completed.
const (
	StepVersion uint16 = iota
	StepNetworkID
	StepScript
	StepGasAmount
	StepGasPrice
	StepInputs
	StepFixedOutputs

	numTxSteps
)

// UnsignedTx decodes the ordered field schema of an unsigned transaction.
// The grammar is a strict linear pipeline: each field completes before the
// next begins, and completion of the fixed-output sequence completes the
// transaction.
type UnsignedTx struct {
	Version      codec.Byte
	NetworkID    codec.Byte
	Script       codec.Option[Script, *Script]
	GasAmount    codec.I32
	GasPrice     codec.U256
	Inputs       codec.Seq[TxInput, *TxInput]
	FixedOutputs codec.Seq[AssetOutput, *AssetOutput]
}

// Reset is part of the codec.Decoder interface.
func (tx *UnsignedTx) Reset() {
	tx.Version.Reset()
	tx.NetworkID.Reset()
	tx.Script.Reset()
	tx.GasAmount.Reset()
	tx.GasPrice.Reset()
	tx.Inputs.Reset()
	tx.FixedOutputs.Reset()
}

// StepSize is part of the codec.Decoder interface.
func (tx *UnsignedTx) StepSize() uint16 { return numTxSteps }

// Decode is part of the codec.Decoder interface.
func (tx *UnsignedTx) Decode(buf *codec.Buffer, stage codec.Stage) (codec.Stage, error) {
	switch stage.Step {
	case StepVersion:
		return tx.Version.Decode(buf, stage)
	case StepNetworkID:
		return tx.NetworkID.Decode(buf, stage)
	case StepScript:
		return tx.Script.Decode(buf, stage)
	case StepGasAmount:
		return tx.GasAmount.Decode(buf, stage)
	case StepGasPrice:
		return tx.GasPrice.Decode(buf, stage)
	case StepInputs:
		return tx.Inputs.Decode(buf, stage)
	case StepFixedOutputs:
		return tx.FixedOutputs.Decode(buf, stage)
	default:
		return stage, codec.ErrInternal
	}
}

// TxDecoder streams an unsigned transaction out of arbitrarily small
// frames.
type TxDecoder = codec.StreamDecoder[UnsignedTx, *UnsignedTx]
