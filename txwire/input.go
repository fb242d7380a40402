package txwire

import "github.com/alphvault/alphvault/codec"

// TxInput decodes one transaction input: the output-reference hint and
// key, and the unlock script proving the right to spend it.
type TxInput struct {
	Hint   codec.Hint
	Key    codec.Byte32
	Unlock UnlockScript
}

// Reset is part of the codec.Decoder interface.
func (in *TxInput) Reset() {
	in.Hint.Reset()
	in.Key.Reset()
	in.Unlock.Reset()
}

// StepSize is part of the codec.Decoder interface.
func (in *TxInput) StepSize() uint16 { return 3 }

// Decode is part of the codec.Decoder interface.
func (in *TxInput) Decode(buf *codec.Buffer, stage codec.Stage) (codec.Stage, error) {
	switch stage.Step {
	case 0:
		return in.Hint.Decode(buf, stage)
	case 1:
		return in.Key.Decode(buf, stage)
	case 2:
		return in.Unlock.Decode(buf, stage)
	default:
		return stage, codec.ErrInternal
	}
}
