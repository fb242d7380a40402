package txwire

import "github.com/alphvault/alphvault/codec"

// Token pairs a 32-byte token id with a 256-bit amount.
type Token struct {
	ID     codec.Byte32
	Amount codec.U256
}

// Reset is part of the codec.Decoder interface.
func (t *Token) Reset() {
	t.ID.Reset()
	t.Amount.Reset()
}

// StepSize is part of the codec.Decoder interface.
func (t *Token) StepSize() uint16 { return 2 }

// Decode is part of the codec.Decoder interface.
func (t *Token) Decode(buf *codec.Buffer, stage codec.Stage) (codec.Stage, error) {
	switch stage.Step {
	case 0:
		return t.ID.Decode(buf, stage)
	case 1:
		return t.Amount.Decode(buf, stage)
	default:
		return stage, codec.ErrInternal
	}
}
