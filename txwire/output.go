package txwire

import "github.com/alphvault/alphvault/codec"

// AssetOutput decodes one fixed output: the native amount, the recipient
// lockup script, a lock time, the token sequence and an opaque
// additional-data string.
type AssetOutput struct {
	Amount         codec.U256
	Lockup         LockupScript
	LockTime       codec.TimeStamp
	Tokens         codec.Seq[Token, *Token]
	AdditionalData codec.ByteString
}

// Reset is part of the codec.Decoder interface.
func (o *AssetOutput) Reset() {
	o.Amount.Reset()
	o.Lockup.Reset()
	o.LockTime.Reset()
	o.Tokens.Reset()
	o.AdditionalData.Reset()
}

// StepSize is part of the codec.Decoder interface.
func (o *AssetOutput) StepSize() uint16 { return 5 }

// Decode is part of the codec.Decoder interface.
func (o *AssetOutput) Decode(buf *codec.Buffer, stage codec.Stage) (codec.Stage, error) {
	switch stage.Step {
	case 0:
		return o.Amount.Decode(buf, stage)
	case 1:
		return o.Lockup.Decode(buf, stage)
	case 2:
		return o.LockTime.Decode(buf, stage)
	case 3:
		return o.Tokens.Decode(buf, stage)
	case 4:
		return o.AdditionalData.Decode(buf, stage)
	default:
		return stage, codec.ErrInternal
	}
}
