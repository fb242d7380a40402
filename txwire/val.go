package txwire

import "github.com/alphvault/alphvault/codec"

// ValKind is the tag byte selecting a typed script value.
type ValKind byte

// The defined value variants.
const (
	ValBool    ValKind = 0
	ValI256    ValKind = 1
	ValU256    ValKind = 2
	ValByteVec ValKind = 3
	ValAddress ValKind = 4
)

// Val decodes a tagged script value, as carried by pay-to-script-hash
// unlock parameters.
type Val struct {
	decided bool
	kind    ValKind

	Bool    codec.Bool
	I256    codec.I256
	U256    codec.U256
	ByteVec codec.ByteString
	Address LockupScript
}

// Kind returns the decoded variant tag.
func (v *Val) Kind() ValKind {
	return v.kind
}

// Reset is part of the codec.Decoder interface.
func (v *Val) Reset() {
	v.decided = false
	v.kind = 0
	v.Bool.Reset()
	v.I256.Reset()
	v.U256.Reset()
	v.ByteVec.Reset()
	v.Address.Reset()
}

// StepSize is part of the codec.Decoder interface.
func (v *Val) StepSize() uint16 { return 1 }

// Decode is part of the codec.Decoder interface.
func (v *Val) Decode(buf *codec.Buffer, stage codec.Stage) (codec.Stage, error) {
	if buf.Empty() {
		return stage, nil
	}
	if !v.decided {
		tag, _ := buf.ConsumeByte()
		switch ValKind(tag) {
		case ValBool, ValI256, ValU256, ValByteVec, ValAddress:
			v.kind = ValKind(tag)
		default:
			return stage, codec.ErrInvalidData
		}
		v.decided = true
	}
	switch v.kind {
	case ValBool:
		return v.Bool.Decode(buf, stage)
	case ValI256:
		return v.I256.Decode(buf, stage)
	case ValU256:
		return v.U256.Decode(buf, stage)
	case ValByteVec:
		return v.ByteVec.Decode(buf, stage)
	default:
		return v.Address.Decode(buf, stage)
	}
}
