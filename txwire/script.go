package txwire

import "github.com/alphvault/alphvault/codec"

// instrOperand classifies the immediate operand carried by an opcode.
type instrOperand byte

const (
	operandNone instrOperand = iota
	operandByte
	operandI256
	operandU256
	operandBytes
	operandAddress
)

// operandKind returns the operand class of an opcode. Call and local-slot
// instructions carry a one-byte immediate; the constant-loading
// instructions carry their typed payload; everything else is a bare
// opcode.
func operandKind(opcode byte) instrOperand {
	switch opcode {
	case 0x00, 0x01, 0x16, 0x17:
		return operandByte
	case 0x12:
		return operandI256
	case 0x13:
		return operandU256
	case 0x14:
		return operandBytes
	case 0x15:
		return operandAddress
	default:
		return operandNone
	}
}

// Instr decodes one script instruction: an opcode byte and, for a handful
// of opcodes, an immediate operand.
type Instr struct {
	decided bool
	Opcode  byte

	operand instrOperand
	b       codec.Byte
	i256    codec.I256
	u256    codec.U256
	bytes   codec.ByteString
	addr    LockupScript
}

// Reset is part of the codec.Decoder interface.
func (i *Instr) Reset() {
	i.decided = false
	i.Opcode = 0
	i.operand = operandNone
	i.b.Reset()
	i.i256.Reset()
	i.u256.Reset()
	i.bytes.Reset()
	i.addr.Reset()
}

// StepSize is part of the codec.Decoder interface.
func (i *Instr) StepSize() uint16 { return 1 }

// Decode is part of the codec.Decoder interface.
func (i *Instr) Decode(buf *codec.Buffer, stage codec.Stage) (codec.Stage, error) {
	if buf.Empty() {
		return stage, nil
	}
	if !i.decided {
		i.Opcode, _ = buf.ConsumeByte()
		i.operand = operandKind(i.Opcode)
		i.decided = true
	}
	switch i.operand {
	case operandByte:
		return i.b.Decode(buf, stage)
	case operandI256:
		return i.i256.Decode(buf, stage)
	case operandU256:
		return i.u256.Decode(buf, stage)
	case operandBytes:
		return i.bytes.Decode(buf, stage)
	case operandAddress:
		return i.addr.Decode(buf, stage)
	default:
		return codec.StageComplete, nil
	}
}

// Method decodes one script method: visibility and asset-use flags, the
// three frame-size fields and the instruction sequence.
type Method struct {
	IsPublic      codec.Byte
	AssetModifier codec.Byte
	ArgsLength    codec.U16
	LocalsLength  codec.U16
	ReturnLength  codec.U16
	Instrs        codec.Seq[Instr, *Instr]
}

// Reset is part of the codec.Decoder interface.
func (m *Method) Reset() {
	m.IsPublic.Reset()
	m.AssetModifier.Reset()
	m.ArgsLength.Reset()
	m.LocalsLength.Reset()
	m.ReturnLength.Reset()
	m.Instrs.Reset()
}

// StepSize is part of the codec.Decoder interface.
func (m *Method) StepSize() uint16 { return 6 }

// Decode is part of the codec.Decoder interface.
func (m *Method) Decode(buf *codec.Buffer, stage codec.Stage) (codec.Stage, error) {
	switch stage.Step {
	case 0:
		return m.IsPublic.Decode(buf, stage)
	case 1:
		return m.AssetModifier.Decode(buf, stage)
	case 2:
		return m.ArgsLength.Decode(buf, stage)
	case 3:
		return m.LocalsLength.Decode(buf, stage)
	case 4:
		return m.ReturnLength.Decode(buf, stage)
	case 5:
		return m.Instrs.Decode(buf, stage)
	default:
		return stage, codec.ErrInternal
	}
}

// Script decodes the method sequence of a transaction script.
type Script struct {
	Methods codec.Seq[Method, *Method]
}

// Reset is part of the codec.Decoder interface.
func (s *Script) Reset() {
	s.Methods.Reset()
}

// StepSize is part of the codec.Decoder interface.
func (s *Script) StepSize() uint16 { return 1 }

// Decode is part of the codec.Decoder interface.
func (s *Script) Decode(buf *codec.Buffer, stage codec.Stage) (codec.Stage, error) {
	return s.Methods.Decode(buf, stage)
}
