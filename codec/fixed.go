package codec

// decodeFixedBytes appends incoming bytes to dst until it is filled,
// resuming from the byte index carried in the stage.
func decodeFixedBytes(dst []byte, buf *Buffer, stage Stage) (Stage, error) {
	index := int(stage.Index)
	for !buf.Empty() && index < len(dst) {
		dst[index], _ = buf.ConsumeByte()
		index++
	}
	if index == len(dst) {
		return StageComplete, nil
	}
	return Stage{Step: stage.Step, Index: uint16(index)}, nil
}

// Byte32 decodes a 32-byte hash.
type Byte32 struct {
	Bytes [32]byte
}

// NewByte32 wraps a hash value.
func NewByte32(b [32]byte) *Byte32 {
	return &Byte32{Bytes: b}
}

// Reset is part of the Decoder interface.
func (v *Byte32) Reset() { v.Bytes = [32]byte{} }

// StepSize is part of the Decoder interface.
func (v *Byte32) StepSize() uint16 { return 1 }

// Decode is part of the Decoder interface.
func (v *Byte32) Decode(buf *Buffer, stage Stage) (Stage, error) {
	return decodeFixedBytes(v.Bytes[:], buf, stage)
}

// PublicKey decodes a 33-byte compressed secp256k1 public key.
type PublicKey struct {
	Bytes [33]byte
}

// Reset is part of the Decoder interface.
func (v *PublicKey) Reset() { v.Bytes = [33]byte{} }

// StepSize is part of the Decoder interface.
func (v *PublicKey) StepSize() uint16 { return 1 }

// Decode is part of the Decoder interface.
func (v *PublicKey) Decode(buf *Buffer, stage Stage) (Stage, error) {
	return decodeFixedBytes(v.Bytes[:], buf, stage)
}

// Hint decodes the four fixed bytes identifying an output reference.
type Hint struct {
	Bytes [4]byte
}

// Reset is part of the Decoder interface.
func (v *Hint) Reset() { v.Bytes = [4]byte{} }

// StepSize is part of the Decoder interface.
func (v *Hint) StepSize() uint16 { return 1 }

// Decode is part of the Decoder interface.
func (v *Hint) Decode(buf *Buffer, stage Stage) (Stage, error) {
	return decodeFixedBytes(v.Bytes[:], buf, stage)
}

// decodeFixedUint folds big-endian bytes into an integer of the given
// encoded width.
func decodeFixedUint(value *uint64, width int, buf *Buffer, stage Stage) (Stage, error) {
	index := int(stage.Index)
	for !buf.Empty() && index < width {
		c, _ := buf.ConsumeByte()
		*value |= uint64(c) << uint((width-1-index)*8)
		index++
	}
	if index == width {
		return StageComplete, nil
	}
	return Stage{Step: stage.Step, Index: uint16(index)}, nil
}

// TimeStamp decodes an eight-byte big-endian lock time in milliseconds.
type TimeStamp struct {
	Value uint64
}

// Reset is part of the Decoder interface.
func (v *TimeStamp) Reset() { v.Value = 0 }

// StepSize is part of the Decoder interface.
func (v *TimeStamp) StepSize() uint16 { return 1 }

// Decode is part of the Decoder interface.
func (v *TimeStamp) Decode(buf *Buffer, stage Stage) (Stage, error) {
	return decodeFixedUint(&v.Value, 8, buf, stage)
}

// MethodSelector decodes a four-byte big-endian script method selector.
type MethodSelector struct {
	value uint64
}

// Value returns the selector as a signed 32-bit integer.
func (v *MethodSelector) Value() int32 {
	return int32(uint32(v.value))
}

// Reset is part of the Decoder interface.
func (v *MethodSelector) Reset() { v.value = 0 }

// StepSize is part of the Decoder interface.
func (v *MethodSelector) StepSize() uint16 { return 1 }

// Decode is part of the Decoder interface.
func (v *MethodSelector) Decode(buf *Buffer, stage Stage) (Stage, error) {
	return decodeFixedUint(&v.value, 4, buf, stage)
}

// Byte decodes a single raw byte.
type Byte struct {
	Value byte
}

// Reset is part of the Decoder interface.
func (v *Byte) Reset() { v.Value = 0 }

// StepSize is part of the Decoder interface.
func (v *Byte) StepSize() uint16 { return 1 }

// Decode is part of the Decoder interface.
func (v *Byte) Decode(buf *Buffer, stage Stage) (Stage, error) {
	if buf.Empty() {
		return stage, nil
	}
	v.Value, _ = buf.ConsumeByte()
	return StageComplete, nil
}

// Bool decodes a boolean encoded as a single byte.
type Bool struct {
	Value bool
}

// Reset is part of the Decoder interface.
func (v *Bool) Reset() { v.Value = false }

// StepSize is part of the Decoder interface.
func (v *Bool) StepSize() uint16 { return 1 }

// Decode is part of the Decoder interface.
func (v *Bool) Decode(buf *Buffer, stage Stage) (Stage, error) {
	if buf.Empty() {
		return stage, nil
	}
	c, _ := buf.ConsumeByte()
	v.Value = c == 1
	return StageComplete, nil
}
