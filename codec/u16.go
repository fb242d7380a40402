package codec

// U16 decodes the unsigned 16-bit compact integer. Only the fixed-width
// header shapes are valid; a multi-byte header always overflows the type.
type U16 struct {
	Value     uint16
	firstByte byte
}

// Reset is part of the Decoder interface.
func (v *U16) Reset() {
	v.Value = 0
	v.firstByte = 0
}

// StepSize is part of the Decoder interface.
func (v *U16) StepSize() uint16 { return 1 }

// Decode is part of the Decoder interface.
func (v *U16) Decode(buf *Buffer, stage Stage) (Stage, error) {
	if buf.Empty() {
		return stage, nil
	}
	if stage.Index == 0 {
		v.firstByte, _ = buf.ConsumeByte()
	}
	length := compactLength(v.firstByte)
	if length > 4 {
		return stage, ErrInvalidSize
	}

	var index int
	if stage.Index == 0 {
		v.Value = uint16((uint32(v.firstByte) & maskMode) <<
			uint((length-1)*8))
		index = 1
	} else {
		index = int(stage.Index)
	}

	for !buf.Empty() && index < length {
		c, _ := buf.ConsumeByte()
		v.Value |= uint16(uint32(c) << uint((length-index-1)*8))
		index++
	}
	if index == length {
		return StageComplete, nil
	}
	return Stage{Step: stage.Step, Index: uint16(index)}, nil
}
