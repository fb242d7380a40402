package codec

import "strconv"

// i32SignFlag marks a negative value in the six payload bits of a
// fixed-size header.
const i32SignFlag = 0x20

// maxI32EncodedLen bounds the encoding of a 32-bit value: header plus four
// payload bytes.
const maxI32EncodedLen = 5

// I32 decodes the signed 32-bit compact integer.
type I32 struct {
	Value     int32
	firstByte byte
}

// NewI32 returns an I32 holding the given value. It is mainly useful for
// comparisons in tests and callers that synthesize values.
func NewI32(v int32) *I32 {
	return &I32{Value: v}
}

// Reset is part of the Decoder interface.
func (v *I32) Reset() {
	v.Value = 0
	v.firstByte = 0
}

// StepSize is part of the Decoder interface.
func (v *I32) StepSize() uint16 { return 1 }

// String renders the value in decimal with sign.
func (v *I32) String() string {
	return strconv.FormatInt(int64(v.Value), 10)
}

// Decode is part of the Decoder interface. The stage index counts the bytes
// of the encoding consumed so far.
func (v *I32) Decode(buf *Buffer, stage Stage) (Stage, error) {
	if buf.Empty() {
		return stage, nil
	}
	if stage.Index == 0 {
		v.firstByte, _ = buf.ConsumeByte()
	}
	length := compactLength(v.firstByte)
	if length > maxI32EncodedLen {
		return stage, ErrInvalidSize
	}

	var newIndex int
	if compactFixedSize(v.firstByte) {
		newIndex = v.decodeFixedSize(buf, length, int(stage.Index))
	} else {
		fromIndex := int(stage.Index)
		if fromIndex == 0 {
			fromIndex = 1
		}
		newIndex = v.decodeTail(buf, length, fromIndex)
	}
	if newIndex == length {
		return StageComplete, nil
	}
	return Stage{Step: stage.Step, Index: uint16(newIndex)}, nil
}

// decodeFixedSize seeds the value from the header payload bits, sign
// extending when the sign flag is set, then folds in the remaining bytes.
func (v *I32) decodeFixedSize(buf *Buffer, length, fromIndex int) int {
	if fromIndex == 0 {
		if v.firstByte&i32SignFlag == 0 {
			v.Value = int32((uint32(v.firstByte) & maskMode) <<
				uint((length-1)*8))
		} else {
			v.Value = int32((uint32(v.firstByte) | maskModeNeg) <<
				uint((length-1)*8))
		}
		return v.decodeTail(buf, length, 1)
	}
	return v.decodeTail(buf, length, fromIndex)
}

func (v *I32) decodeTail(buf *Buffer, length, fromIndex int) int {
	index := fromIndex
	for !buf.Empty() && index < length {
		c, _ := buf.ConsumeByte()
		v.Value |= int32(c) << uint((length-index-1)*8)
		index++
	}
	return index
}
