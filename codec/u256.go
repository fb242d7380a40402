package codec

import (
	"encoding/binary"
	"math/big"
	"strings"
)

// maxU256EncodedLen bounds the encoding of a 256-bit value: header plus up
// to 32 payload bytes.
const maxU256EncodedLen = 33

// coinDecimals is the decimal shift of the chain's native coin unit.
const coinDecimals = 18

// coinTicker labels native amounts rendered with ToCoin.
const coinTicker = "ALPH"

// U256 decodes the unsigned 256-bit compact integer. The value is held as
// four big-endian 64-bit limbs, most significant first.
type U256 struct {
	Limbs     [4]uint64
	firstByte byte
}

// NewU256 builds a U256 from big-endian limbs.
func NewU256(limbs [4]uint64) *U256 {
	return &U256{Limbs: limbs}
}

// NewU256FromUint64 builds a U256 holding a small value.
func NewU256FromUint64(v uint64) *U256 {
	return &U256{Limbs: [4]uint64{0, 0, 0, v}}
}

// Reset is part of the Decoder interface.
func (v *U256) Reset() {
	v.Limbs = [4]uint64{}
	v.firstByte = 0
}

// StepSize is part of the Decoder interface.
func (v *U256) StepSize() uint16 { return 1 }

// Eq reports whether two values are numerically equal.
func (v *U256) Eq(other *U256) bool {
	return v.Limbs == other.Limbs
}

// Decode is part of the Decoder interface.
func (v *U256) Decode(buf *Buffer, stage Stage) (Stage, error) {
	if buf.Empty() {
		return stage, nil
	}
	if stage.Index == 0 {
		v.firstByte, _ = buf.ConsumeByte()
	}
	length := compactLength(v.firstByte)
	if length > maxU256EncodedLen {
		return stage, ErrInvalidSize
	}

	var newIndex int
	switch {
	case compactFixedSize(v.firstByte):
		fromIndex := int(stage.Index)
		if fromIndex == 0 {
			v.Limbs[3] = uint64((uint32(v.firstByte) & maskMode) <<
				uint((length-1)*8))
			fromIndex = 1
		}
		newIndex = v.decodeWord(buf, length, fromIndex)
	default:
		fromIndex := int(stage.Index)
		if fromIndex == 0 {
			fromIndex = 1
		}
		if length == 5 {
			newIndex = v.decodeWord(buf, length, fromIndex)
		} else {
			newIndex = v.decodeMultiBytes(buf, length, fromIndex)
		}
	}
	if newIndex == length {
		return StageComplete, nil
	}
	return Stage{Step: stage.Step, Index: uint16(newIndex)}, nil
}

// decodeWord folds payload bytes into the least significant limb.
func (v *U256) decodeWord(buf *Buffer, length, fromIndex int) int {
	index := fromIndex
	for !buf.Empty() && index < length {
		c, _ := buf.ConsumeByte()
		v.Limbs[3] |= uint64(c) << uint((length-index-1)*8)
		index++
	}
	return index
}

// decodeMultiBytes folds payload bytes into the limb selected by their
// distance from the end of the encoding.
func (v *U256) decodeMultiBytes(buf *Buffer, length, fromIndex int) int {
	index := fromIndex
	for !buf.Empty() && index < length {
		c, _ := buf.ConsumeByte()
		remain := length - index - 1
		pos := remain - (remain/8)*8
		limb := 3 - remain/8
		v.Limbs[limb] |= uint64(c) << uint(pos*8)
		index++
	}
	return index
}

// ToBig returns the value as a big integer.
func (v *U256) ToBig() *big.Int {
	var raw [32]byte
	for i, limb := range v.Limbs {
		binary.BigEndian.PutUint64(raw[i*8:], limb)
	}
	return new(big.Int).SetBytes(raw[:])
}

// String renders the value in decimal.
func (v *U256) String() string {
	return v.ToBig().String()
}

// StringWithDecimals renders the value in decimal shifted right by the
// given number of decimal places, with trailing fraction zeros removed.
func (v *U256) StringWithDecimals(decimals int) string {
	return formatWithDecimals(v.ToBig(), decimals)
}

// ToCoin renders the value as a native-coin amount: an 18-decimal shift
// followed by the coin ticker.
func (v *U256) ToCoin() string {
	return v.StringWithDecimals(coinDecimals) + " " + coinTicker
}

// formatWithDecimals renders a non-negative integer as a decimal string
// with the given decimal shift applied.
func formatWithDecimals(n *big.Int, decimals int) string {
	s := n.String()
	if decimals == 0 {
		return s
	}
	var intPart, fracPart string
	if len(s) <= decimals {
		intPart = "0"
		fracPart = strings.Repeat("0", decimals-len(s)) + s
	} else {
		intPart = s[:len(s)-decimals]
		fracPart = s[len(s)-decimals:]
	}
	fracPart = strings.TrimRight(fracPart, "0")
	if fracPart == "" {
		return intPart
	}
	return intPart + "." + fracPart
}

// FormatCoin renders an arbitrary-precision native amount the way ToCoin
// does. It serves values that are computed rather than decoded, such as the
// gas fee product.
func FormatCoin(n *big.Int) string {
	return formatWithDecimals(n, coinDecimals) + " " + coinTicker
}
