package codec

// The compact integer encoding carries its width in the top two bits of the
// first byte: 00, 01 and 10 select fixed totals of one, two and four bytes
// whose remaining six header bits are payload, while 11 introduces a
// big-endian multi-byte payload of (header & 0x3f) + 4 bytes.
const (
	oneBytePrefix   = 0x00
	twoBytePrefix   = 0x40
	fourBytePrefix  = 0x80
	multiBytePrefix = 0xc0

	maskMode    = 0x3f
	maskRest    = 0xc0
	maskModeNeg = 0xffffffc0
)

// compactFixedSize reports whether the header byte selects one of the three
// fixed-width shapes.
func compactFixedSize(header byte) bool {
	prefix := header & maskRest
	return prefix == oneBytePrefix || prefix == twoBytePrefix ||
		prefix == fourBytePrefix
}

// compactLength returns the total encoded length, header included, declared
// by the header byte.
func compactLength(header byte) int {
	switch header & maskRest {
	case oneBytePrefix:
		return 1
	case twoBytePrefix:
		return 2
	case fourBytePrefix:
		return 4
	default:
		return int(header&maskMode) + 4 + 1
	}
}
