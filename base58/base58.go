// Package base58 implements the Base58 encoding used for addresses, in two
// shapes: a single pass over in-memory slices for ordinary addresses, and a
// chunked in-place pass over an external buffer for multi-signature
// addresses whose encoding can exceed the RAM window.
package base58

import "errors"

// Alphabet is the encoding alphabet shared with Bitcoin.
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// ErrBufferTooSmall describes a destination that cannot hold the encoded
// result. The encoders in this package do not return it: EncodeSlices
// allocates its own output, and EncodeRegion passes on the errors of its
// Region.
var ErrBufferTooSmall = errors.New("base58: output buffer too small")

// chunkSize is the granularity of buffered encoding: carries propagate
// across the staged digits in chunks of this many bytes.
const chunkSize = 64

// EncodeSlices encodes the concatenation of the input slices. Leading zero
// bytes across the concatenation become leading '1' characters.
func EncodeSlices(inputs ...[]byte) []byte {
	size := 0
	for _, input := range inputs {
		size += len(input)
	}
	// Every byte expands to at most ~1.37 digits.
	out := make([]byte, 0, size*138/100+1)

	for _, input := range inputs {
		for _, val := range input {
			carry := int(val)
			for i := range out {
				carry += int(out[i]) << 8
				out[i] = byte(carry % 58)
				carry /= 58
			}
			for carry > 0 {
				out = append(out, byte(carry%58))
				carry /= 58
			}
		}
	}

zeros:
	for _, input := range inputs {
		for _, val := range input {
			if val != 0 {
				break zeros
			}
			out = append(out, 0)
		}
	}

	for i, val := range out {
		out[i] = Alphabet[val]
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Encode encodes a single byte slice.
func Encode(input []byte) []byte {
	return EncodeSlices(input)
}

// Region is the external staging area the buffered encoder works in. It is
// satisfied by the swapping buffer: appends land wherever the cursor is,
// while WriteAt and Update address earlier bytes for carry propagation and
// the final alphabet-map pass.
type Region interface {
	// Index returns the current append cursor.
	Index() int

	// Read returns the bytes between the two offsets.
	Read(from, to int) []byte

	// WriteAt writes at the given offset, moving the append cursor past
	// the written bytes.
	WriteAt(from int, data []byte) error

	// Update rewrites bytes in place without moving the cursor.
	Update(from int, data []byte) error
}

// EncodeRegion Base58-encodes the input into the region starting at its
// current cursor, returning the end offset of the encoded text. Digits are
// staged in 64-byte chunks and carries propagate across chunks, so the
// result may grow far beyond the caller's working memory. The input must
// have no leading zero bytes; multi-signature lockup encodings start with
// their nonzero variant tag.
func EncodeRegion(region Region, input []byte) (int, error) {
	fromIndex := region.Index()
	outputLength := 0
	outputIndex := 0
	var output [chunkSize]byte

	for _, val := range input {
		carry := int(val)

		// Fold the carry through every chunk already staged in the
		// region.
		var err error
		carry, err = updateWithCarry(region, fromIndex,
			fromIndex+outputLength, carry)
		if err != nil {
			return 0, err
		}

		for i := 0; i < outputIndex-outputLength; i++ {
			carry += int(output[i]) << 8
			output[i] = byte(carry % 58)
			carry /= 58
		}
		for carry > 0 {
			if outputIndex-outputLength == chunkSize {
				if err := region.WriteAt(fromIndex+outputLength,
					output[:]); err != nil {
					return 0, err
				}
				output = [chunkSize]byte{}
				outputLength += chunkSize
			}
			output[outputIndex-outputLength] = byte(carry % 58)
			outputIndex++
			carry /= 58
		}
	}

	if err := region.WriteAt(fromIndex+outputLength,
		output[:outputIndex-outputLength]); err != nil {
		return 0, err
	}
	toIndex := fromIndex + outputIndex
	if err := finalizeRegion(region, fromIndex, toIndex); err != nil {
		return 0, err
	}
	return toIndex, nil
}

// updateWithCarry folds a carry through the staged digit chunks between
// the two offsets, returning the carry left over.
func updateWithCarry(region Region, from, to, carry int) (int, error) {
	var chunk [chunkSize]byte
	for index := from; index < to; index += chunkSize {
		stored := region.Read(index, index+chunkSize)
		for i := 0; i < chunkSize; i++ {
			carry += int(stored[i]) << 8
			chunk[i] = byte(carry % 58)
			carry /= 58
		}
		if err := region.WriteAt(index, chunk[:]); err != nil {
			return 0, err
		}
		chunk = [chunkSize]byte{}
	}
	return carry, nil
}

// finalizeRegion maps the staged digits through the alphabet and reverses
// the region in place, working from both ends in 64-byte chunks.
func finalizeRegion(region Region, from, to int) error {
	var temp0, temp1 [chunkSize]byte
	begin, end := from, to
	for begin < end {
		if end-begin <= chunkSize {
			stored := region.Read(begin, end)
			length := end - begin
			for i := 0; i < length; i++ {
				temp0[length-i-1] = Alphabet[stored[i]]
			}
			return region.Update(begin, temp0[:length])
		}

		left := region.Read(begin, begin+chunkSize)
		right := region.Read(end-chunkSize, end)
		for i := 0; i < chunkSize; i++ {
			index := chunkSize - i - 1
			temp0[index] = Alphabet[left[i]]
			temp1[index] = Alphabet[right[i]]
		}
		if err := region.Update(begin, temp1[:]); err != nil {
			return err
		}
		if err := region.Update(end-chunkSize, temp0[:]); err != nil {
			return err
		}
		end -= chunkSize
		begin += chunkSize
	}
	return nil
}
