package codec

// ByteString decodes a length-prefixed byte string, discarding the payload
// bytes as they stream past. The payload is never buffered; callers that
// need the raw bytes observe them through the consumed range of the
// enclosing frame.
type ByteString struct {
	length  StreamDecoder[I32, *I32]
	skipped int32
}

// Size returns the declared payload length. It is only meaningful once the
// length field has decoded.
func (s *ByteString) Size() int {
	return int(s.length.Inner.Value)
}

// Reset is part of the Decoder interface.
func (s *ByteString) Reset() {
	s.length.Reset()
	s.skipped = 0
}

// StepSize is part of the Decoder interface.
func (s *ByteString) StepSize() uint16 { return 1 }

// Decode is part of the Decoder interface.
func (s *ByteString) Decode(buf *Buffer, stage Stage) (Stage, error) {
	if !s.length.Complete() {
		done, err := s.length.Decode(buf)
		if err != nil {
			return stage, err
		}
		if !done {
			return stage, nil
		}
		if s.length.Inner.Value < 0 {
			return stage, ErrInvalidData
		}
	}
	for !buf.Empty() && int(s.skipped) < s.Size() {
		buf.ConsumeByte()
		s.skipped++
	}
	if int(s.skipped) == s.Size() {
		return StageComplete, nil
	}
	return stage, nil
}
