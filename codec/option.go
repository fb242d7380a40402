package codec

// Option decodes an optional value: a leader byte of 0 means the value is
// absent, 1 means a T follows. Any other leader byte is an invalid
// encoding.
type Option[T any, PT DecoderPtr[T]] struct {
	decided bool
	present bool
	value   StreamDecoder[T, PT]
}

// Present reports whether the decoded option carries a value.
func (o *Option[T, PT]) Present() bool {
	return o.present
}

// Value returns the decoded inner value.
func (o *Option[T, PT]) Value() *T {
	return &o.value.Inner
}

// Reset is part of the Decoder interface.
func (o *Option[T, PT]) Reset() {
	o.decided = false
	o.present = false
	o.value.Reset()
}

// StepSize is part of the Decoder interface.
func (o *Option[T, PT]) StepSize() uint16 { return 1 }

// Decode is part of the Decoder interface.
func (o *Option[T, PT]) Decode(buf *Buffer, stage Stage) (Stage, error) {
	if buf.Empty() {
		return stage, nil
	}
	if !o.decided {
		leader, _ := buf.ConsumeByte()
		switch leader {
		case 0:
			o.decided = true
			return StageComplete, nil
		case 1:
			o.decided = true
			o.present = true
		default:
			return stage, ErrInvalidData
		}
	}
	return o.value.DecodeChildren(buf, stage)
}
