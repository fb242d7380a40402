package codec

// Seq decodes a length-prefixed sequence: a signed 32-bit compact count
// followed by that many items. Only the item currently being decoded is
// retained, so a sequence of any length decodes in constant space. The
// optional OnItem hook observes each item the moment it completes, before
// its storage is reused for the next one.
type Seq[T any, PT DecoderPtr[T]] struct {
	size  StreamDecoder[I32, *I32]
	item  StreamDecoder[T, PT]
	index int32

	// OnItem, when set, is invoked with each completed item and its
	// zero-based index. An error aborts the decode.
	OnItem func(item *T, index int) error
}

// Len returns the declared item count. It is only meaningful once the
// count field has decoded.
func (s *Seq[T, PT]) Len() int {
	return int(s.size.Inner.Value)
}

// Index returns the zero-based index of the item currently held.
func (s *Seq[T, PT]) Index() int {
	return int(s.index)
}

// Empty reports whether the sequence declared zero items.
func (s *Seq[T, PT]) Empty() bool {
	return s.Len() == 0
}

// Current returns the most recently decoded item, or nil for an empty
// sequence.
func (s *Seq[T, PT]) Current() *T {
	if s.Empty() {
		return nil
	}
	return &s.item.Inner
}

// Reset is part of the Decoder interface.
func (s *Seq[T, PT]) Reset() {
	s.size.Reset()
	s.item.Reset()
	s.index = 0
}

// StepSize is part of the Decoder interface.
func (s *Seq[T, PT]) StepSize() uint16 { return 1 }

// Decode is part of the Decoder interface.
func (s *Seq[T, PT]) Decode(buf *Buffer, stage Stage) (Stage, error) {
	if !s.size.Complete() {
		done, err := s.size.Decode(buf)
		if err != nil {
			return stage, err
		}
		if !done {
			return stage, nil
		}
		if s.size.Inner.Value < 0 {
			return stage, ErrInvalidData
		}
		if s.Empty() {
			return StageComplete, nil
		}
	}

	for {
		done, err := s.item.Decode(buf)
		if err != nil {
			return stage, err
		}
		if !done {
			return stage, nil
		}
		if s.OnItem != nil {
			if err := s.OnItem(&s.item.Inner, int(s.index)); err != nil {
				return stage, err
			}
		}
		if int(s.index) == s.Len()-1 {
			return StageComplete, nil
		}
		s.index++
		s.item.Reset()
	}
}
