package codec

// Sink receives sub-encodings that a decoder stages for later processing,
// such as the raw bytes of a multi-signature lockup script that must be
// re-encoded once the containing field completes.
type Sink interface {
	// Append appends bytes to the sink. It returns an error when the
	// sink is out of capacity.
	Append(data []byte) error
}

// Buffer is a cursor over one frame of input bytes. Decoders consume from
// the front; the number of consumed bytes is observable so callers can feed
// the exact consumed range to a hash accumulator.
type Buffer struct {
	data  []byte
	index int
	sink  Sink
}

// NewBuffer wraps one frame of input. The sink may be nil when no decoder
// in the pipeline stages sub-encodings.
func NewBuffer(data []byte, sink Sink) *Buffer {
	return &Buffer{data: data, sink: sink}
}

// ConsumeByte removes and returns the next byte. The second return value is
// false when the buffer is exhausted.
func (b *Buffer) ConsumeByte() (byte, bool) {
	if b.index >= len(b.data) {
		return 0, false
	}
	c := b.data[b.index]
	b.index++
	return c, true
}

// Len returns the number of unconsumed bytes.
func (b *Buffer) Len() int {
	return len(b.data) - b.index
}

// Empty reports whether all bytes have been consumed.
func (b *Buffer) Empty() bool {
	return b.Len() == 0
}

// Index returns the number of bytes consumed so far.
func (b *Buffer) Index() int {
	return b.index
}

// Range returns the frame bytes between the two consumption indexes.
func (b *Buffer) Range(from, to int) []byte {
	return b.data[from:to]
}

// StageBytes forwards bytes to the attached sink. With no sink attached it
// is a no-op.
func (b *Buffer) StageBytes(data []byte) error {
	if b.sink == nil {
		return nil
	}
	if err := b.sink.Append(data); err != nil {
		return ErrOverflow
	}
	return nil
}
