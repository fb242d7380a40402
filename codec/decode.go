package codec

import (
	"errors"
	"math"
)

var (
	// ErrInvalidSize is returned when a length header exceeds the maximum
	// encoded size of the target type.
	ErrInvalidSize = errors.New("codec: invalid encoded size")

	// ErrInvalidData is returned when the input bytes cannot be a valid
	// encoding, such as an unknown tag byte.
	ErrInvalidData = errors.New("codec: invalid encoding")

	// ErrInternal is returned when a decoder is driven past its final
	// step. It indicates a bug in the caller, not bad input.
	ErrInternal = errors.New("codec: internal decoder error")

	// ErrOverflow is returned when staged bytes exceed the capacity of
	// the attached sink.
	ErrOverflow = errors.New("codec: staging sink overflow")
)

// Stage is the resumable position of a decoder: the field step currently
// being decoded and the byte index within that step. Both components are
// monotonically non-decreasing until the decoder completes.
type Stage struct {
	Step  uint16
	Index uint16
}

// StageComplete is the absorbing terminal stage.
var StageComplete = Stage{Step: math.MaxUint16, Index: math.MaxUint16}

// Complete reports whether the stage is the terminal stage.
func (s Stage) Complete() bool {
	return s == StageComplete
}

// nextStep returns the stage positioned at the beginning of the next step.
func (s Stage) nextStep() Stage {
	return Stage{Step: s.Step + 1}
}

// Decoder is a resumable decoder. Decode consumes as many bytes from the
// buffer as fit the current stage and returns either StageComplete or the
// new in-progress stage. A decoder never buffers input: bytes handed to it
// are consumed exactly once.
type Decoder interface {
	// StepSize returns the number of steps the decoder advances through.
	StepSize() uint16

	// Decode consumes bytes for the given stage.
	Decode(buf *Buffer, stage Stage) (Stage, error)

	// Reset returns the decoder to its pristine state so it can be
	// reused for the next value.
	Reset()
}

// DecoderPtr constrains a pointer to T to implement Decoder. It lets
// composite decoders hold their children by value while still dispatching
// through the interface.
type DecoderPtr[T any] interface {
	*T
	Decoder
}

// StreamDecoder drives a Decoder across arbitrarily small byte slices,
// advancing the stage step by step. The zero value is ready to use.
type StreamDecoder[T any, PT DecoderPtr[T]] struct {
	Inner T
	stage Stage
}

// Stage returns the current decode stage.
func (d *StreamDecoder[T, PT]) Stage() Stage {
	return d.stage
}

// Complete reports whether the wrapped decoder has consumed its full
// encoding.
func (d *StreamDecoder[T, PT]) Complete() bool {
	return d.stage.Complete()
}

// Reset restores both the inner decoder and the stage.
func (d *StreamDecoder[T, PT]) Reset() {
	PT(&d.Inner).Reset()
	d.stage = Stage{}
}

// ResetStage rewinds only the stage, keeping the decoded value.
func (d *StreamDecoder[T, PT]) ResetStage() {
	d.stage = Stage{}
}

// Step feeds the buffer to the inner decoder for exactly one step. It
// returns true when the current step completed, leaving the stage either at
// the next step or at StageComplete when the final step finished.
func (d *StreamDecoder[T, PT]) Step(buf *Buffer) (bool, error) {
	if buf.Empty() {
		return false, nil
	}
	inner := Decoder(PT(&d.Inner))
	if d.stage.Step >= inner.StepSize() {
		return false, ErrInternal
	}
	stage, err := inner.Decode(buf, d.stage)
	if err != nil {
		return false, err
	}
	done := stage.Complete()
	if done {
		stage = d.stage.nextStep()
	}
	if stage.Step == inner.StepSize() {
		stage = StageComplete
	}
	d.stage = stage
	return done, nil
}

// Decode runs Step until the buffer runs dry or the decoder completes,
// returning true on completion.
func (d *StreamDecoder[T, PT]) Decode(buf *Buffer) (bool, error) {
	for {
		done, err := d.Step(buf)
		if err != nil {
			return false, err
		}
		if done && d.stage.Complete() {
			return true, nil
		}
		if !done {
			return false, nil
		}
	}
}

// DecodeChildren runs the wrapped decoder as a single step of an enclosing
// decoder: it reports StageComplete once the child has fully decoded and
// otherwise leaves the parent stage untouched.
func (d *StreamDecoder[T, PT]) DecodeChildren(buf *Buffer, parent Stage) (Stage, error) {
	done, err := d.Decode(buf)
	if err != nil {
		return parent, err
	}
	if done {
		return StageComplete, nil
	}
	return parent, nil
}
