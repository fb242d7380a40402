package txwire

import "github.com/alphvault/alphvault/codec"

// UnlockKind is the tag byte selecting the proof-of-spend form of an
// input.
type UnlockKind byte

// The defined unlock script variants.
const (
	UnlockP2PKH          UnlockKind = 0
	UnlockP2MPKH         UnlockKind = 1
	UnlockP2SH           UnlockKind = 2
	UnlockSameAsPrevious UnlockKind = 3
)

// PublicKeyWithIndex pairs a public key with its position in the
// multi-signature key set.
type PublicKeyWithIndex struct {
	PublicKey codec.PublicKey
	KeyIndex  codec.U16
}

// Reset is part of the codec.Decoder interface.
func (p *PublicKeyWithIndex) Reset() {
	p.PublicKey.Reset()
	p.KeyIndex.Reset()
}

// StepSize is part of the codec.Decoder interface.
func (p *PublicKeyWithIndex) StepSize() uint16 { return 2 }

// Decode is part of the codec.Decoder interface.
func (p *PublicKeyWithIndex) Decode(buf *codec.Buffer, stage codec.Stage) (codec.Stage, error) {
	switch stage.Step {
	case 0:
		return p.PublicKey.Decode(buf, stage)
	case 1:
		return p.KeyIndex.Decode(buf, stage)
	default:
		return stage, codec.ErrInternal
	}
}

// P2SHUnlock decodes a pay-to-script-hash spend: the script bytecode
// followed by its parameters. The raw bytecode is staged to the frame sink,
// from which the script hash can be recomputed; the parameters are not
// staged.
type P2SHUnlock struct {
	script codec.StreamDecoder[Script, *Script]
	params codec.StreamDecoder[codec.Seq[Val, *Val], *codec.Seq[Val, *Val]]
}

// Reset is part of the codec.Decoder interface.
func (p *P2SHUnlock) Reset() {
	p.script.Reset()
	p.params.Reset()
}

// StepSize is part of the codec.Decoder interface.
func (p *P2SHUnlock) StepSize() uint16 { return 1 }

// Decode is part of the codec.Decoder interface.
func (p *P2SHUnlock) Decode(buf *codec.Buffer, stage codec.Stage) (codec.Stage, error) {
	if !p.script.Complete() {
		from := buf.Index()
		done, err := p.script.Decode(buf)
		if err != nil {
			return stage, err
		}
		if err := buf.StageBytes(buf.Range(from, buf.Index())); err != nil {
			return stage, err
		}
		if !done {
			return stage, nil
		}
	}
	return p.params.DecodeChildren(buf, stage)
}

// UnlockScript decodes the tagged proof-of-spend component of an input.
type UnlockScript struct {
	decided bool
	kind    UnlockKind

	// PublicKey carries the P2PKH variant.
	PublicKey codec.PublicKey

	// MultiKeys carries the P2MPKH variant.
	MultiKeys codec.Seq[PublicKeyWithIndex, *PublicKeyWithIndex]

	// Script carries the P2SH variant.
	Script P2SHUnlock
}

// Kind returns the decoded variant tag.
func (s *UnlockScript) Kind() UnlockKind {
	return s.kind
}

// Reset is part of the codec.Decoder interface.
func (s *UnlockScript) Reset() {
	s.decided = false
	s.kind = 0
	s.PublicKey.Reset()
	s.MultiKeys.Reset()
	s.Script.Reset()
}

// StepSize is part of the codec.Decoder interface.
func (s *UnlockScript) StepSize() uint16 { return 1 }

// Decode is part of the codec.Decoder interface.
func (s *UnlockScript) Decode(buf *codec.Buffer, stage codec.Stage) (codec.Stage, error) {
	if buf.Empty() {
		return stage, nil
	}
	if !s.decided {
		tag, _ := buf.ConsumeByte()
		switch UnlockKind(tag) {
		case UnlockP2PKH, UnlockP2MPKH, UnlockP2SH, UnlockSameAsPrevious:
			s.kind = UnlockKind(tag)
		default:
			return stage, codec.ErrInvalidData
		}
		s.decided = true
	}
	switch s.kind {
	case UnlockP2PKH:
		return s.PublicKey.Decode(buf, stage)
	case UnlockP2MPKH:
		return s.MultiKeys.Decode(buf, stage)
	case UnlockP2SH:
		return s.Script.Decode(buf, stage)
	default:
		return codec.StageComplete, nil
	}
}
