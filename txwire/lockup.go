package txwire

import "github.com/alphvault/alphvault/codec"

// LockupKind is the tag byte selecting the recipient form of an output.
type LockupKind byte

// The defined lockup script variants.
const (
	LockupP2PKH  LockupKind = 0
	LockupP2MPKH LockupKind = 1
	LockupP2SH   LockupKind = 2
	LockupP2C    LockupKind = 3
)

// P2MPKH decodes a multi-signature lockup: a key count, that many 32-byte
// public key hashes, and a signature threshold. The hashes stream past
// without being retained; the full encoding, variant tag included, is
// staged to the frame sink so the address can be derived from it later.
type P2MPKH struct {
	size         codec.StreamDecoder[codec.U16, *codec.U16]
	m            codec.StreamDecoder[codec.U16, *codec.U16]
	skipped      int
	prefixStaged bool
}

// KeyCount returns the number of public key hashes.
func (p *P2MPKH) KeyCount() int {
	return int(p.size.Inner.Value)
}

// Threshold returns the number of signatures required to spend.
func (p *P2MPKH) Threshold() int {
	return int(p.m.Inner.Value)
}

// Reset is part of the codec.Decoder interface.
func (p *P2MPKH) Reset() {
	p.size.Reset()
	p.m.Reset()
	p.skipped = 0
	p.prefixStaged = false
}

// StepSize is part of the codec.Decoder interface.
func (p *P2MPKH) StepSize() uint16 { return 1 }

// Decode is part of the codec.Decoder interface.
func (p *P2MPKH) Decode(buf *codec.Buffer, stage codec.Stage) (codec.Stage, error) {
	if !p.prefixStaged {
		if err := buf.StageBytes([]byte{byte(LockupP2MPKH)}); err != nil {
			return stage, err
		}
		p.prefixStaged = true
	}
	from := buf.Index()
	result, err := p.decode(buf, stage)
	if err != nil {
		return stage, err
	}
	if err := buf.StageBytes(buf.Range(from, buf.Index())); err != nil {
		return stage, err
	}
	return result, nil
}

func (p *P2MPKH) decode(buf *codec.Buffer, stage codec.Stage) (codec.Stage, error) {
	if !p.size.Complete() {
		done, err := p.size.Decode(buf)
		if err != nil || !done {
			return stage, err
		}
	}
	total := p.KeyCount() * 32
	for !buf.Empty() && p.skipped < total {
		buf.ConsumeByte()
		p.skipped++
	}
	if p.skipped < total {
		return stage, nil
	}
	done, err := p.m.Decode(buf)
	if err != nil || !done {
		return stage, err
	}
	return codec.StageComplete, nil
}

// LockupScript decodes the tagged recipient specification of an output.
type LockupScript struct {
	decided bool
	kind    LockupKind

	// Hash carries the single 32-byte hash of the P2PKH, P2SH and P2C
	// variants.
	Hash codec.Byte32

	// MultiSig carries the P2MPKH variant.
	MultiSig P2MPKH
}

// Kind returns the decoded variant tag.
func (s *LockupScript) Kind() LockupKind {
	return s.kind
}

// Reset is part of the codec.Decoder interface.
func (s *LockupScript) Reset() {
	s.decided = false
	s.kind = 0
	s.Hash.Reset()
	s.MultiSig.Reset()
}

// StepSize is part of the codec.Decoder interface.
func (s *LockupScript) StepSize() uint16 { return 1 }

// Decode is part of the codec.Decoder interface.
func (s *LockupScript) Decode(buf *codec.Buffer, stage codec.Stage) (codec.Stage, error) {
	if buf.Empty() {
		return stage, nil
	}
	if !s.decided {
		tag, _ := buf.ConsumeByte()
		switch LockupKind(tag) {
		case LockupP2PKH, LockupP2MPKH, LockupP2SH, LockupP2C:
			s.kind = LockupKind(tag)
		default:
			return stage, codec.ErrInvalidData
		}
		s.decided = true
	}
	if s.kind == LockupP2MPKH {
		return s.MultiSig.Decode(buf, stage)
	}
	return s.Hash.Decode(buf, stage)
}
