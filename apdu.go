package alphvault

// apduCla is the instruction class every command must carry.
const apduCla = 0x80

// Ins selects a device command.
type Ins byte

// The defined instructions.
const (
	InsGetVersion Ins = 0
	InsGetPubKey  Ins = 1
	InsSignHash   Ins = 2
	InsSignTx     Ins = 3
)

// apduHeaderLen is the fixed prefix: class, instruction, the two selector
// bytes and the payload length.
const apduHeaderLen = 5

// APDU is one parsed command frame.
type APDU struct {
	Cla  byte
	Ins  byte
	P1   byte
	P2   byte
	Data []byte
}

// parseAPDU splits a raw frame into its header and length-prefixed
// payload.
func parseAPDU(raw []byte) (*APDU, error) {
	if len(raw) < apduHeaderLen {
		return nil, errBadLen
	}
	length := int(raw[4])
	if len(raw) != apduHeaderLen+length {
		return nil, errBadLen
	}
	return &APDU{
		Cla:  raw[0],
		Ins:  raw[1],
		P1:   raw[2],
		P2:   raw[3],
		Data: raw[apduHeaderLen:],
	}, nil
}
