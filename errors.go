package alphvault

import (
	"errors"
	"fmt"

	"github.com/alphvault/alphvault/codec"
	"github.com/alphvault/alphvault/keychain"
	"github.com/alphvault/alphvault/nvm"
	"github.com/alphvault/alphvault/review"
	"github.com/alphvault/alphvault/tokenmeta"
)

// ErrorCode is the status word returned to the host in place of an error
// payload. The host can distinguish faults only by this code; recovery is
// never attempted on the device.
type ErrorCode uint16

// The defined status words.
const (
	CodeOk                    ErrorCode = 0x9000
	CodeBadCla                ErrorCode = 0x6e00
	CodeBadIns                ErrorCode = 0x6d00
	CodeBadP1P2               ErrorCode = 0x6b00
	CodeBadLen                ErrorCode = 0x6700
	CodeUserCancelled         ErrorCode = 0x6985
	CodeTxDecodingFail        ErrorCode = 0xf000
	CodeTxSigningFail         ErrorCode = 0xf001
	CodeInvalidTokenSize      ErrorCode = 0xf002
	CodeInvalidTokenMetadata  ErrorCode = 0xf003
	CodeInvalidTokenProofSize ErrorCode = 0xf004
	CodeInvalidMetadataVer    ErrorCode = 0xf005
	CodeBlindSigningDisabled  ErrorCode = 0xf006
	CodeHDPathDecodingFailed  ErrorCode = 0xf007
	CodeOverflow              ErrorCode = 0xf008
	CodeInternalError         ErrorCode = 0xff00
)

// Error implements the error interface.
func (c ErrorCode) Error() string {
	return fmt.Sprintf("status 0x%04x", uint16(c))
}

// Protocol-level sentinel errors raised by the dispatcher itself.
var (
	errBadLen  = errors.New("alphvault: bad request length")
	errBadP1P2 = errors.New("alphvault: bad p1/p2 selector")
)

// statusFromError flattens an error from any layer of the core into the
// status word reported to the host.
func statusFromError(err error) ErrorCode {
	var code ErrorCode
	switch {
	case err == nil:
		return CodeOk
	case errors.As(err, &code):
		return code
	case errors.Is(err, errBadLen),
		errors.Is(err, tokenmeta.ErrShortFrame):
		return CodeBadLen
	case errors.Is(err, errBadP1P2),
		errors.Is(err, keychain.ErrBadGroup):
		return CodeBadP1P2
	case errors.Is(err, review.ErrUserCancelled):
		return CodeUserCancelled
	case errors.Is(err, review.ErrBlindSigningDisabled):
		return CodeBlindSigningDisabled
	case errors.Is(err, review.ErrTokenCount):
		return CodeInvalidTokenSize
	case errors.Is(err, review.ErrMetadataVersion):
		return CodeInvalidMetadataVer
	case errors.Is(err, review.ErrTokenNotAuthentic):
		return CodeInvalidTokenMetadata
	case errors.Is(err, tokenmeta.ErrProofSize):
		return CodeInvalidTokenProofSize
	case errors.Is(err, keychain.ErrBadPath):
		return CodeHDPathDecodingFailed
	case errors.Is(err, codec.ErrOverflow),
		errors.Is(err, nvm.ErrRegionBounds):
		return CodeOverflow
	case errors.Is(err, codec.ErrInvalidData),
		errors.Is(err, codec.ErrInvalidSize),
		errors.Is(err, review.ErrTokenPerOutput),
		errors.Is(err, review.ErrUnsupportedLockup):
		return CodeTxDecodingFail
	default:
		return CodeInternalError
	}
}
