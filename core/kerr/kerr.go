// Package kerr holds the validation error kinds shared by every kernel
// package. Kernel operations return these as plain error values (wrapped
// with call context); KindOf recovers the discriminant for wire output.
package kerr

import "errors"

// Kind is the discriminant of a kernel error.
type Kind uint8

const (
	KindNone Kind = iota
	KindKZero
	KindKTooLarge
	KindSequenceTooShort
	KindLengthMismatch
	KindEmptyInput
	KindInvalidArgument
	KindStaleHandle
	KindWrongKind
	KindBusy
	KindInternal
)

var (
	ErrKZero            = errors.New("k must be at least 1")
	ErrKTooLarge        = errors.New("k exceeds the supported maximum")
	ErrSequenceTooShort = errors.New("sequence shorter than k")
	ErrLengthMismatch   = errors.New("input lengths do not match")
	ErrEmptyInput       = errors.New("empty input")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrStaleHandle      = errors.New("handle released or never issued")
	ErrWrongKind        = errors.New("handle refers to a different result kind")
	ErrBusy             = errors.New("kernel call already in flight")
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrKZero, KindKZero},
	{ErrKTooLarge, KindKTooLarge},
	{ErrSequenceTooShort, KindSequenceTooShort},
	{ErrLengthMismatch, KindLengthMismatch},
	{ErrEmptyInput, KindEmptyInput},
	{ErrInvalidArgument, KindInvalidArgument},
	{ErrStaleHandle, KindStaleHandle},
	{ErrWrongKind, KindWrongKind},
	{ErrBusy, KindBusy},
}

// KindOf maps err onto its Kind. nil maps to KindNone and any error not
// derived from a sentinel above maps to KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindKZero:
		return "k_zero"
	case KindKTooLarge:
		return "k_too_large"
	case KindSequenceTooShort:
		return "sequence_too_short"
	case KindLengthMismatch:
		return "length_mismatch"
	case KindEmptyInput:
		return "empty_input"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindStaleHandle:
		return "stale_handle"
	case KindWrongKind:
		return "wrong_kind"
	case KindBusy:
		return "busy"
	default:
		return "internal"
	}
}

// IsValidation reports whether err is an input-validation error, as opposed
// to a failure of the kernel or its host.
func IsValidation(err error) bool {
	switch KindOf(err) {
	case KindNone, KindInternal, KindBusy:
		return false
	}
	return true
}
