package rarblock

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every *DecodeError matches exactly one of these through
// errors.Is, so callers can branch on the kind without a type assertion.
var (
	ErrShortInput         = errors.New("short input")
	ErrEndOfInput         = errors.New("end of input")
	ErrUnknownBlockType   = errors.New("unknown block type")
	ErrTagMismatch        = errors.New("block tag mismatch")
	ErrSizeOverflow       = errors.New("header size overflow")
	ErrSizeUnderflow      = errors.New("header size underflow")
	ErrSizeMismatch       = errors.New("header size mismatch")
	ErrUnsupportedField   = errors.New("field not yet supported")
	ErrUnsupportedBlock   = errors.New("block type not decodable")
	ErrUnsupportedVersion = errors.New("archive version not supported")
	ErrIO                 = errors.New("i/o failure")

	// ErrChecksumMismatch is only returned by the Scanner in strict mode;
	// the decoders themselves report mismatches through Block.CRCValid.
	ErrChecksumMismatch = errors.New("header checksum mismatch")
	// ErrDecoderDone is returned when a Decoder is used after it reached its
	// terminal state.
	ErrDecoderDone = errors.New("decoder already finished")
)

// ErrorKind classifies a DecodeError.
type ErrorKind int

const (
	KindShortInput ErrorKind = iota + 1
	KindEndOfInput
	KindUnknownBlockType
	KindTagMismatch
	KindSizeOverflow
	KindSizeUnderflow
	KindSizeMismatch
	KindUnsupportedField
	KindUnsupportedBlock
	KindUnsupportedVersion
	KindIO
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindShortInput:
		return ErrShortInput
	case KindEndOfInput:
		return ErrEndOfInput
	case KindUnknownBlockType:
		return ErrUnknownBlockType
	case KindTagMismatch:
		return ErrTagMismatch
	case KindSizeOverflow:
		return ErrSizeOverflow
	case KindSizeUnderflow:
		return ErrSizeUnderflow
	case KindSizeMismatch:
		return ErrSizeMismatch
	case KindUnsupportedField:
		return ErrUnsupportedField
	case KindUnsupportedBlock:
		return ErrUnsupportedBlock
	case KindUnsupportedVersion:
		return ErrUnsupportedVersion
	case KindIO:
		return ErrIO
	}
	return nil
}

func (k ErrorKind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// DecodeError is the structured failure returned by every decode operation.
// Only the fields relevant to Kind are populated.
type DecodeError struct {
	Kind ErrorKind
	// Required is the number of bytes, counted from the start of the source,
	// that would have let the read succeed (KindShortInput).
	Required int
	// Tag is the raw type byte found in the stream.
	Tag byte
	// Want is the type byte the caller asked for (KindTagMismatch).
	Want byte
	// Field names the header field involved, when there is one.
	Field  string
	Detail string
	// Preamble is set once the common block fields were decoded, so callers
	// can still locate the next block (for example after KindUnsupportedBlock).
	Preamble *Preamble
	Err      error
}

func (e *DecodeError) Error() string {
	var msg string
	switch e.Kind {
	case KindShortInput:
		msg = fmt.Sprintf("short input: require %d bytes before decoding can continue", e.Required)
	case KindUnknownBlockType:
		msg = fmt.Sprintf("unknown block type 0x%02x", e.Tag)
	case KindTagMismatch:
		msg = fmt.Sprintf("block tag mismatch: want %s, got %s", BlockType(e.Want), BlockType(e.Tag))
	case KindUnsupportedBlock:
		msg = fmt.Sprintf("block type %s not decodable", BlockType(e.Tag))
	default:
		msg = e.Kind.String()
	}
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind.
func (e *DecodeError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func shortInput(required int) *DecodeError {
	return &DecodeError{Kind: KindShortInput, Required: required}
}

func ioFailure(err error) *DecodeError {
	return &DecodeError{Kind: KindIO, Err: err}
}

func sizeError(kind ErrorKind, p *Preamble, field, format string, a ...any) *DecodeError {
	return &DecodeError{Kind: kind, Tag: byte(p.Type), Field: field, Detail: fmt.Sprintf(format, a...), Preamble: p}
}

// withPreamble attaches p to a decode error raised inside a block body.
func withPreamble(err error, p *Preamble) error {
	var de *DecodeError
	if errors.As(err, &de) && de.Preamble == nil {
		de.Preamble = p
	}
	return err
}
