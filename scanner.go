package rarblock

import (
	"errors"
	"fmt"
	"log/slog"
)

// Scanner walks the blocks of one archive stream in order. After each block
// it skips the block's data area so the next call lands on the next header.
// Only the current block is retained.
//
//	sc := rarblock.NewScanner(rarblock.NewReaderSource(f))
//	for sc.Next() {
//		b := sc.Block()
//		...
//	}
//	if err := sc.Err(); err != nil { ... }
type Scanner struct {
	src   *ReaderSource
	opts  Options
	log   *slog.Logger
	block Block
	start int64
	err   error
	done  bool
}

// NewScanner returns a Scanner positioned at the start of src.
func NewScanner(src *ReaderSource, opts ...Option) *Scanner {
	o := newOptions(opts)
	return &Scanner{src: src, opts: o, log: o.Logger.With("component", "scanner")}
}

// Next decodes the next block. It returns false at the end of the stream, at
// the end-of-archive block, or on error.
func (s *Scanner) Next() bool {
	s.block = nil
	for !s.done {
		s.start = s.src.Offset()
		b, err := DecodeNextBlock(s.src)
		if err != nil {
			if errors.Is(err, ErrEndOfInput) {
				s.log.Debug("end of stream", "offset", s.start)
				s.done = true
				return false
			}
			var de *DecodeError
			if errors.As(err, &de) && de.Preamble != nil && de.Preamble.Type == BlockTerminator {
				s.log.Debug("end of archive", "offset", s.start)
				s.done = true
				return false
			}
			if s.skippable(err) {
				continue
			}
			return s.fail(fmt.Errorf("block at offset %d: %w", s.start, err))
		}
		if s.opts.StrictCRC && b.Type() != BlockMarker && !b.CRCValid() {
			return s.fail(fmt.Errorf("block %s at offset %d: %w (stored 0x%04x, computed 0x%04x)",
				b.Type(), s.start, ErrChecksumMismatch, b.ExpectedCRC(), b.ComputedCRC()))
		}
		s.log.Debug("block", "type", b.Type(), "offset", s.start, "data", b.DataSize(), "crc_ok", b.CRCValid())
		if n := b.DataSize(); n > 0 {
			if err := s.src.Skip(n); err != nil {
				return s.fail(fmt.Errorf("skip %d data bytes of %s at offset %d: %w", n, b.Type(), s.start, err))
			}
		}
		s.block = b
		return true
	}
	return false
}

// skippable steps over the rest of a block the decoder gave up on, when the
// scanner was configured to do so and the preamble says how far to go.
func (s *Scanner) skippable(err error) bool {
	if !s.opts.SkipUnsupported {
		return false
	}
	var de *DecodeError
	if !errors.As(err, &de) || de.Preamble == nil {
		return false
	}
	if de.Kind != KindUnsupportedBlock && de.Kind != KindUnsupportedField {
		return false
	}
	read := uint64(s.src.Offset() - s.start)
	if de.Preamble.TotalSize < read {
		return false
	}
	rest := de.Preamble.TotalSize - read
	s.log.Debug("skipping block", "type", de.Preamble.Type, "offset", s.start, "reason", de.Kind, "bytes", rest)
	if err := s.src.Skip(rest); err != nil {
		s.fail(fmt.Errorf("skip %s at offset %d: %w", de.Preamble.Type, s.start, err))
		return false
	}
	return true
}

func (s *Scanner) fail(err error) bool {
	if s.err == nil {
		s.err = err
	}
	s.done = true
	return false
}

// Block returns the block decoded by the last successful Next.
func (s *Scanner) Block() Block { return s.block }

// Offset is the stream offset of the current block's first byte.
func (s *Scanner) Offset() int64 { return s.start }

// Err returns the error that stopped the scan; nil after a clean end.
func (s *Scanner) Err() error { return s.err }
