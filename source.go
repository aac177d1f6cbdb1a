package rarblock

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
)

// ByteSource is the only capability the decoders need: pull exactly n bytes.
// Implementations either return n bytes or a *DecodeError of kind
// KindShortInput, KindEndOfInput or KindIO. They never return a short slice.
type ByteSource interface {
	ReadExact(n int) ([]byte, error)
}

// BufferSource serves reads from a fully materialised buffer. A read past the
// end fails immediately with KindShortInput and leaves the position unchanged,
// so the caller can retry with a longer buffer.
type BufferSource struct {
	buf []byte
	off int
}

// NewBufferSource returns a source reading b from the start.
func NewBufferSource(b []byte) *BufferSource { return &BufferSource{buf: b} }

// ReadExact returns a sub-slice of the underlying buffer.
func (s *BufferSource) ReadExact(n int) ([]byte, error) {
	if n < 0 {
		return nil, ioFailure(fmt.Errorf("negative read length %d", n))
	}
	if n > len(s.buf)-s.off {
		return nil, shortInput(s.off + n)
	}
	p := s.buf[s.off : s.off+n : s.off+n]
	s.off += n
	return p, nil
}

// Offset is the number of bytes consumed so far.
func (s *BufferSource) Offset() int64 { return int64(s.off) }

// Remaining is the number of unread bytes.
func (s *BufferSource) Remaining() int { return len(s.buf) - s.off }

// ReaderSource pulls from an io.Reader, blocking until enough bytes arrive.
type ReaderSource struct {
	r   io.Reader
	br  *bufio.Reader
	off int64
	ctx context.Context
}

// SourceOption configures a ReaderSource.
type SourceOption func(*ReaderSource)

// WithContext makes every read fail with KindIO once ctx is done.
func WithContext(ctx context.Context) SourceOption {
	return func(s *ReaderSource) { s.ctx = ctx }
}

// NewReaderSource wraps r, reusing it when it already is a *bufio.Reader.
func NewReaderSource(r io.Reader, opts ...SourceOption) *ReaderSource {
	s := &ReaderSource{r: r, ctx: context.Background()}
	if br, ok := r.(*bufio.Reader); ok {
		s.br = br
	} else {
		s.br = bufio.NewReader(r)
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Offset is the number of bytes consumed from the reader so far.
func (s *ReaderSource) Offset() int64 { return s.off }

// ReadExact reads n bytes. A stream that ends before the first byte reports
// KindEndOfInput; one that ends part way reports KindShortInput.
func (s *ReaderSource) ReadExact(n int) ([]byte, error) {
	if err := s.ctx.Err(); err != nil {
		return nil, ioFailure(err)
	}
	if n < 0 {
		return nil, ioFailure(fmt.Errorf("negative read length %d", n))
	}
	start := s.off
	buf := make([]byte, n)
	got, err := io.ReadFull(s.br, buf)
	s.off += int64(got)
	switch {
	case err == nil:
		return buf, nil
	case errors.Is(err, io.EOF) && got == 0:
		return nil, &DecodeError{Kind: KindEndOfInput}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return nil, shortInput(int(start) + n)
	default:
		return nil, ioFailure(err)
	}
}

// Skip advances past n bytes without returning them. Buffered bytes are
// drained first; the remainder is seeked over when the reader supports it.
func (s *ReaderSource) Skip(n uint64) error {
	if err := s.ctx.Err(); err != nil {
		return ioFailure(err)
	}
	if n > math.MaxInt64 {
		return ioFailure(fmt.Errorf("skip length %d too large", n))
	}
	toSkip := int64(n)
	if b := s.br.Buffered(); b > 0 {
		if int64(b) > toSkip {
			b = int(toSkip)
		}
		d, err := s.br.Discard(b)
		s.off += int64(d)
		if err != nil {
			return ioFailure(fmt.Errorf("drain buffer: %w", err))
		}
		toSkip -= int64(d)
	}
	if toSkip == 0 {
		return nil
	}
	if seeker, ok := s.r.(io.Seeker); ok {
		if pos, err := seeker.Seek(toSkip, io.SeekCurrent); err == nil {
			return s.seekedTo(seeker, pos, toSkip)
		}
		// fall back to reading through the data
	}
	d, err := io.CopyN(io.Discard, s.br, toSkip)
	s.off += d
	if err != nil {
		if errors.Is(err, io.EOF) {
			return shortInput(int(s.off - d + toSkip))
		}
		return ioFailure(fmt.Errorf("discard data: %w", err))
	}
	return nil
}

// seekedTo finishes a seek-based skip. Seeking past the end is legal for
// most readers, so the target is checked against the stream size.
func (s *ReaderSource) seekedTo(seeker io.Seeker, pos, skipped int64) error {
	target := s.off + skipped
	s.br.Reset(s.r)
	end, err := seeker.Seek(0, io.SeekEnd)
	if err != nil {
		return ioFailure(fmt.Errorf("seek end: %w", err))
	}
	if pos > end {
		s.off = target - (pos - end)
		return shortInput(int(target))
	}
	if _, err := seeker.Seek(pos, io.SeekStart); err != nil {
		return ioFailure(fmt.Errorf("seek: %w", err))
	}
	s.off = target
	return nil
}

// inBlock wraps the source once a block has started: running out of input
// there means the block is cut short, not that the stream ended cleanly.
type inBlock struct {
	src ByteSource
}

func (b inBlock) ReadExact(n int) ([]byte, error) {
	p, err := b.src.ReadExact(n)
	if err == nil {
		return p, nil
	}
	var de *DecodeError
	if errors.As(err, &de) && de.Kind == KindEndOfInput {
		required := n
		if o, ok := b.src.(interface{ Offset() int64 }); ok {
			required += int(o.Offset())
		}
		return nil, shortInput(required)
	}
	return nil, err
}
