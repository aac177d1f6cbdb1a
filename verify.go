package rarblock

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// Report summarises one pass over an archive's headers.
type Report struct {
	Path    string
	Version Version
	// SignatureOffset is non-zero for archives behind a self-extracting stub.
	SignatureOffset int64
	Blocks          int
	Files           []string
	// CRCMismatches lists the file offsets of headers whose checksum failed.
	CRCMismatches []int64
}

// Valid reports whether every header checksum matched.
func (r *Report) Valid() bool { return len(r.CRCMismatches) == 0 }

// VerifyArchive scans every block header of the archive at path and checks
// its checksum. Data areas are skipped, not read. A nil fsys means the local
// filesystem.
func VerifyArchive(ctx context.Context, fsys FileSystem, path string, opts ...Option) (*Report, error) {
	o := newOptions(opts)
	log := o.Logger.With("path", path)

	version, offset, err := locateSignature(fsys, path)
	if err != nil {
		return nil, err
	}
	rep := &Report{Path: path, Version: version, SignatureOffset: offset}
	switch version {
	case VersionRar3:
	case VersionRar5:
		return rep, fmt.Errorf("%s: %w", path, &DecodeError{Kind: KindUnsupportedVersion, Detail: "RAR5 signature"})
	default:
		return rep, fmt.Errorf("%s: %w", path, &DecodeError{Kind: KindUnsupportedVersion, Detail: "no RAR signature"})
	}

	src, f, err := OpenSource(ctx, fsys, path, offset)
	if err != nil {
		return rep, err
	}
	defer func() { _ = f.Close() }()

	sc := NewScanner(src, opts...)
	for sc.Next() {
		b := sc.Block()
		rep.Blocks++
		if fh, ok := b.(*FileHeader); ok {
			rep.Files = append(rep.Files, fh.DecodedName())
		}
		if b.Type() != BlockMarker && !b.CRCValid() {
			at := offset + sc.Offset()
			log.Warn("header checksum mismatch", "type", b.Type(), "offset", at)
			rep.CRCMismatches = append(rep.CRCMismatches, at)
		}
	}
	if err := sc.Err(); err != nil {
		return rep, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug("verified", "blocks", rep.Blocks, "mismatches", len(rep.CRCMismatches))
	return rep, nil
}

// locateSignature peeks at the head of the file for the archive signature.
func locateSignature(fsys FileSystem, path string) (Version, int64, error) {
	if fsys == nil {
		fsys = defaultFS
	}
	f, err := fsys.Open(path)
	if err != nil {
		return VersionUnknown, 0, err
	}
	defer func() { _ = f.Close() }()
	br := bufio.NewReaderSize(f, sfxSearchLimit+len(sigRar5))
	head, err := br.Peek(sfxSearchLimit + len(sigRar5))
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return VersionUnknown, 0, fmt.Errorf("read %s: %w", path, err)
	}
	v, off := DetectVersion(head)
	if off < 0 {
		return VersionUnknown, 0, nil
	}
	return v, int64(off), nil
}

// VerifyArchives verifies each archive independently, at most limit at a
// time (no limit when limit <= 0). Reports are returned in input order; the
// first error cancels the remaining work.
func VerifyArchives(ctx context.Context, fsys FileSystem, paths []string, limit int, opts ...Option) ([]*Report, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	reports := make([]*Report, len(paths))
	for i, p := range paths {
		g.Go(func() error {
			rep, err := VerifyArchive(ctx, fsys, p, opts...)
			reports[i] = rep
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}
