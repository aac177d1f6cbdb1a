package rarblock

import (
	"log/slog"
	"os"
	"strconv"
)

// Options tunes the Scanner and the verifiers. The block decoders take no
// options.
type Options struct {
	Logger *slog.Logger
	// StrictCRC stops a scan at the first header whose checksum does not
	// match. Marker blocks are exempt.
	StrictCRC bool
	// SkipUnsupported steps over blocks the decoder recognises but cannot
	// decode instead of failing the scan.
	SkipUnsupported bool
}

// Option adjusts Options.
type Option func(*Options)

// WithLogger sets the logger; nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithStrictCRC sets Options.StrictCRC.
func WithStrictCRC() Option { return func(o *Options) { o.StrictCRC = true } }

// WithSkipUnsupported sets Options.SkipUnsupported.
func WithSkipUnsupported() Option { return func(o *Options) { o.SkipUnsupported = true } }

// defaultOptions reads RARBLOCK_DEBUG and RARBLOCK_STRICT_CRC.
func defaultOptions() Options {
	o := Options{Logger: slog.New(slog.DiscardHandler)}
	if os.Getenv("RARBLOCK_DEBUG") != "" {
		o.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	if v, err := strconv.ParseBool(os.Getenv("RARBLOCK_STRICT_CRC")); err == nil {
		o.StrictCRC = v
	}
	return o
}

func newOptions(opts []Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
