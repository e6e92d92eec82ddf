// vecbin converts a JSON dataset of equal-length integer vectors into the
// fixed big-endian layout read by native clustering tools:
//
//	uint32 dimension | uint64 count | count*dimension int64
//
// Sources and destinations are local paths, "-" for stdin/stdout,
// s3://bucket/key or minio://bucket/key.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/spf13/pflag"

	"github.com/hupe1980/vecbin"
	"github.com/hupe1980/vecbin/blobstore/s3"
	"github.com/hupe1980/vecbin/codec"
	"github.com/hupe1980/vecbin/persistence"
)

// usageError marks errors caused by bad invocation rather than bad input.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }
func (e usageError) ExitCode() int { return 2 }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

type config struct {
	codec         string
	jsonc         bool
	compress      string
	verify        bool
	logLevel      string
	logFormat     string
	s3PartSize    int64
	s3Concurrency int
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cfg config

	flagSet := pflag.NewFlagSet("vecbin", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&cfg.codec, "codec", codec.Default.Name(), "input decoder: "+strings.Join(codec.Names(), " | "))
	flagSet.BoolVar(&cfg.jsonc, "jsonc", false, "accept comments and trailing commas in the input")
	flagSet.StringVar(&cfg.compress, "compress", "none", "output compression: none | lz4 | zstd")
	flagSet.BoolVar(&cfg.verify, "verify", false, "read the destination back and compare its CRC32")
	uploadDefaults := s3.DefaultUploadConfig()
	flagSet.Int64Var(&cfg.s3PartSize, "s3-part-size", uploadDefaults.PartSize, "multipart upload part size in bytes for s3:// destinations")
	flagSet.IntVar(&cfg.s3Concurrency, "s3-concurrency", uploadDefaults.Concurrency, "concurrent part uploads for s3:// destinations")
	flagSet.StringVar(&cfg.logLevel, "log-level", "warn", "debug | info | warn | error")
	flagSet.StringVar(&cfg.logFormat, "log-format", "text", "text | json")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stdout, flagSet)
			return nil
		}
		return usageError{err}
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stdout, flagSet)
		return nil
	}

	positional := flagSet.Args()
	if len(positional) != 2 {
		return usagef("expected <json-source> <binary-destination>, got %d argument(s) (see --help)", len(positional))
	}

	opts, err := cfg.options(stderr)
	if err != nil {
		return err
	}

	if cfg.verify && positional[1] == "-" {
		return usagef("--verify cannot read back stdout")
	}
	if cfg.s3PartSize < manager.MinUploadPartSize {
		return usagef("--s3-part-size must be at least %d bytes", manager.MinUploadPartSize)
	}
	if cfg.s3Concurrency < 1 {
		return usagef("--s3-concurrency must be positive")
	}

	r := resolver{
		stdin:  stdin,
		stdout: stdout,
		upload: s3.UploadConfig{PartSize: cfg.s3PartSize, Concurrency: cfg.s3Concurrency},
	}
	src, err := r.resolve(ctx, positional[0])
	if err != nil {
		return err
	}
	dst, err := r.resolve(ctx, positional[1])
	if err != nil {
		return err
	}

	_, err = vecbin.New(opts...).Convert(ctx, src, dst)
	return err
}

func (c config) options(stderr io.Writer) ([]vecbin.Option, error) {
	dec, ok := codec.ByName(c.codec)
	if !ok {
		return nil, usagef("unknown codec %q (want one of %s)", c.codec, strings.Join(codec.Names(), ", "))
	}

	if c.jsonc && dec.Name() != "json" && dec.Name() != "go-json" {
		return nil, usagef("--jsonc only applies to the json and go-json codecs")
	}

	compression, err := persistence.ParseCompression(c.compress)
	if err != nil {
		return nil, usageError{err}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.logLevel)); err != nil {
		return nil, usagef("invalid --log-level %q", c.logLevel)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch c.logFormat {
	case "text":
		handler = slog.NewTextHandler(stderr, handlerOpts)
	case "json":
		handler = slog.NewJSONHandler(stderr, handlerOpts)
	default:
		return nil, usagef("invalid --log-format %q (want text or json)", c.logFormat)
	}

	return []vecbin.Option{
		vecbin.WithCodec(dec),
		vecbin.WithJSONC(c.jsonc),
		vecbin.WithCompression(compression),
		vecbin.WithVerify(c.verify),
		vecbin.WithLogger(vecbin.NewLogger(handler)),
	}, nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `vecbin - convert a JSON vector dataset into a big-endian binary file

Usage:
  vecbin [flags] <json-source> <binary-destination>

The input must be an object with a "vectors" key holding a non-empty list
of equal-length integer lists. Other keys are ignored. JSON is expected
unless --codec selects yaml or cbor. The output is a
uint32 dimension, a uint64 vector count and every value as an int64, all
in network byte order. Nothing is written if validation fails.

Locations:
  -                    stdin (source) or stdout (destination)
  path, file://path    local file, replaced atomically
  s3://bucket/key      AWS S3, credentials from the default AWS chain
  minio://bucket/key   MinIO or another S3-compatible endpoint

Environment:
  VECBIN_MINIO_ENDPOINT    MinIO host:port (required for minio://)
  VECBIN_MINIO_ACCESS_KEY  MinIO access key
  VECBIN_MINIO_SECRET_KEY  MinIO secret key
  VECBIN_MINIO_INSECURE    set to 1 to use plain HTTP

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
