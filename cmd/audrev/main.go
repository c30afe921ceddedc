// SPDX-License-Identifier: EPL-2.0

// Command audrev writes a time-reversed copy of an audio clip as a 16-bit
// PCM WAV file.
//
// Usage:
//
//	audrev [-config path] [-type content-type] [-max-duration d] <input> <output.wav>
//
// Use "-" as input to read standard input and as output to write standard
// output.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ik5/audrev/audio"
	"github.com/ik5/audrev/formats"
	"github.com/ik5/audrev/formats/wav"
	"github.com/ik5/audrev/internal/config"
	"github.com/ik5/audrev/reverse"
)

const stdio = "-"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("audrev", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to configuration file")
	contentType := fs.String("type", "", "Content type of the input, detected when empty")
	maxDuration := fs.Duration("max-duration", -1, "Longest accepted input, 0 for no limit (overrides config)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: audrev [flags] <input> <output.wav>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
			return 1
		}
	}
	if *maxDuration >= 0 {
		cfg.Decode.MaxDuration = *maxDuration
	}

	// keep the WAV stream clean
	if outPath == stdio && cfg.Logging.Output == "stdout" {
		cfg.Logging.Output = "stderr"
	}
	logger := initLogger(cfg.Logging, stdout, stderr)

	ct := resolveContentType(*contentType, cfg.Decode.DefaultContentType, inPath)

	logger.Info("Reversing clip",
		slog.String("input", inPath),
		slog.String("output", outPath),
		slog.String("content_type", ct),
		slog.Duration("max_duration", cfg.Decode.MaxDuration),
	)

	data, err := readInput(inPath, stdin)
	if err != nil {
		logger.Error("Failed to read input", slog.String("input", inPath), slog.Any("error", err))
		return 1
	}

	r := reverse.New(
		formats.NewDecoder(formats.WithMaxDuration(cfg.Decode.MaxDuration)),
		reverse.WithLogger(logger),
	)
	defer r.Close()

	start := time.Now()
	buf, err := r.Reverse(ctx, reverse.Input{Data: data, ContentType: ct})
	if err != nil {
		var de *audio.DecodeError
		if errors.As(err, &de) && de.Format != "" {
			logger.Error("Failed to decode input", slog.String("format", de.Format), slog.Any("error", de.Err))
		} else {
			logger.Error("Failed to decode input", slog.Any("error", err))
		}
		return 1
	}

	logger.Info("Decoded clip",
		slog.Int("sample_rate", buf.SampleRate),
		slog.Int("channels", buf.NumChannels()),
		slog.Int("frames", buf.Frames()),
		slog.Duration("duration", buf.Duration()),
		slog.Duration("elapsed", time.Since(start)),
	)

	if err := writeOutput(outPath, stdout, buf); err != nil {
		logger.Error("Failed to write output", slog.String("output", outPath), slog.Any("error", err))
		return 1
	}

	logger.Info("Wrote WAV",
		slog.String("output", outPath),
		slog.Int("bytes", wav.HeaderSize+wav.DataSize(buf)),
	)

	return 0
}

// resolveContentType prefers the flag, then the configured default, then
// the file extension. An empty result means the data is sniffed.
func resolveContentType(flagValue, configured, inPath string) string {
	switch {
	case flagValue != "":
		return flagValue
	case configured != "":
		return configured
	case inPath == stdio:
		return ""
	}

	return mime.TypeByExtension(filepath.Ext(inPath))
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == stdio {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

func writeOutput(path string, stdout io.Writer, buf *audio.Buffer) error {
	if path == stdio {
		return wav.Write(stdout, buf)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := wav.Write(f, buf); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// initLogger creates and configures the structured logger based on configuration
func initLogger(cfg config.LoggingConfig, stdout, stderr io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var output io.Writer
	switch cfg.Output {
	case "stdout":
		output = stdout
	case "stderr", "":
		output = stderr
	default:
		// Assume it's a file path
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open log file %s: %v, falling back to stderr\n", cfg.Output, err)
			output = stderr
		} else {
			output = file
		}
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
