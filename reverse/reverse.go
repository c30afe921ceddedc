// SPDX-License-Identifier: EPL-2.0

package reverse

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/ik5/audrev/audio"
)

// Capability decodes a compressed clip into sample data. formats.Decoder is
// the production implementation.
type Capability interface {
	Decode(ctx context.Context, data []byte, contentType string) (*audio.Buffer, error)
}

// Input is a compressed clip and the MIME type it was produced with. An
// empty ContentType lets the capability guess from the data.
type Input struct {
	Data        []byte
	ContentType string
}

type Option func(*Reverser)

// WithLogger traces every call at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reverser) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Reverser decodes clips and returns them time-reversed. It keeps no state
// between calls and is safe for concurrent use.
type Reverser struct {
	decoder Capability
	logger  *slog.Logger
	closed  atomic.Bool
}

// New returns a Reverser that owns decoder; Close closes it when it
// implements io.Closer.
func New(decoder Capability, opts ...Option) *Reverser {
	r := &Reverser{
		decoder: decoder,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Reverse decodes in and returns a new buffer with every channel reversed.
// The sample rate and channel layout are kept. Every error is an
// *audio.DecodeError and no buffer is returned with it.
func (r *Reverser) Reverse(ctx context.Context, in Input) (*audio.Buffer, error) {
	if r.closed.Load() {
		return nil, &audio.DecodeError{Err: audio.ErrClosed}
	}

	decoded, err := r.decoder.Decode(ctx, in.Data, in.ContentType)
	if err != nil {
		r.logger.DebugContext(ctx, "decode failed",
			slog.String("content_type", in.ContentType),
			slog.Int("bytes", len(in.Data)),
			slog.Any("error", err))
		return nil, audio.AsDecodeError("", err)
	}

	if err := decoded.Validate(); err != nil {
		return nil, &audio.DecodeError{Err: err}
	}

	reversed := audio.Reverse(decoded)

	r.logger.DebugContext(ctx, "reversed",
		slog.String("content_type", in.ContentType),
		slog.Int("sample_rate", reversed.SampleRate),
		slog.Int("channels", reversed.NumChannels()),
		slog.Int("frames", reversed.Frames()),
		slog.Duration("duration", reversed.Duration()))

	return reversed, nil
}

// Close marks the Reverser closed and closes the decoder if it can be
// closed. Calling Close more than once is a no-op.
func (r *Reverser) Close() error {
	if r.closed.Swap(true) {
		return nil
	}

	if c, ok := r.decoder.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("closing decoder: %w", err)
		}
	}

	return nil
}
