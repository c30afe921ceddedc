// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ik5/audrev/audio"
	"github.com/ik5/audrev/formats/aiff"
	"github.com/ik5/audrev/formats/mp3"
	"github.com/ik5/audrev/formats/vorbis"
	"github.com/ik5/audrev/formats/wav"
)

// Registry keys of the built-in decoders.
const (
	WAV  = "wav"
	MP3  = "mp3"
	OGG  = "ogg"
	AIFF = "aiff"
)

// DefaultRegistry returns a new registry holding every built-in decoder.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(WAV, wav.Decoder{})
	r.Register(MP3, mp3.Decoder{})
	r.Register(OGG, vorbis.Decoder{})
	r.Register(AIFF, aiff.Decoder{})

	return r
}

type Option func(*Decoder)

// WithRegistry replaces the built-in decoders.
func WithRegistry(r *audio.Registry) Option {
	return func(d *Decoder) {
		if r != nil {
			d.registry = r
		}
	}
}

// WithMaxDuration rejects inputs that decode to more than limit of audio.
// Zero or less means no limit.
func WithMaxDuration(limit time.Duration) Option {
	return func(d *Decoder) {
		d.maxDuration = limit
	}
}

// Decoder turns compressed bytes into a fully decoded audio.Buffer. It is
// safe for concurrent use until Close is called.
type Decoder struct {
	registry    *audio.Registry
	maxDuration time.Duration
	closed      atomic.Bool
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{registry: DefaultRegistry()}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Decode resolves the format from contentType, falling back to the leading
// bytes of data, and decodes the whole input. Every error is an
// *audio.DecodeError.
func (d *Decoder) Decode(ctx context.Context, data []byte, contentType string) (*audio.Buffer, error) {
	if d.closed.Load() {
		return nil, &audio.DecodeError{Err: audio.ErrClosed}
	}

	if len(data) == 0 {
		return nil, &audio.DecodeError{Err: audio.ErrEmptyInput}
	}

	format, err := Resolve(contentType, data)
	if err != nil {
		return nil, &audio.DecodeError{Err: err}
	}

	dec, ok := d.registry.Get(format)
	if !ok {
		return nil, &audio.DecodeError{
			Format: format,
			Err:    fmt.Errorf("%w: no decoder registered", audio.ErrUnsupportedFormat),
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, &audio.DecodeError{Format: format, Err: err}
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &audio.DecodeError{Format: format, Err: err}
	}
	defer src.Close()

	buf, err := audio.ReadAll(ctx, src, d.maxFrames(src.SampleRate()))
	if err != nil {
		return nil, &audio.DecodeError{Format: format, Err: err}
	}

	if err := buf.Validate(); err != nil {
		return nil, &audio.DecodeError{Format: format, Err: err}
	}

	return buf, nil
}

func (d *Decoder) maxFrames(sampleRate int) int {
	if d.maxDuration <= 0 {
		return 0
	}

	return max(1, int(d.maxDuration.Seconds()*float64(sampleRate)))
}

// Close releases the decoder. Later Decode calls fail with audio.ErrClosed.
func (d *Decoder) Close() error {
	d.closed.Store(true)
	return nil
}
