// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"context"
	"fmt"
	"io"
	"time"
)

const (
	defaultReadSize = 4096
	maxEmptyReads   = 100
)

// Buffer holds fully decoded audio as one sample slice per channel.
// Samples are float32 in [-1,1]; every channel has the same length.
//
// A Buffer is treated as immutable once handed out: functions in this
// module that transform a Buffer return a new one.
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

// NewBuffer allocates a zeroed buffer with the given shape.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	buf := &Buffer{
		SampleRate: sampleRate,
		Channels:   make([][]float32, channels),
	}
	for c := range buf.Channels {
		buf.Channels[c] = make([]float32, frames)
	}

	return buf
}

func (b *Buffer) NumChannels() int { return len(b.Channels) }

// Frames is the number of samples per channel.
func (b *Buffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}

	return len(b.Channels[0])
}

func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}

	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// Validate checks the shape invariants. Violations are reported as
// ErrInvalidBuffer.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidBuffer)
	}
	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidBuffer, b.SampleRate)
	}
	if len(b.Channels) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidBuffer)
	}

	frames := len(b.Channels[0])
	for c, ch := range b.Channels[1:] {
		if len(ch) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrInvalidBuffer, c+1, len(ch), frames)
		}
	}

	return nil
}

// Interleave flattens the channels frame by frame: L0,R0,L1,R1,...
func (b *Buffer) Interleave() []float32 {
	channels := len(b.Channels)
	frames := b.Frames()
	out := make([]float32, frames*channels)

	for c, ch := range b.Channels {
		for i := range frames {
			out[i*channels+c] = ch[i]
		}
	}

	return out
}

// ReadAll drains src into a Buffer. maxFrames limits the decoded length;
// zero or less means no limit. ctx is checked between reads.
//
// A trailing partial frame (fewer samples than channels) is dropped so that
// all channels keep the same length.
func ReadAll(ctx context.Context, src Source, maxFrames int) (*Buffer, error) {
	channels := src.Channels()
	sampleRate := src.SampleRate()
	if channels <= 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: source reports %d channels at %d Hz",
			ErrInvalidBuffer, channels, sampleRate)
	}

	readSize := src.BufSize()
	if readSize < channels {
		readSize = defaultReadSize
	}
	readSize -= readSize % channels
	if readSize == 0 {
		readSize = channels
	}

	buf := &Buffer{
		SampleRate: sampleRate,
		Channels:   make([][]float32, channels),
	}
	for c := range buf.Channels {
		buf.Channels[c] = make([]float32, 0, readSize/channels)
	}

	tmp := make([]float32, readSize)
	// Running sample index; the channel of a sample is pos % channels.
	pos := 0
	empty := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		n, err := src.ReadSamples(tmp)
		for i := range n {
			c := pos % channels
			buf.Channels[c] = append(buf.Channels[c], tmp[i])
			pos++
		}

		if maxFrames > 0 && pos/channels > maxFrames {
			return nil, fmt.Errorf("%w: more than %d frames", ErrTooLong, maxFrames)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, io.ErrNoProgress
			}
		} else {
			empty = 0
		}
	}

	if rem := pos % channels; rem != 0 {
		for c := range rem {
			buf.Channels[c] = buf.Channels[c][:len(buf.Channels[c])-1]
		}
	}

	return buf, nil
}
