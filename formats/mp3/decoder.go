// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audrev/audio"
)

// go-mp3 always produces 16-bit little-endian stereo, duplicating the
// samples of mono streams into both sides.
const (
	outputChannels = 2
	bytesPerSample = 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	channels   int // 1 keeps only the left side of go-mp3's output
	buf        []byte
	// bytes left over from the previous Read; go-mp3 does not promise
	// reads aligned to whole samples
	pending []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / s.unit() } // sample capacity, not bytes

// unit is the number of decoded bytes behind one output sample.
func (s *source) unit() int {
	return bytesPerSample * outputChannels / s.channels
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	unit := s.unit()
	bytesNeeded := len(dst) * unit
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	off := copy(s.buf, s.pending)
	s.pending = s.pending[:0]

	n, err := s.dec.Read(s.buf[off:])
	n += off

	samples := n / unit
	if n%unit != 0 {
		s.pending = append(s.pending, s.buf[samples*unit:n]...)
	}

	for i := range samples {
		val := int16(binary.LittleEndian.Uint16(s.buf[i*unit:]))
		dst[i] = float32(val) / 32768.0
	}

	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("%w", err)
	}

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-mp3 can only compute the stream length with a Seeker; keep the
	// whole clip in memory so it gets one.
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading mp3 data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	channels, err := streamChannels(rs)
	if err != nil {
		return nil, fmt.Errorf("reading mp3 data: %w", err)
	}

	dec, err := gomp3.NewDecoder(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	bufSize := 8192
	if l := dec.Length(); l > 0 && l < int64(bufSize) {
		bufSize = int(l)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   channels,
		buf:        make([]byte, bufSize),
	}, nil
}
