// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/riff"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/audrev/audio"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE

	// fmt chunk bytes up to and including the SubFormat format code
	extensibleFmtSize = 26
)

var errShortFmtChunk = errors.New("fmt chunk too short")

// pcmReader is an interface for wav.Decoder to allow testing
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type wavSource struct {
	dec        pcmReader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data: make([]int, len(dst)),
			Format: &goaudio.Format{
				NumChannels: s.channels,
				SampleRate:  s.sampleRate,
			},
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	// go-audio reports the end of the data chunk either as io.EOF or as a
	// zero-length read with a nil error.
	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	switch s.bitDepth {
	case 8:
		// 8-bit WAV is unsigned with silence at 128.
		for i := range n {
			dst[i] = float32(s.intBuf.Data[i]-128) / 128.0
		}
	default:
		scale := float32(int64(1) << (s.bitDepth - 1))
		for i := range n {
			dst[i] = float32(s.intBuf.Data[i]) / scale
		}
	}

	if err == io.EOF || n < len(dst) {
		return n, io.EOF
	}
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}

	return n, nil
}

// Decoder reads integer PCM WAV files at 8, 16, 24 or 32 bits with any
// channel count. Chunks other than "fmt " and "data" are skipped.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	header := make([]byte, 12)
	if _, err := io.ReadFull(rs, header); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if !bytes.Equal(header[:4], []byte("RIFF")) || !bytes.Equal(header[8:12], []byte("WAVE")) {
		return nil, ErrNotWavFile
	}
	start, err := rs.Seek(-int64(len(header)), io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	// go-audio keeps the WAVE_FORMAT_EXTENSIBLE tag and skips the
	// SubFormat GUID that names the real sample encoding.
	tag, sub, fmtErr := formatCodes(rs)
	if _, err := rs.Seek(start, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	dec := gowav.NewDecoder(rs)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, ErrUnsupportedWavLayout
	}

	if fmtErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, fmtErr)
	}

	switch {
	case tag == formatExtensible && sub != formatPCM:
		return nil, fmt.Errorf("%w: subformat %d", ErrOnlyPCMSupported, sub)
	case tag != formatPCM && tag != formatExtensible:
		return nil, fmt.Errorf("%w: format tag %d", ErrOnlyPCMSupported, tag)
	}

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	return &wavSource{
		dec:        dec,
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		bitDepth:   int(dec.BitDepth),
	}, nil
}

// formatCodes walks the RIFF chunks of r up to "fmt " and returns its
// format tag. For WAVE_FORMAT_EXTENSIBLE it also returns the format code
// held in the first two bytes of the SubFormat GUID.
func formatCodes(r io.Reader) (tag, sub uint16, err error) {
	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return 0, 0, err
	}

	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, 0, fmt.Errorf("looking for fmt chunk: %w", err)
		}
		if ch.ID != riff.FmtID {
			ch.Done()
			continue
		}

		b := make([]byte, min(ch.Size, extensibleFmtSize))
		if _, err := io.ReadFull(ch, b); err != nil {
			return 0, 0, fmt.Errorf("reading fmt chunk: %w", err)
		}
		if len(b) < 2 {
			return 0, 0, errShortFmtChunk
		}

		tag = binary.LittleEndian.Uint16(b)
		if tag != formatExtensible {
			return tag, 0, nil
		}
		if len(b) < extensibleFmtSize {
			return 0, 0, errShortFmtChunk
		}

		return tag, binary.LittleEndian.Uint16(b[24:]), nil
	}
}
