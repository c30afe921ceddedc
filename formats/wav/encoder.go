// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audrev/audio"
	"github.com/ik5/audrev/utils"
)

const (
	// MIMEType is the content type of every file this package produces.
	MIMEType = "audio/wav"

	// HeaderSize is the size of the canonical RIFF/WAVE PCM header.
	HeaderSize = 44

	bitsPerSample  = 16
	bytesPerSample = bitsPerSample / 8
	fmtChunkSize   = 16

	// samples per Write call when streaming
	chunkSize = 8192
)

// Encoded is a complete in-memory WAV file. The caller owns Data.
type Encoded struct {
	Data     []byte
	MIMEType string
}

// Encode serializes buf as a 16-bit PCM WAV file: the 44-byte header
// followed by the interleaved samples, nothing else.
//
// buf must satisfy audio.Buffer.Validate and fit the format limits (at most
// 65535 channels, sizes within 32 bits). Anything else is a programming
// error and Encode panics.
func Encode(buf *audio.Buffer) *Encoded {
	dataSize, err := checkBuffer(buf)
	if err != nil {
		panic("wav: " + err.Error())
	}

	out := bytes.NewBuffer(make([]byte, 0, HeaderSize+int(dataSize)))
	if err := Write(out, buf); err != nil {
		panic("wav: " + err.Error())
	}

	return &Encoded{Data: out.Bytes(), MIMEType: MIMEType}
}

// Write streams the same bytes Encode would produce to w. Invalid buffers
// are reported as audio.ErrInvalidBuffer instead of panicking.
func Write(w io.Writer, buf *audio.Buffer) error {
	dataSize, err := checkBuffer(buf)
	if err != nil {
		return err
	}

	header := make([]byte, HeaderSize)
	putHeader(header, buf.SampleRate, buf.NumChannels(), dataSize)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	frames := buf.Frames()
	if frames == 0 {
		return nil
	}

	channels := buf.NumChannels()
	framesPerChunk := max(1, chunkSize/channels)
	size := min(frames, framesPerChunk) * channels

	interleaved := make([]float32, size)
	pcm := make([]int16, size)
	out := make([]byte, size*bytesPerSample)

	for start := 0; start < frames; start += framesPerChunk {
		end := min(start+framesPerChunk, frames)

		n := 0
		for i := start; i < end; i++ {
			for _, ch := range buf.Channels {
				interleaved[n] = ch[i]
				n++
			}
		}

		utils.Float32ToInt16Slice(pcm[:n], interleaved[:n])
		putSamples(out, pcm[:n])

		if _, err := w.Write(out[:n*bytesPerSample]); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// WriteWAV16 writes interleaved 16-bit PCM samples with the given channel
// count at sampleRate.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels <= 0 || sampleRate <= 0 {
		return fmt.Errorf("%w: %d channels at %d Hz", audio.ErrInvalidBuffer, channels, sampleRate)
	}
	if len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d samples do not divide into %d channels",
			audio.ErrInvalidBuffer, len(samples), channels)
	}

	dataSize, err := checkLimits(sampleRate, channels, len(samples))
	if err != nil {
		return err
	}

	header := make([]byte, HeaderSize)
	putHeader(header, sampleRate, channels, dataSize)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*bytesPerSample)

	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		buf = buf[:len(chunk)*bytesPerSample]
		putSamples(buf, chunk)

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// putSamples writes samples into dst as 16-bit little-endian values.
func putSamples(dst []byte, samples []int16) {
	for i, v := range samples {
		binary.LittleEndian.PutUint16(dst[i*bytesPerSample:], uint16(v))
	}
}

// DataSize returns the length in bytes of the "data" chunk payload for buf.
func DataSize(buf *audio.Buffer) int {
	return buf.Frames() * buf.NumChannels() * bytesPerSample
}

func checkBuffer(buf *audio.Buffer) (uint32, error) {
	if err := buf.Validate(); err != nil {
		return 0, err
	}

	return checkLimits(buf.SampleRate, buf.NumChannels(), buf.Frames()*buf.NumChannels())
}

// checkLimits verifies every header field fits its width and returns the
// data chunk size.
func checkLimits(sampleRate, channels, samples int) (uint32, error) {
	if channels > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %d channels exceed the WAV limit", audio.ErrInvalidBuffer, channels)
	}

	byteRate := uint64(sampleRate) * uint64(channels) * bytesPerSample
	if byteRate > math.MaxUint32 {
		return 0, fmt.Errorf("%w: byte rate %d exceeds 32 bits", audio.ErrInvalidBuffer, byteRate)
	}

	dataSize := uint64(samples) * bytesPerSample
	if 36+dataSize > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d bytes of audio exceed the WAV size limit", audio.ErrInvalidBuffer, dataSize)
	}

	return uint32(dataSize), nil
}

func putHeader(header []byte, sampleRate, channels int, dataSize uint32) {
	numChannels := uint16(channels)
	byteRate := uint32(sampleRate) * uint32(numChannels) * bytesPerSample
	blockAlign := numChannels * bytesPerSample

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)
}
