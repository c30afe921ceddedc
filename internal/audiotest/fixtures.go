// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math/bits"
)

// WAVBytes builds an in-memory PCM WAV file. samples are interleaved
// integer values at the given bit depth; 8-bit values are written unsigned
// as the format requires, so pass them already offset by 128.
func WAVBytes(sampleRate, channels, bitsPerSample int, samples []int) []byte {
	return wavBytes(sampleRate, channels, bitsPerSample, samples, nil)
}

// WAVBytesWithChunk is WAVBytes with an extra chunk placed between "fmt "
// and "data".
func WAVBytesWithChunk(sampleRate, channels, bitsPerSample int, samples []int, id string, payload []byte) []byte {
	return wavBytes(sampleRate, channels, bitsPerSample, samples, &chunk{id: id, payload: payload})
}

type chunk struct {
	id      string
	payload []byte
}

func wavBytes(sampleRate, channels, bitsPerSample int, samples []int, extra *chunk) []byte {
	bytesPerSample := bitsPerSample / 8
	dataSize := len(samples) * bytesPerSample

	extraSize := 0
	if extra != nil {
		extraSize = 8 + len(extra.payload) + len(extra.payload)%2
	}

	buf := new(bytes.Buffer)
	le := binary.LittleEndian

	buf.WriteString("RIFF")
	binary.Write(buf, le, uint32(36+extraSize+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, le, uint32(16))
	binary.Write(buf, le, uint16(1))
	binary.Write(buf, le, uint16(channels))
	binary.Write(buf, le, uint32(sampleRate))
	binary.Write(buf, le, uint32(sampleRate*channels*bytesPerSample))
	binary.Write(buf, le, uint16(channels*bytesPerSample))
	binary.Write(buf, le, uint16(bitsPerSample))

	if extra != nil {
		buf.WriteString(extra.id)
		binary.Write(buf, le, uint32(len(extra.payload)))
		buf.Write(extra.payload)
		if len(extra.payload)%2 == 1 {
			buf.WriteByte(0)
		}
	}

	buf.WriteString("data")
	binary.Write(buf, le, uint32(dataSize))

	for _, s := range samples {
		switch bitsPerSample {
		case 8:
			buf.WriteByte(byte(s))
		case 16:
			binary.Write(buf, le, int16(s))
		case 24:
			v := uint32(int32(s))
			buf.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16)})
		case 32:
			binary.Write(buf, le, int32(s))
		}
	}

	return buf.Bytes()
}

// AIFFBytes builds an in-memory 16-bit AIFF file from interleaved samples.
func AIFFBytes(sampleRate, channels int, samples []int16) []byte {
	be := binary.BigEndian
	dataSize := len(samples) * 2
	frames := 0
	if channels > 0 {
		frames = len(samples) / channels
	}

	buf := new(bytes.Buffer)

	buf.WriteString("FORM")
	binary.Write(buf, be, uint32(4+8+18+8+8+dataSize))
	buf.WriteString("AIFF")

	buf.WriteString("COMM")
	binary.Write(buf, be, uint32(18))
	binary.Write(buf, be, uint16(channels))
	binary.Write(buf, be, uint32(frames))
	binary.Write(buf, be, uint16(16))
	buf.Write(extended80(uint64(sampleRate)))

	buf.WriteString("SSND")
	binary.Write(buf, be, uint32(8+dataSize))
	binary.Write(buf, be, uint32(0)) // offset
	binary.Write(buf, be, uint32(0)) // block size
	for _, s := range samples {
		binary.Write(buf, be, s)
	}

	return buf.Bytes()
}

// extended80 encodes a whole number as an IEEE 754 80-bit extended float,
// the representation AIFF uses for its sample rate.
func extended80(v uint64) []byte {
	out := make([]byte, 10)
	if v == 0 {
		return out
	}

	n := bits.Len64(v)
	exp := uint16(16383 + n - 1)
	mant := v << (64 - n)

	binary.BigEndian.PutUint16(out[0:2], exp)
	binary.BigEndian.PutUint64(out[2:10], mant)

	return out
}

// MP3Frames builds count silent MPEG-1 Layer III frames at 128 kbps and
// 44.1 kHz, mono or stereo. Each frame is 417 bytes and decodes
// to 1152 samples per channel.
func MP3Frames(count int, mono bool) []byte {
	const frameSize = 144 * 128000 / 44100

	mode := byte(0x00)
	if mono {
		mode = 0xC0
	}

	out := make([]byte, 0, count*frameSize)
	for range count {
		frame := make([]byte, frameSize)
		copy(frame, []byte{0xFF, 0xFB, 0x90, mode})
		out = append(out, frame...)
	}

	return out
}

// ID3Tag builds an empty ID3v2.4 tag whose frames area is size bytes long.
func ID3Tag(size int) []byte {
	tag := make([]byte, 10+size)
	copy(tag, "ID3")
	tag[3] = 4
	tag[6] = byte(size>>21) & 0x7F
	tag[7] = byte(size>>14) & 0x7F
	tag[8] = byte(size>>7) & 0x7F
	tag[9] = byte(size) & 0x7F

	return tag
}

// WAVExtensibleBytes is WAVBytes with a 40-byte WAVE_FORMAT_EXTENSIBLE fmt
// chunk whose SubFormat GUID carries subFormat (1 for PCM, 3 for float).
func WAVExtensibleBytes(sampleRate, channels, bitsPerSample int, subFormat uint16, samples []int) []byte {
	const (
		fmtEnd    = 36 // RIFF header, fmt chunk header and 16-byte body
		extraSize = 24 // cbSize, valid bits, channel mask, GUID
	)

	plain := WAVBytes(sampleRate, channels, bitsPerSample, samples)
	le := binary.LittleEndian

	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, le, le.Uint32(plain[4:])+extraSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, le, uint32(16+extraSize))
	binary.Write(buf, le, uint16(0xFFFE))
	buf.Write(plain[22:fmtEnd])
	binary.Write(buf, le, uint16(22))
	binary.Write(buf, le, uint16(bitsPerSample))
	binary.Write(buf, le, uint32(1<<channels-1))
	binary.Write(buf, le, subFormat)
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71})

	buf.Write(plain[fmtEnd:])

	return buf.Bytes()
}
