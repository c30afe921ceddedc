// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding uses github.com/go-audio/wav for chunk parsing; encoding writes
// the canonical 44-byte RIFF/WAVE header by hand so the output is byte for
// byte predictable.
//
// # Decoding WAV Files
//
// The Decoder accepts integer PCM at 8, 16, 24 and 32 bits with any channel
// count and sample rate. Chunks other than "fmt " and "data" are skipped:
//
//	source, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	buf, err := audio.ReadAll(ctx, source, 0)
//
// # Encoding WAV Files
//
// Encode turns an audio.Buffer into a complete in-memory file:
//
//	enc := wav.Encode(buf)
//	// enc.Data is the file, enc.MIMEType is "audio/wav"
//
// The output is always 16-bit PCM:
//   - 44-byte header: RIFF, WAVE, a 16-byte "fmt " chunk and the "data"
//     chunk header, all integers little-endian
//   - samples interleaved frame by frame (L0,R0,L1,R1,...)
//   - no other chunks and no trailing padding
//
// so the file is exactly 44 + frames*channels*2 bytes long.
//
// Samples are quantized with utils.Float32ToInt16: clamped to [-1,1],
// scaled by 32768 when negative and 32767 otherwise, rounded half to even.
//
// Encode panics on a buffer that fails Validate; such buffers can only come
// from a programming error. Write streams the same bytes to an io.Writer and
// returns audio.ErrInvalidBuffer instead. WriteWAV16 writes samples that
// are already 16-bit.
//
// # Error Handling
//
// The package defines several errors:
//   - ErrNotWavFile: the input does not start with RIFF/WAVE
//   - ErrUnsupportedWavLayout: the header chunks could not be read
//   - ErrOnlyPCMSupported: compressed or floating point data
//   - ErrUnsupportedBitDepth: a bit depth other than 8, 16, 24 or 32
package wav
