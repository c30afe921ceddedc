// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF audio file decoding.
//
// This package uses github.com/go-audio/aiff to parse AIFF containers and
// exposes the sound data as an audio.Source of float32 samples normalized
// to [-1.0, 1.0].
//
// # Supported Formats
//
//   - Uncompressed AIFF ("FORM" ... "AIFF")
//   - 8, 16, 24 and 32-bit signed big-endian samples
//   - Any channel count and sample rate
//
// AIFF-C files are rejected with ErrUnsupportedAiffLayout since they may
// carry compressed sound data.
//
// # Decoding AIFF Files
//
//	f, _ := os.Open("audio.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//	buf, err := audio.ReadAll(ctx, src, 0)
//
// go-audio needs an io.ReadSeeker. Readers that cannot seek are read into
// memory first.
//
// # Errors
//
//   - ErrNotAiffFile: the input does not start with a FORM header
//   - ErrUnsupportedBitDepth: sample size is not 8, 16, 24 or 32 bits
//   - ErrUnsupportedAiffLayout: AIFF-C, missing COMM chunk or zero channels
package aiff
