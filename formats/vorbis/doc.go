// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis
// files. Vorbis is a free, open-source lossy audio compression format.
//
// # Decoding Vorbis Files
//
//	f, _ := os.Open("audio.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// # Output Format
//
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: as stored in the stream
//   - Sample rate: as stored in the stream
//
// Samples are interleaved and ReadSamples always returns whole frames:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// Streams that fail to parse are reported with ErrNotVorbisFile wrapping
// the underlying oggvorbis error. Ogg streams carrying other codecs, such
// as Opus, fail the same way.
package vorbis
