// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MPEG-1 and
// MPEG-2 Layer III streams.
//
// # Decoding MP3 Files
//
//	f, _ := os.Open("audio.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
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
//   - Channels: 1 when the first frame header after any ID3v2 tag is mono,
//     2 otherwise
//   - Sample rate: as stored in the stream
//
// go-mp3 always decodes to stereo. For mono streams only the left side of
// its output is kept.
//
// go-mp3 needs to seek to compute the stream length. Readers that cannot
// seek are read into memory first.
//
// Streams that fail to parse are reported with ErrNotMP3File wrapping the
// underlying go-mp3 error.
package mp3
