// SPDX-License-Identifier: EPL-2.0

// Package audio provides the core audio types and primitives.
//
// This package contains the building blocks shared by every other package:
//   - Source interface for streaming decoded audio
//   - Decoder interface and a format Registry
//   - Buffer, a fully decoded clip stored per channel
//   - ReadAll to drain a Source into a Buffer
//   - Reverse to time-reverse a Buffer
//   - DecodeError and the sentinel errors of the decode path
//
// # Source Interface
//
// Format decoders produce a Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples fills dst with interleaved samples and returns io.EOF once the
// stream is finished.
//
// # Buffers
//
// A Buffer keeps one slice per channel, all of equal length:
//
//	buf, err := audio.ReadAll(ctx, source, 0)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(buf.NumChannels(), buf.Frames(), buf.Duration())
//
// Buffers are never modified in place. Reverse allocates a new Buffer of the
// same shape whose channels are the originals read back to front:
//
//	reversed := audio.Reverse(buf)
//
// Interleave flattens a Buffer frame by frame (L0,R0,L1,R1,...) which is the
// order PCM containers store samples in.
//
// # Format Registry
//
// The registry maps format keys to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// # Error Handling
//
// Failures on the decode path are reported as *DecodeError, which matches
// ErrDecode through errors.Is and unwraps to the underlying cause:
//
//	if errors.Is(err, audio.ErrDecode) {
//	    // show a generic failure and let the user retry
//	}
//	if errors.Is(err, audio.ErrUnsupportedFormat) {
//	    // no decoder for this input
//	}
//
// Buffers that break their shape invariants fail Validate with
// ErrInvalidBuffer.
package audio
