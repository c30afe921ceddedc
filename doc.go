// SPDX-License-Identifier: EPL-2.0

// Package audrev plays recorded clips backwards.
//
// It decodes a compressed clip, reverses every channel and writes the
// result as a canonical 44-byte header PCM WAV file:
//
//	enc, err := audrev.ReverseToWAV(ctx, clip, "audio/mpeg")
//	if err != nil {
//	    // err is an *audio.DecodeError
//	}
//	os.WriteFile("reversed.wav", enc.Data, 0o644)
//
// # Supported Formats
//
// Decoding is delegated to third-party libraries:
//   - WAV (8, 16, 24, 32-bit PCM) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (8, 16, 24, 32-bit PCM) via formats/aiff
//
// # Building Blocks
//
// ReverseToWAV is a thin wrapper over the subpackages, which can be used
// directly for more control:
//
//	dec := formats.NewDecoder(formats.WithMaxDuration(time.Minute))
//	r := reverse.New(dec, reverse.WithLogger(logger))
//	defer r.Close()
//
//	buf, err := r.Reverse(ctx, reverse.Input{Data: clip, ContentType: ct})
//	if err != nil {
//	    return err
//	}
//	err = wav.Write(w, buf)
//
// The output keeps the sample rate and channel layout of the input. Only
// the sample order changes; the 16-bit quantization of the encoder is the
// only transformation applied to sample values.
package audrev
