// SPDX-License-Identifier: EPL-2.0

// Package formats ties the per-format decoders together.
//
// A Decoder resolves the format of an input from its MIME type, falling
// back to the leading bytes when the type is missing or generic, then
// decodes the whole input into an audio.Buffer:
//
//	dec := formats.NewDecoder(formats.WithMaxDuration(5 * time.Minute))
//	defer dec.Close()
//
//	buf, err := dec.Decode(ctx, data, "audio/ogg")
//	if errors.Is(err, audio.ErrUnsupportedFormat) {
//	    // nothing can decode this input
//	}
//
// Every Decode error is an *audio.DecodeError.
//
// # Recognized inputs
//
//	wav   audio/wav, audio/x-wav, audio/wave, audio/vnd.wave   RIFF....WAVE
//	mp3   audio/mpeg, audio/mp3, audio/mpeg3, audio/x-mpeg-3    ID3 or frame sync
//	ogg   audio/ogg, application/ogg, audio/vorbis              OggS
//	aiff  audio/aiff, audio/x-aiff                              FORM....AIFF
//
// Types such as audio/webm or audio/ogg with codecs=opus are recognized as
// unsupported and fail without sniffing.
package formats
