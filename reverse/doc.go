// SPDX-License-Identifier: EPL-2.0

// Package reverse decodes compressed audio clips and time-reverses them.
//
// A Reverser owns a decode Capability for its whole life:
//
//	r := reverse.New(formats.NewDecoder(), reverse.WithLogger(logger))
//	defer r.Close()
//
//	buf, err := r.Reverse(ctx, reverse.Input{Data: clip, ContentType: "audio/ogg"})
//	if err != nil {
//	    var de *audio.DecodeError
//	    errors.As(err, &de) // always true
//	}
//	encoded := wav.Encode(buf)
//
// The returned buffer has the sample rate, channel count and frame count
// of the decoded clip, with channel c holding the decoded channel c read
// back to front. The decoded buffer is never modified and Input.Data is
// only read.
package reverse
