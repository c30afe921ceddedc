// SPDX-License-Identifier: EPL-2.0

package audrev

import (
	"context"

	"github.com/ik5/audrev/formats"
	"github.com/ik5/audrev/formats/wav"
	"github.com/ik5/audrev/reverse"
)

// ReverseToWAV decodes data, reverses it and encodes the result as a
// 16-bit PCM WAV file. contentType may be empty, in which case the format
// is detected from data.
//
// Decode failures are returned as *audio.DecodeError.
//
// Example:
//
//	enc, err := audrev.ReverseToWAV(ctx, clip, "audio/ogg")
//	if err != nil {
//	    return err
//	}
//	w.Header().Set("Content-Type", enc.MIMEType)
//	w.Write(enc.Data)
func ReverseToWAV(ctx context.Context, data []byte, contentType string, opts ...formats.Option) (*wav.Encoded, error) {
	r := reverse.New(formats.NewDecoder(opts...))
	defer r.Close()

	buf, err := r.Reverse(ctx, reverse.Input{Data: data, ContentType: contentType})
	if err != nil {
		return nil, err
	}

	return wav.Encode(buf), nil
}
