// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"bytes"
	"fmt"
	"mime"
	"strings"

	"github.com/ik5/audrev/audio"
)

var mediaTypes = map[string]string{
	"audio/wav":          WAV,
	"audio/x-wav":        WAV,
	"audio/wave":         WAV,
	"audio/vnd.wave":     WAV,
	"audio/mpeg":         MP3,
	"audio/mp3":          MP3,
	"audio/mpeg3":        MP3,
	"audio/x-mpeg-3":     MP3,
	"audio/ogg":          OGG,
	"application/ogg":    OGG,
	"audio/vorbis":       OGG,
	"audio/x-vorbis+ogg": OGG,
	"audio/aiff":         AIFF,
	"audio/x-aiff":       AIFF,
}

// Media types we recognize but have no decoder for. Sniffing is skipped for
// them so a webm upload is never mistaken for something else.
var unsupportedTypes = map[string]struct{}{
	"audio/webm": {},
	"video/webm": {},
	"audio/mp4":  {},
	"audio/aac":  {},
	"audio/flac": {},
	"audio/opus": {},
	"audio/amr":  {},
}

// ForContentType maps a MIME type to a registry key. ok is false when the
// type carries no usable hint and the data should be sniffed instead. A
// known but undecodable type returns audio.ErrUnsupportedFormat.
func ForContentType(contentType string) (format string, ok bool, err error) {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return "", false, nil
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false, nil
	}

	if format, ok := mediaTypes[mediaType]; ok {
		if format == OGG {
			if codecs := strings.ToLower(params["codecs"]); codecs != "" && codecs != "vorbis" {
				return "", false, fmt.Errorf("%w: %s with codecs %q", audio.ErrUnsupportedFormat, mediaType, codecs)
			}
		}
		return format, true, nil
	}

	if _, ok := unsupportedTypes[mediaType]; ok {
		return "", false, fmt.Errorf("%w: %s", audio.ErrUnsupportedFormat, mediaType)
	}

	return "", false, nil
}

// Sniff guesses the format from the first bytes of data.
func Sniff(data []byte) (string, bool) {
	switch {
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return WAV, true
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("FORM")) && bytes.Equal(data[8:12], []byte("AIFF")):
		return AIFF, true
	case bytes.HasPrefix(data, []byte("OggS")):
		return OGG, true
	case bytes.HasPrefix(data, []byte("ID3")):
		return MP3, true
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return MP3, true
	}

	return "", false
}

// Resolve picks the registry key for data, trusting contentType first.
func Resolve(contentType string, data []byte) (string, error) {
	format, ok, err := ForContentType(contentType)
	if err != nil {
		return "", err
	}
	if ok {
		return format, nil
	}

	if format, ok := Sniff(data); ok {
		return format, nil
	}

	if contentType == "" {
		return "", fmt.Errorf("%w: unrecognized data", audio.ErrUnsupportedFormat)
	}

	return "", fmt.Errorf("%w: %s", audio.ErrUnsupportedFormat, contentType)
}
