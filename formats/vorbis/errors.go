// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrNotVorbisFile indicates the input is not an Ogg stream carrying Vorbis.
var ErrNotVorbisFile = errors.New("not an Ogg Vorbis file")
