// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"io"
)

// How far past any ID3v2 tag we look for the first frame.
const scanSize = 64 << 10

const channelModeMono = 3

// streamChannels reports 1 when the first MPEG audio frame of rs is mono
// and 2 otherwise. The read position of rs is restored.
func streamChannels(rs io.ReadSeeker) (int, error) {
	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}

	head := make([]byte, scanSize)
	n, err := io.ReadFull(rs, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, err
	}
	head = head[:n]

	skip := id3Size(head)
	if skip > len(head) {
		// the tag is larger than the scan window, read again right after it
		if _, err := rs.Seek(start+int64(skip), io.SeekStart); err != nil {
			return 0, err
		}
		n, err = io.ReadFull(rs, head[:scanSize])
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return 0, err
		}
		head, skip = head[:n], 0
	}

	channels := outputChannels
	if mode, ok := firstChannelMode(head[skip:]); ok && mode == channelModeMono {
		channels = 1
	}

	if _, err := rs.Seek(start, io.SeekStart); err != nil {
		return 0, err
	}

	return channels, nil
}

// id3Size returns the length of a leading ID3v2 tag, footer included, or 0.
func id3Size(b []byte) int {
	if len(b) < 10 || string(b[:3]) != "ID3" {
		return 0
	}

	size := int(b[6]&0x7F)<<21 | int(b[7]&0x7F)<<14 | int(b[8]&0x7F)<<7 | int(b[9]&0x7F)
	size += 10
	if b[5]&0x10 != 0 {
		size += 10
	}

	return size
}

// firstChannelMode finds the first Layer III frame header in b and returns
// its channel mode bits.
func firstChannelMode(b []byte) (byte, bool) {
	for i := 0; i+4 <= len(b); i++ {
		if isFrameHeader(b[i : i+4]) {
			return b[i+3] >> 6, true
		}
	}

	return 0, false
}

func isFrameHeader(h []byte) bool {
	switch {
	case h[0] != 0xFF || h[1]&0xE0 != 0xE0:
		return false
	case (h[1]>>3)&0x03 == 0x01: // reserved version
		return false
	case (h[1]>>1)&0x03 != 0x01: // not Layer III
		return false
	case h[2]>>4 == 0x0F || h[2]>>4 == 0x00: // bad or free bitrate
		return false
	case (h[2]>>2)&0x03 == 0x03: // reserved sample rate
		return false
	}

	return true
}
