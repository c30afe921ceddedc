// SPDX-License-Identifier: EPL-2.0

package audio

// ReverseSamples returns a new slice holding s in reverse order.
// s itself is left untouched.
func ReverseSamples(s []float32) []float32 {
	out := make([]float32, len(s))
	last := len(s) - 1
	for i, v := range s {
		out[last-i] = v
	}

	return out
}

// Reverse returns a time-reversed copy of b. Channel order, sample rate
// and frame count are preserved and sample values are not altered.
// The returned buffer shares no storage with b.
func Reverse(b *Buffer) *Buffer {
	out := &Buffer{
		SampleRate: b.SampleRate,
		Channels:   make([][]float32, len(b.Channels)),
	}
	for c, ch := range b.Channels {
		out.Channels[c] = ReverseSamples(ch)
	}

	return out
}
