// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
)

// mockSource is a test helper that generates audio data for testing.
// It implements the Source interface and can generate various waveforms.
type mockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	waveform     func(sample int, channel int) float32
}

// newMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
// waveform is a function that generates sample values given sample index and channel.
func newMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *mockSource {
	return &mockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// newSilentSource creates a mock source that generates silence (all zeros).
func newSilentSource(sampleRate, channels, totalSamples int) *mockSource {
	return newMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		return 0.0
	})
}

// newRampSource encodes the frame index and channel into each sample so
// tests can check ordering exactly: sample = frame/1000 + channel/10.
func newRampSource(sampleRate, channels, totalSamples int) *mockSource {
	return newMockSource(sampleRate, channels, totalSamples, rampValue)
}

func rampValue(sample int, channel int) float32 {
	return float32(sample)/1000 + float32(channel)/10
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return 4096 }
func (m *mockSource) Close() error    { return nil }

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesRequested := len(dst) / m.channels
	framesToWrite := min(framesRequested, m.totalSamples-m.generated)

	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

// sliceSource hands out a fixed interleaved slice in reads of at most step
// samples, ignoring frame boundaries. err is returned once data runs out.
type sliceSource struct {
	sampleRate int
	channels   int
	data       []float32
	step       int
	err        error
	bufSize    int
}

func (s *sliceSource) SampleRate() int { return s.sampleRate }
func (s *sliceSource) Channels() int   { return s.channels }
func (s *sliceSource) BufSize() int    { return s.bufSize }
func (s *sliceSource) Close() error    { return nil }

func (s *sliceSource) ReadSamples(dst []float32) (int, error) {
	if len(s.data) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, io.EOF
	}

	n := min(len(dst), len(s.data))
	if s.step > 0 {
		n = min(n, s.step)
	}
	copy(dst, s.data[:n])
	s.data = s.data[n:]

	return n, nil
}

// stuckSource never produces data and never finishes.
type stuckSource struct{}

func (stuckSource) SampleRate() int                    { return 8000 }
func (stuckSource) Channels() int                      { return 1 }
func (stuckSource) BufSize() int                       { return 16 }
func (stuckSource) Close() error                       { return nil }
func (stuckSource) ReadSamples([]float32) (int, error) { return 0, nil }
