// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/ik5/audrev/audio"
	"github.com/ik5/audrev/formats/wav"
	"github.com/ik5/audrev/internal/audiotest"
)

// fakeDecoder hands out ramp sources, ignoring its input.
type fakeDecoder struct {
	sampleRate int
	channels   int
	frames     int
	err        error

	mu      sync.Mutex
	sources []*audiotest.MockSource
}

func (f *fakeDecoder) Decode(io.Reader) (audio.Source, error) {
	if f.err != nil {
		return nil, f.err
	}

	src := audiotest.NewRampSource(f.sampleRate, f.channels, f.frames)

	f.mu.Lock()
	f.sources = append(f.sources, src)
	f.mu.Unlock()

	return src, nil
}

func requireDecodeError(t *testing.T, err error, target error) *audio.DecodeError {
	t.Helper()

	var de *audio.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error = %v (%T), want *audio.DecodeError", err, err)
	}
	if !errors.Is(err, audio.ErrDecode) {
		t.Errorf("errors.Is(err, ErrDecode) = false for %v", err)
	}
	if target != nil && !errors.Is(err, target) {
		t.Errorf("error = %v, want %v", err, target)
	}

	return de
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	got := DefaultRegistry().Formats()
	want := []string{AIFF, MP3, OGG, WAV}

	if len(got) != len(want) {
		t.Fatalf("Formats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Formats()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDecoder_DecodeWAV(t *testing.T) {
	t.Parallel()

	data := audiotest.WAVBytes(16000, 2, 16, []int{0, 16384, -16384, -32768, 8192, 0})

	tests := []struct {
		name        string
		contentType string
	}{
		{"explicit type", "audio/wav"},
		{"alias type", "audio/x-wav"},
		{"with parameters", "audio/wave; charset=binary"},
		{"sniffed", ""},
		{"generic type", "application/octet-stream"},
		{"unknown type", "application/x-whatever"},
	}

	dec := NewDecoder()
	t.Cleanup(func() { dec.Close() })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf, err := dec.Decode(context.Background(), data, tt.contentType)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			if buf.SampleRate != 16000 || buf.NumChannels() != 2 || buf.Frames() != 3 {
				t.Fatalf("Decode() = %d Hz, %d ch, %d frames; want 16000 Hz, 2 ch, 3 frames",
					buf.SampleRate, buf.NumChannels(), buf.Frames())
			}

			wantLeft := []float32{0, -0.5, 0.25}
			wantRight := []float32{0.5, -1, 0}
			for i := range 3 {
				if buf.Channels[0][i] != wantLeft[i] || buf.Channels[1][i] != wantRight[i] {
					t.Errorf("frame %d = (%v, %v), want (%v, %v)", i,
						buf.Channels[0][i], buf.Channels[1][i], wantLeft[i], wantRight[i])
				}
			}
		})
	}
}

func TestDecoder_DecodeAIFF(t *testing.T) {
	t.Parallel()

	data := audiotest.AIFFBytes(11025, 1, []int16{100, -100, 200})

	buf, err := NewDecoder().Decode(context.Background(), data, "")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if buf.SampleRate != 11025 || buf.NumChannels() != 1 || buf.Frames() != 3 {
		t.Errorf("Decode() = %d Hz, %d ch, %d frames; want 11025 Hz, 1 ch, 3 frames",
			buf.SampleRate, buf.NumChannels(), buf.Frames())
	}
}

func TestDecoder_DecodeMonoMP3(t *testing.T) {
	t.Parallel()

	data := audiotest.MP3Frames(20, true)

	for _, contentType := range []string{"audio/mpeg", ""} {
		buf, err := NewDecoder().Decode(context.Background(), data, contentType)
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", contentType, err)
		}

		if buf.SampleRate != 44100 || buf.NumChannels() != 1 || buf.Frames() != 20*1152 {
			t.Errorf("Decode(%q) = %d Hz, %d ch, %d frames; want 44100 Hz, 1 ch, %d frames",
				contentType, buf.SampleRate, buf.NumChannels(), buf.Frames(), 20*1152)
		}

		for i, v := range buf.Channels[0] {
			if v != 0 {
				t.Fatalf("Decode(%q) sample %d = %v, want silence", contentType, i, v)
			}
		}
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	wavData := audiotest.WAVBytes(8000, 1, 16, []int{1, 2, 3})

	tests := []struct {
		name        string
		data        []byte
		contentType string
		wantErr     error
		wantFormat  string
	}{
		{"nil data", nil, "audio/wav", audio.ErrEmptyInput, ""},
		{"empty data", []byte{}, "", audio.ErrEmptyInput, ""},
		{"unrecognized bytes", []byte("definitely not audio"), "", audio.ErrUnsupportedFormat, ""},
		{"webm", wavData, "audio/webm", audio.ErrUnsupportedFormat, ""},
		{"opus in ogg", wavData, "audio/ogg; codecs=opus", audio.ErrUnsupportedFormat, ""},
		{"garbage labelled wav", []byte("definitely not audio"), "audio/wav", wav.ErrNotWavFile, WAV},
	}

	dec := NewDecoder()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf, err := dec.Decode(context.Background(), tt.data, tt.contentType)
			if buf != nil {
				t.Errorf("Decode() buffer = %v, want nil", buf)
			}

			de := requireDecodeError(t, err, tt.wantErr)
			if de.Format != tt.wantFormat {
				t.Errorf("DecodeError.Format = %q, want %q", de.Format, tt.wantFormat)
			}
		})
	}
}

func TestDecoder_Closed(t *testing.T) {
	t.Parallel()

	dec := NewDecoder()
	if err := dec.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := dec.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	_, err := dec.Decode(context.Background(), audiotest.WAVBytes(8000, 1, 16, []int{1}), "audio/wav")
	requireDecodeError(t, err, audio.ErrClosed)
}

func TestDecoder_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDecoder().Decode(ctx, audiotest.WAVBytes(8000, 1, 16, []int{1, 2}), "")
	de := requireDecodeError(t, err, context.Canceled)
	if de.Format != WAV {
		t.Errorf("DecodeError.Format = %q, want %q", de.Format, WAV)
	}
}

func TestDecoder_MaxDuration(t *testing.T) {
	t.Parallel()

	fake := &fakeDecoder{sampleRate: 8000, channels: 2, frames: 8000}
	reg := audio.NewRegistry()
	reg.Register(WAV, fake)

	tests := []struct {
		name    string
		limit   time.Duration
		wantErr error
	}{
		{"unlimited", 0, nil},
		{"exact", time.Second, nil},
		{"longer limit", time.Minute, nil},
		{"shorter limit", 500 * time.Millisecond, audio.ErrTooLong},
		{"tiny limit", time.Nanosecond, audio.ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dec := NewDecoder(WithRegistry(reg), WithMaxDuration(tt.limit))
			buf, err := dec.Decode(context.Background(), []byte{1}, "audio/wav")

			if tt.wantErr != nil {
				requireDecodeError(t, err, tt.wantErr)
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if buf.Frames() != 8000 {
				t.Errorf("Frames() = %d, want 8000", buf.Frames())
			}
		})
	}
}

func TestDecoder_CustomRegistry(t *testing.T) {
	t.Parallel()

	fake := &fakeDecoder{sampleRate: 48000, channels: 3, frames: 10}
	reg := audio.NewRegistry()
	reg.Register("WAV", fake)

	buf, err := NewDecoder(WithRegistry(reg)).Decode(context.Background(), []byte("RIFF0000WAVE"), "")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	for c := range 3 {
		for i := range 10 {
			if want := audiotest.Ramp(i, c); buf.Channels[c][i] != want {
				t.Fatalf("Channels[%d][%d] = %v, want %v", c, i, buf.Channels[c][i], want)
			}
		}
	}

	if len(fake.sources) != 1 || !fake.sources[0].Closed() {
		t.Error("decoded source was not closed")
	}

	// ogg is not in the custom registry
	_, err = NewDecoder(WithRegistry(reg)).Decode(context.Background(), []byte("OggS"), "")
	de := requireDecodeError(t, err, audio.ErrUnsupportedFormat)
	if de.Format != OGG {
		t.Errorf("DecodeError.Format = %q, want %q", de.Format, OGG)
	}
}

func TestDecoder_SourceError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	reg := audio.NewRegistry()
	reg.Register(MP3, &fakeDecoder{err: errBoom})

	_, err := NewDecoder(WithRegistry(reg)).Decode(context.Background(), []byte("ID3"), "")
	de := requireDecodeError(t, err, errBoom)
	if de.Format != MP3 {
		t.Errorf("DecodeError.Format = %q, want %q", de.Format, MP3)
	}
}

func TestDecoder_Concurrent(t *testing.T) {
	t.Parallel()

	data := audiotest.WAVBytes(8000, 2, 16, make([]int, 2000))
	dec := NewDecoder()

	var wg sync.WaitGroup
	errs := make(chan error, 16)

	for range 16 {
		wg.Go(func() {
			buf, err := dec.Decode(context.Background(), data, "audio/wav")
			if err != nil {
				errs <- err
				return
			}
			if buf.Frames() != 1000 {
				errs <- errors.New("wrong frame count")
			}
		})
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func BenchmarkDecoder_DecodeWAV(b *testing.B) {
	data := audiotest.WAVBytes(44100, 2, 16, make([]int, 44100*2))
	dec := NewDecoder()
	ctx := context.Background()

	b.ReportAllocs()

	for b.Loop() {
		if _, err := dec.Decode(ctx, data, "audio/wav"); err != nil {
			b.Fatal(err)
		}
	}
}
