package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// drain streams s to completion and returns the sample count, failing if a
// sample leaves [-1, 1] or the stream runs past limit samples.
func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", total+i, buf[i][0])
			}
		}
		total += n
		if !ok {
			return total
		}
		if total > limit {
			t.Fatalf("stream did not end within %d samples", limit)
		}
	}
}

func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)

	tests := []struct {
		name string
		wave WaveType
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"saw", WaveSaw},
		{"noise", WaveNoise},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			osc := NewOscillator(440, 10*time.Millisecond, tc.wave, rate)
			if n := drain(t, osc, rate.N(time.Second)); n != rate.N(10*time.Millisecond) {
				t.Errorf("streamed %d samples, expected %d", n, rate.N(10*time.Millisecond))
			}
			if osc.Err() != nil {
				t.Errorf("Err() = %v", osc.Err())
			}
		})
	}
}

func TestOscillatorSquareValues(t *testing.T) {
	osc := NewOscillator(220, 50*time.Millisecond, WaveSquare, beep.SampleRate(44100))

	samples := make([][2]float64, 50)
	n, ok := osc.Stream(samples)
	if !ok || n != 50 {
		t.Fatalf("Stream() = %d, %v; expected 50, true", n, ok)
	}

	for i := 0; i < n; i++ {
		if v := samples[i][0]; v != -1.0 && v != 1.0 {
			t.Errorf("Square wave sample %d should be -1.0 or 1.0, got %f", i, v)
		}
	}
}

func TestEnvelopeFadesOut(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate) // constant 1.0
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, rate)

	samples := make([][2]float64, 100)
	n, _ := env.Stream(samples)
	if n != 100 {
		t.Fatalf("streamed %d samples, expected 100", n)
	}

	if samples[0][0] != 0 {
		t.Errorf("first sample = %f, expected silent attack start", samples[0][0])
	}
	if samples[10][0] != 1 {
		t.Errorf("sample after attack = %f, expected full volume", samples[10][0])
	}
	if samples[99][0] >= samples[50][0] {
		t.Errorf("release should decay: %f then %f", samples[50][0], samples[99][0])
	}
}

func TestCuesEnd(t *testing.T) {
	rate := beep.SampleRate(44100)
	limit := rate.N(time.Second)

	cues := map[string]func(beep.SampleRate, float64) beep.Streamer{
		"flap":  FlapSound,
		"point": PointSound,
	}
	for name, cue := range cues {
		t.Run(name, func(t *testing.T) {
			if n := drain(t, cue(rate, 1), limit); n == 0 {
				t.Error("cue produced no samples")
			}
		})
	}
}

func TestHitSoundInRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	s := HitSound(rate, 1)

	buf := make([][2]float64, rate.N(hitDuration))
	n, _ := s.Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] < -1 || buf[i][0] > 1 {
			t.Fatalf("sample %d out of range: %f", i, buf[i][0])
		}
	}
}

func TestUninitializedManagerIsSilent(t *testing.T) {
	sm := NewSoundManager()

	// None of these may touch the speaker.
	sm.PlayFlap()
	sm.PlayPoint()
	sm.PlayHit()
	sm.Cleanup()

	if sm.Enabled() {
		t.Error("Enabled() = true before Initialize")
	}
}

func TestObserveTracksScore(t *testing.T) {
	sm := NewSoundManager()

	sm.Observe(flappy.Snapshot{Score: 0})
	sm.Observe(flappy.Snapshot{Score: 2})
	if sm.lastScore != 2 {
		t.Errorf("lastScore = %d, expected 2", sm.lastScore)
	}

	sm.Observe(flappy.Snapshot{Score: 0})
	if sm.lastScore != 0 {
		t.Errorf("lastScore = %d after reset, expected 0", sm.lastScore)
	}
}

func TestSetVolumeClamps(t *testing.T) {
	sm := NewSoundManager()

	tests := []struct {
		in, expected float64
	}{
		{0.5, 0.5},
		{-1, 0},
		{3, 1},
	}
	for _, tc := range tests {
		sm.SetVolume(tc.in)
		if sm.volume != tc.expected {
			t.Errorf("SetVolume(%v) = %v, expected %v", tc.in, sm.volume, tc.expected)
		}
	}
}
