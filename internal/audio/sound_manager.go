// Package audio plays short synthesized cues for game events.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager mixes game cues into the speaker. Every Play method is a
// no-op until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	lastScore   int
}

// NewSoundManager creates a silent sound manager at full volume.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: 1.0,
	}
}

// Initialize opens the speaker.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no way to close the speaker, clearing the mixer silences it
	sm.initialized = false
}

// SetVolume sets the linear volume in [0, 1].
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = min(max(v, 0), 1)
}

// Enabled reports whether cues reach the speaker.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// PlayFlap plays the flap chirp.
func (sm *SoundManager) PlayFlap() {
	sm.play(FlapSound)
}

// PlayPoint plays the scoring chime.
func (sm *SoundManager) PlayPoint() {
	sm.play(PointSound)
}

// PlayHit plays the collision thud.
func (sm *SoundManager) PlayHit() {
	sm.play(HitSound)
}

// Observe plays the point chime whenever the score in snap rises. It is
// meant to be registered with Simulation.OnTick.
func (sm *SoundManager) Observe(snap flappy.Snapshot) {
	sm.mu.Lock()
	rose := snap.Score > sm.lastScore
	sm.lastScore = snap.Score
	sm.mu.Unlock()

	if rose {
		sm.PlayPoint()
	}
}

func (sm *SoundManager) play(cue func(beep.SampleRate, float64) beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(cue(sampleRate, sm.volume))
	speaker.Unlock()
}
