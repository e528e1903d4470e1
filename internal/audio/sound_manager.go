// Package audio plays synthesized sound effects for game events.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/alieninvasion/internal/game"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// SoundManager plays a sound for every game event. It implements
// game.Listener and is silent until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64 // linear gain, 0 mutes
	initialized bool
}

var _ game.Listener = (*SoundManager)(nil)

// NewSoundManager creates a new sound manager with the given gain in [0, 1].
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
	}
}

// Initialize sets up the audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the audio device.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Clear()
	sm.mixer.Clear()
	speaker.Close()
	sm.initialized = false
}

// play queues a finite streamer on the mixer.
func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(withVolume(s, sm.volume))
	speaker.Unlock()
}

// GameStarted plays a rising two-note jingle.
func (sm *SoundManager) GameStarted() {
	sm.play(startSound(sampleRate))
}

// BulletFired plays a short laser chirp.
func (sm *SoundManager) BulletFired() {
	sm.play(shotSound(sampleRate))
}

// AliensDestroyed plays one crunch however many aliens fell this tick.
func (sm *SoundManager) AliensDestroyed(int) {
	sm.play(explosionSound(sampleRate))
}

// FleetCleared plays a chime.
func (sm *SoundManager) FleetCleared(int) {
	sm.play(levelSound(sampleRate))
}

// ShipHit plays a low rumble.
func (sm *SoundManager) ShipHit(int) {
	sm.play(shipHitSound(sampleRate))
}

// GameOver plays a falling tone.
func (sm *SoundManager) GameOver(int, int) {
	sm.play(gameOverSound(sampleRate))
}
