package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// sweep is an oscillator whose frequency glides linearly from one value to
// another over its duration.
type sweep struct {
	from, to float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewSweep creates a gliding oscillator.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:     from,
		to:       to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}

		var val float64
		switch s.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			if s.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*progress
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase) // Keep in [0, 1)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// decay fades a stream out exponentially and ends it after duration.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
	rate     float64 // e-folds over the whole duration
}

// NewDecay shapes s with an exponential fade.
func NewDecay(s beep.Streamer, duration time.Duration, folds float64, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, total: rate.N(duration), rate: folds}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	if d.position >= d.total {
		return 0, false
	}
	if left := d.total - d.position; len(samples) > left {
		samples = samples[:left]
	}
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := math.Exp(-d.rate * float64(d.position) / float64(d.total))
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// withVolume scales a stream by a linear gain. math.Log2(0) is -Inf, so a
// zero gain makes it silent instead.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone returns a sine tone of fixed length, or silence if the frequency
// cannot be produced at this rate.
func tone(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	s, err := generators.SineTone(rate, freq)
	if err != nil {
		return generators.Silence(rate.N(duration))
	}
	return beep.Take(rate.N(duration), s)
}

func shotSound(rate beep.SampleRate) beep.Streamer {
	d := 90 * time.Millisecond
	return NewDecay(NewSweep(1800, 600, d, WaveSquare, rate), d, 3, rate)
}

func explosionSound(rate beep.SampleRate) beep.Streamer {
	d := 250 * time.Millisecond
	return NewDecay(beep.Mix(
		NewSweep(0, 0, d, WaveNoise, rate),
		NewSweep(120, 40, d, WaveSine, rate),
	), d, 5, rate)
}

func shipHitSound(rate beep.SampleRate) beep.Streamer {
	d := 600 * time.Millisecond
	return NewDecay(beep.Mix(
		NewSweep(0, 0, d, WaveNoise, rate),
		NewSweep(90, 30, d, WaveSquare, rate),
	), d, 4, rate)
}

func levelSound(rate beep.SampleRate) beep.Streamer {
	n := 80 * time.Millisecond
	return beep.Seq(
		NewDecay(tone(660, n, rate), n, 1, rate),
		NewDecay(tone(880, n, rate), n, 1, rate),
		NewDecay(tone(1320, 3*n, rate), 3*n, 3, rate),
	)
}

func startSound(rate beep.SampleRate) beep.Streamer {
	n := 100 * time.Millisecond
	return beep.Seq(
		NewDecay(tone(440, n, rate), n, 1, rate),
		NewDecay(tone(660, 2*n, rate), 2*n, 3, rate),
	)
}

func gameOverSound(rate beep.SampleRate) beep.Streamer {
	d := 900 * time.Millisecond
	return NewDecay(NewSweep(440, 110, d, WaveSine, rate), d, 2, rate)
}
