package audio

import (
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

type Player struct {
	mu          sync.Mutex
	initialized bool
	rate        beep.SampleRate
}

func NewPlayer() *Player {
	return &Player{}
}

// PlayMP3 plays the file and blocks until playback finishes.
func (p *Player) PlayMP3(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return err
	}
	defer streamer.Close()

	if err := p.ensureSpeaker(format.SampleRate); err != nil {
		return err
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(
		beep.Resample(4, format.SampleRate, p.rate, streamer),
		beep.Callback(func() { close(done) }),
	))
	<-done

	return nil
}

func (p *Player) ensureSpeaker(rate beep.SampleRate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}

	p.rate = rate
	p.initialized = true
	return nil
}
