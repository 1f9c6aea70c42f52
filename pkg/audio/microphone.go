package audio

import (
	"context"
	"errors"
	"math"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gordonklaus/portaudio"
	"github.com/sirupsen/logrus"
)

const (
	sampleRate       = 16000
	frameSize        = 320 // 20ms
	baseThresholdRMS = 0.015
	silenceDuration  = 600 * time.Millisecond
)

// ErrListenTimeout means no speech started before the listen deadline.
var ErrListenTimeout = errors.New("listen timeout")

type Microphone struct {
	log       *logrus.Logger
	threshold float32
}

func NewMicrophone(log *logrus.Logger) *Microphone {
	return &Microphone{
		log:       log,
		threshold: baseThresholdRMS,
	}
}

func (m *Microphone) Init() error {
	return portaudio.Initialize()
}

func (m *Microphone) Close() {
	portaudio.Terminate()
}

// Calibrate samples ambient noise briefly and raises the speech threshold
// above it, so background hum does not count as an utterance.
func (m *Microphone) Calibrate(d time.Duration) error {
	buf := make([]float32, frameSize)

	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, len(buf), buf)
	if err != nil {
		return err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return err
	}
	defer stream.Stop()

	frames := int(d / (20 * time.Millisecond))
	if frames < 1 {
		frames = 1
	}

	var peak float32
	for i := 0; i < frames; i++ {
		if err := stream.Read(); err != nil {
			return err
		}
		if rms := frameRMS(buf); rms > peak {
			peak = rms
		}
	}

	m.threshold = baseThresholdRMS
	if ambient := peak * 2; ambient > m.threshold {
		m.threshold = ambient
	}

	m.log.WithFields(logrus.Fields{
		"threshold": m.threshold,
	}).Debug("Microphone calibrated")

	return nil
}

// Record waits up to timeout for speech to start, then captures until the
// speaker pauses or phraseLimit is reached. Returns ErrListenTimeout when
// nothing was said at all.
func (m *Microphone) Record(ctx context.Context, timeout, phraseLimit time.Duration) ([]float32, error) {
	buf := make([]float32, frameSize)
	out := make([]float32, 0, sampleRate*3)

	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, len(buf), buf)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, err
	}
	defer stream.Stop()

	var (
		speaking      bool
		silenceFrames int
		speechFrames  int
	)

	waitFrames := int(timeout / (20 * time.Millisecond))
	maxSpeechFrames := int(phraseLimit / (20 * time.Millisecond))
	maxSilenceFrames := int(silenceDuration / (20 * time.Millisecond))

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := stream.Read(); err != nil {
			return nil, err
		}

		rms := frameRMS(buf)

		if !speaking {
			if rms > m.threshold {
				speaking = true
				out = append(out, buf...)
				speechFrames++
			} else if i >= waitFrames {
				return nil, ErrListenTimeout
			}
			continue
		}

		speechFrames++
		if speechFrames >= maxSpeechFrames {
			break
		}

		if rms > m.threshold {
			silenceFrames = 0
		} else {
			silenceFrames++
			if silenceFrames >= maxSilenceFrames {
				break
			}
		}
		out = append(out, buf...)
	}

	return out, nil
}

// WriteWAV stores captured samples as a 16-bit mono WAV file that the
// transcription endpoint accepts.
func (m *Microphone) WriteWAV(path string, samples []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		buf.Data[i] = int(s * math.MaxInt16)
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		return err
	}

	return enc.Close()
}

func frameRMS(frame []float32) float32 {
	var sum float64
	for _, s := range frame {
		sum += float64(s) * float64(s)
	}
	return float32(math.Sqrt(sum / float64(len(frame))))
}
