package voice

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"JarvisGolang/pkg/audio"

	"github.com/sirupsen/logrus"
)

// Sentinel is returned by Listen when no usable speech was recognized this
// cycle, whether from a timeout, unintelligible audio or a recognizer error.
const Sentinel = "none"

const (
	listenTimeout   = 5 * time.Second
	phraseLimit     = 7 * time.Second
	calibrationSpan = 300 * time.Millisecond
	wakePhraseLimit = 5 * time.Second
)

type IVoice interface {
	Listen(ctx context.Context) string
	Speak(ctx context.Context, text string)
	WaitForWakeWord(ctx context.Context, word string) error
	Close()
}

type voice struct {
	log    *logrus.Logger
	mic    *audio.Microphone
	stt    *audio.TranscriptionService
	tts    *audio.TTSService
	player *audio.Player
}

func New(
	log *logrus.Logger,
	mic *audio.Microphone,
	stt *audio.TranscriptionService,
	tts *audio.TTSService,
	player *audio.Player,
) (IVoice, error) {
	if err := mic.Init(); err != nil {
		return nil, err
	}

	return &voice{
		log:    log,
		mic:    mic,
		stt:    stt,
		tts:    tts,
		player: player,
	}, nil
}

func (v *voice) Close() {
	v.mic.Close()
}

// Listen blocks on one microphone capture and returns the lowercased
// transcript, or Sentinel when nothing usable was heard. The reason for a
// failure is only logged; callers just retry.
func (v *voice) Listen(ctx context.Context) string {
	return v.listen(ctx, listenTimeout, phraseLimit)
}

func (v *voice) listen(ctx context.Context, timeout, limit time.Duration) string {
	if err := v.mic.Calibrate(calibrationSpan); err != nil {
		v.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Ambient noise calibration failed")
	}

	samples, err := v.mic.Record(ctx, timeout, limit)
	if err != nil {
		if !errors.Is(err, audio.ErrListenTimeout) && !errors.Is(err, context.Canceled) {
			v.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Error("Microphone capture failed")
		}
		return Sentinel
	}

	f, err := os.CreateTemp("", "jarvis-*.wav")
	if err != nil {
		v.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to create capture temp file")
		return Sentinel
	}
	f.Close()
	defer os.Remove(f.Name())

	if err := v.mic.WriteWAV(f.Name(), samples); err != nil {
		v.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to encode capture")
		return Sentinel
	}

	text, err := v.stt.TranscribeAudio(ctx, f.Name())
	if err != nil {
		v.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Speech recognition API error")
		return Sentinel
	}

	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return Sentinel
	}

	v.log.WithFields(logrus.Fields{
		"text": text,
	}).Info("User said")

	return text
}

// Speak synthesizes the text, plays it synchronously and removes the temp
// file. Failures are logged and swallowed; speech never aborts a turn.
func (v *voice) Speak(ctx context.Context, text string) {
	data, err := v.tts.GenerateAudio(text)
	if err != nil {
		v.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("TTS synthesis failed")
		return
	}

	f, err := os.CreateTemp("", "jarvis-*.mp3")
	if err != nil {
		v.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to create playback temp file")
		return
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		v.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to write playback temp file")
		return
	}
	f.Close()

	if err := v.player.PlayMP3(f.Name()); err != nil {
		v.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Audio playback failed")
	}
}

// WaitForWakeWord blocks until the wake word is heard as a substring of a
// recognized phrase. Timeouts and recognizer errors are silently retried.
func (v *voice) WaitForWakeWord(ctx context.Context, word string) error {
	word = strings.ToLower(word)

	v.log.WithFields(logrus.Fields{
		"wake_word": word,
	}).Info("Listening for wake word")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		heard := v.listen(ctx, listenTimeout, wakePhraseLimit)
		if heard == Sentinel {
			continue
		}

		if strings.Contains(heard, word) {
			v.log.Info("Wake word detected")
			return nil
		}
	}
}
