package gesture

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gwillem/biped/internal/log"
	"github.com/gwillem/biped/pkg/robot"
)

// Voice plays single tones. A zero frequency is a rest.
type Voice interface {
	Tone(freq float64, note, silence time.Duration)
}

// Note frequencies in Hz.
const (
	NoteE5 = 659.25
	NoteA5 = 880.00
	NoteB5 = 987.77
	NoteC6 = 1046.50
	NoteD6 = 1174.66
	NoteE6 = 1318.51
	NoteG6 = 1567.98
	NoteA6 = 1760.00
	NoteD7 = 2349.32
)

// Rest keeps the voice silent for d.
func Rest(v Voice, d time.Duration) {
	v.Tone(0, 0, d)
}

// BendTones glides from one frequency to another in geometric steps of
// ratio, playing every intermediate tone for note followed by silence.
// Frequencies are whole hertz between steps.
func BendTones(v Voice, from, to, ratio float64, note, silence time.Duration) {
	if ratio <= 1 {
		return
	}
	if from < to {
		for f := int(from); float64(f) < to; {
			v.Tone(float64(f), note, silence)
			f = max(int(float64(f)*ratio), f+1)
		}
		return
	}
	for f := int(from); float64(f) > to; {
		v.Tone(float64(f), note, silence)
		f = min(int(float64(f)/ratio), f-1)
	}
}

// Song is a short named sound effect.
type Song string

const (
	SongConnection    Song = "connection"
	SongDisconnection Song = "disconnection"
	SongButtonPushed  Song = "button_pushed"
	SongMode1         Song = "mode1"
	SongMode2         Song = "mode2"
	SongMode3         Song = "mode3"
	SongSurprise      Song = "surprise"
	SongOhOoh         Song = "oh_ooh"
	SongOhOoh2        Song = "oh_ooh2"
	SongCuddly        Song = "cuddly"
	SongSleeping      Song = "sleeping"
	SongHappy         Song = "happy"
	SongSuperHappy    Song = "super_happy"
	SongHappyShort    Song = "happy_short"
	SongSad           Song = "sad"
	SongConfused      Song = "confused"
	SongFart1         Song = "fart1"
	SongFart2         Song = "fart2"
	SongFart3         Song = "fart3"
)

// Songs lists every song.
var Songs = []Song{
	SongConnection, SongDisconnection, SongButtonPushed, SongMode1, SongMode2,
	SongMode3, SongSurprise, SongOhOoh, SongOhOoh2, SongCuddly, SongSleeping,
	SongHappy, SongSuperHappy, SongHappyShort, SongSad, SongConfused,
	SongFart1, SongFart2, SongFart3,
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Sing plays s on v. Unknown songs are silent.
func Sing(v Voice, s Song) {
	switch s {
	case SongConnection:
		v.Tone(NoteE5, ms(50), ms(30))
		v.Tone(NoteE6, ms(55), ms(25))
		v.Tone(NoteA6, ms(60), ms(10))
	case SongDisconnection:
		v.Tone(NoteE5, ms(50), ms(30))
		v.Tone(NoteA6, ms(55), ms(25))
		v.Tone(NoteE6, ms(50), ms(10))
	case SongButtonPushed:
		BendTones(v, NoteE6, NoteG6, 1.03, ms(20), ms(2))
		Rest(v, ms(30))
		BendTones(v, NoteE6, NoteD7, 1.04, ms(10), ms(2))
	case SongMode1:
		BendTones(v, NoteE6, NoteA6, 1.02, ms(30), ms(10))
	case SongMode2:
		BendTones(v, NoteG6, NoteD7, 1.03, ms(30), ms(10))
	case SongMode3:
		v.Tone(NoteE6, ms(50), ms(100))
		v.Tone(NoteG6, ms(50), ms(80))
		v.Tone(NoteD7, ms(300), 0)
	case SongSurprise:
		BendTones(v, 800, 2150, 1.02, ms(10), ms(1))
		BendTones(v, 2149, 800, 1.03, ms(7), ms(1))
	case SongOhOoh:
		BendTones(v, 880, 2000, 1.04, ms(8), ms(3))
		Rest(v, ms(200))
		for f := 880; f < 2000; f = int(float64(f) * 1.04) {
			v.Tone(NoteB5, ms(5), ms(10))
		}
	case SongOhOoh2:
		BendTones(v, 1880, 3000, 1.03, ms(8), ms(3))
		Rest(v, ms(200))
		for f := 1880; f < 3000; f = int(float64(f) * 1.03) {
			v.Tone(NoteC6, ms(10), ms(10))
		}
	case SongCuddly:
		BendTones(v, 700, 900, 1.03, ms(16), ms(4))
		BendTones(v, 899, 650, 1.01, ms(18), ms(7))
	case SongSleeping:
		BendTones(v, 100, 500, 1.04, ms(10), ms(10))
		Rest(v, ms(500))
		BendTones(v, 400, 100, 1.04, ms(10), ms(1))
	case SongHappy:
		BendTones(v, 1500, 2500, 1.05, ms(20), ms(8))
		BendTones(v, 2499, 1500, 1.05, ms(25), ms(8))
	case SongSuperHappy:
		BendTones(v, 2000, 6000, 1.05, ms(8), ms(3))
		Rest(v, ms(50))
		BendTones(v, 5999, 2000, 1.05, ms(13), ms(2))
	case SongHappyShort:
		BendTones(v, 1500, 2000, 1.05, ms(15), ms(8))
		Rest(v, ms(100))
		BendTones(v, 1900, 2500, 1.05, ms(10), ms(8))
	case SongSad:
		BendTones(v, 880, 669, 1.02, ms(20), ms(200))
	case SongConfused:
		BendTones(v, 1000, 1700, 1.03, ms(8), ms(2))
		BendTones(v, 1699, 500, 1.04, ms(8), ms(3))
		BendTones(v, 1000, 1700, 1.05, ms(9), ms(10))
	case SongFart1:
		BendTones(v, 1600, 3000, 1.02, ms(2), ms(15))
	case SongFart2:
		BendTones(v, 2000, 6000, 1.02, ms(2), ms(20))
	case SongFart3:
		BendTones(v, 1600, 4000, 1.02, ms(2), ms(20))
		BendTones(v, 4000, 3000, 1.02, ms(2), ms(20))
	}
}

// LogVoice is a Voice for robots without a buzzer. Tones are logged at
// debug level and take their full time on the clock, so gestures keep the
// same pacing with or without sound.
type LogVoice struct {
	clock robot.Clock
	log   *logrus.Entry
}

func NewLogVoice(clock robot.Clock) *LogVoice {
	return &LogVoice{
		clock: clock,
		log:   log.With(log.Fields{"component": "voice"}),
	}
}

func (v *LogVoice) Tone(freq float64, note, silence time.Duration) {
	if freq > 0 {
		v.log.WithFields(logrus.Fields{"freq": freq, "note": note}).Debug("tone")
	}
	v.clock.SleepUntil(v.clock.Now() + note + silence)
}
