// Package gesture plays the biped's emotional gestures: short scripts that
// mix poses and gaits with mouth expressions and sounds.
package gesture

import (
	"errors"
	"fmt"

	"github.com/gwillem/biped/pkg/gait"
	"github.com/gwillem/biped/pkg/robot"
)

// Name identifies a gesture.
type Name string

const (
	Happy      Name = "happy"
	SuperHappy Name = "super_happy"
	Sad        Name = "sad"
	Sleeping   Name = "sleeping"
	Fart       Name = "fart"
	Confused   Name = "confused"
	Love       Name = "love"
	Angry      Name = "angry"
	Fretful    Name = "fretful"
	Magic      Name = "magic"
	Wave       Name = "wave"
	Victory    Name = "victory"
	Fail       Name = "fail"
)

// ErrUnknownGesture is returned for names that are not in Names.
var ErrUnknownGesture = errors.New("unknown gesture")

var (
	sadPose      = robot.Pose{110, 70, 20, 160}
	bedPose      = robot.Pose{100, 80, 40, 140}
	fartPose1    = robot.Pose{90, 90, 145, 122}
	fartPose2    = robot.Pose{90, 90, 80, 122}
	fartPose3    = robot.Pose{90, 90, 145, 80}
	confusedPose = robot.Pose{110, 70, 90, 90}
	angryPose    = robot.Pose{90, 90, 70, 110}
	headLeft     = robot.Pose{110, 110, 90, 90}
	headRight    = robot.Pose{70, 70, 90, 90}
	fretfulPose  = robot.Pose{90, 90, 90, 110}
)

// Performer plays gestures on one robot.
type Performer struct {
	m     gait.Mover
	gaits *gait.Catalog
	mouth Mouth
	voice Voice
}

// NewPerformer returns a performer. A nil mouth or voice is replaced by
// its logging stand-in.
func NewPerformer(m gait.Mover, clock robot.Clock, mouth Mouth, voice Voice) *Performer {
	if mouth == nil {
		mouth = NewLogMouth()
	}
	if voice == nil {
		voice = NewLogVoice(clock)
	}
	return &Performer{
		m:     m,
		gaits: gait.New(m),
		mouth: mouth,
		voice: voice,
	}
}

var gestures = map[Name]func(*Performer){
	Happy:      (*Performer).happy,
	SuperHappy: (*Performer).superHappy,
	Sad:        (*Performer).sad,
	Sleeping:   (*Performer).sleeping,
	Fart:       (*Performer).fart,
	Confused:   (*Performer).confused,
	Love:       (*Performer).love,
	Angry:      (*Performer).angry,
	Fretful:    (*Performer).fretful,
	Magic:      (*Performer).magic,
	Wave:       (*Performer).wave,
	Victory:    (*Performer).victory,
	Fail:       (*Performer).fail,
}

// Names lists every gesture.
func Names() []Name {
	return []Name{
		Happy, SuperHappy, Sad, Sleeping, Fart, Confused, Love,
		Angry, Fretful, Magic, Wave, Victory, Fail,
	}
}

// Play performs the named gesture and blocks until it is over.
func (p *Performer) Play(name string) error {
	fn, ok := gestures[Name(name)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGesture, name)
	}
	fn(p)
	return nil
}

// Play performs a gesture on m with the logging mouth and voice.
func Play(m gait.Mover, clock robot.Clock, name string) error {
	return NewPerformer(m, clock, nil, nil).Play(name)
}

func (p *Performer) move(d int, pose robot.Pose) {
	p.m.MoveServos(ms(d), pose)
}

func (p *Performer) delay(d int) {
	p.m.Pause(ms(d))
}

func (p *Performer) bend(from, to, ratio float64, note, silence int) {
	BendTones(p.voice, from, to, ratio, ms(note), ms(silence))
}

func (p *Performer) tone(freq float64, note, silence int) {
	p.voice.Tone(freq, ms(note), ms(silence))
}

func (p *Performer) happy() {
	p.tone(NoteE5, 50, 30)
	p.mouth.Show(MouthSmile)
	Sing(p.voice, SongHappyShort)
	p.gaits.Swing(1, ms(800), 20)
	Sing(p.voice, SongHappyShort)

	p.m.Home()
	p.mouth.Show(MouthHappyOpen)
}

func (p *Performer) superHappy() {
	p.mouth.Show(MouthHappyOpen)
	Sing(p.voice, SongHappy)
	p.mouth.Show(MouthHappyClosed)
	p.gaits.TiptoeSwing(1, ms(500), 20)
	p.mouth.Show(MouthHappyOpen)
	Sing(p.voice, SongSuperHappy)
	p.mouth.Show(MouthHappyClosed)
	p.gaits.TiptoeSwing(1, ms(500), 20)

	p.m.Home()
	p.mouth.Show(MouthHappyOpen)
}

func (p *Performer) sad() {
	p.mouth.Show(MouthSad)
	p.move(700, sadPose)
	// a falling sigh, mouth opening and closing on each breath
	steps := []struct {
		from, to float64
		mouth    Shape
	}{
		{880, 830, MouthSadClosed},
		{830, 790, MouthSadOpen},
		{790, 740, MouthSadClosed},
		{740, 700, MouthSadOpen},
		{700, 669, MouthSad},
	}
	for _, s := range steps {
		p.bend(s.from, s.to, 1.02, 20, 200)
		p.mouth.Show(s.mouth)
	}
	p.delay(500)

	p.m.Home()
	p.delay(300)
	p.mouth.Show(MouthHappyOpen)
}

func (p *Performer) sleeping() {
	p.move(800, bedPose)

	for range 4 {
		p.mouth.Animate(DreamAnimation, 0)
		p.bend(100, 200, 1.04, 10, 10)
		p.mouth.Animate(DreamAnimation, 1)
		p.bend(200, 300, 1.04, 10, 10)
		p.mouth.Animate(DreamAnimation, 2)
		p.bend(300, 500, 1.04, 10, 10)
		p.delay(500)
		p.mouth.Animate(DreamAnimation, 1)
		p.bend(400, 250, 1.04, 10, 1)
		p.mouth.Animate(DreamAnimation, 0)
		p.bend(250, 100, 1.04, 10, 1)
		p.delay(500)
	}

	p.mouth.Show(MouthLine)
	Sing(p.voice, SongCuddly)

	p.m.Home()
	p.mouth.Show(MouthHappyOpen)
}

func (p *Performer) fart() {
	rounds := []struct {
		pose robot.Pose
		song Song
		rest int
	}{
		{fartPose1, SongFart1, 250},
		{fartPose2, SongFart2, 250},
		{fartPose3, SongFart3, 300},
	}
	for _, r := range rounds {
		p.move(500, r.pose)
		p.delay(300)
		p.mouth.Show(MouthLine)
		Sing(p.voice, r.song)
		p.mouth.Show(MouthTongueOut)
		p.delay(r.rest)
	}

	p.m.Home()
	p.delay(500)
	p.mouth.Show(MouthHappyOpen)
}

func (p *Performer) confused() {
	p.move(300, confusedPose)
	p.mouth.Show(MouthConfused)
	Sing(p.voice, SongConfused)
	p.delay(500)

	p.m.Home()
	p.mouth.Show(MouthHappyOpen)
}

func (p *Performer) love() {
	p.mouth.Show(MouthHeart)
	Sing(p.voice, SongCuddly)
	p.gaits.Crusaito(2, ms(1500), 15, gait.Forward)

	p.m.Home()
	Sing(p.voice, SongHappyShort)
	p.mouth.Show(MouthHappyOpen)
}

func (p *Performer) angry() {
	p.move(300, angryPose)
	p.mouth.Show(MouthAngry)

	p.tone(NoteA5, 100, 30)
	p.bend(NoteA5, NoteD6, 1.02, 7, 4)
	p.bend(NoteD6, NoteG6, 1.02, 10, 1)
	p.bend(NoteG6, NoteA5, 1.02, 10, 1)
	p.delay(15)
	p.bend(NoteA5, NoteE5, 1.02, 20, 4)
	p.delay(400)
	p.move(200, headLeft)
	p.bend(NoteA5, NoteD6, 1.02, 20, 4)
	p.move(200, headRight)
	p.bend(NoteA5, NoteE5, 1.02, 20, 4)

	p.m.Home()
	p.mouth.Show(MouthHappyOpen)
}

func (p *Performer) fretful() {
	p.mouth.Show(MouthAngry)
	p.bend(NoteA5, NoteD6, 1.02, 20, 4)
	p.bend(NoteA5, NoteE5, 1.02, 20, 4)
	p.delay(300)
	p.mouth.Show(MouthLine)

	for range 4 {
		p.move(100, fretfulPose)
		p.m.Home()
	}

	p.mouth.Show(MouthAngry)
	p.delay(500)

	p.m.Home()
	p.mouth.Show(MouthHappyOpen)
}

func (p *Performer) magic() {
	for range 4 {
		note := 400.0
		for frame := range 6 {
			p.mouth.Animate(GuessAnimation, frame)
			p.bend(note, note+100, 1.04, 10, 10)
			note += 100
		}

		p.mouth.Clear()
		p.bend(note-100, note+100, 1.04, 10, 10)

		for frame := range 6 {
			p.mouth.Animate(GuessAnimation, frame)
			p.bend(note, note+100, 1.04, 10, 10)
			note -= 100
		}
	}

	p.delay(300)
	p.mouth.Show(MouthHappyOpen)
}

func (p *Performer) wave() {
	for range 2 {
		note := 500.0
		for _, up := range []bool{true, true, false, false} {
			for frame := range 10 {
				p.mouth.Animate(WaveAnimation, frame)
				if up {
					p.bend(note, note+100, 1.02, 10, 10)
					note += 101
				} else {
					p.bend(note, note-100, 1.02, 10, 10)
					note -= 101
				}
			}
		}
	}

	p.mouth.Clear()
	p.delay(300)
	p.mouth.Show(MouthHappyOpen)
}

// victory and fail have no choreography yet; they only reset the mouth.
func (p *Performer) victory() {
	p.mouth.Clear()
	p.mouth.Show(MouthHappyOpen)
}

func (p *Performer) fail() {
	p.mouth.Clear()
	p.mouth.Show(MouthHappyOpen)
}
