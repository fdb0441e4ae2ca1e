package gesture

import (
	"github.com/sirupsen/logrus"

	"github.com/gwillem/biped/internal/log"
)

// Shape is a static mouth expression.
type Shape string

const (
	MouthSmile       Shape = "smile"
	MouthHappyOpen   Shape = "happy_open"
	MouthHappyClosed Shape = "happy_closed"
	MouthSad         Shape = "sad"
	MouthSadOpen     Shape = "sad_open"
	MouthSadClosed   Shape = "sad_closed"
	MouthLine        Shape = "line"
	MouthTongueOut   Shape = "tongue_out"
	MouthConfused    Shape = "confused"
	MouthHeart       Shape = "heart"
	MouthAngry       Shape = "angry"
	MouthSurprise    Shape = "surprise"
	MouthBigSurprise Shape = "big_surprise"
	MouthCross       Shape = "cross"
)

// Animation is a sequence of mouth frames.
type Animation string

const (
	DreamAnimation Animation = "dream"
	GuessAnimation Animation = "guess"
	WaveAnimation  Animation = "wave"
)

// Mouth is the robot's face display.
type Mouth interface {
	Show(s Shape)
	Animate(a Animation, frame int)
	Clear()
}

// LogMouth logs expressions instead of drawing them.
type LogMouth struct {
	log *logrus.Entry
}

func NewLogMouth() *LogMouth {
	return &LogMouth{log: log.With(log.Fields{"component": "mouth"})}
}

func (m *LogMouth) Show(s Shape) {
	m.log.WithField("shape", s).Info("mouth")
}

func (m *LogMouth) Animate(a Animation, frame int) {
	m.log.WithFields(logrus.Fields{"animation": a, "frame": frame}).Debug("mouth")
}

func (m *LogMouth) Clear() {
	m.log.Debug("mouth cleared")
}
