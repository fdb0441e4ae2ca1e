package robot

// Actuator drives one physical joint.
// Write receives the final, trimmed and clamped angle in degrees.
type Actuator interface {
	Attach() error
	Detach() error
	Write(angle int) error
}

// Flusher is implemented by backends that buffer channel writes and push
// all four to the hardware at once. The engine calls Flush once per tick,
// after every channel has been commanded.
type Flusher interface {
	Flush() error
}

// Channel wraps one actuator with its trim and last commanded position.
// The position never includes the trim; trim is applied only when writing
// to the actuator.
type Channel struct {
	actuator Actuator
	trim     int8
	position int
	attached bool
}

// NewChannel creates a detached channel at the neutral position.
func NewChannel(a Actuator) *Channel {
	return &Channel{
		actuator: a,
		position: CenterAngle,
	}
}

// Attach engages drive power.
func (c *Channel) Attach() error {
	if err := c.actuator.Attach(); err != nil {
		return err
	}
	c.attached = true
	return nil
}

// Detach releases drive power so the joint can move freely.
func (c *Channel) Detach() error {
	if err := c.actuator.Detach(); err != nil {
		return err
	}
	c.attached = false
	return nil
}

// SetTrim stores the calibration offset. The actuator is not moved.
func (c *Channel) SetTrim(trim int8) {
	c.trim = trim
}

// Trim returns the calibration offset.
func (c *Channel) Trim() int8 {
	return c.trim
}

// Position returns the last commanded angle, without trim.
func (c *Channel) Position() int {
	return c.position
}

// Attached reports whether the channel is holding position.
func (c *Channel) Attached() bool {
	return c.attached
}

// Command records angle as the channel position and writes
// clamp(angle+trim) to the actuator.
func (c *Channel) Command(angle int) error {
	c.position = angle
	return c.actuator.Write(clampAngle(angle + int(c.trim)))
}
