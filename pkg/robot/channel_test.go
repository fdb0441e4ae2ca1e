package robot

import "testing"

func TestChannel_CommandAppliesTrim(t *testing.T) {
	tests := []struct {
		angle int
		trim  int8
		want  int
	}{
		{90, 0, 90},
		{90, 10, 100},
		{90, -12, 78},
		{175, 10, 180}, // clamped high
		{5, -20, 0},    // clamped low
		{0, 127, 127},
		{180, -128, 52},
		{200, 0, 180},
	}

	for _, tt := range tests {
		rec := &recorder{}
		c := NewChannel(rec)
		c.SetTrim(tt.trim)
		if err := c.Command(tt.angle); err != nil {
			t.Fatalf("Command(%d): %v", tt.angle, err)
		}
		if got := rec.writes[0]; got != tt.want {
			t.Errorf("Command(%d) with trim %d wrote %d, want %d", tt.angle, tt.trim, got, tt.want)
		}
		if c.Position() != tt.angle {
			t.Errorf("Position() = %d, want untrimmed %d", c.Position(), tt.angle)
		}
	}
}

func TestChannel_SetTrimDoesNotMove(t *testing.T) {
	rec := &recorder{}
	c := NewChannel(rec)
	if err := c.Command(120); err != nil {
		t.Fatal(err)
	}

	c.SetTrim(-7)

	if len(rec.writes) != 1 {
		t.Errorf("SetTrim wrote to the actuator: %v", rec.writes)
	}
	if c.Position() != 120 {
		t.Errorf("Position() = %d after SetTrim, want 120", c.Position())
	}
	if c.Trim() != -7 {
		t.Errorf("Trim() = %d, want -7", c.Trim())
	}
}

func TestChannel_AttachDetach(t *testing.T) {
	rec := &recorder{}
	c := NewChannel(rec)
	if c.Attached() {
		t.Fatal("new channel should start detached")
	}
	if err := c.Attach(); err != nil {
		t.Fatal(err)
	}
	if !c.Attached() || !rec.attached {
		t.Error("Attach did not engage the actuator")
	}
	if err := c.Detach(); err != nil {
		t.Fatal(err)
	}
	if c.Attached() || rec.attached {
		t.Error("Detach did not release the actuator")
	}
}
