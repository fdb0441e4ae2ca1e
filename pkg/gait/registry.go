package gait

import (
	"errors"
	"fmt"
	"time"
)

// Name identifies a gait in the catalog.
type Name string

const (
	Walk          Name = "walk"
	Turn          Name = "turn"
	UpDown        Name = "updown"
	Moonwalker    Name = "moonwalker"
	Swing         Name = "swing"
	TiptoeSwing   Name = "tiptoe_swing"
	Crusaito      Name = "crusaito"
	Flapping      Name = "flapping"
	AscendingTurn Name = "ascending_turn"
	Jitter        Name = "jitter"
	Jump          Name = "jump"
	ShakeLeg      Name = "shake_leg"
	Bend          Name = "bend"
)

// ErrUnknownGait is returned when a name is not in the catalog.
var ErrUnknownGait = errors.New("unknown gait")

// Entry describes one catalog gait.
type Entry struct {
	Name        Name   `json:"name"`
	Description string `json:"description"`
	// UsesHeight and UsesDir tell front ends which parameters matter.
	UsesHeight bool   `json:"uses_height"`
	UsesDir    bool   `json:"uses_dir"`
	Defaults   Params `json:"defaults"`

	build func(Params) Program
}

// Program builds the steps for p. Zero fields in p fall back to the
// entry's defaults.
func (e Entry) Program(p Params) Program {
	return e.build(e.Fill(p))
}

// Fill replaces the zero fields of p with the entry's defaults, except
// those marked in p.Set.
func (e Entry) Fill(p Params) Params {
	if p.Steps == 0 && p.Set&FieldSteps == 0 {
		p.Steps = e.Defaults.Steps
	}
	if p.Period == 0 {
		p.Period = e.Defaults.Period
	}
	if p.Height == 0 && p.Set&FieldHeight == 0 {
		p.Height = e.Defaults.Height
	}
	if p.Dir == 0 {
		p.Dir = e.Defaults.Dir
	}
	return p
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

var catalog = []Entry{
	{
		Name: Walk, Description: "walk forward or backward", UsesDir: true,
		Defaults: Params{Steps: 4, Period: ms(1000), Dir: Forward},
		build: func(p Params) Program {
			return Program{Oscillation{Spec: WalkSpec(p.Steps, p.Period, p.Dir)}}
		},
	},
	{
		Name: Turn, Description: "turn on the spot to the left or right", UsesDir: true,
		Defaults: Params{Steps: 4, Period: ms(2000), Dir: Left},
		build: func(p Params) Program {
			return Program{Oscillation{Spec: TurnSpec(p.Steps, p.Period, p.Dir)}}
		},
	},
	{
		Name: UpDown, Description: "bob up and down", UsesHeight: true,
		Defaults: Params{Steps: 2, Period: ms(1000), Height: Big},
		build: func(p Params) Program {
			return Program{Oscillation{Spec: UpDownSpec(p.Steps, p.Period, p.Height)}}
		},
	},
	{
		Name: Moonwalker, Description: "slide sideways with a travelling wave through the feet", UsesHeight: true, UsesDir: true,
		Defaults: Params{Steps: 4, Period: ms(1000), Height: 25, Dir: Left},
		build: func(p Params) Program {
			return Program{Oscillation{Spec: MoonwalkerSpec(p.Steps, p.Period, p.Height, p.Dir)}}
		},
	},
	{
		Name: Swing, Description: "sway from side to side", UsesHeight: true,
		Defaults: Params{Steps: 4, Period: ms(1000), Height: 20},
		build: func(p Params) Program {
			return Program{Oscillation{Spec: SwingSpec(p.Steps, p.Period, p.Height)}}
		},
	},
	{
		Name: TiptoeSwing, Description: "sway from side to side on tiptoe", UsesHeight: true,
		Defaults: Params{Steps: 4, Period: ms(900), Height: 20},
		build: func(p Params) Program {
			return Program{Oscillation{Spec: TiptoeSwingSpec(p.Steps, p.Period, p.Height)}}
		},
	},
	{
		Name: Crusaito, Description: "cross between a walk and a moonwalk", UsesHeight: true, UsesDir: true,
		Defaults: Params{Steps: 4, Period: ms(1000), Height: 25, Dir: Forward},
		build: func(p Params) Program {
			return Program{Oscillation{Spec: CrusaitoSpec(p.Steps, p.Period, p.Height, p.Dir)}}
		},
	},
	{
		Name: Flapping, Description: "flap the hips while stepping", UsesHeight: true, UsesDir: true,
		Defaults: Params{Steps: 4, Period: ms(1000), Height: 20, Dir: Forward},
		build: func(p Params) Program {
			return Program{Oscillation{Spec: FlappingSpec(p.Steps, p.Period, p.Height, p.Dir)}}
		},
	},
	{
		Name: AscendingTurn, Description: "rise and fall while twisting the hips", UsesHeight: true,
		Defaults: Params{Steps: 4, Period: ms(500), Height: Medium},
		build: func(p Params) Program {
			return Program{Oscillation{Spec: AscendingTurnSpec(p.Steps, p.Period, p.Height)}}
		},
	},
	{
		Name: Jitter, Description: "shake the hips in one continuous pass", UsesHeight: true,
		Defaults: Params{Steps: 10, Period: ms(500), Height: 20},
		build: func(p Params) Program {
			return Program{Oscillation{Spec: JitterSpec(p.Steps, p.Period, p.Height), Continuous: true}}
		},
	},
	{
		Name: Jump, Description: "rise on tiptoe and come back down",
		Defaults: Params{Steps: 1, Period: ms(2000)},
		build: func(p Params) Program {
			return JumpProgram(p.Steps, p.Period)
		},
	},
	{
		Name: ShakeLeg, Description: "stand on one foot and shake the other leg", UsesDir: true,
		Defaults: Params{Steps: 1, Period: ms(2000), Dir: Right},
		build: func(p Params) Program {
			return ShakeLegProgram(int(p.Steps), p.Period, p.Dir)
		},
	},
	{
		Name: Bend, Description: "lean to one side and hold", UsesDir: true,
		Defaults: Params{Steps: 1, Period: ms(1400), Dir: Left},
		build: func(p Params) Program {
			return BendProgram(int(p.Steps), p.Period, p.Dir)
		},
	},
}

// Entries returns the catalog in its canonical order.
func Entries() []Entry {
	return append([]Entry(nil), catalog...)
}

// Names returns every gait name in catalog order.
func Names() []Name {
	names := make([]Name, len(catalog))
	for i, e := range catalog {
		names[i] = e.Name
	}
	return names
}

// Lookup finds a gait by name.
func Lookup(name string) (Entry, error) {
	for _, e := range catalog {
		if string(e.Name) == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrUnknownGait, name)
}

// Run looks up name and plays it on m with p.
func Run(m Mover, name string, p Params) error {
	e, err := Lookup(name)
	if err != nil {
		return err
	}
	e.Program(p).Run(m)
	return nil
}
