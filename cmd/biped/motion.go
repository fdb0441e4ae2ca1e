package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gwillem/biped/pkg/choreo"
	"github.com/gwillem/biped/pkg/gait"
	"github.com/gwillem/biped/pkg/gesture"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	subHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type GaitCommand struct {
	Steps  *float64      `long:"steps" short:"n" description:"Number of cycles, fractions allowed (default: gait default)"`
	Period time.Duration `long:"period" short:"p" description:"Duration of one cycle, e.g. 1s (default: gait default)"`
	Height *int          `long:"height" description:"Height in degrees (default: gait default)"`
	Dir    string        `long:"dir" short:"d" description:"forward, backward, left or right"`
	Args   struct {
		Name string `positional-arg-name:"NAME" required:"yes"`
	} `positional-args:"yes"`
}

func (c *GaitCommand) Execute(args []string) error {
	p := gait.Params{Period: c.Period}
	if c.Steps != nil {
		p.SetSteps(*c.Steps)
	}
	if c.Height != nil {
		p.SetHeight(*c.Height)
	}
	if c.Dir != "" {
		d, err := gait.ParseDirection(c.Dir)
		if err != nil {
			return err
		}
		p.Dir = d
	}
	return runJob(choreo.GaitJob(c.Args.Name, p))
}

type GestureCommand struct {
	Args struct {
		Name string `positional-arg-name:"NAME" required:"yes"`
	} `positional-args:"yes"`
}

func (c *GestureCommand) Execute(args []string) error {
	return runJob(choreo.GestureJob(c.Args.Name))
}

type HomeCommand struct{}

func (c *HomeCommand) Execute(args []string) error {
	return runJob(choreo.HomeJob())
}

// runJob validates job before anything is opened, then runs it and rests
// the robot.
func runJob(job choreo.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := startSession(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", headerStyle.Render("▶"), job)
	start := time.Now()
	if err := s.ctrl.Submit(context.Background(), job); err != nil {
		s.Close()
		return err
	}
	if err := s.Close(); err != nil {
		return err
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf("done in %v", time.Since(start).Round(time.Millisecond))))
	return nil
}

type ListCommand struct{}

func (c *ListCommand) Execute(args []string) error {
	rows := make([][]string, 0, len(gait.Names()))
	for _, e := range gait.Entries() {
		var extra string
		if e.UsesHeight {
			extra += fmt.Sprintf(" height=%d", e.Defaults.Height)
		}
		if e.UsesDir {
			extra += fmt.Sprintf(" dir=%+d", e.Defaults.Dir)
		}
		rows = append(rows, []string{
			string(e.Name),
			e.Description,
			fmt.Sprintf("steps=%g period=%v%s", e.Defaults.Steps, e.Defaults.Period, extra),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Gait", "Description", "Defaults").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return subHeaderStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Println(t.Render())
	fmt.Println()

	fmt.Println(headerStyle.Render("Gestures"))
	for _, name := range gesture.Names() {
		fmt.Fprintf(os.Stdout, "  %s\n", name)
	}
	return nil
}
