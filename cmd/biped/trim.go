package main

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gwillem/biped/internal/log"
	"github.com/gwillem/biped/pkg/robot"
	"github.com/gwillem/biped/pkg/servo"
)

type TrimCommand struct {
	Step int `long:"step" default:"1" description:"Degrees per key press"`
}

func (c *TrimCommand) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	backend, err := servo.Open(cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	// keep log lines out of the TUI
	log.SetOutput(io.Discard)

	r := robot.New(backend.Actuators(),
		robot.WithFlusher(backend),
		robot.WithTrimStore(robot.ConfigStore{Config: cfg}, true),
	)
	if err := r.Init(); err != nil {
		return err
	}
	r.MoveServos(0, robot.Neutral)

	p := tea.NewProgram(newTrimModel(r, c.Step))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run trim: %w", err)
	}
	r.Home()

	if m := final.(trimModel); m.saved {
		fmt.Printf("Trims %v saved to %s\n", r.Trims(), cfg.Path())
	} else {
		fmt.Println("Trims not saved.")
	}
	return nil
}

// Trim calibration TUI model
type trimModel struct {
	robot    *robot.Robot
	step     int
	selected robot.Joint
	trims    robot.Trims
	saved    bool
	err      error
	quitting bool
}

func newTrimModel(r *robot.Robot, step int) trimModel {
	return trimModel{
		robot: r,
		step:  max(step, 1),
		trims: r.Trims(),
	}
}

func (m trimModel) Init() tea.Cmd {
	return nil
}

func (m trimModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.selected = (m.selected + robot.NumJoints - 1) % robot.NumJoints
	case "down", "j", "tab":
		m.selected = (m.selected + 1) % robot.NumJoints
	case "left", "h":
		m.adjust(-m.step)
	case "right", "l":
		m.adjust(m.step)
	case "0":
		m.trims[m.selected] = 0
		m.apply()
	case "enter", "s":
		m.err = m.robot.SaveTrims()
		if m.err == nil {
			m.saved = true
			m.quitting = true
			return m, tea.Quit
		}
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *trimModel) adjust(delta int) {
	t := int(m.trims[m.selected]) + delta
	m.trims[m.selected] = int8(max(-90, min(90, t)))
	m.apply()
}

// apply shows the new trims by recommanding the neutral pose.
func (m *trimModel) apply() {
	m.robot.SetTrims(m.trims)
	m.robot.MoveServos(0, robot.Neutral)
}

func (m trimModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Trim Calibration"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("Adjust until the robot stands straight with both feet flat."))
	sb.WriteString("\n\n")

	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, robot.NumJoints)
	for _, j := range robot.AllJoints() {
		marker := "  "
		if j == m.selected {
			marker = "▶ "
		}
		rows = append(rows, []string{
			marker + j.String(),
			fmt.Sprintf("%+d", m.trims[j]),
			fmt.Sprintf("%d", robot.CenterAngle+int(m.trims[j])),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Joint", "Trim", "Servo angle").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case row == int(m.selected):
				return selectedStyle
			}
			return cellStyle
		})

	sb.WriteString(t.Render())
	sb.WriteString("\n\n")
	if m.err != nil {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("Save failed: " + m.err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render("↑/↓ select  ←/→ adjust  0 reset  enter save  q quit"))
	return sb.String()
}
