package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/biped/internal/log"
	"github.com/gwillem/biped/pkg/choreo"
	"github.com/gwillem/biped/pkg/robot"
)

type PlayCommand struct {
	Repeat int `long:"repeat" short:"r" description:"Override the routine's repeat count"`
	Args   struct {
		Routine string `positional-arg-name:"ROUTINE.yaml" required:"yes"`
	} `positional-args:"yes"`
}

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

// Joint colors - distinct colors for each joint
var jointColors = map[robot.Joint]string{
	robot.LeftHip:   "196", // red
	robot.RightHip:  "208", // orange
	robot.LeftFoot:  "46",  // green
	robot.RightFoot: "51",  // cyan
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type playModel struct {
	ctrl     *choreo.Controller
	routine  *choreo.Routine
	chart    *streamlinechart.Model
	width    int        // terminal width
	height   int        // terminal height
	logs     []string   // last N log messages
	lastPose robot.Pose // previous pose, to freeze the chart when idle
	havePose bool
	finished bool
	err      error
	quitting bool
}

func (m *playModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// Messages from the controller
type stateMsg choreo.State
type logMsg string
type routineDoneMsg struct{ err error }

func waitForState(ctrl *choreo.Controller) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-ctrl.States())
	}
}

func waitForLog(ctrl *choreo.Controller) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-ctrl.Logs())
	}
}

func runRoutine(ctrl *choreo.Controller, r *choreo.Routine) tea.Cmd {
	return func() tea.Msg {
		return routineDoneMsg{err: ctrl.RunRoutine(context.Background(), r)}
	}
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *playModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20 // default size before we know terminal size
	}
	width = max(m.width-borderSize-2, 40)
	height = max(m.height-headerHeight-legendHeight-footerHeight-borderSize, 10)
	return width, height
}

func newPlayModel(ctrl *choreo.Controller, r *choreo.Routine) playModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(robot.MinAngle, robot.MaxAngle),
	)

	for _, j := range robot.AllJoints() {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(jointColors[j]))
		chart.SetDataSetStyles(j.String(), runes.ThinLineStyle, style)
	}

	return playModel{
		ctrl:    ctrl,
		routine: r,
		chart:   &chart,
	}
}

func (m playModel) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.ctrl),
		waitForLog(m.ctrl),
		runRoutine(m.ctrl, m.routine),
	)
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chart.Resize(m.chartSize())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case stateMsg:
		st := choreo.State(msg)
		if !m.havePose || st.Pose != m.lastPose {
			for _, j := range robot.AllJoints() {
				m.chart.PushDataSet(j.String(), float64(st.Pose[j]))
			}
			m.chart.DrawAll()
			m.lastPose, m.havePose = st.Pose, true
		}
		return m, waitForState(m.ctrl)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.ctrl)

	case routineDoneMsg:
		m.finished = true
		m.err = msg.err
		if msg.err != nil {
			m.addLog("Error: " + msg.err.Error())
		} else {
			m.addLog("Routine finished, press 'q' to quit")
		}
		return m, nil
	}

	return m, nil
}

func (m playModel) View() string {
	if m.quitting {
		return "Playback stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("Biped Play"))
	sb.WriteString(fmt.Sprintf(" - %s", m.routine.Name))
	st := m.ctrl.Snapshot()
	if st.Current != nil {
		sb.WriteString(statusStyle.Render("  " + st.Current.String()))
	} else if m.finished {
		sb.WriteString(statusStyle.Render("  done"))
	}
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(max(m.width-4, 20))

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func renderLegend() string {
	var items []string
	for _, j := range robot.AllJoints() {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(jointColors[j])).Bold(true)
		items = append(items, colorStyle.Render("━━")+" "+j.String())
	}
	return strings.Join(items, "  ")
}

func (c *PlayCommand) Execute(args []string) error {
	r, err := choreo.LoadRoutine(c.Args.Routine)
	if err != nil {
		return err
	}
	if c.Repeat > 0 {
		r.Repeat = c.Repeat
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// keep log lines out of the TUI; the controller log channel feeds the box
	log.SetOutput(io.Discard)

	s, err := startSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	p := tea.NewProgram(newPlayModel(s.ctrl, r), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run play: %w", err)
	}
	return final.(playModel).err
}
