package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/app"
	"github.com/SeamusWaldron/cubesolver/internal/config"
	"github.com/SeamusWaldron/cubesolver/internal/session"
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Track a GoCube over Bluetooth and solve it on demand",
	Long: `Connect to a GoCube smart cube, follow its turns, and solve the tracked
state on demand. Hold the cube solved while it connects: the tracked state
starts solved.

Keyboard shortcuts:
  s       - Solve the current state
  r       - Reset (mark the cube as solved)
  q/Esc   - Quit`,
	Args: cobra.NoArgs,
	RunE: runLive,
}

func init() {
	rootCmd.AddCommand(liveCmd)
}

// trackedCube is the part of a connected smart cube the live view uses.
type trackedCube interface {
	DeviceName() string
	Battery() int
	Facelets() string
	Moves() []cubesolver.Move
	Reset() error
	Close() error
}

// Messages
type tickMsg time.Time
type connectedMsg struct{ cube *cubesolver.SmartCube }
type moveMsg struct{ move cubesolver.Move }
type cubeSolvedMsg struct{}
type solveResultMsg struct {
	res app.Result
	err error
}
type errMsg struct{ err error }

// Model
type liveModel struct {
	svc    *app.Service
	state  *session.StateFile // nil when the state file is unavailable
	cube   trackedCube
	events chan tea.Msg

	deviceName string
	battery    int
	recent     []cubesolver.Move

	solving  bool
	solution string
	detail   string
	err      error
	quitting bool
}

func newLiveModel(svc *app.Service, state *session.StateFile) *liveModel {
	return &liveModel{
		svc:     svc,
		state:   state,
		battery: -1,
		events:  make(chan tea.Msg, 100),
	}
}

func (m *liveModel) Init() tea.Cmd {
	return tea.Batch(m.connect(), m.tickCmd())
}

func (m *liveModel) tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *liveModel) listen() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m *liveModel) connect() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		devices, err := scanForCube(ctx, 3, m.svc.Logger())
		if err != nil {
			return errMsg{err}
		}
		if len(devices) == 0 {
			return errMsg{cubesolver.ErrDeviceNotFound}
		}
		target := m.pick(devices)

		cube, err := cubesolver.Connect(ctx, target, m.svc.Logger())
		if err != nil {
			return errMsg{fmt.Errorf("connection failed: %w", err)}
		}
		m.remember(target)
		return connectedMsg{cube}
	}
}

// pick prefers the cube used last time.
func (m *liveModel) pick(devices []cubesolver.Device) cubesolver.Device {
	if m.state == nil {
		return devices[0]
	}
	addrs := make([]string, len(devices))
	for i, d := range devices {
		addrs[i] = d.Address
	}
	return devices[m.state.Pick(addrs)]
}

// remember saves the connected cube. A failed save is only logged.
func (m *liveModel) remember(d cubesolver.Device) {
	if m.state == nil {
		return
	}
	if err := m.state.SetLastDevice(d.Address, d.Name); err != nil {
		log := m.svc.Logger()
		log.Warn().Err(err).Str("address", d.Address).Msg("could not save session state")
	}
}

// attach routes device callbacks into the model's event channel.
func (m *liveModel) attach(cube *cubesolver.SmartCube) {
	send := func(msg tea.Msg) {
		select {
		case m.events <- msg:
		default:
			// Channel full, drop message
		}
	}
	cube.OnMove(func(mv cubesolver.Move) { send(moveMsg{mv}) })
	cube.OnSolved(func() { send(cubeSolvedMsg{}) })
}

func (m *liveModel) solve() tea.Cmd {
	facelets := m.cube.Facelets()
	return func() tea.Msg {
		res, err := m.svc.Solve(app.Request{Facelets: facelets, Source: "live"})
		return solveResultMsg{res, err}
	}
}

func (m *liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			if m.cube != nil {
				m.cube.Close()
			}
			return m, tea.Quit

		case "s":
			if m.cube != nil && !m.solving {
				m.solving = true
				m.err = nil
				return m, m.solve()
			}

		case "r":
			if m.cube != nil {
				m.err = m.cube.Reset()
				m.recent = nil
				m.solution, m.detail = "", ""
			}
		}

	case tickMsg:
		if m.cube != nil {
			m.battery = m.cube.Battery()
		}
		return m, m.tickCmd()

	case connectedMsg:
		m.attach(msg.cube)
		m.cube = msg.cube
		m.deviceName = msg.cube.DeviceName()
		if err := msg.cube.Reset(); err != nil {
			m.err = err
		}
		return m, m.listen()

	case moveMsg:
		m.recent = cubesolver.SimplifyMoves(append(m.recent, msg.move))
		if len(m.recent) > 12 {
			m.recent = m.recent[len(m.recent)-12:]
		}
		m.solution, m.detail = "", ""
		return m, m.listen()

	case cubeSolvedMsg:
		m.detail = "solved!"
		return m, m.listen()

	case solveResultMsg:
		m.solving = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if err := msg.res.Err(); err != nil {
			m.err = err
			return m, nil
		}
		m.solution = msg.res.Solution.String()
		if m.solution == "" {
			m.solution = "(already solved)"
		}
		m.detail = fmt.Sprintf("%d moves, %d nodes in %s",
			msg.res.Len(), msg.res.Nodes, msg.res.Elapsed.Round(time.Millisecond))

	case errMsg:
		m.err = msg.err
	}

	return m, nil
}

func (m *liveModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("cubesolve live"))
	b.WriteString("\n\n")

	if m.cube == nil {
		if m.err != nil {
			b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		} else {
			b.WriteString(statusStyle.Render("Scanning... hold the cube solved"))
		}
		b.WriteString("\n\n" + helpStyle.Render("q: quit") + "\n")
		return b.String()
	}

	status := "Connected: " + m.deviceName
	if m.battery >= 0 {
		status += fmt.Sprintf("  Battery: %d%%", m.battery)
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n\n")
	b.WriteString(renderNet(m.cube.Facelets()))
	b.WriteString("\n")

	b.WriteString("Moves: ")
	b.WriteString(cubesolver.FormatMoves(m.recent))
	b.WriteString("\n")

	switch {
	case m.solving:
		b.WriteString(statusStyle.Render("Solving..."))
	case m.solution != "":
		b.WriteString("Solution: " + moveStyle.Render(m.solution))
	}
	b.WriteString("\n")
	if m.detail != "" {
		b.WriteString(statusStyle.Render(m.detail) + "\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("s: solve  r: reset  q: quit") + "\n")
	return b.String()
}

func runLive(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	var state *session.StateFile
	if dir, err := config.Dir(); err == nil {
		state, err = session.Open(filepath.Join(dir, "state.json"))
		if err != nil {
			rt.Log.Warn().Err(err).Msg("ignoring session state")
		}
	}

	p := tea.NewProgram(newLiveModel(rt.Service, state), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
