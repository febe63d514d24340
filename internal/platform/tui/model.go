package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon"
	"github.com/vovakirdan/tui-dungeon/internal/events"
	"github.com/vovakirdan/tui-dungeon/internal/pipeline"
	"github.com/vovakirdan/tui-dungeon/internal/render"
)

// followMargin keeps the target this many cells away from the map edge.
const followMargin = 4

// eventMsg carries one pipeline or navigator event into the update loop.
type eventMsg struct {
	event events.Event
}

// submitErrMsg reports a request the pipeline refused.
type submitErrMsg struct {
	seed uint32
	err  error
}

// sessionClosedMsg is sent once the event stream ends.
type sessionClosedMsg struct{}

// waitForEvent blocks on the session's event stream.
func waitForEvent(sub *events.Subscriber) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.Events():
			return eventMsg{event: e}
		case <-sub.Done():
			return sessionClosedMsg{}
		}
	}
}

// submitCmd asks the pipeline for the layout of seed.
func submitCmd(s *Session, seed uint32) tea.Cmd {
	return func() tea.Msg {
		if err := s.Submit(seed); err != nil {
			return submitErrMsg{seed: seed, err: err}
		}
		return nil
	}
}

// Model is the Bubble Tea model for the dungeon viewer.
type Model struct {
	session *Session
	screen  *core.Screen
	config  core.RuntimeConfig
	keys    KeyMap
	help    help.Model
	camera  render.Camera

	layout   *dungeon.Layout
	target   core.Vec2
	seed     uint32
	showFlow bool
	paused   bool
	quitting bool

	flowVersion uint64
	status      string
	statusErr   bool
}

// NewModel creates a viewer model on top of a running session.
func NewModel(session *Session) Model {
	cfg := session.opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = uint32(time.Now().UnixNano())
	}

	m := Model{
		session:  session,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:   cfg,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		seed:     cfg.Seed,
		showFlow: session.opts.ShowFlow,
		status:   "generating...",
	}
	m.camera = render.CenteredCamera(m.mapArea())
	return m
}

// Init starts the tick loop, listens for events and requests the first layout.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.config.TickRate),
		waitForEvent(m.session.Events()),
		submitCmd(m.session, m.seed),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.camera.Area = m.mapArea()
		m.camera.Follow(m.target.Floor(), followMargin)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case eventMsg:
		m.handleEvent(msg.event)
		return m, waitForEvent(m.session.Events())

	case submitErrMsg:
		if errors.Is(msg.err, pipeline.ErrBusy) {
			m.setStatus(fmt.Sprintf("busy, seed %d ignored", msg.seed), false)
		} else {
			m.setStatus(fmt.Sprintf("seed %d: %v", msg.seed, msg.err), true)
		}
		return m, nil

	case sessionClosedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		m.moveTarget(action.Delta())

	case core.ActionRegenerate:
		m.seed++
		m.setStatus(fmt.Sprintf("generating seed %d...", m.seed), false)
		return m, submitCmd(m.session, m.seed)

	case core.ActionToggleFlow:
		m.showFlow = !m.showFlow

	case core.ActionSpawnAgent:
		m.spawnAgent()

	case core.ActionPause:
		m.paused = !m.paused

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleTick advances the agents while a layout is shown and the pipeline
// is not replacing it.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.layout != nil && !m.paused && m.session.Idle() {
		if err := m.session.Step(m.target); err != nil {
			m.setStatus(err.Error(), true)
		}
	}
	return m, tickCmd(m.config.TickRate)
}

// handleEvent applies one event from the session bus.
func (m *Model) handleEvent(e events.Event) {
	switch ev := e.(type) {
	case events.MapReady:
		m.layout = ev.Layout
		m.seed = ev.Seed
		m.target = core.Vec2{}
		if len(ev.Layout.Rooms) > 0 {
			m.target = ev.Layout.Rooms[0].Center()
		}
		m.camera.Center = m.target.Floor()
		if err := m.session.Retarget(m.target); err != nil {
			m.setStatus(err.Error(), true)
			return
		}
		m.setStatus(fmt.Sprintf("seed %d ready", ev.Seed), false)

	case events.GenerationFailed:
		m.setStatus(fmt.Sprintf("seed %d failed: %s", ev.Seed, ev.Reason), true)

	case events.RequestIgnored:
		m.setStatus(fmt.Sprintf("busy (%s), seed %d ignored", ev.State, ev.Seed), false)

	case events.FlowFieldReady:
		m.flowVersion = ev.Version
	}
}

// moveTarget shifts the target by one cell, staying inside the grid.
func (m *Model) moveTarget(d core.Coord) {
	if m.layout == nil {
		return
	}
	next := m.target.Add(d.Vec())
	if _, ok := m.layout.Grid.WorldToCell(next); !ok {
		return
	}
	m.target = next
	m.camera.Follow(m.target.Floor(), followMargin)
	if err := m.session.Retarget(m.target); err != nil {
		m.setStatus(err.Error(), true)
	}
}

// spawnAgent adds an agent at the centre of the next room in turn.
func (m *Model) spawnAgent() {
	if m.layout == nil || len(m.layout.Rooms) == 0 {
		return
	}
	swarm := m.session.Swarm()
	room := m.layout.Rooms[(swarm.Len()+1)%len(m.layout.Rooms)]
	swarm.Spawn(room.Center())
	if err := m.session.Retarget(m.target); err != nil {
		m.setStatus(err.Error(), true)
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// mapArea returns the screen region left for the map with the short help
// footer and the status line.
func (m Model) mapArea() core.Rect {
	return core.NewRect(0, 0, m.config.ScreenW, core.Max(1, m.config.ScreenH-2))
}

// statusLine summarises the viewer state.
func (m Model) statusLine() string {
	line := fmt.Sprintf(" seed %d", m.seed)
	if m.layout != nil {
		line += fmt.Sprintf(" | rooms %d | corridors %d+%d",
			len(m.layout.Rooms), len(m.layout.Corridors.Tree), len(m.layout.Corridors.Loops))
	}
	line += fmt.Sprintf(" | agents %d | flow v%d", m.session.Swarm().Len(), m.flowVersion)
	if a, steps, ok := m.session.Nearest(); ok {
		line += fmt.Sprintf(" | nearest #%d %d steps", a.ID, steps)
	}
	if m.paused {
		line += " | paused"
	}
	if m.status != "" {
		line += " | " + m.status
	}
	return line
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpView := helpStyle.Render(m.help.View(m.keys))
	mapH := core.Max(1, m.config.ScreenH-1-lipgloss.Height(helpView))

	m.screen.Resize(m.config.ScreenW, mapH+1)
	m.screen.Clear()

	if m.layout == nil {
		m.screen.DrawTextCentered(mapH/2, "generating...", core.ColorStatus)
	} else {
		cam := m.camera
		cam.Area = core.NewRect(0, 0, m.config.ScreenW, mapH)
		ov := render.Overlay{
			Agents:   m.session.Swarm().Positions(),
			Target:   &m.target,
			CellSize: m.session.Field().CellSize(),
		}
		if m.showFlow {
			ov.Flow = m.session.Field().Snapshot()
		}
		render.Draw(m.screen, m.layout, ov, cam)
	}

	color := core.ColorStatus
	if m.statusErr {
		color = core.ColorError
	}
	m.screen.DrawRect(core.NewRect(0, mapH, m.config.ScreenW, 1), ' ', color)
	m.screen.DrawText(0, mapH, m.statusLine(), color)

	return RenderScreen(m.screen) + "\n" + helpView
}

// Run starts a session and the Bubble Tea program on the local terminal.
func Run(opts Options, saver pipeline.ResultSaver, logger *log.Logger) error {
	session := NewSession(opts, saver, logger)
	defer session.Close()

	p := tea.NewProgram(
		NewModel(session),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
