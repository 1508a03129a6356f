// Package tui is a terminal front end for the reader. Pasting a file path
// (which is what most terminals do when a file is dropped on them) or
// dropping it into a watched inbox loads it; the mouse wheel and arrow
// keys change the speed.
package tui

import (
	"strconv"
	"strings"
	"time"

	"speedread/internal/draw"
	"speedread/internal/mimetype"
	"speedread/internal/reader"
	"speedread/internal/tui/messages"
	"speedread/internal/tui/styles"
	"speedread/internal/tui/views"
	"speedread/internal/watch"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FrameRate is the number of frames rendered per second
const FrameRate = 60

// CellTheme adapts a theme measured in pixels to terminal cells: one row
// per line of text, the speed in the top left corner and the frame on the
// outermost cells.
func CellTheme(t reader.Theme) reader.Theme {
	t.TextSize = 1
	t.SpeedSize = 1
	t.SpeedX = 1
	t.SpeedY = 0
	t.FrameInset = 0
	t.FrameStroke = 1
	return t
}

// Options configures a Model
type Options struct {
	Reader     *reader.Reader
	Classifier *mimetype.Classifier
	// Arrivals, when set, is read for files dropped into a watched inbox.
	Arrivals <-chan watch.Arrival
	// File, when set, is dropped on start.
	File string
}

// Model is the bubbletea model around a reader
type Model struct {
	reader     *reader.Reader
	classifier *mimetype.Classifier
	arrivals   <-chan watch.Arrival
	initial    string

	keys     keyMap
	help     help.Model
	showHelp bool

	width, height int
	last          time.Time
	frame         []draw.Intent
}

// New creates a Model
func New(opts Options) *Model {
	classifier := opts.Classifier
	if classifier == nil {
		classifier = mimetype.Default()
	}
	return &Model{
		reader:     opts.Reader,
		classifier: classifier,
		arrivals:   opts.Arrivals,
		initial:    opts.File,
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick()}
	if m.initial != "" {
		file := watch.FileFromPath(m.initial, m.classifier)
		cmds = append(cmds, func() tea.Msg { return messages.DropMsg{File: file} })
	}
	if m.arrivals != nil {
		cmds = append(cmds, waitForArrival(m.arrivals))
	}
	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/FrameRate, func(t time.Time) tea.Msg {
		return messages.TickMsg{Time: t}
	})
}

func waitForArrival(arrivals <-chan watch.Arrival) tea.Cmd {
	return func() tea.Msg {
		a, ok := <-arrivals
		if !ok {
			return messages.WatchClosedMsg{}
		}
		return messages.DropMsg{File: a.File, Inbox: true}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.TickMsg:
		m.Frame(m.elapsed(msg.Time))
		return m, tick()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case messages.DropMsg:
		m.reader.OnDrop(msg.File)
		if msg.Inbox && m.arrivals != nil {
			return m, waitForArrival(m.arrivals)
		}

	case messages.WatchClosedMsg:
		m.arrivals = nil
	}
	return m, nil
}

// elapsed returns the seconds since the previous tick; the first tick
// has none.
func (m *Model) elapsed(now time.Time) float64 {
	var dt float64
	if !m.last.IsZero() {
		dt = now.Sub(m.last).Seconds()
	}
	m.last = now
	return dt
}

// Frame runs the reader for one frame of dt seconds
func (m *Model) Frame(dt float64) {
	m.frame = m.reader.Render(dt, m.bounds())
}

func (m *Model) bounds() draw.Bounds {
	return draw.Bounds{Width: float32(m.width), Height: float32(m.contentHeight())}
}

func (m *Model) contentHeight() int {
	if !m.showHelp {
		return m.height
	}
	return max(m.height-lipgloss.Height(m.helpView()), 0)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.reader.OnScroll(1)
	case tea.MouseButtonWheelDown:
		m.reader.OnScroll(-1)
	}
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Paste {
		if path := pastedPath(string(msg.Runes)); path != "" {
			m.reader.OnDrop(watch.FileFromPath(path, m.classifier))
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Faster):
		m.reader.OnScroll(1)
	case key.Matches(msg, m.keys.Slower):
		m.reader.OnScroll(-1)
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return m, nil
}

// pastedPath extracts a file path from pasted text. Terminals quote or
// backslash-escape dropped paths; a file:// prefix is also stripped.
func pastedPath(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = s[1 : len(s)-1]
	} else if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	} else {
		s = strings.NewReplacer(`\ `, " ", `\(`, "(", `\)`, ")", `\'`, "'", `\\`, `\`).Replace(s)
	}
	return strings.TrimPrefix(s, "file://")
}

func (m *Model) helpView() string {
	return styles.Help.Render(m.help.View(m.keys))
}

// View implements tea.Model
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	out := views.RenderIntents(m.frame, m.width, m.contentHeight(), m.reader.Theme().Background)
	if m.showHelp {
		out += "\n" + m.helpView()
	}
	return out
}

// Reader returns the wrapped reader
func (m *Model) Reader() *reader.Reader { return m.reader }

// ShowHelp reports whether the key help is visible
func (m *Model) ShowHelp() bool { return m.showHelp }

// Intents returns the intents of the last frame
func (m *Model) Intents() []draw.Intent { return m.frame }
