package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lifetrack/internal/app"
)

const rpcTimeout = 4 * time.Second

// Controller defines the subset of app.App behaviour the TUI needs.
type Controller interface {
	Status() (app.DaemonStatus, error)
	StartDaemon() (*app.DaemonHandle, error)
	List(context.Context, time.Duration) ([]app.Object, error)
	Destroy(context.Context, app.DestroyParams) error
}

// Model represents the Bubble Tea state.
type Model struct {
	controller Controller

	list     list.Model
	objects  []app.Object
	selected map[uint64]bool

	daemonStatus app.DaemonStatus
	statusMsg    string

	err     error
	loading bool

	width  int
	height int

	lastUpdated time.Time
}

// New constructs a TUI model with default styles.
func New(ctrl Controller) *Model {
	delegate := list.NewDefaultDelegate()
	lst := list.New([]list.Item{}, delegate, 0, 0)
	lst.Title = "Tracked objects"
	lst.SetShowHelp(false)
	lst.SetFilteringEnabled(false)
	lst.DisableQuitKeybindings()

	return &Model{
		controller: ctrl,
		list:       lst,
		statusMsg:  "Checking daemon status…",
		loading:    true,
		selected:   make(map[uint64]bool),
	}
}

// Run spins up the Bubble Tea program with sensible defaults.
func Run(ctrl Controller) error {
	m := New(ctrl)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err := prog.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(checkDaemonStatusCmd(m.controller), loadObjectsCmd(m.controller))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.height > 4 {
			m.list.SetSize(msg.Width, msg.Height-4)
		}

	case daemonStatusMsg:
		m.daemonStatus = msg.status
		if msg.status.Running {
			if msg.status.PID > 0 {
				m.statusMsg = fmt.Sprintf("Daemon running (pid %d). Press r to refresh, q to quit.", msg.status.PID)
			} else {
				m.statusMsg = "Daemon running. Press r to refresh, q to quit."
			}
		} else {
			m.statusMsg = "Daemon is not running. Press s to start it."
			m.objects = nil
			m.list.SetItems(nil)
		}

	case objectsLoadedMsg:
		m.loading = false
		m.err = nil
		m.setObjects(msg.objects)

	case daemonStartedMsg:
		m.statusMsg = "Daemon started."
		return m, tea.Batch(checkDaemonStatusCmd(m.controller), loadObjectsCmd(m.controller))

	case destroyedMsg:
		verb := "Destroyed"
		if msg.noNotify {
			verb = "Doomed"
		}
		m.statusMsg = fmt.Sprintf("%s %d object(s).", verb, msg.count)
		for _, h := range msg.handles {
			delete(m.selected, h)
		}
		m.loading = true
		return m, loadObjectsCmd(m.controller)

	case errMsg:
		m.loading = false
		m.err = msg.err

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, loadObjectsCmd(m.controller)
		case "s":
			if !m.daemonStatus.Running {
				m.statusMsg = "Starting daemon…"
				return m, startDaemonCmd(m.controller)
			}
		case "x", "d":
			if handles := m.targets(); len(handles) > 0 {
				return m, destroyCmd(m.controller, handles, msg.String() == "d")
			}
		case " ":
			m.toggleCurrentSelection()
		case "c":
			if len(m.selected) > 0 {
				m.clearSelection()
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	statusStyle := lipgloss.NewStyle().Bold(true)
	if !m.daemonStatus.Running {
		statusStyle = statusStyle.Foreground(lipgloss.Color("203"))
	} else {
		statusStyle = statusStyle.Foreground(lipgloss.Color("42"))
	}
	b.WriteString(statusStyle.Render(m.statusMsg))
	b.WriteByte('\n')

	if m.loading {
		b.WriteString("Loading objects…\n")
	} else if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
		b.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteByte('\n')
	}

	if len(m.list.Items()) == 0 && !m.loading && m.err == nil && m.daemonStatus.Running {
		b.WriteString("No objects tracked.\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteByte('\n')
	}

	if current := m.currentObject(); current != nil {
		detail := fmt.Sprintf(
			"handle=%s slot=%d valid=%t\nname=%s\nflags=%s\ntracked=%s",
			current.HandleString(),
			current.Slot,
			current.Valid,
			valueOrDash(current.Name),
			current.Flags,
			current.TrackedAt.Format(time.RFC3339),
		)
		detailStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginBottom(1)
		b.WriteString(detailStyle.Render(detail))
		b.WriteByte('\n')
	}

	help := "Commands: q quit • r reload • s start daemon • space select • c clear selection • x destroy • d doom"
	if count := len(m.selected); count > 0 {
		help += fmt.Sprintf(" • selected=%d", count)
	}
	if !m.lastUpdated.IsZero() {
		help += fmt.Sprintf(" • last update %s", m.lastUpdated.Format(time.Kitchen))
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

// objectItem adapts app.Object to the bubbles list item interface.
type objectItem struct {
	Object   app.Object
	Selected bool
}

func (o objectItem) Title() string {
	mark := " "
	if o.Selected {
		mark = "✓"
	}
	return fmt.Sprintf("[%s] %s %s", mark, o.Object.HandleString(), valueOrDash(o.Object.Name))
}

func (o objectItem) Description() string {
	return fmt.Sprintf("slot=%d flags=%s", o.Object.Slot, o.Object.Flags)
}

func (o objectItem) FilterValue() string {
	return o.Object.HandleString() + " " + o.Object.Name
}

func (m *Model) setObjects(objs []app.Object) {
	m.objects = objs
	newSelected := make(map[uint64]bool)
	items := make([]list.Item, 0, len(objs))
	for _, obj := range objs {
		selected := m.selected[obj.Handle]
		if selected {
			newSelected[obj.Handle] = true
		}
		items = append(items, objectItem{Object: obj, Selected: selected})
	}
	m.selected = newSelected
	m.list.SetItems(items)
	m.lastUpdated = time.Now()
}

// targets returns the selected handles, or the one under the cursor when
// nothing is selected.
func (m *Model) targets() []uint64 {
	if len(m.selected) > 0 {
		out := make([]uint64, 0, len(m.selected))
		for _, obj := range m.objects {
			if m.selected[obj.Handle] {
				out = append(out, obj.Handle)
			}
		}
		return out
	}
	if current := m.currentObject(); current != nil {
		return []uint64{current.Handle}
	}
	return nil
}

func (m *Model) toggleCurrentSelection() {
	if len(m.objects) == 0 {
		return
	}
	idx := m.list.Index()
	if idx < 0 || idx >= len(m.objects) {
		return
	}
	item, ok := m.list.Items()[idx].(objectItem)
	if !ok {
		return
	}
	if item.Selected {
		delete(m.selected, item.Object.Handle)
	} else {
		m.selected[item.Object.Handle] = true
	}
	item.Selected = !item.Selected
	m.list.SetItem(idx, item)
}

func (m *Model) clearSelection() {
	m.selected = make(map[uint64]bool)
	items := m.list.Items()
	for i, it := range items {
		if oi, ok := it.(objectItem); ok && oi.Selected {
			oi.Selected = false
			m.list.SetItem(i, oi)
		}
	}
}

func (m *Model) currentObject() *app.Object {
	if len(m.objects) == 0 {
		return nil
	}
	idx := m.list.Index()
	if idx < 0 || idx >= len(m.objects) {
		return nil
	}
	return &m.objects[idx]
}

func valueOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

type daemonStatusMsg struct {
	status app.DaemonStatus
}

type objectsLoadedMsg struct {
	objects []app.Object
}

type daemonStartedMsg struct{}

type destroyedMsg struct {
	handles  []uint64
	count    int
	noNotify bool
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func checkDaemonStatusCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		status, err := ctrl.Status()
		if err != nil {
			return errMsg{err}
		}
		return daemonStatusMsg{status: status}
	}
}

func loadObjectsCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()
		objs, err := ctrl.List(ctx, rpcTimeout)
		if err != nil {
			return errMsg{err}
		}
		return objectsLoadedMsg{objects: objs}
	}
}

func destroyCmd(ctrl Controller, handles []uint64, noNotify bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()
		for i, h := range handles {
			err := ctrl.Destroy(ctx, app.DestroyParams{Handle: h, NoNotify: noNotify, Timeout: rpcTimeout})
			if err != nil {
				return errMsg{fmt.Errorf("destroy %s: %w (%d of %d done)", app.Object{Handle: h}.HandleString(), err, i, len(handles))}
			}
		}
		return destroyedMsg{handles: handles, count: len(handles), noNotify: noNotify}
	}
}

func startDaemonCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		if _, err := ctrl.StartDaemon(); err != nil {
			return errMsg{err}
		}
		// Give the daemon a moment to bind the socket.
		time.Sleep(300 * time.Millisecond)
		return daemonStartedMsg{}
	}
}
