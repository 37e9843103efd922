// Package debug renders game state in the terminal: a live Bubble Tea overlay with the cube net
// and frame stats, and one-line summaries for logs.
package debug

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-rubiks/engine/input"
	"github.com/Carmen-Shannon/oxy-rubiks/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Source is the game state the overlay reads and the action queue it writes. game.Game satisfies it.
type Source interface {
	Stats() game.Stats
	Dispatcher() input.Dispatcher
}

type tickMsg time.Time

// Model is the Bubble Tea model of the overlay.
type Model struct {
	source  Source
	keys    map[string]input.Action
	refresh time.Duration
	title   string

	stats    game.Stats
	width    int
	quitting bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithRefresh sets how often the overlay polls the game. Values <= 0 are ignored.
func WithRefresh(d time.Duration) ModelOption {
	return func(m *Model) {
		if d > 0 {
			m.refresh = d
		}
	}
}

// WithKeys replaces the key map built from the dispatcher's keymap.
func WithKeys(keys map[string]input.Action) ModelOption {
	return func(m *Model) {
		m.keys = keys
	}
}

// WithTitle sets the heading.
func WithTitle(title string) ModelOption {
	return func(m *Model) {
		m.title = title
	}
}

// NewModel creates an overlay over src. Keys default to the terminal equivalents of the
// dispatcher's bindings.
func NewModel(src Source, options ...ModelOption) *Model {
	m := &Model{
		source:  src,
		refresh: 100 * time.Millisecond,
		title:   "oxy-rubiks",
	}
	for _, opt := range options {
		opt(m)
	}
	if m.keys == nil {
		m.keys = KeysFromBindings(src.Dispatcher().Keymap().Bindings())
	}
	m.stats = src.Stats()
	return m
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		a, ok := m.keys[msg.String()]
		if !ok {
			return m, nil
		}
		m.source.Dispatcher().Queue().Push(a)
		if a == input.QuitGame {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		m.stats = m.source.Stats()
		return m, m.tickCmd()
	}
	return m, nil
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.stats

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(RenderNet(s.State))
	b.WriteString("\n")

	if s.Solved {
		b.WriteString(solvedStyle.Render("SOLVED"))
	} else {
		b.WriteString(labelStyle.Render("scrambled"))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("time:"), formatElapsed(s.CurrentTime))
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("moves:"), s.Moves)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("queued:"), s.Queued)
	if s.LastAction != input.ActionNone {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("last action:"), actionStyle.Render(s.LastAction.String()))
	}

	if s.Overlay {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %.1f\n", labelStyle.Render("fps:"), s.FPS)
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("tick:"), s.DeltaTime.Round(time.Microsecond))
		fmt.Fprintf(&b, "%s %t\n", labelStyle.Render("animating:"), s.Animating)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q w e / a s d: columns   u i o / j k l: rows   z: undo   space: scramble   esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func formatElapsed(d time.Duration) string {
	d = d.Round(10 * time.Millisecond)
	minutes := int(d / time.Minute)
	seconds := (d % time.Minute).Seconds()
	return fmt.Sprintf("%d:%05.2f", minutes, seconds)
}

// Summary is a one-line status for window titles.
func Summary(title string, s game.Stats) string {
	parts := []string{title, fmt.Sprintf("%d moves", s.Moves), formatElapsed(s.CurrentTime)}
	if s.Overlay {
		parts = append(parts, fmt.Sprintf("%.0f fps", s.FPS), fmt.Sprintf("%d queued", s.Queued))
	}
	if s.Solved {
		parts = append(parts, "solved")
	}
	return strings.Join(parts, " | ")
}

// Run shows the overlay on the terminal until the user quits or ctx ends.
//
// Parameters:
//   - ctx: the context bounding the program
//   - src: the game to display
//   - options: model options
//
// Returns:
//   - error: a terminal error, or tea.ErrProgramKilled when ctx ended the program
func Run(ctx context.Context, src Source, options ...ModelOption) error {
	p := tea.NewProgram(NewModel(src, options...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
