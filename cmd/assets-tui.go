package cmd

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// syncTracker counts verified objects. OnProgress writes, the model reads
type syncTracker struct {
	done  int64
	total int64
}

func (t *syncTracker) OnProgress(done int, total int) {
	atomic.StoreInt64(&t.total, int64(total))
	atomic.StoreInt64(&t.done, int64(done))
}

func (t *syncTracker) values() (int, int) {
	return int(atomic.LoadInt64(&t.done)), int(atomic.LoadInt64(&t.total))
}

// percent returns the progress between 0 and 1
func (t *syncTracker) percent() float64 {
	done, total := t.values()
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

type syncFunc func(ctx context.Context) (string, error)

type syncDoneMsg struct {
	root string
	err  error
}

type tickMsg time.Time

type model struct {
	ctx      context.Context
	cancel   context.CancelFunc
	version  string
	sync     syncFunc
	tracker  *syncTracker
	width    int
	spinner  spinner.Model
	progress progress.Model
	result   syncDoneMsg
	done     bool
}

var (
	versionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	doneStyle    = lipgloss.NewStyle().Margin(1, 2)
	checkMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).SetString("✓")
)

func newModel(ctx context.Context, version string, tracker *syncTracker, sync syncFunc) model {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)
	p.Full = '－'
	s := spinner.New()
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	ctx, cancel := context.WithCancel(ctx)
	return model{
		ctx:      ctx,
		cancel:   cancel,
		version:  version,
		sync:     sync,
		tracker:  tracker,
		spinner:  s,
		progress: p,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.tick(), m.run())
}

func (m model) run() tea.Cmd {
	return func() tea.Msg {
		root, err := m.sync(m.ctx)
		return syncDoneMsg{root, err}
	}
}

func (m model) tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.cancel()
			m.result = syncDoneMsg{err: context.Canceled}
			return m, tea.Quit
		}
	case syncDoneMsg:
		m.result = msg
		m.done = true
		m.cancel()
		return m, tea.Quit
	case tickMsg:
		return m, tea.Batch(m.tick(), m.progress.SetPercent(m.tracker.percent()))
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		newModel, cmd := m.progress.Update(msg)
		if newModel, ok := newModel.(progress.Model); ok {
			m.progress = newModel
		}
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	done, total := m.tracker.values()

	if m.done {
		if m.result.err != nil {
			return ""
		}
		return doneStyle.Render(fmt.Sprintf("%s Synced %d assets of %s\n", checkMark, total, versionStyle.Render(m.version)))
	}

	w := lipgloss.Width(fmt.Sprintf("%d", total))
	count := fmt.Sprintf(" %*d/%*d", w, done, w, total)

	spin := m.spinner.View() + " "
	info := "Syncing assets of " + versionStyle.Render(m.version) + " "
	prog := m.progress.View()

	cellsRemaining := max(0, m.width-lipgloss.Width(spin+info+prog+count))
	gap := strings.Repeat(" ", cellsRemaining)

	return spin + info + gap + prog + count
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
