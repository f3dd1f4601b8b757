// Package ui renders the live progress display for directory scans.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"fstrify/internal/scanpipeline"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	busyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// fileItem держит сырое состояние файла; подписи считаются при рендере.
type fileItem struct {
	path   string
	stage  scanpipeline.Stage
	status scanpipeline.Status
	sites  int
}

type progressModel struct {
	title      string
	events     <-chan scanpipeline.Event
	spinner    spinner.Model
	prog       progress.Model
	items      []fileItem
	index      map[string]int
	stageLabel string
	width      int
	done       bool
}

type eventMsg scanpipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders scan progress.
func NewProgressModel(title string, files []string, events <-chan scanpipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76 // Default width

	items := make([]fileItem, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items[i] = fileItem{path: file, status: scanpipeline.StatusQueued}
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(scanpipeline.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		updated, cmd := m.prog.Update(msg)
		m.prog = updated.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}

	statusWidth := 12
	nameWidth := max(m.width-statusWidth-4, 20)

	var b strings.Builder
	b.WriteString(headerStyle.Render(m.header()))
	b.WriteString("\n\n")
	for i := range m.items {
		m.items[i].writeLine(&b, nameWidth)
	}
	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) header() string {
	header := m.title
	if m.stageLabel != "" {
		header = fmt.Sprintf("%s (%s)", header, m.stageLabel)
	}
	if m.done {
		return "done: " + header
	}
	return m.spinner.View() + " " + header
}

func (it *fileItem) writeLine(b *strings.Builder, nameWidth int) {
	label := it.label()
	name := truncate(it.path, nameWidth)
	if it.status == scanpipeline.StatusDone {
		name += siteSuffix(it.sites)
	}
	fmt.Fprintf(b, "  %s %s\n", it.style().Render(fmt.Sprintf("%12s", label)), name)
}

// label печатает человекочитаемый статус; для работающего файла это
// название текущей стадии.
func (it *fileItem) label() string {
	if it.status == scanpipeline.StatusWorking {
		return stageLabels[it.stage]
	}
	return string(it.status)
}

func (it *fileItem) style() lipgloss.Style {
	switch it.status {
	case scanpipeline.StatusDone:
		return doneStyle
	case scanpipeline.StatusError:
		return errorStyle
	case scanpipeline.StatusWorking:
		return busyStyle
	default:
		return idleStyle
	}
}

func (it *fileItem) finished() bool {
	return it.status == scanpipeline.StatusDone || it.status == scanpipeline.StatusError
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev scanpipeline.Event) tea.Cmd {
	if ev.File == "" {
		// события без файла двигают общую подпись стадии
		if ev.Status == scanpipeline.StatusWorking {
			m.stageLabel = stageLabels[ev.Stage]
		}
		return nil
	}
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	it := &m.items[idx]
	it.status = ev.Status
	it.stage = ev.Stage
	if ev.Status == scanpipeline.StatusDone {
		it.sites = ev.Sites
	}
	return m.prog.SetPercent(m.fraction())
}

// fraction усредняет прогресс по файлам; завершённые и упавшие
// считаются целиком, остальные по весу достигнутой стадии.
func (m *progressModel) fraction() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for i := range m.items {
		if m.items[i].finished() {
			total += 1.0
		} else {
			total += stageWeights[m.items[i].stage]
		}
	}
	return total / float64(len(m.items))
}

var stageLabels = map[scanpipeline.Stage]string{
	scanpipeline.StageLoad:  "loading",
	scanpipeline.StageParse: "parsing",
	scanpipeline.StageScan:  "scanning",
}

var stageWeights = map[scanpipeline.Stage]float64{
	scanpipeline.StageLoad:  0.1,
	scanpipeline.StageParse: 0.4,
	scanpipeline.StageScan:  0.8,
}

func siteSuffix(sites int) string {
	switch sites {
	case 0:
		return ""
	case 1:
		return " (1 site)"
	default:
		return fmt.Sprintf(" (%d sites)", sites)
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
