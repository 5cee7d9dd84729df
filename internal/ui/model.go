package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"streampick/internal/model"
	"streampick/internal/pipeline"
	"streampick/internal/progress"
	"streampick/internal/selection"
	"streampick/internal/subtitle"
)

// Source identifies where metadata comes from: a URL resolved through the
// extractor binary, or a previously dumped JSON file.
type Source struct {
	URL  string
	File string
}

// Panes, in tab order.
const (
	paneCandidates = iota
	paneVideoOnly
	paneAudioOnly
	paneSubtitles
	paneCount
)

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	svc           *pipeline.Service
	source        Source
	subtitlePrefs string

	resolving bool
	stage     progress.Stage
	status    string
	err       error

	session *pipeline.Session
	sel     *selection.State

	pane   int
	cursor [paneCount]int

	subCodes    []string
	subSelected map[string]bool

	splitByChapter bool

	config *model.DownloadConfig
	built  bool

	width, height int
	styles        Styles
	spinner       spinner.Model
	eventCh       chan tea.Msg
}

func NewModel(ctx context.Context, svc *pipeline.Service, source Source, subtitlePrefs string, eventCh chan tea.Msg) Model {
	c, cancel := context.WithCancel(ctx)
	sty := defaultStyles()
	sp := spinner.New()
	sp.Style = sty.Spinner

	return Model{
		ctx:           c,
		cancel:        cancel,
		svc:           svc,
		source:        source,
		subtitlePrefs: subtitlePrefs,
		resolving:     true,
		stage:         progress.StageFetching,
		status:        "Resolving formats",
		subSelected:   make(map[string]bool),
		styles:        sty,
		spinner:       sp,
		eventCh:       eventCh,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenEventsCmd(), m.resolveCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case progressMsg:
		m.stage = msg.U.Stage
		m.status = msg.U.Message

	case resolveDoneMsg:
		// Terminal result for the resolution phase; candidate counts show
		// up via sessionReadyMsg.

	case sessionReadyMsg:
		m.resolving = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, tea.Quit
		}
		m.session = msg.Session
		m.sel = msg.Session.NewSelection()
		m.initSubtitles()
		m.stage = progress.StageReady
		m.status = "Pick formats, then press d to emit the config"

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, tea.Batch(cmd, m.listenEventsCmd())
	}

	return m, m.listenEventsCmd()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.cancel()
		return m, tea.Quit
	}
	if m.resolving || m.sel == nil {
		return m, m.listenEventsCmd()
	}

	switch msg.String() {
	case "tab":
		m.pane = (m.pane + 1) % paneCount
	case "shift+tab":
		m.pane = (m.pane + paneCount - 1) % paneCount
	case "up", "k":
		if m.cursor[m.pane] > 0 {
			m.cursor[m.pane]--
		}
	case "down", "j":
		if m.cursor[m.pane] < m.paneLen(m.pane)-1 {
			m.cursor[m.pane]++
		}
	case "enter", " ":
		m.pick()
	case "s":
		m.sel.SelectSuggested()
	case "c":
		m.splitByChapter = !m.splitByChapter
	case "d":
		return m.buildAndQuit()
	}
	return m, m.listenEventsCmd()
}

func (m *Model) pick() {
	i := m.cursor[m.pane]
	switch m.pane {
	case paneCandidates:
		m.sel.SelectCombined(i)
	case paneVideoOnly:
		m.sel.SelectVideoOnly(i)
	case paneAudioOnly:
		m.sel.ToggleAudioOnly(i)
	case paneSubtitles:
		if i >= 0 && i < len(m.subCodes) {
			code := m.subCodes[i]
			m.subSelected[code] = !m.subSelected[code]
		}
	}
}

func (m Model) buildAndQuit() (tea.Model, tea.Cmd) {
	var b selection.Builder
	b.SetSplitByChapter(m.splitByChapter)
	b.SetSubtitleCodes(m.selectedSubtitleCodes())
	cfg, err := b.Build(m.sel)
	if err != nil {
		m.status = "Nothing selected yet (press s for the suggested pick)"
		return m, m.listenEventsCmd()
	}
	m.config = &cfg
	m.built = true
	return m, tea.Quit
}

func (m *Model) initSubtitles() {
	subs := m.session.Meta.Subtitles
	if len(subs) == 0 {
		return
	}
	m.subSelected = subtitle.FilterByLanguage(subs, m.subtitlePrefs)
	m.subCodes = subtitle.Search(subs, "")
	subtitle.SortCodes(m.subCodes, subs, m.subSelected)
}

func (m Model) selectedSubtitleCodes() []string {
	var out []string
	for _, code := range m.subCodes {
		if m.subSelected[code] {
			out = append(out, code)
		}
	}
	return out
}

func (m Model) paneLen(pane int) int {
	if m.session == nil {
		return 0
	}
	switch pane {
	case paneCandidates:
		return len(m.session.Candidates)
	case paneVideoOnly:
		return len(m.session.VideoOnly)
	case paneAudioOnly:
		return len(m.session.AudioOnly)
	case paneSubtitles:
		return len(m.subCodes)
	default:
		return 0
	}
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return nil
		case msg := <-m.eventCh:
			return msg
		}
	}
}

func (m Model) resolveCmd() tea.Cmd {
	return func() tea.Msg {
		var (
			s   *pipeline.Session
			err error
		)
		if m.source.File != "" {
			s, err = m.svc.ResolveFile(m.ctx, m.source.File)
		} else {
			s, err = m.svc.ResolveURL(m.ctx, m.source.URL)
		}
		return sessionReadyMsg{Session: s, Err: err}
	}
}

// teaReporter feeds pipeline progress events into the bubbletea loop.
type teaReporter struct {
	ch chan tea.Msg
}

func (r teaReporter) Update(u progress.Update) {
	select {
	case r.ch <- progressMsg{U: u}:
	default:
	}
}

func (r teaReporter) Result(res progress.Result) {
	// Results are terminal; always deliver.
	r.ch <- resolveDoneMsg{R: res}
}
