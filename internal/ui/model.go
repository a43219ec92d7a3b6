package ui

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/jsonpane/internal/flatten"
	"github.com/oakwood-commons/jsonpane/internal/widget"
)

const readChunkSize = 32 * 1024

// chunkMsg carries a raw chunk read from the input source.
type chunkMsg []byte

// eofMsg signals the input source is exhausted.
type eofMsg struct{}

// readErrMsg carries a non-EOF read failure.
type readErrMsg struct{ err error }

// Model is the Bubble Tea host around the stream widget: it pumps the input
// source, decodes key presses per the configured key mode, and renders the
// tree with the current theme plus a status bar, search bar, and help overlay.
type Model struct {
	Stream *widget.Stream

	reader io.Reader // nil once drained

	spin        spinner.Model
	searchInput textinput.Model

	searchActive bool // search input focused
	query        string
	matches      []int
	matchIdx     int

	keys        keyResolver
	helpVisible bool
	noColor     bool
	readErr     error

	width      int
	height     int
	treeHeight int

	log logr.Logger
}

// ModelOptions configures the TUI host.
type ModelOptions struct {
	Widget  widget.Options
	Source  io.Reader
	KeyMode KeyMode
	NoColor bool
	Log     logr.Logger
}

// NewModel builds the host model around a fresh stream widget.
func NewModel(opts ModelOptions) *Model {
	if opts.KeyMode == "" {
		opts.KeyMode = DefaultKeyMode
	}
	if opts.Log.GetSink() == nil {
		opts.Log = logr.Discard()
	}
	opts.Widget.Log = opts.Log

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	si := textinput.New()
	si.Placeholder = "substring"
	si.CharLimit = 200
	si.SetWidth(40)
	si.Prompt = "/"

	return &Model{
		Stream:      widget.NewStream(opts.Widget),
		reader:      opts.Source,
		spin:        sp,
		searchInput: si,
		keys:        keyResolver{mode: opts.KeyMode},
		noColor:     opts.NoColor,
		matchIdx:    -1,
		log:         opts.Log,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.reader != nil {
		cmds = append(cmds, readChunk(m.reader))
	}
	return tea.Batch(cmds...)
}

// readChunk reads the next chunk off the source in a command so the event
// loop never blocks on input.
func readChunk(r io.Reader) tea.Cmd {
	return func() tea.Msg {
		buf := make([]byte, readChunkSize)
		n, err := r.Read(buf)
		if n > 0 {
			return chunkMsg(buf[:n])
		}
		if err != nil && err != io.EOF {
			return readErrMsg{err: err}
		}
		return eofMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.SetWidth(maxInt(10, m.width-4))
		m.applyLayout()
		return m, nil

	case spinner.TickMsg:
		if m.Stream.State() != widget.StateStreaming && m.reader == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case chunkMsg:
		m.Stream.FeedText(string(msg))
		m.refreshMatches()
		if m.reader == nil {
			return m, nil
		}
		return m, readChunk(m.reader)

	case eofMsg:
		m.reader = nil
		m.Stream.Flush()
		m.refreshMatches()
		return m, nil

	case readErrMsg:
		m.reader = nil
		m.readErr = msg.err
		m.log.Error(msg.err, "input read failed")
		m.Stream.Flush()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if m.helpVisible {
		switch keyStr {
		case "ctrl+c":
			return m, tea.Quit
		default:
			m.helpVisible = false
			m.applyLayout()
			return m, nil
		}
	}

	if m.searchActive {
		return m.handleSearchKey(msg, keyStr)
	}

	action := m.keys.Resolve(keyStr)
	switch action {
	case ActionQuit:
		return m, tea.Quit
	case ActionHelp:
		m.helpVisible = true
		return m, nil
	case ActionSearch:
		m.searchActive = true
		m.searchInput.SetValue(m.query)
		m.searchInput.SetCursor(len(m.query))
		m.applyLayout()
		return m, m.searchInput.Focus()
	case ActionNextMatch:
		m.gotoMatch(1)
		return m, nil
	case ActionPrevMatch:
		m.gotoMatch(-1)
		return m, nil
	case ActionNone:
		return m, nil
	default:
		m.Stream.HandleKey(widgetKey(action))
		return m, nil
	}
}

func (m *Model) handleSearchKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.searchActive = false
		m.searchInput.Blur()
		m.query = ""
		m.matches = nil
		m.matchIdx = -1
		m.applyLayout()
		return m, nil
	case "enter":
		m.searchActive = false
		m.searchInput.Blur()
		m.query = m.searchInput.Value()
		m.refreshMatches()
		m.gotoMatch(1)
		m.applyLayout()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// refreshMatches recomputes search match rows after the document or query
// changed. The previous match position is preserved when still valid.
func (m *Model) refreshMatches() {
	m.matches = m.matches[:0]
	m.matchIdx = -1
	if m.query == "" {
		return
	}
	needle := strings.ToLower(m.query)
	for i, row := range m.Stream.Rows() {
		if strings.Contains(strings.ToLower(row.Text), needle) {
			m.matches = append(m.matches, i)
		}
	}
}

// gotoMatch moves the cursor to the next or previous match, wrapping around.
func (m *Model) gotoMatch(dir int) {
	if len(m.matches) == 0 {
		return
	}
	cursor := m.Stream.Cursor()
	target := -1
	if dir > 0 {
		for _, idx := range m.matches {
			if idx > cursor {
				target = idx
				break
			}
		}
		if target < 0 {
			target = m.matches[0]
		}
	} else {
		for i := len(m.matches) - 1; i >= 0; i-- {
			if m.matches[i] < cursor {
				target = m.matches[i]
				break
			}
		}
		if target < 0 {
			target = m.matches[len(m.matches)-1]
		}
	}
	m.Stream.MoveCursor(target - cursor)
	for i, idx := range m.matches {
		if idx == target {
			m.matchIdx = i
			break
		}
	}
}

// applyLayout re-derives the tree height from the window and chrome lines.
func (m *Model) applyLayout() {
	h := m.height - 1 // status bar
	if m.searchActive {
		h--
	}
	if h < 1 {
		h = 1
	}
	m.treeHeight = h
	m.Stream.SetHeight(h)
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	var body string
	if m.helpVisible {
		body = m.helpView()
	} else {
		body = m.treeView()
	}

	var sections []string
	sections = append(sections, body)
	if m.searchActive {
		sections = append(sections, m.searchInput.View())
	}
	sections = append(sections, m.statusView())

	v := tea.NewView(strings.Join(sections, "\n"))
	v.AltScreen = true
	return v
}

func (m *Model) treeView() string {
	if m.noColor {
		return strings.Join(m.Stream.Render(m.width, m.treeHeight), "\n")
	}

	view := m.Stream.RowsInView()
	if m.Stream.State() == widget.StateEmpty || len(view) == 0 {
		return "(no data)"
	}
	start := m.Stream.ViewportStart()
	lines := make([]string, 0, len(view))
	for i, row := range view {
		lines = append(lines, m.renderRow(row, start+i == m.Stream.Cursor()))
	}
	return strings.Join(lines, "\n")
}

// renderRow colors one row by its highlight spans: the key prefix, the value
// portion, and the trailing punctuation each get their own style. Selected
// rows get the cursor colors for the whole line instead.
func (m *Model) renderRow(row flatten.Row, selected bool) string {
	marker := "  "
	if selected {
		marker = "❯ "
	}
	head := marker + m.Stream.Indent(row)

	th := CurrentTheme()
	if selected {
		plain := clipCells(head+row.Text, m.width)
		return lipgloss.NewStyle().
			Foreground(th.CursorFG).
			Background(th.CursorBG).
			Render(plain)
	}

	budget := m.width
	head = clipCells(head, budget)
	budget -= runewidth.StringWidth(head)
	prefix := clipCells(row.Text[:row.ValueStart], budget)
	budget -= runewidth.StringWidth(prefix)
	val := clipCells(row.Text[row.ValueStart:row.ValueEnd], budget)
	budget -= runewidth.StringWidth(val)
	suffix := clipCells(row.Text[row.ValueEnd:], budget)

	var b strings.Builder
	b.WriteString(head)
	if prefix != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(th.KeyColor).Render(prefix))
	}
	if val != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(m.valueColor(row, th)).Render(val))
	}
	if suffix != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(th.PunctColor).Render(suffix))
	}
	return b.String()
}

// clipCells truncates s to the given cell budget, ellipsizing when cut.
func clipCells(s string, budget int) string {
	if budget <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= budget {
		return s
	}
	return runewidth.Truncate(s, budget, "…")
}

func (m *Model) valueColor(row flatten.Row, th Theme) color.Color {
	switch row.Kind {
	case flatten.RowCollapsed:
		return th.SummaryColor
	case flatten.RowArrayOpen, flatten.RowObjectOpen, flatten.RowArrayClose, flatten.RowObjectClose:
		return th.PunctColor
	}
	val := row.Text[row.ValueStart:row.ValueEnd]
	switch {
	case strings.HasPrefix(val, `"`):
		return th.StringColor
	case val == "true" || val == "false" || val == "null":
		return th.LiteralColor
	default:
		return th.NumberColor
	}
}

func (m *Model) statusView() string {
	th := CurrentTheme()

	var parts []string
	switch m.Stream.State() {
	case widget.StateEmpty:
		parts = append(parts, "waiting for input")
	case widget.StateStreaming:
		parts = append(parts, m.spin.View()+" streaming")
	default:
		parts = append(parts, "ready")
	}
	parts = append(parts, fmt.Sprintf("%d values", m.Stream.ValueCount()))
	parts = append(parts, fmt.Sprintf("%d rows", m.Stream.RowCount()))
	if p := m.Stream.CursorPath(); p != nil {
		parts = append(parts, p.String())
	}
	if m.query != "" {
		parts = append(parts, fmt.Sprintf("match %d/%d", m.matchIdx+1, len(m.matches)))
	}
	if m.Stream.Degraded() {
		parts = append(parts, "degraded")
	}

	line := strings.Join(parts, "  ")
	warn := ""
	if mf := m.Stream.LastMalformed(); mf != nil {
		warn = fmt.Sprintf("  skipped malformed fragment at byte %d", mf.Offset)
	}
	if m.readErr != nil {
		warn += "  read error: " + m.readErr.Error()
	}

	if m.noColor {
		return line + warn
	}
	out := lipgloss.NewStyle().Foreground(th.StatusColor).Render(line)
	if warn != "" {
		out += lipgloss.NewStyle().Foreground(th.StatusError).Render(warn)
	}
	return out
}

func (m *Model) helpView() string {
	lines := []string{
		"jsonpane keys",
		"",
		"  up/down, pgup/pgdown   move the cursor",
		"  home/end               first/last row",
		"  enter                  fold or unfold the container",
		"  left/right             fold / unfold",
		"  f3                     search (substring)",
		"  f1                     this help",
		"  f10, ctrl+c            quit",
	}
	switch m.keys.mode {
	case KeyModeVim:
		lines = append(lines, "", "  vim: j/k move, h/l fold/unfold, gg/G jump,", "       / search, n/N next/prev match, q quit")
	case KeyModeEmacs:
		lines = append(lines, "", "  emacs: ctrl+n/ctrl+p move, ctrl+v/alt+v page,", "         alt+</alt+> jump, ctrl+s search, ctrl+q quit")
	}
	lines = append(lines, "", "press any key to close")

	text := strings.Join(lines, "\n")
	if m.noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(CurrentTheme().HelpColor).Render(text)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
