package app

import (
	"context"
	"strings"
	"time"

	"sage/internal/backend"
	"sage/internal/ui"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Role identifies who produced a conversation entry.
type Role int

const (
	RoleUser Role = iota
	RoleAgent
	RoleError
)

// ConversationEntry is one turn in the chat transcript.
type ConversationEntry struct {
	Role      Role
	Text      string
	Timestamp time.Time
	DataRows  int // rows in the agent's attached data summary, 0 when absent
}

// User-facing connectivity messages. Both are static: the dashboard never
// surfaces raw transport errors.
const (
	overviewErrMessage = "Unable to reach the analytics backend. Press ctrl+r to retry."
	queryErrMessage    = "Sorry, I couldn't reach the analytics backend. Please try again."
)

// exampleQueries are offered while the conversation is empty.
var exampleQueries = []string{
	"What is the total revenue by region?",
	"Which region has the highest sales?",
	"How are sales trending over time?",
	"What are our customer metrics?",
}

// Model is the root bubbletea model for the SAGE dashboard. It owns the
// conversation/request state machine: a query moves Idle -> Submitting ->
// {Success|Failure} -> Idle, and Submitting is only ever entered from Idle.
type Model struct {
	client *backend.Client
	logger *zap.Logger

	// Overview snapshot. Nil until the first successful load; a failed
	// refresh never blanks a previously loaded snapshot.
	overview *backend.OverviewSummary

	// Conversation transcript, append-only until reset.
	entries []ConversationEntry

	// Query lifecycle. inFlight gates submissions; lastError feeds the banner.
	inFlight  bool
	lastError string

	// UI components
	input    textinput.Model
	spin     spinner.Model
	viewport viewport.Model

	width  int
	height int
	ready  bool
}

// New creates a dashboard model talking to the given backend client.
// logger may be nil; a no-op logger is used in that case.
func New(client *backend.Client, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	input := textinput.New()
	input.Placeholder = "Ask about sales, revenue, or customers..."
	input.CharLimit = 500
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = ui.SpinnerStyle

	return Model{
		client: client,
		logger: logger,
		input:  input,
		spin:   spin,
	}
}

// Init fetches the overview snapshot once at mount.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadOverviewCmd(m.client), textinput.Blink)
}

// loadOverviewCmd issues the idempotent overview read.
func loadOverviewCmd(client *backend.Client) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.DataOverview(context.Background())
		if err != nil {
			return OverviewErrorMsg{Err: err}
		}
		return OverviewLoadedMsg{Overview: *resp}
	}
}

// submitQueryCmd issues the query write carrying the raw text.
func submitQueryCmd(client *backend.Client, text string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Query(context.Background(), text)
		if err != nil {
			return QueryErrorMsg{Err: err}
		}
		return QueryResultMsg{Result: *resp}
	}
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		m.refreshTranscript()
		return m, nil

	case OverviewLoadedMsg:
		summary := msg.Overview.Summary
		m.overview = &summary
		m.lastError = ""
		m.logger.Debug("overview loaded",
			zap.Int("records", msg.Overview.TotalRecords),
			zap.Strings("regions", summary.Regions))
		return m, nil

	case OverviewErrorMsg:
		// Keep any previously loaded snapshot; stale beats blank.
		m.lastError = overviewErrMessage
		m.logger.Warn("overview fetch failed", zap.Error(msg.Err))
		return m, nil

	case QueryResultMsg:
		m.entries = append(m.entries, ConversationEntry{
			Role:      RoleAgent,
			Text:      msg.Result.Response,
			Timestamp: time.Now(),
			DataRows:  len(msg.Result.DataSummary),
		})
		m.inFlight = false
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case QueryErrorMsg:
		m.entries = append(m.entries, ConversationEntry{
			Role:      RoleError,
			Text:      queryErrMessage,
			Timestamp: time.Now(),
		})
		m.lastError = queryErrMessage
		m.inFlight = false
		m.logger.Warn("query failed", zap.Error(msg.Err))
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if !m.inFlight {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyQuitAlt:
		return m, tea.Quit

	case KeySubmit:
		return m.submitQuery()

	case KeyRefresh:
		return m, loadOverviewCmd(m.client)

	case KeyReset:
		m.reset()
		return m, nil

	case "1", "2", "3", "4":
		// Example suggestions are only offered on an empty conversation,
		// and digits still type normally once a draft is underway.
		if len(m.entries) == 0 && m.input.Value() == "" {
			m.selectExample(int(msg.String()[0] - '1'))
			return m, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	// Navigation keys scroll the transcript; everything else is typing.
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// submitQuery moves the state machine from Idle to Submitting. The user
// entry is appended and the draft cleared in the same Update step that sets
// inFlight, so no second submission can slip in between.
func (m Model) submitQuery() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.inFlight {
		return m, nil
	}

	m.entries = append(m.entries, ConversationEntry{
		Role:      RoleUser,
		Text:      text,
		Timestamp: time.Now(),
	})
	m.input.Reset()
	m.inFlight = true
	m.lastError = ""
	m.refreshTranscript()
	m.viewport.GotoBottom()
	m.logger.Debug("query submitted", zap.String("query", text))

	return m, tea.Batch(submitQueryCmd(m.client, text), m.spin.Tick)
}

// reset clears the conversation and the error banner. The overview snapshot
// is untouched.
func (m *Model) reset() {
	m.entries = nil
	m.lastError = ""
	m.refreshTranscript()
}

// selectExample replaces the draft with one of the canned suggestions.
func (m *Model) selectExample(i int) {
	if i < 0 || i >= len(exampleQueries) {
		return
	}
	m.input.SetValue(exampleQueries[i])
	m.input.CursorEnd()
}

func (m *Model) resizeViewport() {
	w, h := m.transcriptSize()
	if !m.ready {
		m.viewport = viewport.New(w, h)
		m.ready = true
		return
	}
	m.viewport.Width = w
	m.viewport.Height = h
}

// transcriptSize reserves rows for the chrome around the viewport: header,
// stats, two dividers, banner, spinner, input, footer, plus a little slack.
func (m Model) transcriptSize() (int, int) {
	w := m.width
	if w == 0 {
		w = 80
	}
	h := m.height - 10
	if h < 5 {
		h = 5
	}
	return w, h
}

func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript(m.viewport.Width))
}
