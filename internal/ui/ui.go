package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/setlistsync/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	RankingView ViewState = iota
	SongListView
	ConfirmView
	PublishView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	engine   tasks.SyncEngine
	rankOpts tasks.RankOpts
	pubOpts  tasks.PublishOpts
	width    int
	height   int
	spinner  spinner.Model
	songList list.Model
	rank     *tasks.RankResult
	progress tasks.ProgressUpdate
	result   *tasks.SyncResult
	err      error
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model that ranks opts and publishes with pub on confirmation.
func NewModel(ctx context.Context, engine tasks.SyncEngine, opts tasks.RankOpts, pub tasks.PublishOpts) *Model {
	return &Model{
		ctx:      ctx,
		view:     RankingView,
		engine:   engine,
		rankOpts: opts,
		pubOpts:  pub,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.title.UnsetMarginBottom())),
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init starts the spinner and ranks the configured artist and year.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchRanking())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.rank != nil {
			m.songList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case spinner.TickMsg:
		if m.view != RankingView && m.view != PublishView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.view {
		case RankingView, PublishView:
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
			return m, nil
		case SongListView:
			return m.handleSongListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateList(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgRanked:
		data := msg.data.(rankedData)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.rank = data.result
		m.songList = list.New(songItems(data.result.Ranked), list.NewDefaultDelegate(), 0, 0)
		m.songList.Title = data.result.Title()
		m.songList.SetSize(m.width-4, m.height-8)
		m.view = SongListView
		return m, nil

	case MsgProgressUpdate:
		data := msg.data.(progressData)
		m.progress = data.update
		return m, data.next

	case MsgPublishComplete:
		data := msg.data.(publishData)
		m.result = data.result
		m.err = data.err
		m.view = ResultView
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case RankingView:
		return m.renderRanking()
	case SongListView:
		return m.renderSongList()
	case ConfirmView:
		return m.renderConfirm()
	case PublishView:
		return m.renderPublish()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleSongListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.songList.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.publish):
			m.view = ConfirmView
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.view = SongListView
		return m, nil
	case key.Matches(msg, m.keys.confirm):
		m.view = PublishView
		m.progress = tasks.ProgressUpdate{}
		return m, tea.Batch(m.spinner.Tick, m.startPublish())
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.review):
		m.view = SongListView
		m.result = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.view != SongListView {
		return m, nil
	}
	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) fetchRanking() tea.Cmd {
	return func() tea.Msg {
		result, err := m.engine.Rank(m.ctx, m.rankOpts, nil)
		return rankedMsg(result, err)
	}
}

// startPublish runs Publish in the background and streams its progress.
func (m *Model) startPublish() tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan publishData, 1)

	go func() {
		result, err := m.engine.Publish(m.ctx, m.rank, m.pubOpts, progress)
		close(progress)
		done <- publishData{result, err}
	}()

	return waitForProgress(progress, done)
}

func waitForProgress(progress <-chan tasks.ProgressUpdate, done <-chan publishData) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-progress
		if !ok {
			d := <-done
			return publishCompleteMsg(d.result, d.err)
		}
		return progressUpdateMsg(update, waitForProgress(progress, done))
	}
}

func (m *Model) renderRanking() string {
	return fmt.Sprintf(
		"%s Ranking songs for %s in %d...\n\n%s",
		m.spinner.View(), m.rankOpts.Artist, m.rankOpts.Year,
		m.help.ShortHelpView([]key.Binding{m.keys.quit}),
	)
}

func (m *Model) renderSongList() string {
	helpView := m.help.ShortHelpView(m.keys.songListHelp())
	return fmt.Sprintf("%s\n\n%s", m.songList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Create '%s' on YouTube Music?", m.rank.Title()))

	visibility := "private"
	if m.pubOpts.Public {
		visibility = "public"
	}
	info := fmt.Sprintf(
		"Songs: %d\nPerformances: %d\nVisibility: %s\n",
		len(m.rank.Ranked), m.rank.Performances, visibility,
	)

	helpView := m.help.ShortHelpView(m.keys.confirmHelp())
	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderPublish() string {
	title := styles.title.Render("Publishing Playlist")

	var phase string
	switch m.progress.Phase {
	case tasks.FindPlaylist:
		phase = "Looking for an existing playlist..."
	case tasks.CreatePlaylist:
		phase = "Preparing playlist..."
	case tasks.SearchTracks:
		phase = fmt.Sprintf("Searching tracks (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.AddTracks:
		phase = "Adding tracks..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s %s\n%s", title, m.spinner.View(), phase, styles.help.Render(m.progress.Message))
}

func (m *Model) renderResult() string {
	helpView := m.help.ShortHelpView(m.keys.resultHelp())

	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Sync failed: %v", m.err)) + "\n\n" + helpView
	}
	if m.result == nil {
		return styles.err.Render("No result available") + "\n\n" + helpView
	}

	verb := "created"
	if m.result.Existing {
		verb = "updated"
	}
	matched := len(m.result.VideoIDs())
	title := styles.ok.Render(fmt.Sprintf("✓ Playlist %s with %d tracks", verb, matched))
	info := fmt.Sprintf("\n%s\nURL: %s", m.result.Playlist.Name, styles.url.Render(m.result.URL()))

	var failed string
	if missed := m.result.Failed(); len(missed) > 0 {
		var b strings.Builder
		b.WriteString("\n\n")
		b.WriteString(styles.warn.Render(fmt.Sprintf("%d tracks could not be found on YouTube Music:", len(missed))))
		for _, match := range missed {
			fmt.Fprintf(&b, "\n  • %s", match.Query)
		}
		failed = b.String()
	}

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}
