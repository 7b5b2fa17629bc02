// Package ui implements the terminal kanban board for site notes.
package ui

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/logging"
	"github.com/sitenotes/sitenotes/internal/theme"
)

const (
	cardHeight        = 5
	cardIDPrefix      = "#"
	defaultClearDelay = 10 * time.Second
	minColumnWidth    = 24
	reservedRows      = 9
	textPreviewRunes  = 80
)

// BoardService is the part of the comment service the board drives
type BoardService interface {
	ListComments(ctx context.Context, user domain.User, filter domain.CommentFilter, sort domain.CommentSort) ([]domain.Comment, error)
	ListPriorities(ctx context.Context, user domain.User) ([]domain.Priority, error)
	UpdatePriority(ctx context.Context, user domain.User, id uint, priority string) (*domain.Comment, error)
	UpdateStatus(ctx context.Context, user domain.User, id uint, status domain.Status) (*domain.Comment, error)
}

type commentsLoadedMsg struct {
	comments   []domain.Comment
	err        error
	priorities []domain.Priority
}

type commentChangedMsg struct {
	comment *domain.Comment
	err     error
}

type errorClearedMsg struct{}

// BoardConfig holds what a board needs to run
type BoardConfig struct {
	ErrorClearDelay time.Duration
	Filter          domain.CommentFilter
	Service         BoardService
	User            domain.User
}

// Board shows comments in one column per status and moves them between columns
type Board struct {
	columns         [][]domain.Comment
	ctx             context.Context
	err             error
	errorClearDelay time.Duration
	filter          domain.CommentFilter
	focusID         uint
	help            help.Model
	height          int
	keys            BoardKeys
	loading         bool
	priorities      []domain.Priority
	rows            []int
	selectedCol     int
	service         BoardService
	spinner         spinner.Model
	statuses        []domain.StatusDefinition
	user            domain.User
	width           int
}

// NewBoard creates a board for cfg.User. ctx bounds every service call.
func NewBoard(ctx context.Context, cfg BoardConfig) *Board {
	statuses := domain.StatusDefinitions()
	delay := cfg.ErrorClearDelay
	if delay <= 0 {
		delay = defaultClearDelay
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.SubtitleStyle

	return &Board{
		columns:         make([][]domain.Comment, len(statuses)),
		ctx:             ctx,
		errorClearDelay: delay,
		filter:          cfg.Filter,
		help:            help.New(),
		keys:            NewBoardKeys(),
		loading:         true,
		rows:            make([]int, len(statuses)),
		service:         cfg.Service,
		spinner:         s,
		statuses:        statuses,
		user:            cfg.User,
	}
}

func (b *Board) Init() tea.Cmd {
	return tea.Batch(b.spinner.Tick, b.load())
}

func (b *Board) load() tea.Cmd {
	ctx, service, user, filter := b.ctx, b.service, b.user, b.filter
	return func() tea.Msg {
		comments, err := service.ListComments(ctx, user, filter, domain.CommentSort{Field: domain.SortPriority})
		if err != nil {
			return commentsLoadedMsg{err: err}
		}
		priorities, err := service.ListPriorities(ctx, user)
		return commentsLoadedMsg{comments: comments, err: err, priorities: priorities}
	}
}

func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.help.Width = msg.Width
		return b, nil

	case commentsLoadedMsg:
		b.loading = false
		if msg.err != nil {
			return b, b.setError(msg.err)
		}
		b.priorities = msg.priorities
		b.distribute(msg.comments)
		return b, nil

	case commentChangedMsg:
		if msg.err != nil {
			return b, b.setError(msg.err)
		}
		logging.Logger.Debug("Board card changed", "id", msg.comment.ID, "status", msg.comment.Status)
		b.focusID = msg.comment.ID
		b.loading = true
		return b, b.load()

	case errorClearedMsg:
		b.err = nil
		return b, nil

	case spinner.TickMsg:
		if !b.loading {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return b, cmd

	case tea.KeyMsg:
		return b, b.handleKey(msg)
	}
	return b, nil
}

func (b *Board) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, b.keys.Quit):
		return tea.Quit
	case key.Matches(msg, b.keys.Help):
		b.help.ShowAll = !b.help.ShowAll
	case key.Matches(msg, b.keys.Refresh):
		b.loading = true
		return tea.Batch(b.spinner.Tick, b.load())
	case key.Matches(msg, b.keys.Left):
		b.selectedCol = max(b.selectedCol-1, 0)
	case key.Matches(msg, b.keys.Right):
		b.selectedCol = min(b.selectedCol+1, len(b.columns)-1)
	case key.Matches(msg, b.keys.Up):
		b.rows[b.selectedCol] = max(b.rows[b.selectedCol]-1, 0)
	case key.Matches(msg, b.keys.Down):
		b.rows[b.selectedCol] = min(b.rows[b.selectedCol]+1, max(len(b.columns[b.selectedCol])-1, 0))
	case key.Matches(msg, b.keys.MoveLeft):
		return b.move(-1)
	case key.Matches(msg, b.keys.MoveRight):
		return b.move(1)
	case key.Matches(msg, b.keys.CyclePriority):
		return b.cyclePriority()
	}
	return nil
}

// move sends the selected card to the neighbouring column
func (b *Board) move(delta int) tea.Cmd {
	comment, ok := b.Selected()
	target := b.selectedCol + delta
	if !ok || target < 0 || target >= len(b.statuses) {
		return nil
	}
	status := b.statuses[target].Key
	ctx, service, user := b.ctx, b.service, b.user
	return func() tea.Msg {
		updated, err := service.UpdateStatus(ctx, user, comment.ID, status)
		return commentChangedMsg{comment: updated, err: err}
	}
}

// cyclePriority sets the selected card to the next configured priority
func (b *Board) cyclePriority() tea.Cmd {
	comment, ok := b.Selected()
	if !ok {
		return nil
	}
	next := nextPriority(b.priorities, comment.Priority)
	if next == "" || next == comment.Priority {
		return nil
	}
	ctx, service, user := b.ctx, b.service, b.user
	return func() tea.Msg {
		updated, err := service.UpdatePriority(ctx, user, comment.ID, next)
		return commentChangedMsg{comment: updated, err: err}
	}
}

func nextPriority(priorities []domain.Priority, current string) string {
	if len(priorities) == 0 {
		priorities = domain.DefaultPriorities()
	}
	i := slices.IndexFunc(priorities, func(p domain.Priority) bool { return p.Key == current })
	return priorities[(i+1)%len(priorities)].Key
}

func (b *Board) setError(err error) tea.Cmd {
	logging.Logger.Warn("Board operation failed", "error", err)
	b.err = err
	return tea.Tick(b.errorClearDelay, func(time.Time) tea.Msg {
		return errorClearedMsg{}
	})
}

// distribute places comments into their status columns and restores the selection
func (b *Board) distribute(comments []domain.Comment) {
	for i, def := range b.statuses {
		var column []domain.Comment
		for _, c := range comments {
			if c.Status == def.Key {
				column = append(column, c)
			}
		}
		domain.SortByPriority(column)
		b.columns[i] = column
	}

	if b.focusID != 0 {
		for col, column := range b.columns {
			if row := slices.IndexFunc(column, func(c domain.Comment) bool { return c.ID == b.focusID }); row >= 0 {
				b.selectedCol, b.rows[col] = col, row
				break
			}
		}
		b.focusID = 0
	}
	for col, column := range b.columns {
		b.rows[col] = min(b.rows[col], max(len(column)-1, 0))
	}
}

// Selected returns the card under the cursor
func (b *Board) Selected() (domain.Comment, bool) {
	column := b.columns[b.selectedCol]
	row := b.rows[b.selectedCol]
	if row >= len(column) {
		return domain.Comment{}, false
	}
	return column[row], true
}

// Column returns the cards shown for status
func (b *Board) Column(status domain.Status) []domain.Comment {
	for i, def := range b.statuses {
		if def.Key == status {
			return b.columns[i]
		}
	}
	return nil
}

// Err returns the error currently displayed
func (b *Board) Err() error {
	return b.err
}

func (b *Board) View() string {
	var s strings.Builder

	title := theme.TitleStyle.Render("Site Notes")
	if b.loading {
		title += " " + b.spinner.View()
	}
	s.WriteString(title)
	s.WriteString("\n")

	colWidth := max((b.width-2)/max(len(b.statuses), 1), minColumnWidth)
	maxCards := max((b.height-reservedRows)/cardHeight, 1)

	columns := make([]string, len(b.statuses))
	for i, def := range b.statuses {
		columns[i] = b.renderColumn(i, def, colWidth, maxCards)
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))

	if b.err != nil {
		s.WriteString("\n")
		s.WriteString(theme.ErrorStyle.Render(formatErrorForDisplay(b.err, max(b.width, minColumnWidth))))
	}
	s.WriteString(theme.HelpStyle.Render(b.help.View(b.keys)))
	return s.String()
}

func (b *Board) renderColumn(col int, def domain.StatusDefinition, width, maxCards int) string {
	column := b.columns[col]
	var s strings.Builder
	s.WriteString(theme.StatusStyle(def.Color).Render(fmt.Sprintf("%s (%d)", def.Title, len(column))))
	s.WriteString("\n")

	if len(column) == 0 {
		s.WriteString(theme.MutedStyle.Render("No comments"))
		return theme.ColumnStyle.Width(width).Render(s.String())
	}

	start, end := visibleRange(b.rows[col], len(column), maxCards)
	if start > 0 {
		s.WriteString(theme.MutedStyle.Render(fmt.Sprintf("↑ %d more", start)))
		s.WriteString("\n")
	}
	for row := start; row < end; row++ {
		style := theme.CardStyle
		if col == b.selectedCol && row == b.rows[col] {
			style = theme.SelectedCardStyle
		}
		s.WriteString(style.Width(width - 4).Render(b.renderCard(column[row], width-8)))
		s.WriteString("\n")
	}
	if end < len(column) {
		s.WriteString(theme.MutedStyle.Render(fmt.Sprintf("↓ %d more", len(column)-end)))
	}
	return theme.ColumnStyle.Width(width).Render(s.String())
}

func (b *Board) renderCard(c domain.Comment, width int) string {
	header := theme.NormalStyle.Render(fmt.Sprintf("%s%d", cardIDPrefix, c.ID))
	badge := theme.PriorityStyle(domain.PriorityColor(b.priorities, c.Priority)).Render("● " + c.Priority)

	text := c.CommentText
	if c.CommentTitle != "" {
		text = c.CommentTitle
	}
	location := pagePath(c.PageURL)
	if c.ReplyCount > 0 {
		location += fmt.Sprintf(" · %d replies", c.ReplyCount)
	}

	return header + " " + badge + "\n" +
		truncate(strings.Join(strings.Fields(text), " "), min(width, textPreviewRunes)) + "\n" +
		theme.MutedStyle.Render(truncate(location, width))
}

// visibleRange returns the window of at most size rows that contains selected
func visibleRange(selected, total, size int) (int, int) {
	if total <= size {
		return 0, total
	}
	start := max(selected-size/2, 0)
	end := start + size
	if end > total {
		end = total
		start = total - size
	}
	return start, end
}

func pagePath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return raw
	}
	return u.Path
}

func truncate(s string, width int) string {
	if width <= 1 || utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}
