package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/ui"
)

// BoardCmd opens the kanban board in the terminal
type BoardCmd struct {
	AssignedTo uint   `help:"Only comments assigned to this user id" name:"assigned-to"`
	Page       string `help:"Only comments on this page URL"`
}

// Run executes the board command
func (b *BoardCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	board := ui.NewBoard(ctx, ui.BoardConfig{
		Filter: domain.CommentFilter{
			AssignedTo: b.AssignedTo,
			PageURL:    b.Page,
		},
		Service: cli.Container.CommentService,
		User:    user,
	})
	if _, err := tea.NewProgram(board, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running board: %w", err)
	}
	return nil
}
