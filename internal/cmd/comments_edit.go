package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/export"
	"github.com/sitenotes/sitenotes/internal/services"
)

// CommentsAddCmd adds a comment. Without --page or --text an interactive form is shown.
type CommentsAddCmd struct {
	AssignTo uint   `help:"Assign to this user id" name:"assign-to"`
	Category string `help:"Category name"`
	Due      string `help:"Due date (YYYY-MM-DD)"`
	Estimate string `help:"Time estimation (HH:MM)"`
	Page     string `help:"Absolute URL of the page" short:"p"`
	Priority string `help:"Priority name or key" default:"medium"`
	Selector string `help:"CSS selector of the anchored element"`
	Text     string `help:"Comment text" short:"t"`
	Title    string `help:"Task title"`
	X        int    `help:"Horizontal offset in pixels" name:"x"`
	Y        int    `help:"Vertical offset in pixels" name:"y"`
}

// Run executes the add command
func (c *CommentsAddCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}

	if c.Page == "" || c.Text == "" {
		if err := c.runForm(); err != nil {
			return err
		}
	}

	created, err := cli.Container.CommentService.CreateComment(context.Background(), user, services.CommentInput{
		AssignedTo:      c.AssignTo,
		Category:        c.Category,
		CommentText:     c.Text,
		CommentTitle:    c.Title,
		DueDate:         c.Due,
		ElementSelector: c.Selector,
		PageURL:         c.Page,
		Priority:        c.Priority,
		TimeEstimation:  c.Estimate,
		XPosition:       c.X,
		YPosition:       c.Y,
	})
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	fmt.Printf("Comment #%d added to %s\n", created.ID, created.PageURL)
	return nil
}

func (c *CommentsAddCmd) runForm() error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Page URL").
				Placeholder("https://example.com/about").
				Value(&c.Page).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("page URL is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Title").
				Description("Optional").
				Value(&c.Title),
			huh.NewText().
				Title("Comment").
				Value(&c.Text).
				CharLimit(2000).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("comment text is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("form cancelled: %w", err)
	}
	return nil
}

// confirm asks a yes/no question on the terminal
func confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Value(&ok).
				Affirmative("Yes").
				Negative("No"),
		),
	).Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// CommentsDelCmd deletes a comment
type CommentsDelCmd struct {
	Force bool `help:"Skip confirmation" short:"f"`
	ID    uint `arg:"" help:"Comment id"`
}

// Run executes the del command
func (c *CommentsDelCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}

	if !c.Force {
		ok, err := confirm(
			fmt.Sprintf("Delete comment #%d?", c.ID),
			"The comment and all its replies are removed permanently.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := cli.Container.CommentService.DeleteComment(context.Background(), user, c.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	fmt.Printf("Comment #%d deleted\n", c.ID)
	return nil
}

// CommentsTimeCmd manages timesheet entries
type CommentsTimeCmd struct {
	Add CommentsTimeAddCmd `cmd:"add" help:"Log time against a comment"`
	Rm  CommentsTimeRmCmd  `cmd:"rm" help:"Remove a time entry"`
}

// CommentsTimeAddCmd logs time against a comment
type CommentsTimeAddCmd struct {
	Date        string `help:"Date of the work (YYYY-MM-DD, default today)"`
	Description string `help:"What the time was spent on" short:"m"`
	Hours       int    `help:"Hours (0-23)" short:"H"`
	ID          uint   `arg:"" help:"Comment id"`
	Minutes     int    `help:"Minutes (0-59)" short:"M"`
}

// Run executes the time add command
func (c *CommentsTimeAddCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}

	updated, err := cli.Container.CommentService.AddTimeEntry(context.Background(), user, c.ID, domain.TimeEntry{
		Date:        c.Date,
		Description: c.Description,
		Hours:       c.Hours,
		Minutes:     c.Minutes,
	})
	if err != nil {
		return fmt.Errorf("failed to add time entry: %w", err)
	}
	fmt.Printf("Logged time on comment #%d (total %s)\n", updated.ID, domain.FormatDuration(updated.Timesheet.Total()))
	return nil
}

// CommentsTimeRmCmd removes a time entry
type CommentsTimeRmCmd struct {
	ID      uint   `arg:"" help:"Comment id"`
	EntryID string `arg:"" help:"Time entry id"`
}

// Run executes the time rm command
func (c *CommentsTimeRmCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}

	updated, err := cli.Container.CommentService.RemoveTimeEntry(context.Background(), user, c.ID, c.EntryID)
	if err != nil {
		return fmt.Errorf("failed to remove time entry: %w", err)
	}
	fmt.Printf("Removed entry %s (total %s)\n", c.EntryID, domain.FormatDuration(updated.Timesheet.Total()))
	return nil
}

// CommentsExportCmd exports comments as CSV
type CommentsExportCmd struct {
	FilterFlags `embed:""`

	Output string `help:"Output file ('-' for stdout, default site-notes-DATE.csv)" short:"o"`
}

// Run executes the export command
func (c *CommentsExportCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}
	filter, sort, err := c.build()
	if err != nil {
		return err
	}

	path := c.Output
	if path == "" {
		path = export.Filename(time.Now())
	}

	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	n, err := cli.Container.CommentService.ExportComments(context.Background(), user, w, filter, sort)
	if err != nil {
		return err
	}
	if path != "-" {
		fmt.Printf("Exported %d comments to %s\n", n, path)
	}
	return nil
}
