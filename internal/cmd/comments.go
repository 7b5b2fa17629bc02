package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/logging"
	"github.com/sitenotes/sitenotes/internal/theme"
)

const timestampLayout = "2006-01-02 15:04:05"

// CommentsCmd manages comments
type CommentsCmd struct {
	Add      CommentsAddCmd      `cmd:"add" help:"Add a comment (task) to a page"`
	Del      CommentsDelCmd      `cmd:"del" help:"Delete a comment and its replies"`
	Export   CommentsExportCmd   `cmd:"export" help:"Export comments as CSV"`
	List     CommentsListCmd     `cmd:"list" aliases:"ls" help:"List comments" default:"1"`
	Priority CommentsPriorityCmd `cmd:"priority" help:"Set the priority of a comment"`
	Reply    CommentsReplyCmd    `cmd:"reply" help:"Reply to a comment"`
	Status   CommentsStatusCmd   `cmd:"status" help:"Move a comment to another status"`
	Time     CommentsTimeCmd     `cmd:"time" help:"Log or remove time spent on a comment"`
	View     CommentsViewCmd     `cmd:"view" help:"View a comment with its replies and timesheet"`
}

// FilterFlags are the listing filters shared by list and export
type FilterFlags struct {
	Asc        bool   `help:"Sort ascending (oldest or lowest priority first)"`
	AssignedTo uint   `help:"Only comments assigned to this user id" name:"assigned-to"`
	Category   string `help:"Only comments in this category"`
	Involves   uint   `help:"Only comments authored by or assigned to this user id"`
	Page       string `help:"Only comments on this page URL"`
	Search     string `help:"Search comment text and title" short:"s"`
	Sort       string `help:"Sort field" enum:"created_at,updated_at,priority" default:"created_at"`
	Status     string `help:"Only comments with this status (open, in_progress, resolved or all)" default:"all"`
}

func (f FilterFlags) build() (domain.CommentFilter, domain.CommentSort, error) {
	filter := domain.CommentFilter{
		AssignedTo: f.AssignedTo,
		Category:   f.Category,
		Involves:   f.Involves,
		PageURL:    f.Page,
		Search:     f.Search,
	}
	if f.Status != "" && f.Status != "all" {
		status, err := domain.ParseStatus(f.Status)
		if err != nil {
			return filter, domain.CommentSort{}, err
		}
		filter.Status = status
	}
	field, err := domain.ParseSortField(f.Sort)
	if err != nil {
		return filter, domain.CommentSort{}, err
	}
	return filter, domain.CommentSort{Ascending: f.Asc, Field: field}, nil
}

// CommentsListCmd lists comments
type CommentsListCmd struct {
	FilterFlags `embed:""`

	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (c *CommentsListCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}
	filter, sort, err := c.build()
	if err != nil {
		return err
	}

	comments, err := cli.Container.CommentService.ListComments(context.Background(), user, filter, sort)
	if err != nil {
		return fmt.Errorf("failed to list comments: %w", err)
	}

	if c.Format == "json" {
		return printJSON(os.Stdout, comments)
	}
	printCommentsTable(os.Stdout, comments)
	return nil
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func printCommentsTable(out io.Writer, comments []domain.Comment) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tCATEGORY\tPAGE\tCOMMENT\tREPLIES\tCREATED")
	for _, c := range comments {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			c.ID,
			c.Status.Title(),
			c.Priority,
			c.Category,
			c.PageURL,
			summarize(c.CommentText, 50),
			c.ReplyCount,
			c.CreatedAt.Local().Format(timestampLayout))
	}
	w.Flush()

	fmt.Fprintf(out, "\nTotal: %d comments\n", len(comments))
}

// summarize collapses whitespace and cuts s to n runes
func summarize(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// CommentsViewCmd views a specific comment
type CommentsViewCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	ID     uint   `arg:"" help:"Comment id"`
}

// Run executes the view command
func (c *CommentsViewCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}
	comment, err := cli.Container.CommentService.GetComment(context.Background(), user, c.ID)
	if err != nil {
		return fmt.Errorf("failed to get comment: %w", err)
	}

	if c.Format == "json" {
		return printJSON(os.Stdout, comment)
	}
	printComment(os.Stdout, comment, cli.Container.Users.ByID)
	return nil
}

func printComment(w io.Writer, c *domain.Comment, lookup func(uint) (domain.User, bool)) {
	name := func(id uint) string {
		if id == 0 {
			return "-"
		}
		if u, ok := lookup(id); ok {
			return u.Name
		}
		return fmt.Sprintf("User #%d", id)
	}

	fmt.Fprintf(w, "Comment #%d\n", c.ID)
	if c.CommentTitle != "" {
		fmt.Fprintf(w, "Title: %s\n", c.CommentTitle)
	}
	fmt.Fprintf(w, "Status: %s\n", theme.StatusStyle(c.Status.Color()).Render(c.Status.Title()))
	fmt.Fprintf(w, "Priority: %s\n", c.Priority)
	if c.Category != "" {
		fmt.Fprintf(w, "Category: %s\n", c.Category)
	}
	fmt.Fprintf(w, "Page: %s\n", c.PageURL)
	if c.ElementSelector != "" {
		fmt.Fprintf(w, "Element: %s\n", c.ElementSelector)
	}
	fmt.Fprintf(w, "Position: %d,%d\n", c.XPosition, c.YPosition)
	fmt.Fprintf(w, "Author: %s\n", name(c.UserID))
	fmt.Fprintf(w, "Assigned To: %s\n", name(c.AssignedTo))
	if c.DueDate != "" {
		fmt.Fprintf(w, "Due: %s\n", c.DueDate)
	}
	if c.TimeEstimation != "" {
		fmt.Fprintf(w, "Estimate: %s\n", c.TimeEstimation)
	}
	if c.ScreenshotURL != "" {
		fmt.Fprintf(w, "Screenshot: %s\n", c.ScreenshotURL)
	}
	fmt.Fprintf(w, "Created: %s\n", c.CreatedAt.Local().Format(timestampLayout))
	fmt.Fprintf(w, "Updated: %s\n", c.UpdatedAt.Local().Format(timestampLayout))
	fmt.Fprintf(w, "\n%s\n", c.CommentText)

	if len(c.Timesheet) > 0 {
		fmt.Fprintf(w, "\nTimesheet (%s):\n", domain.FormatDuration(c.Timesheet.Total()))
		for _, e := range c.Timesheet {
			fmt.Fprintf(w, "  %s  %s  %s  [%s]\n", e.Date, domain.FormatDuration(e.Duration()), e.Description, e.ID)
		}
	}

	if len(c.Replies) > 0 {
		fmt.Fprintf(w, "\nReplies (%d):\n", len(c.Replies))
		for _, r := range c.Replies {
			fmt.Fprintf(w, "  %s  %s: %s\n", r.CreatedAt.Local().Format(timestampLayout), name(r.UserID), r.ReplyText)
		}
	}
}

// CommentsStatusCmd moves a comment to another status
type CommentsStatusCmd struct {
	ID     uint   `arg:"" help:"Comment id"`
	Status string `arg:"" help:"New status" enum:"open,in_progress,resolved"`
}

// Run executes the status command
func (c *CommentsStatusCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}
	logging.Logger.Debug("Executing comments status command", "id", c.ID, "status", c.Status)

	updated, err := cli.Container.CommentService.UpdateStatus(context.Background(), user, c.ID, domain.Status(c.Status))
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	fmt.Printf("Comment #%d is now %s\n", updated.ID, updated.Status.Title())
	return nil
}

// CommentsPriorityCmd sets the priority of a comment
type CommentsPriorityCmd struct {
	ID       uint   `arg:"" help:"Comment id"`
	Priority string `arg:"" help:"Priority name or key"`
}

// Run executes the priority command
func (c *CommentsPriorityCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}
	updated, err := cli.Container.CommentService.UpdatePriority(context.Background(), user, c.ID, c.Priority)
	if err != nil {
		return fmt.Errorf("failed to update priority: %w", err)
	}
	fmt.Printf("Comment #%d priority set to %s\n", updated.ID, updated.Priority)
	return nil
}

// CommentsReplyCmd replies to a comment
type CommentsReplyCmd struct {
	ID   uint   `arg:"" help:"Comment id"`
	Text string `arg:"" help:"Reply text"`
}

// Run executes the reply command
func (c *CommentsReplyCmd) Run(cli *CLI) error {
	user, err := cli.User()
	if err != nil {
		return err
	}
	reply, err := cli.Container.CommentService.AddReply(context.Background(), user, c.ID, c.Text)
	if err != nil {
		return fmt.Errorf("failed to add reply: %w", err)
	}
	fmt.Printf("Reply #%d added to comment #%d\n", reply.ID, reply.CommentID)
	return nil
}
