// Package export renders comment listings for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/ports"
)

const timestampLayout = "2006-01-02 15:04:05"

// Filename is the download name of an export made at now
func Filename(now time.Time) string {
	return fmt.Sprintf("site-notes-%s.csv", now.Format(domain.DateLayout))
}

// Header is the first row of every export
var Header = []string{
	"ID", "Title", "Comment", "Page URL", "Element", "Status", "Priority", "Category",
	"Assigned To", "Author", "Due Date", "Time Estimation", "Time Logged", "Replies",
	"Created", "Updated",
}

// CSVExporter writes comments as CSV, resolving user ids to names
type CSVExporter struct {
	users ports.UserDirectory
}

// Verify interface compliance at compile time
var _ ports.CommentExporter = (*CSVExporter)(nil)

// NewCSVExporter creates a new CSVExporter. users may be nil, in which case ids are written.
func NewCSVExporter(users ports.UserDirectory) *CSVExporter {
	return &CSVExporter{users: users}
}

// Export implements ports.CommentExporter
func (e *CSVExporter) Export(w io.Writer, comments []domain.Comment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}

	for _, c := range comments {
		logged := ""
		if total := c.Timesheet.Total(); total > 0 {
			logged = domain.FormatDuration(total)
		}
		assigned := ""
		if c.AssignedTo != 0 {
			assigned = e.userName(c.AssignedTo)
		}

		record := []string{
			strconv.FormatUint(uint64(c.ID), 10),
			c.CommentTitle,
			c.CommentText,
			c.PageURL,
			c.ElementSelector,
			c.Status.Title(),
			c.Priority,
			c.Category,
			assigned,
			e.userName(c.UserID),
			c.DueDate,
			c.TimeEstimation,
			logged,
			strconv.Itoa(c.ReplyCount),
			c.CreatedAt.UTC().Format(timestampLayout),
			c.UpdatedAt.UTC().Format(timestampLayout),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func (e *CSVExporter) userName(id uint) string {
	if e.users != nil {
		if u, ok := e.users.ByID(id); ok && u.Name != "" {
			return u.Name
		}
	}
	return fmt.Sprintf("User #%d", id)
}
