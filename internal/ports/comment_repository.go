package ports

import (
	"context"

	"github.com/sitenotes/sitenotes/internal/domain"
)

// CommentReader reads comments and their replies
type CommentReader interface {
	Get(ctx context.Context, id uint) (*domain.Comment, error)
	List(ctx context.Context, filter domain.CommentFilter, sort domain.CommentSort) ([]domain.Comment, error)
	ListReplies(ctx context.Context, commentID uint) ([]domain.Reply, error)
}

// CommentWriter creates, updates and deletes comments
type CommentWriter interface {
	Create(ctx context.Context, comment domain.Comment) (*domain.Comment, error)
	Delete(ctx context.Context, id uint) error
	Update(ctx context.Context, id uint, patch domain.CommentPatch) (*domain.Comment, error)
}

// ReplyWriter appends replies to a comment thread
type ReplyWriter interface {
	AddReply(ctx context.Context, commentID, userID uint, text string) (*domain.Reply, error)
}

// TimesheetMutator rewrites the timesheet of a comment inside one transaction.
// fn receives the stored timesheet and returns the one to write back.
type TimesheetMutator interface {
	MutateTimesheet(ctx context.Context, id uint, fn func(domain.Timesheet) (domain.Timesheet, error)) (*domain.Comment, error)
}

// CommentRepository is the composite interface
type CommentRepository interface {
	CommentReader
	CommentWriter
	ReplyWriter
	TimesheetMutator
	DropSchema(ctx context.Context) error
	Close() error
}
