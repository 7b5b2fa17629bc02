package storage

import (
	"time"

	"gorm.io/gorm/schema"
)

// Base table names; the configured prefix is prepended by the naming strategy
const (
	commentsTable = "agwp_sn_comments"
	optionsTable  = "agwp_sn_options"
	repliesTable  = "agwp_sn_comment_replies"
)

// CommentModel is the GORM model for the comments table
type CommentModel struct {
	AssignedTo      uint      `gorm:"not null;default:0;index"`
	Category        string    `gorm:"not null;default:'';index"`
	CommentText     string    `gorm:"type:text;not null"`
	CommentTitle    string    `gorm:"not null;default:''"`
	CreatedAt       time.Time `gorm:"not null;index"`
	DueDate         string    `gorm:"not null;default:''"`
	ElementSelector string    `gorm:"type:text;not null;default:''"`
	ID              uint      `gorm:"primaryKey;autoIncrement"`
	PageURL         string    `gorm:"type:text;not null;index"`
	Priority        string    `gorm:"not null;default:'medium'"`
	ScreenshotURL   string    `gorm:"type:text;not null;default:''"`
	Status          string    `gorm:"not null;default:'open';index;check:status IN ('open','in_progress','resolved')"`
	TimeEstimation  string    `gorm:"not null;default:''"`
	Timesheet       string    `gorm:"type:text;not null;default:'[]'"`
	UpdatedAt       time.Time `gorm:"not null"`
	UserID          uint      `gorm:"not null;index"`
	XPosition       int       `gorm:"not null;default:0"`
	YPosition       int       `gorm:"not null;default:0"`
}

// TableName resolves the prefixed table name for GORM
func (CommentModel) TableName(namer schema.Namer) string { return namer.TableName(commentsTable) }

// ReplyModel is the GORM model for comment replies
type ReplyModel struct {
	Comment   *CommentModel `gorm:"foreignKey:CommentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CommentID uint          `gorm:"not null;index"`
	CreatedAt time.Time     `gorm:"not null"`
	ID        uint          `gorm:"primaryKey;autoIncrement"`
	ReplyText string        `gorm:"type:text;not null"`
	UserID    uint          `gorm:"not null"`
}

// TableName resolves the prefixed table name for GORM
func (ReplyModel) TableName(namer schema.Namer) string { return namer.TableName(repliesTable) }

// OptionModel is the GORM model for named JSON options
type OptionModel struct {
	CreatedAt time.Time
	Name      string `gorm:"primaryKey"`
	UpdatedAt time.Time
	Value     string `gorm:"type:text;not null"`
}

// TableName resolves the prefixed table name for GORM
func (OptionModel) TableName(namer schema.Namer) string { return namer.TableName(optionsTable) }
