package domain

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for due dates and time entries
const DateLayout = "2006-01-02"

var timeEstimationPattern = regexp.MustCompile(`^\d{1,3}:[0-5]\d$`)

// Comment is an annotation attached to one page and, optionally, one element on it
type Comment struct {
	AssignedTo      uint      `json:"assigned_to"`
	Category        string    `json:"category"`
	CommentText     string    `json:"comment_text"`
	CommentTitle    string    `json:"comment_title"`
	CreatedAt       time.Time `json:"created_at"`
	DueDate         string    `json:"due_date"`
	ElementSelector string    `json:"element_selector"`
	ID              uint      `json:"id"`
	PageURL         string    `json:"page_url"`
	Priority        string    `json:"priority"`
	Replies         []Reply   `json:"replies,omitempty"`
	ReplyCount      int       `json:"reply_count"`
	ScreenshotURL   string    `json:"screenshot_url"`
	Status          Status    `json:"status"`
	TimeEstimation  string    `json:"time_estimation"`
	Timesheet       Timesheet `json:"timesheet"`
	UpdatedAt       time.Time `json:"updated_at"`
	UserID          uint      `json:"user_id"`
	XPosition       int       `json:"x_position"`
	YPosition       int       `json:"y_position"`
}

// Reply is a threaded response to a comment
type Reply struct {
	CommentID uint      `json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
	ID        uint      `json:"id"`
	ReplyText string    `json:"reply_text"`
	UserID    uint      `json:"user_id"`
}

// ApplyDefaults fills the values a new comment starts with
func (c *Comment) ApplyDefaults() {
	c.CommentText = strings.TrimSpace(c.CommentText)
	c.PageURL = strings.TrimSpace(c.PageURL)
	if c.Status == "" {
		c.Status = StatusOpen
	}
	if c.Priority == "" {
		c.Priority = PriorityMedium
	}
	if c.Timesheet == nil {
		c.Timesheet = Timesheet{}
	}
}

// Validate checks the field invariants of a comment
func (c *Comment) Validate() error {
	if strings.TrimSpace(c.PageURL) == "" {
		return NewValidationError("page_url", "is required")
	}
	if u, err := url.Parse(c.PageURL); err != nil || u.Scheme == "" || u.Host == "" {
		return NewValidationError("page_url", "must be an absolute URL")
	}
	if strings.TrimSpace(c.CommentText) == "" {
		return NewValidationError("comment_text", "is required")
	}
	if c.UserID == 0 {
		return NewValidationError("user_id", "is required")
	}
	if !c.Status.Valid() {
		return NewValidationError("status", "must be one of open, in_progress, resolved")
	}
	if c.Priority == "" {
		return NewValidationError("priority", "is required")
	}
	if c.XPosition < 0 || c.YPosition < 0 {
		return NewValidationError("position", "coordinates must not be negative")
	}
	if c.DueDate != "" {
		if _, err := time.Parse(DateLayout, c.DueDate); err != nil {
			return NewValidationError("due_date", "must be formatted as YYYY-MM-DD")
		}
	}
	if c.TimeEstimation != "" && !timeEstimationPattern.MatchString(c.TimeEstimation) {
		return NewValidationError("time_estimation", "must be formatted as HH:MM")
	}
	return c.Timesheet.Validate()
}

// CommentPatch carries the fields of a partial update. Nil fields are left untouched.
type CommentPatch struct {
	AssignedTo      *uint      `json:"assigned_to,omitempty"`
	Category        *string    `json:"category,omitempty"`
	CommentText     *string    `json:"comment_text,omitempty"`
	CommentTitle    *string    `json:"comment_title,omitempty"`
	DueDate         *string    `json:"due_date,omitempty"`
	ElementSelector *string    `json:"element_selector,omitempty"`
	PageURL         *string    `json:"page_url,omitempty"`
	Priority        *string    `json:"priority,omitempty"`
	ScreenshotURL   *string    `json:"screenshot_url,omitempty"`
	Status          *Status    `json:"status,omitempty"`
	TimeEstimation  *string    `json:"time_estimation,omitempty"`
	Timesheet       *Timesheet `json:"timesheet,omitempty"`
	XPosition       *int       `json:"x_position,omitempty"`
	YPosition       *int       `json:"y_position,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p CommentPatch) IsEmpty() bool {
	return p == (CommentPatch{})
}

// Apply merges the supplied fields into c
func (p CommentPatch) Apply(c *Comment) {
	if p.AssignedTo != nil {
		c.AssignedTo = *p.AssignedTo
	}
	if p.Category != nil {
		c.Category = strings.TrimSpace(*p.Category)
	}
	if p.CommentText != nil {
		c.CommentText = strings.TrimSpace(*p.CommentText)
	}
	if p.CommentTitle != nil {
		c.CommentTitle = *p.CommentTitle
	}
	if p.DueDate != nil {
		c.DueDate = *p.DueDate
	}
	if p.ElementSelector != nil {
		c.ElementSelector = *p.ElementSelector
	}
	if p.PageURL != nil {
		c.PageURL = strings.TrimSpace(*p.PageURL)
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
	if p.ScreenshotURL != nil {
		c.ScreenshotURL = *p.ScreenshotURL
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.TimeEstimation != nil {
		c.TimeEstimation = *p.TimeEstimation
	}
	if p.Timesheet != nil {
		c.Timesheet = *p.Timesheet
		if c.Timesheet == nil {
			c.Timesheet = Timesheet{}
		}
	}
	if p.XPosition != nil {
		c.XPosition = *p.XPosition
	}
	if p.YPosition != nil {
		c.YPosition = *p.YPosition
	}
}

// SortField selects the ordering of a comment listing
type SortField string

const (
	SortCreatedAt SortField = "created_at"
	SortPriority  SortField = "priority"
	SortUpdatedAt SortField = "updated_at"
)

// ParseSortField validates a raw sort value; empty means created_at
func ParseSortField(raw string) (SortField, error) {
	switch SortField(raw) {
	case "":
		return SortCreatedAt, nil
	case SortCreatedAt, SortPriority, SortUpdatedAt:
		return SortField(raw), nil
	}
	return "", NewValidationError("sort", "must be one of created_at, updated_at, priority")
}

// CommentSort is the ordering of a listing. Dates sort newest first unless Ascending.
type CommentSort struct {
	Ascending bool
	Field     SortField
}

// CommentFilter narrows a listing. Zero values match everything.
type CommentFilter struct {
	AssignedTo uint
	Category   string
	Involves   uint // matches assigned_to or user_id
	PageURL    string
	Search     string
	Status     Status
	UserID     uint
}
