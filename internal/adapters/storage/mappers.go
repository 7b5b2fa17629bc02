package storage

import (
	"encoding/json"
	"fmt"

	"github.com/sitenotes/sitenotes/internal/domain"
)

// commentModelToDomain converts a CommentModel (GORM) to domain.Comment
func commentModelToDomain(m CommentModel) (domain.Comment, error) {
	timesheet, err := decodeTimesheet(m.Timesheet)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("comment %d: %w", m.ID, err)
	}
	return domain.Comment{
		AssignedTo:      m.AssignedTo,
		Category:        m.Category,
		CommentText:     m.CommentText,
		CommentTitle:    m.CommentTitle,
		CreatedAt:       m.CreatedAt,
		DueDate:         m.DueDate,
		ElementSelector: m.ElementSelector,
		ID:              m.ID,
		PageURL:         m.PageURL,
		Priority:        m.Priority,
		Replies:         nil, // Loaded by Get only
		ScreenshotURL:   m.ScreenshotURL,
		Status:          domain.Status(m.Status),
		TimeEstimation:  m.TimeEstimation,
		Timesheet:       timesheet,
		UpdatedAt:       m.UpdatedAt,
		UserID:          m.UserID,
		XPosition:       m.XPosition,
		YPosition:       m.YPosition,
	}, nil
}

// domainToCommentModel converts a domain.Comment to CommentModel (GORM)
func domainToCommentModel(c domain.Comment) (CommentModel, error) {
	timesheet, err := encodeTimesheet(c.Timesheet)
	if err != nil {
		return CommentModel{}, err
	}
	return CommentModel{
		AssignedTo:      c.AssignedTo,
		Category:        c.Category,
		CommentText:     c.CommentText,
		CommentTitle:    c.CommentTitle,
		CreatedAt:       c.CreatedAt,
		DueDate:         c.DueDate,
		ElementSelector: c.ElementSelector,
		ID:              c.ID,
		PageURL:         c.PageURL,
		Priority:        c.Priority,
		ScreenshotURL:   c.ScreenshotURL,
		Status:          string(c.Status),
		TimeEstimation:  c.TimeEstimation,
		Timesheet:       timesheet,
		UpdatedAt:       c.UpdatedAt,
		UserID:          c.UserID,
		XPosition:       c.XPosition,
		YPosition:       c.YPosition,
	}, nil
}

// replyModelToDomain converts a ReplyModel (GORM) to domain.Reply
func replyModelToDomain(m ReplyModel) domain.Reply {
	return domain.Reply{
		CommentID: m.CommentID,
		CreatedAt: m.CreatedAt,
		ID:        m.ID,
		ReplyText: m.ReplyText,
		UserID:    m.UserID,
	}
}

// patchToColumns maps the supplied fields of a patch to column updates,
// taking values from the merged comment so trimming is applied once.
func patchToColumns(p domain.CommentPatch, merged domain.Comment) (map[string]any, error) {
	cols := make(map[string]any)
	if p.AssignedTo != nil {
		cols["assigned_to"] = merged.AssignedTo
	}
	if p.Category != nil {
		cols["category"] = merged.Category
	}
	if p.CommentText != nil {
		cols["comment_text"] = merged.CommentText
	}
	if p.CommentTitle != nil {
		cols["comment_title"] = merged.CommentTitle
	}
	if p.DueDate != nil {
		cols["due_date"] = merged.DueDate
	}
	if p.ElementSelector != nil {
		cols["element_selector"] = merged.ElementSelector
	}
	if p.PageURL != nil {
		cols["page_url"] = merged.PageURL
	}
	if p.Priority != nil {
		cols["priority"] = merged.Priority
	}
	if p.ScreenshotURL != nil {
		cols["screenshot_url"] = merged.ScreenshotURL
	}
	if p.Status != nil {
		cols["status"] = string(merged.Status)
	}
	if p.TimeEstimation != nil {
		cols["time_estimation"] = merged.TimeEstimation
	}
	if p.Timesheet != nil {
		encoded, err := encodeTimesheet(merged.Timesheet)
		if err != nil {
			return nil, err
		}
		cols["timesheet"] = encoded
	}
	if p.XPosition != nil {
		cols["x_position"] = merged.XPosition
	}
	if p.YPosition != nil {
		cols["y_position"] = merged.YPosition
	}
	return cols, nil
}

func decodeTimesheet(raw string) (domain.Timesheet, error) {
	if raw == "" {
		return domain.Timesheet{}, nil
	}
	var ts domain.Timesheet
	if err := json.Unmarshal([]byte(raw), &ts); err != nil {
		return nil, fmt.Errorf("failed to decode timesheet: %w", err)
	}
	if ts == nil {
		ts = domain.Timesheet{}
	}
	return ts, nil
}

func encodeTimesheet(ts domain.Timesheet) (string, error) {
	if ts == nil {
		ts = domain.Timesheet{}
	}
	data, err := json.Marshal(ts)
	if err != nil {
		return "", fmt.Errorf("failed to encode timesheet: %w", err)
	}
	return string(data), nil
}
