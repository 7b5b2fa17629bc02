package server

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/export"
	"github.com/sitenotes/sitenotes/internal/logging"
	"github.com/sitenotes/sitenotes/internal/services"
)

func (h *Handler) actionTable() map[string]actionFunc {
	actions := map[string]actionFunc{
		"get_comments":      h.getComments,
		"get_comment":       h.getComment,
		"save_comment":      h.saveComment,
		"add_task":          h.addTask,
		"update_comment":    h.updateComment,
		"update_status":     h.updateStatus,
		"update_priority":   h.updatePriority,
		"delete_comment":    h.deleteComment,
		"add_reply":         h.addReply,
		"get_replies":       h.getReplies,
		"add_time_entry":    h.addTimeEntry,
		"delete_time_entry": h.deleteTimeEntry,
		"get_categories":    h.getCategories,
		"save_categories":   h.saveCategories,
		"get_priorities":    h.getPriorities,
		"save_priorities":   h.savePriorities,
		"get_settings":      h.getSettings,
		"save_settings":     h.saveSettings,
		"export_comments":   h.exportComments,
	}

	prefixed := make(map[string]actionFunc, len(actions))
	for name, fn := range actions {
		prefixed[ActionPrefix+name] = fn
	}
	return prefixed
}

func filterAndSort(p params) (domain.CommentFilter, domain.CommentSort, error) {
	var filter domain.CommentFilter
	var sort domain.CommentSort
	var err error

	if raw := p.str("status"); raw != "" && raw != "all" {
		if filter.Status, err = domain.ParseStatus(raw); err != nil {
			return filter, sort, err
		}
	}
	if filter.AssignedTo, err = p.uintParam("assigned_to"); err != nil {
		return filter, sort, err
	}
	if filter.UserID, err = p.uintParam("user_id"); err != nil {
		return filter, sort, err
	}
	if filter.Involves, err = p.uintParam("involves"); err != nil {
		return filter, sort, err
	}
	filter.Category = p.str("category")
	filter.PageURL = p.str("page_url")
	filter.Search = p.str("search")

	if sort.Field, err = domain.ParseSortField(p.str("orderby")); err != nil {
		return filter, sort, err
	}
	sort.Ascending = strings.EqualFold(p.str("order"), "asc")
	return filter, sort, nil
}

func (h *Handler) getComments(ctx context.Context, _ http.ResponseWriter, user domain.User, p params) (any, error) {
	filter, sort, err := filterAndSort(p)
	if err != nil {
		return nil, err
	}
	return h.comments.ListComments(ctx, user, filter, sort)
}

func (h *Handler) getComment(ctx context.Context, _ http.ResponseWriter, user domain.User, p params) (any, error) {
	id, err := p.requiredID("comment_id")
	if err != nil {
		return nil, err
	}
	return h.comments.GetComment(ctx, user, id)
}

func commentInput(p params) (services.CommentInput, error) {
	input := services.CommentInput{
		Category:        p.str("category"),
		CommentText:     p.str("comment_text"),
		CommentTitle:    p.str("comment_title"),
		DueDate:         p.str("due_date"),
		ElementSelector: p.str("element_selector"),
		PageURL:         p.str("page_url"),
		Priority:        p.str("priority"),
		ScreenshotData:  p.str("screenshot_data"),
		ScreenshotURL:   p.str("screenshot_url"),
		Status:          domain.Status(p.str("status")),
		TimeEstimation:  p.str("time_estimation"),
	}
	var err error
	if input.AssignedTo, err = p.uintParam("assigned_to"); err != nil {
		return input, err
	}
	if input.XPosition, err = p.intParam("x_position"); err != nil {
		return input, err
	}
	if input.YPosition, err = p.intParam("y_position"); err != nil {
		return input, err
	}
	return input, nil
}

func (h *Handler) saveComment(ctx context.Context, _ http.ResponseWriter, user domain.User, p params) (any, error) {
	input, err := commentInput(p)
	if err != nil {
		return nil, err
	}
	// The widget always creates open comments
	input.Status = ""
	return h.comments.CreateFrontendComment(ctx, user, input)
}

func (h *Handler) addTask(ctx context.Context, _ http.ResponseWriter, user domain.User, p params) (any, error) {
	input, err := commentInput(p)
	if err != nil {
		return nil, err
	}
	return h.comments.CreateComment(ctx, user, input)
}

func commentPatch(p params) (domain.CommentPatch, error) {
	patch := domain.CommentPatch{
		Category:        p.optionalString("category"),
		CommentText:     p.optionalString("comment_text"),
		CommentTitle:    p.optionalString("comment_title"),
		DueDate:         p.optionalString("due_date"),
		ElementSelector: p.optionalString("element_selector"),
		PageURL:         p.optionalString("page_url"),
		Priority:        p.optionalString("priority"),
		ScreenshotURL:   p.optionalString("screenshot_url"),
		TimeEstimation:  p.optionalString("time_estimation"),
	}
	if p.has("status") {
		status := domain.Status(p.str("status"))
		patch.Status = &status
	}
	if p.has("assigned_to") {
		assigned, err := p.uintParam("assigned_to")
		if err != nil {
			return patch, err
		}
		patch.AssignedTo = &assigned
	}
	if p.has("x_position") {
		x, err := p.intParam("x_position")
		if err != nil {
			return patch, err
		}
		patch.XPosition = &x
	}
	if p.has("y_position") {
		y, err := p.intParam("y_position")
		if err != nil {
			return patch, err
		}
		patch.YPosition = &y
	}
	return patch, nil
}

func (h *Handler) updateComment(ctx context.Context, _ http.ResponseWriter, user domain.User, p params) (any, error) {
	id, err := p.requiredID("comment_id")
	if err != nil {
		return nil, err
	}
	patch, err := commentPatch(p)
	if err != nil {
		return nil, err
	}
	return h.comments.UpdateComment(ctx, user, id, patch)
}

func (h *Handler) updateStatus(ctx context.Context, _ http.ResponseWriter, user domain.User, p params) (any, error) {
	id, err := p.requiredID("comment_id")
	if err != nil {
		return nil, err
	}
	return h.comments.UpdateStatus(ctx, user, id, domain.Status(p.str("status")))
}

func (h *Handler) updatePriority(ctx context.Context, _ http.ResponseWriter, user domain.User, p params) (any, error) {
	id, err := p.requiredID("comment_id")
	if err != nil {
		return nil, err
	}
	return h.comments.UpdatePriority(ctx, user, id, p.str("priority"))
}

func (h *Handler) deleteComment(ctx context.Context, _ http.ResponseWriter, user domain.User, p params) (any, error) {
	id, err := p.requiredID("comment_id")
	if err != nil {
		return nil, err
	}
	if err := h.comments.DeleteComment(ctx, user, id); err != nil {
		return nil, err
	}
	return map[string]any{"deleted": true, "id": id}, nil
}

func (h *Handler) addReply(ctx context.Context, _ http.ResponseWriter, user domain.User, p params) (any, error) {
	id, err := p.requiredID("comment_id")
	if err != nil {
		return nil, err
	}
	return h.comments.AddReply(ctx, user, id, p.str("reply_text"))
}

func (h *Handler) getReplies(ctx context.Context, _ http.ResponseWriter, user domain.User, p params) (any, error) {
	id, err := p.requiredID("comment_id")
	if err != nil {
		return nil, err
	}
	return h.comments.ListReplies(ctx, user, id)
}

func (h *Handler) addTimeEntry(ctx context.Context, _ http.ResponseWriter, user domain.User, p params) (any, error) {
	id, err := p.requiredID("comment_id")
	if err != nil {
		return nil, err
	}
	entry := domain.TimeEntry{
		Date:        p.str("date"),
		Description: p.str("description"),
		ID:          p.str("entry_id"),
	}
	if entry.Hours, err = p.intParam("hours"); err != nil {
		return nil, err
	}
	if entry.Minutes, err = p.intParam("minutes"); err != nil {
		return nil, err
	}
	return h.comments.AddTimeEntry(ctx, user, id, entry)
}

func (h *Handler) deleteTimeEntry(ctx context.Context, _ http.ResponseWriter, user domain.User, p params) (any, error) {
	id, err := p.requiredID("comment_id")
	if err != nil {
		return nil, err
	}
	entryID := p.str("entry_id")
	if entryID == "" {
		return nil, domain.NewValidationError("entry_id", "is required")
	}
	return h.comments.RemoveTimeEntry(ctx, user, id, entryID)
}

func (h *Handler) getCategories(ctx context.Context, _ http.ResponseWriter, user domain.User, _ params) (any, error) {
	return h.comments.ListCategories(ctx, user)
}

func (h *Handler) saveCategories(ctx context.Context, _ http.ResponseWriter, user domain.User, p params) (any, error) {
	var categories []domain.Category
	if err := p.decode("categories", &categories); err != nil {
		return nil, err
	}
	return h.comments.SaveCategories(ctx, user, categories)
}

func (h *Handler) getPriorities(ctx context.Context, _ http.ResponseWriter, user domain.User, _ params) (any, error) {
	return h.comments.ListPriorities(ctx, user)
}

func (h *Handler) savePriorities(ctx context.Context, _ http.ResponseWriter, user domain.User, p params) (any, error) {
	var priorities []domain.Priority
	if err := p.decode("priorities", &priorities); err != nil {
		return nil, err
	}
	return h.comments.SavePriorities(ctx, user, priorities)
}

func (h *Handler) getSettings(ctx context.Context, _ http.ResponseWriter, user domain.User, _ params) (any, error) {
	return h.comments.GetSettings(ctx, user)
}

// saveSettings overrides only the supplied settings
func (h *Handler) saveSettings(ctx context.Context, _ http.ResponseWriter, user domain.User, p params) (any, error) {
	settings, err := h.comments.GetSettings(ctx, user)
	if err != nil {
		return nil, err
	}
	if p.has("enable_frontend_comments") {
		settings.EnableFrontendComments = p.boolParam("enable_frontend_comments")
	}
	if p.has("auto_screenshot") {
		settings.AutoScreenshot = p.boolParam("auto_screenshot")
	}
	if p.has("allowed_roles") {
		if settings.AllowedRoles, err = p.stringsParam("allowed_roles"); err != nil {
			return nil, err
		}
	}
	if p.has("screenshot_quality") {
		if settings.ScreenshotQuality, err = p.floatParam("screenshot_quality"); err != nil {
			return nil, err
		}
	}
	return h.comments.SaveSettings(ctx, user, settings)
}

func (h *Handler) exportComments(ctx context.Context, w http.ResponseWriter, user domain.User, p params) (any, error) {
	filter, sort, err := filterAndSort(p)
	if err != nil {
		return nil, err
	}

	// Render into memory first so an error can still produce a JSON failure
	var buf strings.Builder
	if _, err := h.comments.ExportComments(ctx, user, &buf, filter, sort); err != nil {
		return nil, err
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, buf.String()); err != nil {
		logging.Logger.Error("Failed to write export", "error", err)
	}
	return rawResponse{}, nil
}
