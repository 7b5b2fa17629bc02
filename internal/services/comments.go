package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/logging"
	"github.com/sitenotes/sitenotes/internal/ports"
)

// CommentInput is what a caller supplies to create a comment
type CommentInput struct {
	AssignedTo      uint   `json:"assigned_to"`
	Category        string `json:"category"`
	CommentText     string `json:"comment_text"`
	CommentTitle    string `json:"comment_title"`
	DueDate         string `json:"due_date"`
	ElementSelector string `json:"element_selector"`
	PageURL         string `json:"page_url"`
	Priority        string `json:"priority"`
	// ScreenshotData is an inline data URL stored through the screenshot store
	ScreenshotData string        `json:"screenshot_data"`
	ScreenshotURL  string        `json:"screenshot_url"`
	Status         domain.Status `json:"status"`
	TimeEstimation string        `json:"time_estimation"`
	XPosition      int           `json:"x_position"`
	YPosition      int           `json:"y_position"`
}

// CommentService is the single entry point used by every surface (HTTP, CLI, board).
// Each operation checks access before touching the store.
type CommentService struct {
	access      ports.AccessPolicy
	exporter    ports.CommentExporter
	now         func() time.Time
	repo        ports.CommentRepository
	screenshots ports.ScreenshotStore
	settings    *SettingsService
	taxonomy    *TaxonomyService
}

// NewCommentService creates a new CommentService. screenshots and exporter may be nil.
func NewCommentService(
	repo ports.CommentRepository,
	taxonomy *TaxonomyService,
	settings *SettingsService,
	access ports.AccessPolicy,
	screenshots ports.ScreenshotStore,
	exporter ports.CommentExporter,
) *CommentService {
	return &CommentService{
		access:      access,
		exporter:    exporter,
		now:         func() time.Time { return time.Now().UTC() },
		repo:        repo,
		screenshots: screenshots,
		settings:    settings,
		taxonomy:    taxonomy,
	}
}

func (s *CommentService) authorize(ctx context.Context, user domain.User, operation string) error {
	if s.access.HasAccess(ctx, user) {
		return nil
	}
	logging.Logger.Warn("Access denied", "operation", operation, "user", user.ID)
	return fmt.Errorf("%s: %w", operation, domain.ErrForbidden)
}

// ListComments returns the comments matching filter in the requested order
func (s *CommentService) ListComments(
	ctx context.Context,
	user domain.User,
	filter domain.CommentFilter,
	sort domain.CommentSort,
) ([]domain.Comment, error) {
	if err := s.authorize(ctx, user, "list comments"); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter, sort)
}

// GetComment returns one comment with its replies
func (s *CommentService) GetComment(ctx context.Context, user domain.User, id uint) (*domain.Comment, error) {
	if err := s.authorize(ctx, user, "get comment"); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// CreateComment creates a comment owned by user
func (s *CommentService) CreateComment(ctx context.Context, user domain.User, input CommentInput) (*domain.Comment, error) {
	if err := s.authorize(ctx, user, "create comment"); err != nil {
		return nil, err
	}
	return s.create(ctx, user, input)
}

// CreateFrontendComment creates a comment submitted from the page widget. It
// is refused while front-end comments are disabled.
func (s *CommentService) CreateFrontendComment(ctx context.Context, user domain.User, input CommentInput) (*domain.Comment, error) {
	if err := s.authorize(ctx, user, "create comment"); err != nil {
		return nil, err
	}

	settings, err := s.settings.LoadSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.EnableFrontendComments {
		logging.Logger.Info("Front-end comment refused, front-end comments are disabled", "user", user.ID)
		return nil, fmt.Errorf("front-end comments are disabled: %w", domain.ErrForbidden)
	}
	return s.create(ctx, user, input)
}

func (s *CommentService) create(ctx context.Context, user domain.User, input CommentInput) (*domain.Comment, error) {
	comment := domain.Comment{
		AssignedTo:      input.AssignedTo,
		CommentText:     input.CommentText,
		CommentTitle:    strings.TrimSpace(input.CommentTitle),
		DueDate:         strings.TrimSpace(input.DueDate),
		ElementSelector: strings.TrimSpace(input.ElementSelector),
		PageURL:         input.PageURL,
		ScreenshotURL:   input.ScreenshotURL,
		Status:          input.Status,
		TimeEstimation:  strings.TrimSpace(input.TimeEstimation),
		UserID:          user.ID,
		XPosition:       max(input.XPosition, 0),
		YPosition:       max(input.YPosition, 0),
	}

	if input.Priority != "" {
		key, err := s.taxonomy.CheckPriority(ctx, input.Priority)
		if err != nil {
			return nil, err
		}
		comment.Priority = key
	}
	category, err := s.taxonomy.CheckCategory(ctx, input.Category)
	if err != nil {
		return nil, err
	}
	comment.Category = category

	// Validate before storing a screenshot so a rejected comment leaves no file behind
	comment.ApplyDefaults()
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	var saved string
	if input.ScreenshotData != "" && s.screenshots != nil {
		url, err := s.screenshots.Save(ctx, input.ScreenshotData)
		if err != nil {
			return nil, err
		}
		comment.ScreenshotURL = url
		saved = url
	}

	created, err := s.repo.Create(ctx, comment)
	if err != nil {
		if saved != "" {
			if rmErr := s.screenshots.Remove(ctx, saved); rmErr != nil {
				logging.Logger.Warn("Failed to remove orphaned screenshot", "url", saved, "error", rmErr)
			}
		}
		return nil, err
	}

	logging.Logger.Info("Comment created",
		"id", created.ID,
		"page", created.PageURL,
		"user", user.ID)
	return created, nil
}

// UpdateComment merges the supplied fields into a comment
func (s *CommentService) UpdateComment(
	ctx context.Context,
	user domain.User,
	id uint,
	patch domain.CommentPatch,
) (*domain.Comment, error) {
	if err := s.authorize(ctx, user, "update comment"); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, domain.NewValidationError("comment", "nothing to update")
	}

	if patch.Priority != nil {
		key, err := s.taxonomy.CheckPriority(ctx, *patch.Priority)
		if err != nil {
			return nil, err
		}
		patch.Priority = &key
	}
	if patch.Category != nil {
		category, err := s.taxonomy.CheckCategory(ctx, *patch.Category)
		if err != nil {
			return nil, err
		}
		patch.Category = &category
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	logging.Logger.Info("Comment updated", "id", id, "user", user.ID)
	return updated, nil
}

// UpdateStatus moves a comment to another column of the workflow. Any
// transition between valid statuses is allowed.
func (s *CommentService) UpdateStatus(ctx context.Context, user domain.User, id uint, status domain.Status) (*domain.Comment, error) {
	if err := s.authorize(ctx, user, "update status"); err != nil {
		return nil, err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := domain.Transition(current.Status, status)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, domain.CommentPatch{Status: &next})
	if err != nil {
		return nil, err
	}
	logging.Logger.Info("Comment status changed", "id", id, "from", current.Status, "to", next, "user", user.ID)
	return updated, nil
}

// UpdatePriority changes the priority of a comment. raw may be a key or a name.
func (s *CommentService) UpdatePriority(ctx context.Context, user domain.User, id uint, raw string) (*domain.Comment, error) {
	if err := s.authorize(ctx, user, "update priority"); err != nil {
		return nil, err
	}

	key, err := s.taxonomy.CheckPriority(ctx, raw)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, domain.CommentPatch{Priority: &key})
	if err != nil {
		return nil, err
	}
	logging.Logger.Info("Comment priority changed", "id", id, "priority", key, "user", user.ID)
	return updated, nil
}

// DeleteComment deletes a comment and its replies
func (s *CommentService) DeleteComment(ctx context.Context, user domain.User, id uint) error {
	if err := s.authorize(ctx, user, "delete comment"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logging.Logger.Info("Comment deleted", "id", id, "user", user.ID)
	return nil
}

// AddReply appends a reply by user to a comment thread
func (s *CommentService) AddReply(ctx context.Context, user domain.User, commentID uint, text string) (*domain.Reply, error) {
	if err := s.authorize(ctx, user, "add reply"); err != nil {
		return nil, err
	}
	reply, err := s.repo.AddReply(ctx, commentID, user.ID, text)
	if err != nil {
		return nil, err
	}
	logging.Logger.Info("Reply added", "comment", commentID, "reply", reply.ID, "user", user.ID)
	return reply, nil
}

// ListReplies returns the replies of a comment, oldest first
func (s *CommentService) ListReplies(ctx context.Context, user domain.User, commentID uint) ([]domain.Reply, error) {
	if err := s.authorize(ctx, user, "list replies"); err != nil {
		return nil, err
	}
	return s.repo.ListReplies(ctx, commentID)
}

// AddTimeEntry logs time against a comment. Missing id, description and date
// are filled in.
func (s *CommentService) AddTimeEntry(ctx context.Context, user domain.User, id uint, entry domain.TimeEntry) (*domain.Comment, error) {
	if err := s.authorize(ctx, user, "add time entry"); err != nil {
		return nil, err
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.Description = strings.TrimSpace(entry.Description)
	if entry.Description == "" {
		entry.Description = domain.DefaultTimeEntryDescription
	}
	if entry.Date == "" {
		entry.Date = s.now().Format(domain.DateLayout)
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.MutateTimesheet(ctx, id, func(ts domain.Timesheet) (domain.Timesheet, error) {
		return ts.With(entry), nil
	})
	if err != nil {
		return nil, err
	}
	logging.Logger.Info("Time entry added",
		"comment", id,
		"entry", entry.ID,
		"duration", entry.Duration(),
		"user", user.ID)
	return updated, nil
}

// RemoveTimeEntry deletes one time entry by id
func (s *CommentService) RemoveTimeEntry(ctx context.Context, user domain.User, id uint, entryID string) (*domain.Comment, error) {
	if err := s.authorize(ctx, user, "remove time entry"); err != nil {
		return nil, err
	}

	updated, err := s.repo.MutateTimesheet(ctx, id, func(ts domain.Timesheet) (domain.Timesheet, error) {
		next, found := ts.Without(entryID)
		if !found {
			return nil, fmt.Errorf("time entry %q: %w", entryID, domain.ErrNotFound)
		}
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	logging.Logger.Info("Time entry removed", "comment", id, "entry", entryID, "user", user.ID)
	return updated, nil
}

// ListCategories returns the configured categories
func (s *CommentService) ListCategories(ctx context.Context, user domain.User) ([]domain.Category, error) {
	if err := s.authorize(ctx, user, "list categories"); err != nil {
		return nil, err
	}
	return s.taxonomy.Categories(ctx)
}

// SaveCategories replaces the category collection
func (s *CommentService) SaveCategories(ctx context.Context, user domain.User, categories []domain.Category) ([]domain.Category, error) {
	if err := s.authorize(ctx, user, "save categories"); err != nil {
		return nil, err
	}
	return s.taxonomy.SaveCategories(ctx, categories)
}

// ListPriorities returns the configured priorities
func (s *CommentService) ListPriorities(ctx context.Context, user domain.User) ([]domain.Priority, error) {
	if err := s.authorize(ctx, user, "list priorities"); err != nil {
		return nil, err
	}
	return s.taxonomy.Priorities(ctx)
}

// SavePriorities replaces the priority collection
func (s *CommentService) SavePriorities(ctx context.Context, user domain.User, priorities []domain.Priority) ([]domain.Priority, error) {
	if err := s.authorize(ctx, user, "save priorities"); err != nil {
		return nil, err
	}
	return s.taxonomy.SavePriorities(ctx, priorities)
}

// GetSettings returns the plugin settings
func (s *CommentService) GetSettings(ctx context.Context, user domain.User) (domain.Settings, error) {
	if err := s.authorize(ctx, user, "get settings"); err != nil {
		return domain.Settings{}, err
	}
	return s.settings.LoadSettings(ctx)
}

// SaveSettings stores the plugin settings
func (s *CommentService) SaveSettings(ctx context.Context, user domain.User, settings domain.Settings) (domain.Settings, error) {
	if err := s.authorize(ctx, user, "save settings"); err != nil {
		return domain.Settings{}, err
	}
	return s.settings.SaveSettings(ctx, settings)
}

// ExportComments writes the matching comments through the exporter
func (s *CommentService) ExportComments(
	ctx context.Context,
	user domain.User,
	w io.Writer,
	filter domain.CommentFilter,
	sort domain.CommentSort,
) (int, error) {
	if err := s.authorize(ctx, user, "export comments"); err != nil {
		return 0, err
	}
	if s.exporter == nil {
		return 0, fmt.Errorf("no exporter configured")
	}

	comments, err := s.repo.List(ctx, filter, sort)
	if err != nil {
		return 0, err
	}
	if err := s.exporter.Export(w, comments); err != nil {
		return 0, fmt.Errorf("failed to export comments: %w", err)
	}
	logging.Logger.Info("Comments exported", "count", len(comments), "user", user.ID)
	return len(comments), nil
}

// Uninstall removes everything site notes stored: tables, options and screenshots
func (s *CommentService) Uninstall(ctx context.Context, user domain.User) error {
	if err := s.authorize(ctx, user, "uninstall"); err != nil {
		return err
	}

	logging.Logger.Warn("Uninstalling site notes", "user", user.ID)
	if err := s.settings.Reset(ctx); err != nil {
		return err
	}
	if err := s.repo.DropSchema(ctx); err != nil {
		return err
	}
	s.taxonomy.Reload()
	if s.screenshots != nil {
		if err := s.screenshots.RemoveAll(ctx); err != nil {
			return fmt.Errorf("failed to remove screenshots: %w", err)
		}
	}
	logging.Logger.Info("Site notes uninstalled")
	return nil
}
