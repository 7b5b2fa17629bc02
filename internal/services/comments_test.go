package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sitenotes/sitenotes/internal/domain"
	portsmocks "github.com/sitenotes/sitenotes/internal/ports/mocks"
)

var (
	admin    = domain.User{ID: 1, Name: "Ada", Roles: []string{domain.RoleAdministrator}}
	stranger = domain.User{ID: 5, Name: "Sam", Roles: []string{"subscriber"}}
)

type mockedService struct {
	access      *portsmocks.MockAccessPolicy
	options     *portsmocks.MockOptionsStore
	repo        *portsmocks.MockCommentRepository
	screenshots *portsmocks.MockScreenshotStore
	service     *CommentService
}

func newMockedService(t *testing.T) mockedService {
	t.Helper()
	m := mockedService{
		access:      portsmocks.NewMockAccessPolicy(t),
		options:     portsmocks.NewMockOptionsStore(t),
		repo:        portsmocks.NewMockCommentRepository(t),
		screenshots: portsmocks.NewMockScreenshotStore(t),
	}
	cache := NewCache()
	m.service = NewCommentService(
		m.repo,
		NewTaxonomyService(m.options, cache),
		NewSettingsService(m.options, cache),
		m.access,
		m.screenshots,
		nil,
	)
	m.service.now = func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) }
	return m
}

func TestCommentService_ForbiddenNeverReachesStore(t *testing.T) {
	ops := map[string]func(ctx context.Context, s *CommentService) error{
		"ListComments": func(ctx context.Context, s *CommentService) error {
			_, err := s.ListComments(ctx, stranger, domain.CommentFilter{}, domain.CommentSort{})
			return err
		},
		"GetComment": func(ctx context.Context, s *CommentService) error {
			_, err := s.GetComment(ctx, stranger, 1)
			return err
		},
		"CreateComment": func(ctx context.Context, s *CommentService) error {
			_, err := s.CreateComment(ctx, stranger, CommentInput{PageURL: "https://x.test/a", CommentText: "x"})
			return err
		},
		"CreateFrontendComment": func(ctx context.Context, s *CommentService) error {
			_, err := s.CreateFrontendComment(ctx, stranger, CommentInput{PageURL: "https://x.test/a", CommentText: "x"})
			return err
		},
		"UpdateComment": func(ctx context.Context, s *CommentService) error {
			text := "y"
			_, err := s.UpdateComment(ctx, stranger, 1, domain.CommentPatch{CommentText: &text})
			return err
		},
		"UpdateStatus": func(ctx context.Context, s *CommentService) error {
			_, err := s.UpdateStatus(ctx, stranger, 1, domain.StatusResolved)
			return err
		},
		"UpdatePriority": func(ctx context.Context, s *CommentService) error {
			_, err := s.UpdatePriority(ctx, stranger, 1, "high")
			return err
		},
		"DeleteComment": func(ctx context.Context, s *CommentService) error {
			return s.DeleteComment(ctx, stranger, 1)
		},
		"AddReply": func(ctx context.Context, s *CommentService) error {
			_, err := s.AddReply(ctx, stranger, 1, "hi")
			return err
		},
		"ListReplies": func(ctx context.Context, s *CommentService) error {
			_, err := s.ListReplies(ctx, stranger, 1)
			return err
		},
		"AddTimeEntry": func(ctx context.Context, s *CommentService) error {
			_, err := s.AddTimeEntry(ctx, stranger, 1, domain.TimeEntry{Hours: 1})
			return err
		},
		"RemoveTimeEntry": func(ctx context.Context, s *CommentService) error {
			_, err := s.RemoveTimeEntry(ctx, stranger, 1, "e1")
			return err
		},
		"ListCategories": func(ctx context.Context, s *CommentService) error {
			_, err := s.ListCategories(ctx, stranger)
			return err
		},
		"SaveCategories": func(ctx context.Context, s *CommentService) error {
			_, err := s.SaveCategories(ctx, stranger, []domain.Category{{Name: "Design"}})
			return err
		},
		"ListPriorities": func(ctx context.Context, s *CommentService) error {
			_, err := s.ListPriorities(ctx, stranger)
			return err
		},
		"SavePriorities": func(ctx context.Context, s *CommentService) error {
			_, err := s.SavePriorities(ctx, stranger, domain.DefaultPriorities())
			return err
		},
		"GetSettings": func(ctx context.Context, s *CommentService) error {
			_, err := s.GetSettings(ctx, stranger)
			return err
		},
		"SaveSettings": func(ctx context.Context, s *CommentService) error {
			_, err := s.SaveSettings(ctx, stranger, domain.DefaultSettings())
			return err
		},
		"ExportComments": func(ctx context.Context, s *CommentService) error {
			_, err := s.ExportComments(ctx, stranger, &bytes.Buffer{}, domain.CommentFilter{}, domain.CommentSort{})
			return err
		},
		"Uninstall": func(ctx context.Context, s *CommentService) error {
			return s.Uninstall(ctx, stranger)
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			m := newMockedService(t)
			m.access.EXPECT().HasAccess(mock.Anything, stranger).Return(false)

			err := op(context.Background(), m.service)

			assert.ErrorIs(t, err, domain.ErrForbidden)
			// The repository, options and screenshot mocks have no expectations:
			// any call would fail the test.
		})
	}
}

func TestCreateFrontendComment_RefusedWhenDisabled(t *testing.T) {
	m := newMockedService(t)
	m.access.EXPECT().HasAccess(mock.Anything, admin).Return(true)
	m.options.EXPECT().GetOption(mock.Anything, OptionSettings, mock.Anything).
		RunAndReturn(func(_ context.Context, _ string, dest any) (bool, error) {
			s := dest.(*domain.Settings)
			s.EnableFrontendComments = false
			return true, nil
		})

	_, err := m.service.CreateFrontendComment(context.Background(), admin, CommentInput{
		PageURL:     "https://x.test/a",
		CommentText: "Fix button",
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateComment_StoresScreenshotAndDefaults(t *testing.T) {
	m := newMockedService(t)
	m.access.EXPECT().HasAccess(mock.Anything, admin).Return(true)
	m.screenshots.EXPECT().Save(mock.Anything, "data:image/png;base64,AAAA").Return("/screenshots/a.png", nil)
	m.repo.EXPECT().Create(mock.Anything, mock.AnythingOfType("domain.Comment")).
		RunAndReturn(func(_ context.Context, c domain.Comment) (*domain.Comment, error) {
			c.ID = 42
			return &c, nil
		})

	created, err := m.service.CreateComment(context.Background(), admin, CommentInput{
		CommentText:    "  Fix button ",
		PageURL:        "https://x.test/a",
		Priority:       "High",
		ScreenshotData: "data:image/png;base64,AAAA",
		XPosition:      -3,
		YPosition:      340,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(42), created.ID)
	assert.Equal(t, "Fix button", created.CommentText)
	assert.Equal(t, domain.StatusOpen, created.Status)
	assert.Equal(t, "high", created.Priority)
	assert.Equal(t, "/screenshots/a.png", created.ScreenshotURL)
	assert.Equal(t, admin.ID, created.UserID)
	assert.Equal(t, 0, created.XPosition)
}

func TestCreateComment_StoreFailureRemovesScreenshot(t *testing.T) {
	m := newMockedService(t)
	m.access.EXPECT().HasAccess(mock.Anything, admin).Return(true)
	m.screenshots.EXPECT().Save(mock.Anything, "data:image/png;base64,AAAA").Return("/screenshots/b.png", nil)
	m.repo.EXPECT().Create(mock.Anything, mock.AnythingOfType("domain.Comment")).
		Return(nil, fmt.Errorf("disk full: %w", domain.ErrStorage))
	m.screenshots.EXPECT().Remove(mock.Anything, "/screenshots/b.png").Return(nil).Once()

	created, err := m.service.CreateComment(context.Background(), admin, CommentInput{
		CommentText:    "Fix button",
		PageURL:        "https://x.test/a",
		ScreenshotData: "data:image/png;base64,AAAA",
	})

	assert.Nil(t, created)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestCreateComment_StoreFailureWithoutScreenshot(t *testing.T) {
	m := newMockedService(t)
	m.access.EXPECT().HasAccess(mock.Anything, admin).Return(true)
	m.repo.EXPECT().Create(mock.Anything, mock.AnythingOfType("domain.Comment")).
		Return(nil, domain.ErrStorage)

	_, err := m.service.CreateComment(context.Background(), admin, CommentInput{
		CommentText:   "Fix button",
		PageURL:       "https://x.test/a",
		ScreenshotURL: "https://cdn.x.test/shot.png",
	})

	assert.ErrorIs(t, err, domain.ErrStorage)
	m.screenshots.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestCreateComment_ValidationBeforeStore(t *testing.T) {
	tests := []struct {
		name  string
		input CommentInput
	}{
		{"missing text", CommentInput{PageURL: "https://x.test/a"}},
		{"missing page", CommentInput{CommentText: "x"}},
		{"relative page", CommentInput{PageURL: "/about", CommentText: "x"}},
		{"bad status", CommentInput{PageURL: "https://x.test/a", CommentText: "x", Status: "closed"}},
		{"bad due date", CommentInput{PageURL: "https://x.test/a", CommentText: "x", DueDate: "14/03/2025"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMockedService(t)
			m.access.EXPECT().HasAccess(mock.Anything, admin).Return(true)

			_, err := m.service.CreateComment(context.Background(), admin, tt.input)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCreateComment_UnknownTaxonomy(t *testing.T) {
	m := newMockedService(t)
	m.access.EXPECT().HasAccess(mock.Anything, admin).Return(true)
	m.options.EXPECT().GetOption(mock.Anything, OptionPriorities, mock.Anything).Return(false, nil)

	_, err := m.service.CreateComment(context.Background(), admin, CommentInput{
		PageURL:     "https://x.test/a",
		CommentText: "x",
		Priority:    "blocker",
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "priority", verr.Field)
}

func TestUpdateComment_EmptyPatch(t *testing.T) {
	m := newMockedService(t)
	m.access.EXPECT().HasAccess(mock.Anything, admin).Return(true)

	_, err := m.service.UpdateComment(context.Background(), admin, 1, domain.CommentPatch{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateStatus_InvalidTarget(t *testing.T) {
	m := newMockedService(t)
	m.access.EXPECT().HasAccess(mock.Anything, admin).Return(true)
	m.repo.EXPECT().Get(mock.Anything, uint(1)).Return(&domain.Comment{ID: 1, Status: domain.StatusOpen}, nil)

	_, err := m.service.UpdateStatus(context.Background(), admin, 1, "archived")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	m := newMockedService(t)
	m.access.EXPECT().HasAccess(mock.Anything, admin).Return(true)
	m.repo.EXPECT().Get(mock.Anything, uint(9)).Return(nil, domain.NotFoundError("comment", 9))

	_, err := m.service.UpdateStatus(context.Background(), admin, 9, domain.StatusResolved)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddTimeEntry_FillsDefaults(t *testing.T) {
	m := newMockedService(t)
	m.access.EXPECT().HasAccess(mock.Anything, admin).Return(true)

	var written domain.Timesheet
	m.repo.EXPECT().MutateTimesheet(mock.Anything, uint(3), mock.Anything).
		RunAndReturn(func(_ context.Context, id uint, fn func(domain.Timesheet) (domain.Timesheet, error)) (*domain.Comment, error) {
			next, err := fn(domain.Timesheet{})
			if err != nil {
				return nil, err
			}
			written = next
			return &domain.Comment{ID: id, Timesheet: next}, nil
		})

	_, err := m.service.AddTimeEntry(context.Background(), admin, 3, domain.TimeEntry{Minutes: 45})
	require.NoError(t, err)

	require.Len(t, written, 1)
	assert.NotEmpty(t, written[0].ID)
	assert.Equal(t, domain.DefaultTimeEntryDescription, written[0].Description)
	assert.Equal(t, "2025-03-14", written[0].Date)
}

func TestAddTimeEntry_RejectsEmptyEntry(t *testing.T) {
	m := newMockedService(t)
	m.access.EXPECT().HasAccess(mock.Anything, admin).Return(true)

	_, err := m.service.AddTimeEntry(context.Background(), admin, 3, domain.TimeEntry{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRemoveTimeEntry_UnknownEntry(t *testing.T) {
	m := newMockedService(t)
	m.access.EXPECT().HasAccess(mock.Anything, admin).Return(true)
	m.repo.EXPECT().MutateTimesheet(mock.Anything, uint(3), mock.Anything).
		RunAndReturn(func(_ context.Context, _ uint, fn func(domain.Timesheet) (domain.Timesheet, error)) (*domain.Comment, error) {
			_, err := fn(domain.Timesheet{{ID: "keep", Hours: 1, Date: "2025-03-01"}})
			return nil, err
		})

	_, err := m.service.RemoveTimeEntry(context.Background(), admin, 3, "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUninstall_StopsOnStorageFailure(t *testing.T) {
	m := newMockedService(t)
	m.access.EXPECT().HasAccess(mock.Anything, admin).Return(true)
	m.options.EXPECT().DeleteOptions(mock.Anything).Return(nil)
	m.repo.EXPECT().DropSchema(mock.Anything).Return(errors.New("locked"))

	err := m.service.Uninstall(context.Background(), admin)

	assert.Error(t, err)
}
