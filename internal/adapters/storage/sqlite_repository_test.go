package storage

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitenotes/sitenotes/internal/domain"
)

// stepClock returns a clock that advances one second per call
func stepClock() func() time.Time {
	var mu sync.Mutex
	current := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

func newTestRepository(t *testing.T, driver string) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(Options{
		Driver:      driver,
		Now:         stepClock(),
		Path:        filepath.Join(t.TempDir(), "notes.db"),
		TablePrefix: "wp_",
	})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newComment(text string) domain.Comment {
	return domain.Comment{
		CommentText: text,
		PageURL:     "https://x.test/a",
		UserID:      1,
		XPosition:   120,
		YPosition:   340,
	}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	repo := newTestRepository(t, DriverCGO)
	ctx := context.Background()

	created, err := repo.Create(ctx, newComment("Fix button"))

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.StatusOpen, created.Status)
	assert.Equal(t, domain.PriorityMedium, created.Priority)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Empty(t, created.Timesheet)

	stored, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, stored.CreatedAt.Equal(stored.UpdatedAt))
	assert.Equal(t, 120, stored.XPosition)
	assert.Equal(t, 340, stored.YPosition)
}

func TestCreate_Validation(t *testing.T) {
	repo := newTestRepository(t, DriverCGO)

	tests := []struct {
		name    string
		comment domain.Comment
	}{
		{"empty text", newComment("   ")},
		{"empty page", domain.Comment{CommentText: "x", UserID: 1}},
		{"bad status", func() domain.Comment { c := newComment("x"); c.Status = "closed"; return c }()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(context.Background(), tt.comment)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := newTestRepository(t, DriverCGO)

	_, err := repo.Get(context.Background(), 999)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_MergesSuppliedFieldsOnly(t *testing.T) {
	repo := newTestRepository(t, DriverCGO)
	ctx := context.Background()
	created, err := repo.Create(ctx, newComment("Fix button"))
	require.NoError(t, err)

	high := domain.PriorityHigh
	updated, err := repo.Update(ctx, created.ID, domain.CommentPatch{Priority: &high})
	require.NoError(t, err)

	assert.Equal(t, "high", updated.Priority)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	stored, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "high", stored.Priority)
	assert.Equal(t, "Fix button", stored.CommentText)
	assert.Equal(t, domain.StatusOpen, stored.Status)
}

func TestUpdate_AnyStatusTransition(t *testing.T) {
	repo := newTestRepository(t, DriverCGO)
	ctx := context.Background()
	created, err := repo.Create(ctx, newComment("Fix button"))
	require.NoError(t, err)

	sequence := []domain.Status{
		domain.StatusResolved, domain.StatusOpen, domain.StatusInProgress,
		domain.StatusOpen, domain.StatusResolved, domain.StatusInProgress,
	}
	for _, s := range sequence {
		status := s
		updated, err := repo.Update(ctx, created.ID, domain.CommentPatch{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, s, updated.Status)
	}
}

func TestUpdate_Rejects(t *testing.T) {
	repo := newTestRepository(t, DriverCGO)
	ctx := context.Background()
	created, err := repo.Create(ctx, newComment("Fix button"))
	require.NoError(t, err)

	bad := domain.Status("closed")
	_, err = repo.Update(ctx, created.ID, domain.CommentPatch{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)

	empty := "  "
	_, err = repo.Update(ctx, created.ID, domain.CommentPatch{CommentText: &empty})
	assert.ErrorIs(t, err, domain.ErrValidation)

	resolved := domain.StatusResolved
	_, err = repo.Update(ctx, created.ID+100, domain.CommentPatch{Status: &resolved})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOpen, stored.Status, "rejected update must not be written")
}

func TestDelete_CascadesAndSecondDeleteIsNotFound(t *testing.T) {
	repo := newTestRepository(t, DriverCGO)
	ctx := context.Background()
	created, err := repo.Create(ctx, newComment("Fix button"))
	require.NoError(t, err)
	_, err = repo.AddReply(ctx, created.ID, 2, "On it")
	require.NoError(t, err)
	_, err = repo.AddReply(ctx, created.ID, 1, "Thanks")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	replies, err := repo.ListReplies(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, replies)

	err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddReply(t *testing.T) {
	repo := newTestRepository(t, DriverCGO)
	ctx := context.Background()
	created, err := repo.Create(ctx, newComment("Fix button"))
	require.NoError(t, err)

	reply, err := repo.AddReply(ctx, created.ID, 2, "  Done  ")
	require.NoError(t, err)
	assert.Equal(t, "Done", reply.ReplyText)
	assert.Equal(t, created.ID, reply.CommentID)

	_, err = repo.AddReply(ctx, created.ID, 2, " ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = repo.AddReply(ctx, 4242, 2, "orphan")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ReplyCount)
	require.Len(t, stored.Replies, 1)
	assert.True(t, stored.UpdatedAt.After(stored.CreatedAt), "a reply touches the thread")
}

func TestList_FilterAndReplyCounts(t *testing.T) {
	repo := newTestRepository(t, DriverCGO)
	ctx := context.Background()

	a := newComment("Header spacing")
	a.Category = "Design"
	a.AssignedTo = 7
	createdA, err := repo.Create(ctx, a)
	require.NoError(t, err)

	b := newComment("Typo in footer")
	b.PageURL = "https://x.test/b"
	b.UserID = 7
	createdB, err := repo.Create(ctx, b)
	require.NoError(t, err)

	c := newComment("Logo blurry")
	c.Status = domain.StatusResolved
	_, err = repo.Create(ctx, c)
	require.NoError(t, err)

	_, err = repo.AddReply(ctx, createdA.ID, 1, "ack")
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter domain.CommentFilter
		want   int
	}{
		{"all", domain.CommentFilter{}, 3},
		{"status", domain.CommentFilter{Status: domain.StatusResolved}, 1},
		{"category ignores case", domain.CommentFilter{Category: "design"}, 1},
		{"assigned", domain.CommentFilter{AssignedTo: 7}, 1},
		{"author", domain.CommentFilter{UserID: 7}, 1},
		{"involves", domain.CommentFilter{Involves: 7}, 2},
		{"page", domain.CommentFilter{PageURL: "https://x.test/b"}, 1},
		{"search", domain.CommentFilter{Search: "footer"}, 1},
		{"combined", domain.CommentFilter{Status: domain.StatusOpen, PageURL: "https://x.test/a"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filter, domain.CommentSort{})
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}

	all, err := repo.List(ctx, domain.CommentFilter{}, domain.CommentSort{})
	require.NoError(t, err)
	counts := map[uint]int{}
	for _, c := range all {
		counts[c.ID] = c.ReplyCount
	}
	assert.Equal(t, 1, counts[createdA.ID])
	assert.Equal(t, 0, counts[createdB.ID])
}

func TestList_SearchMatchesWildcardsLiterally(t *testing.T) {
	repo := newTestRepository(t, DriverCGO)
	ctx := context.Background()

	for _, text := range []string{"Coverage at 100% now", "Rename snake_case ids", `Fix C:\temp path`, "Plain text"} {
		_, err := repo.Create(ctx, newComment(text))
		require.NoError(t, err)
	}

	tests := []struct {
		search string
		want   int
	}{
		{"%", 1},
		{"_", 1},
		{`\`, 1},
		{"100%", 1},
		{"e_c", 1},
		{"text", 1},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got, err := repo.List(ctx, domain.CommentFilter{Search: tt.search}, domain.CommentSort{})
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestList_Sorting(t *testing.T) {
	repo := newTestRepository(t, DriverCGO)
	ctx := context.Background()

	var ids []uint
	for _, p := range []string{"low", "high", "medium", "blocker"} {
		c := newComment("priority " + p)
		c.Priority = p
		created, err := repo.Create(ctx, c)
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	byPriority, err := repo.List(ctx, domain.CommentFilter{}, domain.CommentSort{Field: domain.SortPriority})
	require.NoError(t, err)
	var priorities []string
	for _, c := range byPriority {
		priorities = append(priorities, c.Priority)
	}
	assert.Equal(t, []string{"high", "medium", "low", "blocker"}, priorities)

	lowestFirst, err := repo.List(ctx, domain.CommentFilter{}, domain.CommentSort{Field: domain.SortPriority, Ascending: true})
	require.NoError(t, err)
	priorities = priorities[:0]
	for _, c := range lowestFirst {
		priorities = append(priorities, c.Priority)
	}
	assert.Equal(t, []string{"blocker", "low", "medium", "high"}, priorities)

	newest, err := repo.List(ctx, domain.CommentFilter{}, domain.CommentSort{Field: domain.SortCreatedAt})
	require.NoError(t, err)
	assert.Equal(t, ids[3], newest[0].ID)

	oldest, err := repo.List(ctx, domain.CommentFilter{}, domain.CommentSort{Field: domain.SortCreatedAt, Ascending: true})
	require.NoError(t, err)
	assert.Equal(t, ids[0], oldest[0].ID)

	// Touch the oldest comment so it becomes the most recently updated
	title := "touched"
	_, err = repo.Update(ctx, ids[0], domain.CommentPatch{CommentTitle: &title})
	require.NoError(t, err)
	byUpdated, err := repo.List(ctx, domain.CommentFilter{}, domain.CommentSort{Field: domain.SortUpdatedAt})
	require.NoError(t, err)
	assert.Equal(t, ids[0], byUpdated[0].ID)
}

func TestMutateTimesheet(t *testing.T) {
	repo := newTestRepository(t, DriverCGO)
	ctx := context.Background()
	created, err := repo.Create(ctx, newComment("Fix button"))
	require.NoError(t, err)

	entry := domain.TimeEntry{ID: "e1", Hours: 1, Minutes: 15, Date: "2025-03-01", Description: "work"}
	updated, err := repo.MutateTimesheet(ctx, created.ID, func(ts domain.Timesheet) (domain.Timesheet, error) {
		return ts.With(entry), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 75*time.Minute, updated.Timesheet.Total())

	stored, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, stored.Timesheet, 1)
	assert.Equal(t, entry, stored.Timesheet[0])

	invalid := domain.TimeEntry{ID: "e2", Hours: 30, Date: "2025-03-01"}
	_, err = repo.MutateTimesheet(ctx, created.ID, func(ts domain.Timesheet) (domain.Timesheet, error) {
		return ts.With(invalid), nil
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = repo.MutateTimesheet(ctx, 777, func(ts domain.Timesheet) (domain.Timesheet, error) {
		return ts, nil
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOptions(t *testing.T) {
	repo := newTestRepository(t, DriverCGO)
	ctx := context.Background()

	var categories []domain.Category
	found, err := repo.GetOption(ctx, "categories", &categories)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.SetOption(ctx, "categories", []domain.Category{{ID: "design", Name: "Design"}}))
	require.NoError(t, repo.SetOption(ctx, "categories", []domain.Category{{ID: "copy", Name: "Copy"}}))

	found, err = repo.GetOption(ctx, "categories", &categories)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []domain.Category{{ID: "copy", Name: "Copy"}}, categories)

	require.NoError(t, repo.DeleteOptions(ctx))
	categories = nil
	found, err = repo.GetOption(ctx, "categories", &categories)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTablePrefixesIsolateSites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multisite.db")
	ctx := context.Background()

	site1, err := NewSQLiteRepository(Options{Path: path, TablePrefix: "wp_"})
	require.NoError(t, err)
	defer site1.Close()
	site2, err := NewSQLiteRepository(Options{Path: path, TablePrefix: "wp_2_"})
	require.NoError(t, err)
	defer site2.Close()

	_, err = site1.Create(ctx, newComment("only on site one"))
	require.NoError(t, err)

	got, err := site2.List(ctx, domain.CommentFilter{}, domain.CommentSort{})
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, site2.DropSchema(ctx))
	got, err = site1.List(ctx, domain.CommentFilter{}, domain.CommentSort{})
	require.NoError(t, err)
	assert.Len(t, got, 1, "dropping one site's tables must not touch another")
}

func TestPureGoDriver(t *testing.T) {
	repo := newTestRepository(t, DriverPureGo)
	ctx := context.Background()

	created, err := repo.Create(ctx, newComment("Fix button"))
	require.NoError(t, err)
	_, err = repo.AddReply(ctx, created.ID, 1, "Done")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	replies, err := repo.ListReplies(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, replies)
}

func TestNewSQLiteRepository_UnknownDriver(t *testing.T) {
	_, err := NewSQLiteRepository(Options{Driver: "postgres", Path: filepath.Join(t.TempDir(), "x.db")})
	assert.Error(t, err)
}
