package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	_ "modernc.org/sqlite" // registers the pure-Go "sqlite" driver

	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/logging"
	"github.com/sitenotes/sitenotes/internal/ports"
)

// Driver names accepted by Options.Driver
const (
	DriverCGO    = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPureGo = "sqlite"  // modernc.org/sqlite
)

const priorityRankSQL = "CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 WHEN 'low' THEN 2 ELSE 3 END"

// Options configures NewSQLiteRepository
type Options struct {
	Driver      string
	Now         func() time.Time
	Path        string
	TablePrefix string
}

// SQLiteRepository implements ports.CommentRepository and ports.OptionsStore using GORM
type SQLiteRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// Verify interface compliance at compile time
var (
	_ ports.CommentRepository = (*SQLiteRepository)(nil)
	_ ports.OptionsStore      = (*SQLiteRepository)(nil)
)

// gormLogger wraps the sitenotes logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("SITENOTES_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// buildDSN puts the pragmas in the connection string so every pooled
// connection enforces foreign keys and waits on locks.
func buildDSN(driver, path string) string {
	if driver == DriverPureGo {
		return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	}
	return path + "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL"
}

// NewSQLiteRepository opens (and migrates) the site notes database
func NewSQLiteRepository(opts Options) (*SQLiteRepository, error) {
	dbPath := opts.Path
	// Expand home directory if present
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	driver := opts.Driver
	if driver == "" {
		driver = DriverCGO
	}
	if driver != DriverCGO && driver != DriverPureGo {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	db, err := gorm.Open(sqlite.New(sqlite.Config{
		DriverName: driver,
		DSN:        buildDSN(driver, dbPath),
	}), &gorm.Config{
		Logger: newGormLogger(),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
			TablePrefix:   opts.TablePrefix,
		},
		NowFunc:     now,
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&CommentModel{}, &ReplyModel{}, &OptionModel{}); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	logging.Logger.Debug("Database opened", "path", dbPath, "driver", driver, "prefix", opts.TablePrefix)
	return &SQLiteRepository{db: db, now: now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Create implements CommentWriter.Create
func (r *SQLiteRepository) Create(ctx context.Context, comment domain.Comment) (*domain.Comment, error) {
	comment.ID = 0
	comment.ApplyDefaults()
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	now := r.now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	model, err := domainToCommentModel(comment)
	if err != nil {
		return nil, err
	}

	err = withRetry(func() error {
		model.ID = 0
		return r.db.WithContext(ctx).Create(&model).Error
	}, 3)
	if err != nil {
		return nil, storageError("failed to create comment", err)
	}

	comment.ID = model.ID
	comment.Replies = nil
	comment.ReplyCount = 0
	return &comment, nil
}

// Get implements CommentReader.Get
func (r *SQLiteRepository) Get(ctx context.Context, id uint) (*domain.Comment, error) {
	var model CommentModel
	var replies []ReplyModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&model, id).Error; err != nil {
				return err
			}
			return tx.Where("comment_id = ?", id).Order("created_at ASC").Order("id ASC").Find(&replies).Error
		})
	}, 3)
	if err != nil {
		return nil, classify(err, "comment", id)
	}

	comment, err := commentModelToDomain(model)
	if err != nil {
		return nil, storageError("failed to read comment", err)
	}
	comment.Replies = make([]domain.Reply, len(replies))
	for i, rm := range replies {
		comment.Replies[i] = replyModelToDomain(rm)
	}
	comment.ReplyCount = len(replies)
	return &comment, nil
}

// List implements CommentReader.List
func (r *SQLiteRepository) List(ctx context.Context, filter domain.CommentFilter, sort domain.CommentSort) ([]domain.Comment, error) {
	var models []CommentModel
	counts := make(map[uint]int)

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			query := applySort(applyFilter(tx.Model(&CommentModel{}), filter), sort)
			if err := query.Find(&models).Error; err != nil {
				return err
			}
			if len(models) == 0 {
				return nil
			}

			ids := make([]uint, len(models))
			for i, m := range models {
				ids[i] = m.ID
			}
			var rows []struct {
				CommentID uint
				Count     int
			}
			if err := tx.Model(&ReplyModel{}).
				Select("comment_id, COUNT(*) AS count").
				Where("comment_id IN ?", ids).
				Group("comment_id").
				Scan(&rows).Error; err != nil {
				return err
			}
			for _, row := range rows {
				counts[row.CommentID] = row.Count
			}
			return nil
		})
	}, 3)
	if err != nil {
		return nil, storageError("failed to list comments", err)
	}

	result := make([]domain.Comment, 0, len(models))
	for _, m := range models {
		c, err := commentModelToDomain(m)
		if err != nil {
			return nil, storageError("failed to read comment", err)
		}
		c.ReplyCount = counts[m.ID]
		result = append(result, c)
	}
	return result, nil
}

// likeEscaper makes LIKE wildcards in a search term match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func applyFilter(q *gorm.DB, f domain.CommentFilter) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.AssignedTo != 0 {
		q = q.Where("assigned_to = ?", f.AssignedTo)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Involves != 0 {
		q = q.Where("(assigned_to = ? OR user_id = ?)", f.Involves, f.Involves)
	}
	if f.Category != "" {
		q = q.Where("LOWER(category) = LOWER(?)", strings.TrimSpace(f.Category))
	}
	if f.PageURL != "" {
		q = q.Where("page_url = ?", f.PageURL)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		like := "%" + likeEscaper.Replace(search) + "%"
		q = q.Where(`(comment_text LIKE ? ESCAPE '\' OR comment_title LIKE ? ESCAPE '\')`, like, like)
	}
	return q
}

func applySort(q *gorm.DB, s domain.CommentSort) *gorm.DB {
	dir := "DESC"
	if s.Ascending {
		dir = "ASC"
	}

	switch s.Field {
	case domain.SortPriority:
		rankDir := "ASC"
		if s.Ascending {
			rankDir = "DESC"
		}
		return q.Order(priorityRankSQL + " " + rankDir).
			Order("priority " + rankDir).
			Order("created_at DESC").
			Order("id DESC")
	case domain.SortUpdatedAt:
		return q.Order("updated_at " + dir).Order("id " + dir)
	default:
		return q.Order("created_at " + dir).Order("id " + dir)
	}
}

// Update implements CommentWriter.Update
func (r *SQLiteRepository) Update(ctx context.Context, id uint, patch domain.CommentPatch) (*domain.Comment, error) {
	var result domain.Comment

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var model CommentModel
			if err := tx.First(&model, id).Error; err != nil {
				return err
			}
			merged, err := commentModelToDomain(model)
			if err != nil {
				return err
			}

			patch.Apply(&merged)
			if err := merged.Validate(); err != nil {
				return err
			}

			cols, err := patchToColumns(patch, merged)
			if err != nil {
				return err
			}
			merged.UpdatedAt = r.now()
			cols["updated_at"] = merged.UpdatedAt

			if err := tx.Model(&CommentModel{}).Where("id = ?", id).Updates(cols).Error; err != nil {
				return err
			}

			var replyCount int64
			if err := tx.Model(&ReplyModel{}).Where("comment_id = ?", id).Count(&replyCount).Error; err != nil {
				return err
			}
			merged.ReplyCount = int(replyCount)
			result = merged
			return nil
		})
	}, 3)
	if err != nil {
		return nil, classify(err, "comment", id)
	}
	return &result, nil
}

// Delete implements CommentWriter.Delete
func (r *SQLiteRepository) Delete(ctx context.Context, id uint) error {
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("comment_id = ?", id).Delete(&ReplyModel{}).Error; err != nil {
				return err
			}
			result := tx.Where("id = ?", id).Delete(&CommentModel{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
	}, 3)
	return classify(err, "comment", id)
}

// AddReply implements ReplyWriter.AddReply
func (r *SQLiteRepository) AddReply(ctx context.Context, commentID, userID uint, text string) (*domain.Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("reply_text", "is required")
	}
	if userID == 0 {
		return nil, domain.NewValidationError("user_id", "is required")
	}

	var model ReplyModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var parent CommentModel
			if err := tx.Select("id").First(&parent, commentID).Error; err != nil {
				return err
			}

			now := r.now()
			model = ReplyModel{
				CommentID: commentID,
				CreatedAt: now,
				ReplyText: text,
				UserID:    userID,
			}
			if err := tx.Create(&model).Error; err != nil {
				return err
			}
			return tx.Model(&CommentModel{}).Where("id = ?", commentID).Update("updated_at", now).Error
		})
	}, 3)
	if err != nil {
		return nil, classify(err, "comment", commentID)
	}

	reply := replyModelToDomain(model)
	return &reply, nil
}

// ListReplies implements CommentReader.ListReplies
func (r *SQLiteRepository) ListReplies(ctx context.Context, commentID uint) ([]domain.Reply, error) {
	var models []ReplyModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("comment_id = ?", commentID).
			Order("created_at ASC").
			Order("id ASC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, storageError("failed to list replies", err)
	}

	replies := make([]domain.Reply, len(models))
	for i, m := range models {
		replies[i] = replyModelToDomain(m)
	}
	return replies, nil
}

// MutateTimesheet implements TimesheetMutator.MutateTimesheet
func (r *SQLiteRepository) MutateTimesheet(
	ctx context.Context,
	id uint,
	fn func(domain.Timesheet) (domain.Timesheet, error),
) (*domain.Comment, error) {
	var result domain.Comment

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var model CommentModel
			if err := tx.First(&model, id).Error; err != nil {
				return err
			}
			comment, err := commentModelToDomain(model)
			if err != nil {
				return err
			}

			next, err := fn(comment.Timesheet)
			if err != nil {
				return err
			}
			patch := domain.CommentPatch{Timesheet: &next}
			patch.Apply(&comment)
			if err := comment.Timesheet.Validate(); err != nil {
				return err
			}

			cols, err := patchToColumns(patch, comment)
			if err != nil {
				return err
			}
			comment.UpdatedAt = r.now()
			cols["updated_at"] = comment.UpdatedAt
			if err := tx.Model(&CommentModel{}).Where("id = ?", id).Updates(cols).Error; err != nil {
				return err
			}
			result = comment
			return nil
		})
	}, 3)
	if err != nil {
		return nil, classify(err, "comment", id)
	}
	return &result, nil
}

// DropSchema removes every site notes table
func (r *SQLiteRepository) DropSchema(ctx context.Context) error {
	err := r.db.WithContext(ctx).Migrator().DropTable(&ReplyModel{}, &CommentModel{}, &OptionModel{})
	if err != nil {
		return storageError("failed to drop tables", err)
	}
	logging.Logger.Info("Dropped site notes tables")
	return nil
}

// classify maps GORM and driver errors onto the domain error kinds
func classify(err error, entity string, id uint) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFoundError(entity, id)
	}
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrForbidden) {
		return err
	}
	return storageError(fmt.Sprintf("%s %d", entity, id), err)
}

func storageError(msg string, err error) error {
	if errors.Is(err, domain.ErrStorage) {
		return err
	}
	logging.Logger.Error("Storage failure", "operation", msg, "error", err)
	return fmt.Errorf("%s: %w: %w", msg, domain.ErrStorage, err)
}

// isBusy reports SQLITE_BUSY / SQLITE_LOCKED for either driver
func isBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		primary := coded.Code() & 0xff
		return primary == 5 || primary == 6
	}
	return false
}

func withRetry(fn func() error, maxRetries int) error {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		if isBusy(err) {
			lastErr = err
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries: %w", maxRetries, lastErr)
}
