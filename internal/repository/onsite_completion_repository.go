package repository

import (
	"time"

	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/util"

	"gorm.io/gorm"
)

type OnsiteCompletionRepository struct {
	DB *gorm.DB
}

func NewOnsiteCompletionRepository(db *gorm.DB) *OnsiteCompletionRepository {
	return &OnsiteCompletionRepository{DB: db}
}

// CompletionLogQuery is the filter + cursor state for one page of the log.
// The cursor is the (completedAt, id) pair of the last row already seen;
// ordering is completed_at desc, id desc so the pair is a total order.
type CompletionLogQuery struct {
	UserID    uint
	CourseID  uint
	Campus    string
	From      *time.Time
	To        *time.Time
	AfterTime *time.Time
	AfterID   string
	Limit     int
}

func (r *OnsiteCompletionRepository) filtered(q CompletionLogQuery) *gorm.DB {
	db := r.DB.Model(&model.OnsiteCompletion{})
	if q.UserID != 0 {
		db = db.Where("user_id = ?", q.UserID)
	}
	if q.CourseID != 0 {
		db = db.Where("course_id = ?", q.CourseID)
	}
	if q.Campus != "" {
		db = db.Where("user_campus = ?", q.Campus)
	}
	if q.From != nil {
		db = db.Where("completed_at >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("completed_at <= ?", *q.To)
	}
	return db
}

// List fetches limit+1 rows past the cursor so the caller can detect a next
// page without a second query.
func (r *OnsiteCompletionRepository) List(q CompletionLogQuery) ([]model.OnsiteCompletion, bool, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	db := r.filtered(q)
	if q.AfterTime != nil {
		db = db.Where("(completed_at < ?) OR (completed_at = ? AND id < ?)", *q.AfterTime, *q.AfterTime, q.AfterID)
	}

	var rows []model.OnsiteCompletion
	err := db.Order("completed_at desc, id desc").Limit(limit + 1).Find(&rows).Error
	if err != nil {
		return nil, false, err
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	return rows, hasMore, nil
}

// Count is the parallel total query backing the displayed count; it ignores
// the cursor.
func (r *OnsiteCompletionRepository) Count(q CompletionLogQuery) (int64, error) {
	var total int64
	err := r.filtered(q).Count(&total).Error
	return total, err
}

// ExistingCourseIDs re-checks which of the given courses already have a log
// row for the user, in chunks of util.DuplicateCheckChunkSize ids per query.
func (r *OnsiteCompletionRepository) ExistingCourseIDs(userID uint, courseIDs []uint) (map[uint]bool, error) {
	existing := make(map[uint]bool)
	for _, chunk := range util.ChunkUints(courseIDs, util.DuplicateCheckChunkSize) {
		var ids []uint
		err := r.DB.Model(&model.OnsiteCompletion{}).
			Where("user_id = ? AND course_id IN ?", userID, chunk).
			Pluck("course_id", &ids).Error
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			existing[id] = true
		}
	}
	return existing, nil
}

// CreateBatch inserts all rows in one transaction.
func (r *OnsiteCompletionRepository) CreateBatch(rows []model.OnsiteCompletion) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
}

// DeleteByIDs hard-deletes the given rows atomically: either every id is
// removed or none are.
func (r *OnsiteCompletionRepository) DeleteByIDs(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var deleted int64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id IN ?", ids).Delete(&model.OnsiteCompletion{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}

// ListFiltered returns every row matching the filters, newest first, for the
// CSV export. The cursor is ignored.
func (r *OnsiteCompletionRepository) ListFiltered(q CompletionLogQuery) ([]model.OnsiteCompletion, error) {
	var rows []model.OnsiteCompletion
	err := r.filtered(q).Order("completed_at desc, id desc").Find(&rows).Error
	return rows, err
}

// ListAll returns the whole log newest first, the report fetcher's on-site
// query.
func (r *OnsiteCompletionRepository) ListAll() ([]model.OnsiteCompletion, error) {
	var rows []model.OnsiteCompletion
	err := r.DB.Order("completed_at desc").Find(&rows).Error
	return rows, err
}
