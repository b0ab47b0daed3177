package service

import (
	"context"
	"errors"
	"time"

	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/util"
	"campus_lms_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// CompletionService manages the on-site completion log: the one place in the
// reporting area that writes.
type CompletionService struct {
	OnsiteRepo *repository.OnsiteCompletionRepository
	UserRepo   *repository.UserRepository
	CourseRepo *repository.CourseRepository
	ReportSvc  *ReportService
}

func NewCompletionService(
	onsiteRepo *repository.OnsiteCompletionRepository,
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	reportSvc *ReportService,
) *CompletionService {
	return &CompletionService{
		OnsiteRepo: onsiteRepo,
		UserRepo:   userRepo,
		CourseRepo: courseRepo,
		ReportSvc:  reportSvc,
	}
}

type LogCompletionsInput struct {
	UserID      uint      `json:"userId" binding:"required"`
	CourseIDs   []uint    `json:"courseIds" binding:"required,min=1"`
	CompletedAt time.Time `json:"completedAt"`
	// KnownLoggedCourseIDs is the client-side already-logged set; ids in it
	// are dropped before the server-side re-check even runs.
	KnownLoggedCourseIDs []uint `json:"knownLoggedCourseIds"`
}

// LogCompletions writes one log row per selected course. Duplicate prevention
// is two-phase: the caller-supplied known set first, then a server re-check in
// chunks of ten ids immediately before the write. The final insert is one
// transaction. Two admins racing can still both pass the re-check; the
// resulting duplicate row is a display nuisance only, since the classifier
// treats any existing row as sufficient.
func (s *CompletionService) LogCompletions(ctx context.Context, input LogCompletionsInput, createdByID uint) ([]model.OnsiteCompletion, error) {
	user, err := s.UserRepo.GetByID(input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	known := make(map[uint]bool, len(input.KnownLoggedCourseIDs))
	for _, id := range input.KnownLoggedCourseIDs {
		known[id] = true
	}

	candidates := make([]uint, 0, len(input.CourseIDs))
	for _, id := range input.CourseIDs {
		if !known[id] {
			candidates = append(candidates, id)
		}
	}

	existing, err := s.OnsiteRepo.ExistingCourseIDs(input.UserID, candidates)
	if err != nil {
		return nil, err
	}

	completedAt := input.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}

	ladderName := ""
	if user.Ladder != nil {
		ladderName = user.Ladder.Name
	}

	var rows []model.OnsiteCompletion
	for _, courseID := range candidates {
		if existing[courseID] {
			continue
		}

		course, err := s.CourseRepo.GetByID(courseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrCourseNotFound
			}
			return nil, err
		}

		rows = append(rows, model.OnsiteCompletion{
			UUIDBase:       model.UUIDBase{ID: model.GenerateUUID()},
			UserID:         user.ID,
			CourseID:       course.ID,
			UserName:       user.Name,
			UserCampus:     user.Campus,
			UserEmail:      user.Email,
			UserPhone:      user.Phone,
			UserLadderName: ladderName,
			CourseTitle:    course.Title,
			CompletedAt:    completedAt,
			CreatedByID:    createdByID,
		})
	}

	if len(rows) == 0 {
		return nil, util.ErrNothingToLog
	}

	if err := s.OnsiteRepo.CreateBatch(rows); err != nil {
		return nil, err
	}

	s.ReportSvc.InvalidateSummaries(ctx)
	logger.Log.Info("on-site completions logged",
		zap.Uint("userId", user.ID),
		zap.Int("count", len(rows)),
		zap.Uint("createdBy", createdByID))

	return rows, nil
}

// List returns one keyset page plus the filtered total. The page query and
// the count query run concurrently; either failing fails the call.
func (s *CompletionService) List(ctx context.Context, q repository.CompletionLogQuery) (*model.CompletionLogPage, error) {
	var (
		rows    []model.OnsiteCompletion
		hasMore bool
		total   int64
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rows, hasMore, err = s.OnsiteRepo.List(q)
		return
	})
	g.Go(func() (err error) {
		total, err = s.OnsiteRepo.Count(q)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	page := &model.CompletionLogPage{
		Rows:    rows,
		Total:   total,
		HasMore: hasMore,
	}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		t := last.CompletedAt
		page.NextAfterTime = &t
		page.NextAfterID = last.ID
	}
	return page, nil
}

// ExportRows returns every matching log row for the CSV export.
func (s *CompletionService) ExportRows(q repository.CompletionLogQuery) ([]model.OnsiteCompletion, error) {
	return s.OnsiteRepo.ListFiltered(q)
}

// BulkDelete hard-deletes the selected log rows atomically and reports how
// many went away.
func (s *CompletionService) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	deleted, err := s.OnsiteRepo.DeleteByIDs(ids)
	if err != nil {
		return 0, err
	}

	s.ReportSvc.InvalidateSummaries(ctx)
	logger.Log.Info("on-site completions deleted", zap.Int64("count", deleted))
	return deleted, nil
}
