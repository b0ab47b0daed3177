package service

import (
	"context"
	"encoding/json"
	"time"

	"campus_lms_backend/internal/config"
	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/pkg/logger"
	"campus_lms_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	ladderSummaryCacheKey = "report:ladder_summary"
	pathSummaryCacheKey   = "report:path_summary"
)

// ReportService rebuilds every report from a fresh fetch on each call; there
// is no incremental refetch. The only reuse is the optional redis summary
// cache, invalidated whenever the on-site log changes.
type ReportService struct {
	UserRepo        *repository.UserRepository
	CourseRepo      *repository.CourseRepository
	CourseGroupRepo *repository.CourseGroupRepository
	LadderRepo      *repository.LadderRepository
	EnrollmentRepo  *repository.EnrollmentRepository
	ProgressRepo    *repository.VideoProgressRepository
	QuizRepo        *repository.QuizResultRepository
	OnsiteRepo      *repository.OnsiteCompletionRepository
	Redis           *redis.Client
	Config          *config.Config
}

func NewReportService(
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	courseGroupRepo *repository.CourseGroupRepository,
	ladderRepo *repository.LadderRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.VideoProgressRepository,
	quizRepo *repository.QuizResultRepository,
	onsiteRepo *repository.OnsiteCompletionRepository,
	rdb *redis.Client,
	cfg *config.Config,
) *ReportService {
	return &ReportService{
		UserRepo:        userRepo,
		CourseRepo:      courseRepo,
		CourseGroupRepo: courseGroupRepo,
		LadderRepo:      ladderRepo,
		EnrollmentRepo:  enrollmentRepo,
		ProgressRepo:    progressRepo,
		QuizRepo:        quizRepo,
		OnsiteRepo:      onsiteRepo,
		Redis:           rdb,
		Config:          cfg,
	}
}

// fetchDataset issues all report reads concurrently and waits for the whole
// batch. Any single failure fails the batch; there is no partial result.
func (s *ReportService) fetchDataset(ctx context.Context) (*reportDataset, error) {
	var data reportDataset

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		data.Users, err = s.UserRepo.ListAll()
		return
	})
	g.Go(func() (err error) {
		data.Courses, err = s.CourseRepo.ListPublished()
		return
	})
	g.Go(func() (err error) {
		data.Enrollments, err = s.EnrollmentRepo.ListAll()
		return
	})
	g.Go(func() (err error) {
		data.Progress, err = s.ProgressRepo.ListCompleted()
		return
	})
	g.Go(func() (err error) {
		data.QuizResults, err = s.QuizRepo.ListPassed()
		return
	})
	g.Go(func() (err error) {
		data.Onsite, err = s.OnsiteRepo.ListAll()
		return
	})
	g.Go(func() (err error) {
		data.Ladders, err = s.LadderRepo.ListOrdered()
		return
	})
	g.Go(func() (err error) {
		data.Groups, err = s.CourseGroupRepo.ListAll()
		return
	})

	if err := g.Wait(); err != nil {
		logger.Log.Error("report fetch failed", zap.Error(err))
		return nil, err
	}

	return &data, nil
}

// CourseReportRows returns the filtered flat rows without pagination, for
// the CSV export.
func (s *ReportService) CourseReportRows(ctx context.Context, filter model.ReportFilter, scope model.Scope) ([]model.ReportRow, error) {
	defer monitoring.ObserveReport("course", time.Now())

	data, err := s.fetchDataset(ctx)
	if err != nil {
		return nil, err
	}

	rows := classifyAll(data, time.Now())

	var groupMembers map[uint]bool
	if filter.CourseGroupID != 0 {
		groupMembers = make(map[uint]bool)
		for _, g := range data.Groups {
			if g.ID != filter.CourseGroupID {
				continue
			}
			for _, c := range g.Courses {
				groupMembers[c.ID] = true
			}
		}
	}

	return applyFilter(rows, filter, scope, groupMembers), nil
}

// CourseReport is the filtered, offset-paginated course report.
func (s *ReportService) CourseReport(ctx context.Context, filter model.ReportFilter, scope model.Scope, page, perPage int) (*model.ReportPage, error) {
	filtered, err := s.CourseReportRows(ctx, filter, scope)
	if err != nil {
		return nil, err
	}

	if perPage <= 0 {
		perPage = s.Config.Report.DefaultPageSize
	}
	if perPage > s.Config.Report.MaxPageSize {
		perPage = s.Config.Report.MaxPageSize
	}

	result := paginate(filtered, page, perPage)
	return &result, nil
}

// LadderSummary is the per-ladder completion summary with a unique-user grand
// total, cached in redis for the configured TTL.
func (s *ReportService) LadderSummary(ctx context.Context) (*model.SummaryReport, error) {
	return s.cachedSummary(ctx, ladderSummaryCacheKey, "ladder", aggregateLadders)
}

// PathSummary is the learning-path variant of the ladder summary.
func (s *ReportService) PathSummary(ctx context.Context) (*model.SummaryReport, error) {
	return s.cachedSummary(ctx, pathSummaryCacheKey, "path", aggregateGroups)
}

func (s *ReportService) cachedSummary(
	ctx context.Context,
	cacheKey, name string,
	aggregate func(*reportDataset, []model.ReportRow) model.SummaryReport,
) (*model.SummaryReport, error) {
	ttl := s.Config.Report.SummaryCacheTTL

	if s.Redis != nil && ttl > 0 {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached model.SummaryReport
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		} else if err != redis.Nil {
			// Cache trouble is not a report failure; recompute.
			logger.Log.Warn("summary cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	defer monitoring.ObserveReport(name, time.Now())

	data, err := s.fetchDataset(ctx)
	if err != nil {
		return nil, err
	}

	rows := classifyAll(data, time.Now())
	summary := aggregate(data, rows)

	if s.Redis != nil && ttl > 0 {
		if payload, err := json.Marshal(summary); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, ttl).Err(); err != nil {
				logger.Log.Warn("summary cache write failed", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}

	return &summary, nil
}

// InvalidateSummaries drops the cached summaries; called after on-site log
// writes and deletes.
func (s *ReportService) InvalidateSummaries(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, ladderSummaryCacheKey, pathSummaryCacheKey).Err(); err != nil {
		logger.Log.Warn("summary cache invalidation failed", zap.Error(err))
	}
}
