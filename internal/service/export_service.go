package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/util"
	"campus_lms_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExportService turns report data into CSV and archives a copy to storage so
// earlier exports stay downloadable.
type ExportService struct {
	ArchiveRepo *repository.ExportArchiveRepository
	Storage     StorageProvider
}

func NewExportService(archiveRepo *repository.ExportArchiveRepository, storage StorageProvider) *ExportService {
	return &ExportService{ArchiveRepo: archiveRepo, Storage: storage}
}

var courseReportHeader = []string{
	"User", "Campus", "Course", "Enrolled At", "Completed At", "Progress (%)", "Status", "Type",
}

// BuildCourseReportCSV renders the flat report rows with the fixed header.
func BuildCourseReportCSV(rows []model.ReportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(courseReportHeader); err != nil {
		return nil, err
	}

	for _, r := range rows {
		status := "In Progress"
		if r.IsCompleted {
			status = "Completed"
		}
		record := []string{
			r.UserName,
			r.UserCampus,
			r.CourseTitle,
			formatTimePtr(r.EnrolledAt),
			formatTimePtr(r.CompletedAt),
			strconv.Itoa(r.TotalProgress),
			status,
			string(r.CompletionType),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

var summaryHeader = []string{
	"Title", "On-site Completions", "Online Completions", "Fully Completed Users",
}

// BuildSummaryCSV renders a ladder or learning-path summary, ending with the
// unique-user grand total row.
func BuildSummaryCSV(summary *model.SummaryReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(summaryHeader); err != nil {
		return nil, err
	}

	for _, g := range summary.Groups {
		record := []string{
			g.Title,
			strconv.Itoa(g.OnsiteCompletions),
			strconv.Itoa(g.OnlineCompletions),
			strconv.Itoa(g.FullyCompletedUsers),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	if err := w.Write([]string{"Total Unique Users", "", "", strconv.Itoa(summary.TotalUniqueUsers)}); err != nil {
		return nil, err
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

var completionLogHeader = []string{
	"User", "Campus", "Email", "Phone", "Ladder", "Course", "Completed At",
}

// BuildCompletionLogCSV renders on-site log rows from their denormalized
// fields.
func BuildCompletionLogCSV(rows []model.OnsiteCompletion) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(completionLogHeader); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			r.UserName,
			r.UserCampus,
			r.UserEmail,
			r.UserPhone,
			r.UserLadderName,
			r.CourseTitle,
			r.CompletedAt.Format(util.TimeFormat),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(util.TimeFormat)
}

// Archive stores the CSV and records it. Archival failure is logged but does
// not fail the export; the caller still streams the CSV.
func (s *ExportService) Archive(ctx context.Context, report string, payload []byte, rowCount int, requestedByID uint) *model.ExportArchive {
	key := fmt.Sprintf("exports/%s-%s.csv", report, time.Now().Format("20060102-150405"))

	if _, err := s.Storage.Upload(ctx, key, bytes.NewReader(payload), int64(len(payload)), "text/csv"); err != nil {
		logger.Log.Error("export archive upload failed", zap.String("report", report), zap.Error(err))
		return nil
	}

	archive := &model.ExportArchive{
		Report:        report,
		ObjectKey:     key,
		RowCount:      rowCount,
		RequestedByID: requestedByID,
	}
	if err := s.ArchiveRepo.Create(archive); err != nil {
		logger.Log.Error("export archive record failed", zap.String("report", report), zap.Error(err))
		return nil
	}

	return archive
}

func (s *ExportService) ListArchives(limit int) ([]model.ExportArchive, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.ArchiveRepo.List(limit)
}

// OpenArchive streams a previously archived export.
func (s *ExportService) OpenArchive(ctx context.Context, id uint) (*model.ExportArchive, io.ReadCloser, error) {
	archive, err := s.ArchiveRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrArchiveNotFound
		}
		return nil, nil, err
	}

	reader, err := s.Storage.Download(ctx, archive.ObjectKey)
	if err != nil {
		return nil, nil, err
	}
	return archive, reader, nil
}
