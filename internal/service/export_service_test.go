package service

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"campus_lms_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCourseReportCSV(t *testing.T) {
	enrolled := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	completed := time.Date(2026, 2, 14, 17, 30, 0, 0, time.UTC)

	rows := []model.ReportRow{
		{
			UserName:       `Smith, "Bobby"`, // commas and quotes must survive
			UserCampus:     "North",
			CourseTitle:    "Foundations",
			EnrolledAt:     &enrolled,
			CompletedAt:    &completed,
			TotalProgress:  100,
			IsCompleted:    true,
			CompletionType: model.CompletionOnline,
		},
		{
			UserName:       "Ana",
			UserCampus:     "South",
			CourseTitle:    "Advanced",
			EnrolledAt:     &enrolled,
			TotalProgress:  40,
			CompletionType: model.CompletionOnline,
		},
	}

	payload, err := BuildCourseReportCSV(rows)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(payload))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, courseReportHeader, records[0])
	assert.Equal(t, `Smith, "Bobby"`, records[1][0])
	assert.Equal(t, "Completed", records[1][6])
	assert.Equal(t, "In Progress", records[2][6])
	assert.Equal(t, "", records[2][4], "no completion stamp renders empty")
	assert.Equal(t, "40", records[2][5])
}

func TestBuildSummaryCSVEndsWithUniqueTotal(t *testing.T) {
	summary := &model.SummaryReport{
		Groups: []model.GroupSummary{
			{Title: "Member", OnsiteCompletions: 2, OnlineCompletions: 5, FullyCompletedUsers: 7},
			{Title: "Worker", OnsiteCompletions: 1, OnlineCompletions: 3, FullyCompletedUsers: 4},
		},
		TotalUniqueUsers: 8,
	}

	payload, err := BuildSummaryCSV(summary)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(payload))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"Member", "2", "5", "7"}, records[1])
	assert.Equal(t, []string{"Total Unique Users", "", "", "8"}, records[3])
}

func TestBuildCompletionLogCSV(t *testing.T) {
	rows := []model.OnsiteCompletion{
		{
			UserName:       "Ana",
			UserCampus:     "North",
			UserEmail:      "ana@example.com",
			UserPhone:      "555-0101",
			UserLadderName: "Member",
			CourseTitle:    "Foundations",
			CompletedAt:    time.Date(2026, 2, 14, 17, 30, 0, 0, time.UTC),
		},
	}

	payload, err := BuildCompletionLogCSV(rows)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(payload))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, completionLogHeader, records[0])
	assert.Equal(t, "ana@example.com", records[1][2])
	assert.Equal(t, "2026-02-14 17:30:00", records[1][6])
}
