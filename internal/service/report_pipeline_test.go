package service

import (
	"testing"
	"time"

	"campus_lms_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func testUser(id uint, name, campus, language string) model.User {
	return model.User{
		BaseModel: model.BaseModel{ID: id},
		Name:      name,
		Campus:    campus,
		Language:  language,
	}
}

func testCourse(id uint, title, language string, videoCount int, quizKeys ...string) model.Course {
	c := model.Course{
		BaseModel: model.BaseModel{ID: id},
		Title:     title,
		Language:  language,
		Status:    model.CoursePublished,
	}
	for i := 0; i < videoCount; i++ {
		c.Videos = append(c.Videos, model.CourseVideo{
			BaseModel: model.BaseModel{ID: uint(i + 1)},
			CourseID:  id,
		})
	}
	for _, key := range quizKeys {
		c.Quizzes = append(c.Quizzes, model.CourseQuiz{CourseID: id, QuizKey: key})
	}
	return c
}

func testEnrollment(id, userID, courseID uint, enrolledAt time.Time) model.Enrollment {
	return model.Enrollment{
		BaseModel:  model.BaseModel{ID: id},
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: enrolledAt,
	}
}

func TestClassifyZeroContentCourse(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	user := testUser(1, "Ana", "North", "en")
	course := testCourse(7, "Orientation", "en", 0)
	enrollment := testEnrollment(3, 1, 7, now.Add(-time.Hour))

	row := classifyEnrollment(enrollment, user, course, 0, nil, now)

	assert.True(t, row.IsCompleted, "a course with no required content completes on enrollment")
	assert.Equal(t, 100, row.TotalProgress)
	assert.Equal(t, model.CompletionOnline, row.CompletionType)
	if assert.NotNil(t, row.CompletedAt) {
		assert.Equal(t, now, *row.CompletedAt)
	}
}

func TestClassifyEnrollmentProgressRounding(t *testing.T) {
	now := time.Now()
	user := testUser(1, "Ana", "North", "en")
	course := testCourse(2, "Foundations", "en", 3)
	enrollment := testEnrollment(1, 1, 2, now)

	cases := []struct {
		completed int
		want      int
	}{
		{0, 0},
		{1, 33},
		{2, 67},
		{3, 100},
	}
	for _, tc := range cases {
		row := classifyEnrollment(enrollment, user, course, tc.completed, nil, now)
		assert.Equal(t, tc.want, row.TotalProgress, "completed=%d", tc.completed)
	}
}

func TestClassifyEnrollmentQuizGatesCompletion(t *testing.T) {
	now := time.Now()
	user := testUser(1, "Ana", "North", "en")
	course := testCourse(2, "Foundations", "en", 2, "final")
	enrollment := testEnrollment(1, 1, 2, now.Add(-48*time.Hour))

	// All videos watched but the required quiz not yet passed: the progress
	// bar reads 100 while the status stays in progress.
	row := classifyEnrollment(enrollment, user, course, 2, nil, now)
	assert.Equal(t, 100, row.TotalProgress)
	assert.False(t, row.IsCompleted)
	assert.Nil(t, row.CompletedAt)

	passed := map[string]struct{}{"final": {}}
	row = classifyEnrollment(enrollment, user, course, 2, passed, now)
	assert.True(t, row.IsCompleted)
	assert.NotNil(t, row.CompletedAt)
}

func TestClassifyEnrollmentKeepsStoredCompletionStamp(t *testing.T) {
	now := time.Now()
	stamp := now.Add(-72 * time.Hour)
	user := testUser(1, "Ana", "North", "en")
	course := testCourse(2, "Foundations", "en", 1)
	enrollment := testEnrollment(1, 1, 2, now.Add(-96*time.Hour))
	enrollment.CompletedAt = &stamp

	row := classifyEnrollment(enrollment, user, course, 1, nil, now)
	assert.True(t, row.IsCompleted)
	assert.Equal(t, stamp, *row.CompletedAt)
}

func TestClassifyOnsiteFallsBackToDenormalizedFields(t *testing.T) {
	completedAt := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	row := classifyOnsite(model.OnsiteCompletion{
		UUIDBase:    model.UUIDBase{ID: "abc-123"},
		UserID:      99,
		CourseID:    42,
		UserName:    "Departed User",
		UserCampus:  "East",
		CourseTitle: "Retired Course",
		CompletedAt: completedAt,
	}, map[uint]model.User{}, map[uint]model.Course{})

	assert.Equal(t, "onsite-abc-123", row.ID)
	assert.Equal(t, "Departed User", row.UserName)
	assert.Equal(t, "East", row.UserCampus)
	assert.Equal(t, "Retired Course", row.CourseTitle)
	assert.Equal(t, 100, row.TotalProgress)
	assert.True(t, row.IsCompleted)
	assert.Equal(t, model.CompletionOnsite, row.CompletionType)
}

func TestClassifyOnsitePrefersLiveUserAndCourse(t *testing.T) {
	row := classifyOnsite(model.OnsiteCompletion{
		UUIDBase:    model.UUIDBase{ID: "abc-123"},
		UserID:      1,
		CourseID:    2,
		UserName:    "Old Name",
		CourseTitle: "Old Title",
		CompletedAt: time.Now(),
	},
		map[uint]model.User{1: testUser(1, "New Name", "North", "en")},
		map[uint]model.Course{2: testCourse(2, "New Title", "en", 0)},
	)

	assert.Equal(t, "New Name", row.UserName)
	assert.Equal(t, "New Title", row.CourseTitle)
}

func TestClassifyAllSkipsDanglingEnrollmentsButNotOnsite(t *testing.T) {
	now := time.Now()
	data := &reportDataset{
		Users:   []model.User{testUser(1, "Ana", "North", "en")},
		Courses: []model.Course{testCourse(2, "Foundations", "en", 0)},
		Enrollments: []model.Enrollment{
			testEnrollment(1, 1, 2, now),
			testEnrollment(2, 50, 2, now), // unknown user
			testEnrollment(3, 1, 60, now), // unknown course
		},
		Onsite: []model.OnsiteCompletion{
			{UUIDBase: model.UUIDBase{ID: "x"}, UserID: 50, CourseID: 60, UserName: "Gone", CourseTitle: "Gone Too", CompletedAt: now},
		},
	}

	rows := classifyAll(data, now)
	assert.Len(t, rows, 2)
}

func TestBuildCompletionChannelsOnlineWins(t *testing.T) {
	rows := []model.ReportRow{
		{UserID: 1, CourseID: 2, IsCompleted: true, CompletionType: model.CompletionOnsite},
		{UserID: 1, CourseID: 2, IsCompleted: true, CompletionType: model.CompletionOnline},
		{UserID: 1, CourseID: 3, IsCompleted: true, CompletionType: model.CompletionOnsite},
		{UserID: 1, CourseID: 4, IsCompleted: false, CompletionType: model.CompletionOnline},
	}

	channels := buildCompletionChannels(rows)

	assert.Equal(t, model.CompletionOnline, channels[model.UserCourse{UserID: 1, CourseID: 2}])
	assert.Equal(t, model.CompletionOnsite, channels[model.UserCourse{UserID: 1, CourseID: 3}])
	_, ok := channels[model.UserCourse{UserID: 1, CourseID: 4}]
	assert.False(t, ok, "incomplete rows contribute no channel")
}

func TestSummarizeGroupLanguageMatching(t *testing.T) {
	courses := []model.Course{
		testCourse(1, "Basics EN", "en", 0),
		testCourse(2, "Basics ES", "es", 0),
	}
	users := []model.User{
		testUser(1, "Ana", "North", "en"),
		testUser(2, "Luis", "North", "es"),
		testUser(3, "Mia", "North", "fr"), // no matching course at all
	}
	channels := map[model.UserCourse]model.CompletionType{
		{UserID: 1, CourseID: 1}: model.CompletionOnline,
		{UserID: 2, CourseID: 2}: model.CompletionOnsite,
	}

	summary, completed := summarizeGroup("Member", courses, users, channels)

	assert.Equal(t, 2, summary.FullyCompletedUsers)
	assert.Equal(t, 1, summary.OnlineCompletions)
	assert.Equal(t, 1, summary.OnsiteCompletions)
	assert.NotContains(t, completed, uint(3), "users with zero matching-language courses are excluded")
}

func TestSummarizeGroupMixedChannelsCountAsOnline(t *testing.T) {
	courses := []model.Course{
		testCourse(1, "A", "en", 0),
		testCourse(2, "B", "en", 0),
	}
	users := []model.User{testUser(1, "Ana", "North", "en")}
	channels := map[model.UserCourse]model.CompletionType{
		{UserID: 1, CourseID: 1}: model.CompletionOnsite,
		{UserID: 1, CourseID: 2}: model.CompletionOnline,
	}

	summary, _ := summarizeGroup("Member", courses, users, channels)

	assert.Equal(t, 1, summary.OnlineCompletions)
	assert.Equal(t, 0, summary.OnsiteCompletions)
}

func TestSummarizeGroupPartialCompletionExcluded(t *testing.T) {
	courses := []model.Course{
		testCourse(1, "A", "en", 0),
		testCourse(2, "B", "en", 0),
	}
	users := []model.User{testUser(1, "Ana", "North", "en")}
	channels := map[model.UserCourse]model.CompletionType{
		{UserID: 1, CourseID: 1}: model.CompletionOnline,
	}

	summary, completed := summarizeGroup("Member", courses, users, channels)

	assert.Equal(t, 0, summary.FullyCompletedUsers)
	assert.Empty(t, completed)
}

func TestAggregateLaddersUniqueGrandTotal(t *testing.T) {
	ladders := []model.Ladder{
		{BaseModel: model.BaseModel{ID: 1}, Name: "Member", Order: 1},
		{BaseModel: model.BaseModel{ID: 2}, Name: "Worker", Order: 2},
		{BaseModel: model.BaseModel{ID: 3}, Name: "Leader", Order: 3},
	}
	courses := make([]model.Course, 0, 3)
	for i, l := range ladders {
		c := testCourse(uint(10+i), l.Name+" Course", "en", 0)
		c.Ladders = []model.Ladder{l}
		courses = append(courses, c)
	}

	now := time.Now()
	user := testUser(1, "Ana", "North", "en")
	data := &reportDataset{
		Users:   []model.User{user},
		Courses: courses,
		Ladders: ladders,
	}
	var rows []model.ReportRow
	for i := range courses {
		e := testEnrollment(uint(i+1), 1, courses[i].ID, now)
		rows = append(rows, classifyEnrollment(e, user, courses[i], 0, nil, now))
	}

	report := aggregateLadders(data, rows)

	assert.Len(t, report.Groups, 3)
	for _, g := range report.Groups {
		assert.Equal(t, 1, g.FullyCompletedUsers)
	}
	assert.Equal(t, 1, report.TotalUniqueUsers, "one user across three ladders is one unique user")
}

func TestAggregateLaddersOrderedByDisplayOrder(t *testing.T) {
	data := &reportDataset{
		Ladders: []model.Ladder{
			{BaseModel: model.BaseModel{ID: 1}, Name: "Leader", Order: 3},
			{BaseModel: model.BaseModel{ID: 2}, Name: "Member", Order: 1},
			{BaseModel: model.BaseModel{ID: 3}, Name: "Worker", Order: 2},
		},
	}

	report := aggregateLadders(data, nil)

	titles := make([]string, 0, len(report.Groups))
	for _, g := range report.Groups {
		titles = append(titles, g.Title)
	}
	assert.Equal(t, []string{"Member", "Worker", "Leader"}, titles)
}

func TestApplyFilterForcesOwnCampusWithoutCapability(t *testing.T) {
	rows := []model.ReportRow{
		{UserID: 1, CourseID: 1, UserCampus: "North"},
		{UserID: 2, CourseID: 1, UserCampus: "South"},
	}
	scope := model.Scope{CanViewAllCampuses: false, OwnCampus: "North"}

	// The explicit campus selector is overridden by the caller's scope.
	filtered := applyFilter(rows, model.ReportFilter{Campus: "South"}, scope, nil)

	assert.Len(t, filtered, 1)
	assert.Equal(t, "North", filtered[0].UserCampus)
}

func TestApplyFilterCampusSelectorWithCapability(t *testing.T) {
	rows := []model.ReportRow{
		{UserID: 1, CourseID: 1, UserCampus: "North"},
		{UserID: 2, CourseID: 1, UserCampus: "South"},
	}
	scope := model.Scope{CanViewAllCampuses: true, OwnCampus: "North"}

	filtered := applyFilter(rows, model.ReportFilter{Campus: "South"}, scope, nil)
	assert.Len(t, filtered, 1)
	assert.Equal(t, "South", filtered[0].UserCampus)

	filtered = applyFilter(rows, model.ReportFilter{}, scope, nil)
	assert.Len(t, filtered, 2)
}

func TestApplyFilterDateRangeIsInclusive(t *testing.T) {
	lateOnToDay := time.Date(2026, 2, 28, 23, 59, 0, 0, time.Local)
	onFromDay := time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local)
	before := time.Date(2026, 1, 31, 23, 59, 59, 0, time.Local)

	rows := []model.ReportRow{
		{UserID: 1, CourseID: 1, CompletedAt: &lateOnToDay, IsCompleted: true},
		{UserID: 2, CourseID: 1, CompletedAt: &onFromDay, IsCompleted: true},
		{UserID: 3, CourseID: 1, CompletedAt: &before, IsCompleted: true},
	}
	scope := model.Scope{CanViewAllCampuses: true}

	filtered := applyFilter(rows, model.ReportFilter{From: "2026-02-01", To: "2026-02-28"}, scope, nil)

	assert.Len(t, filtered, 2)
}

func TestApplyFilterDateFallsBackToEnrolledAt(t *testing.T) {
	enrolled := time.Date(2026, 2, 10, 10, 0, 0, 0, time.Local)
	rows := []model.ReportRow{
		{UserID: 1, CourseID: 1, EnrolledAt: &enrolled},
	}
	scope := model.Scope{CanViewAllCampuses: true}

	filtered := applyFilter(rows, model.ReportFilter{From: "2026-02-01", To: "2026-02-28"}, scope, nil)
	assert.Len(t, filtered, 1)

	filtered = applyFilter(rows, model.ReportFilter{From: "2026-03-01"}, scope, nil)
	assert.Empty(t, filtered)
}

func TestApplyFilterStatusAndBucket(t *testing.T) {
	rows := []model.ReportRow{
		{UserID: 1, CourseID: 1, IsCompleted: true, TotalProgress: 100},
		{UserID: 2, CourseID: 1, IsCompleted: false, TotalProgress: 40},
		{UserID: 3, CourseID: 1, IsCompleted: false, TotalProgress: 65},
	}
	scope := model.Scope{CanViewAllCampuses: true}

	filtered := applyFilter(rows, model.ReportFilter{Status: model.StatusInProgress}, scope, nil)
	assert.Len(t, filtered, 2)

	filtered = applyFilter(rows, model.ReportFilter{Bucket: model.Bucket21to40}, scope, nil)
	assert.Len(t, filtered, 1)
	assert.Equal(t, uint(2), filtered[0].UserID)

	filtered = applyFilter(rows, model.ReportFilter{Bucket: model.Bucket61to80, Status: model.StatusCompleted}, scope, nil)
	assert.Empty(t, filtered)
}

func TestApplyFilterSearchMatchesUserAndCourse(t *testing.T) {
	rows := []model.ReportRow{
		{UserID: 1, CourseID: 1, UserName: "Ana Maria", CourseTitle: "Foundations"},
		{UserID: 2, CourseID: 2, UserName: "Luis", CourseTitle: "Advanced Topics"},
	}
	scope := model.Scope{CanViewAllCampuses: true}

	assert.Len(t, applyFilter(rows, model.ReportFilter{Search: "maria"}, scope, nil), 1)
	assert.Len(t, applyFilter(rows, model.ReportFilter{Search: "ADVANCED"}, scope, nil), 1)
	assert.Empty(t, applyFilter(rows, model.ReportFilter{Search: "nobody"}, scope, nil))
}

func TestApplyFilterGroupMembers(t *testing.T) {
	rows := []model.ReportRow{
		{UserID: 1, CourseID: 1},
		{UserID: 1, CourseID: 2},
	}
	scope := model.Scope{CanViewAllCampuses: true}

	filtered := applyFilter(rows, model.ReportFilter{}, scope, map[uint]bool{2: true})
	assert.Len(t, filtered, 1)
	assert.Equal(t, uint(2), filtered[0].CourseID)
}

func TestPaginate(t *testing.T) {
	rows := make([]model.ReportRow, 25)
	for i := range rows {
		rows[i].UserID = uint(i + 1)
	}

	page := paginate(rows, 1, 10)
	assert.Len(t, page.Rows, 10)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.TotalPages)

	page = paginate(rows, 3, 10)
	assert.Len(t, page.Rows, 5)

	// Pages past the end come back empty rather than erroring.
	page = paginate(rows, 9, 10)
	assert.Empty(t, page.Rows)
	assert.Equal(t, 25, page.Total)

	page = paginate(nil, 1, 10)
	assert.Empty(t, page.Rows)
	assert.Equal(t, 0, page.TotalPages)
}

func TestProgressBucketContains(t *testing.T) {
	assert.True(t, model.BucketNone.Contains(55))
	assert.True(t, model.Bucket0to20.Contains(0))
	assert.True(t, model.Bucket0to20.Contains(20))
	assert.False(t, model.Bucket0to20.Contains(21))
	assert.True(t, model.Bucket81to100.Contains(100))
	assert.False(t, model.Bucket81to100.Contains(80))
}

// End-to-end over the pure pipeline: a user finishes every video of a
// two-video course but the required quiz is still pending, so the report shows
// 100% progress yet In Progress status.
func TestPipelineVideosDoneQuizPending(t *testing.T) {
	now := time.Now()
	user := testUser(1, "Ana", "North", "en")
	course := testCourse(2, "Foundations", "en", 2, "final")

	data := &reportDataset{
		Users:       []model.User{user},
		Courses:     []model.Course{course},
		Enrollments: []model.Enrollment{testEnrollment(1, 1, 2, now.Add(-time.Hour))},
		Progress: []model.VideoProgress{
			{UserID: 1, CourseID: 2, VideoID: 1, Completed: true},
			{UserID: 1, CourseID: 2, VideoID: 2, Completed: true},
		},
		QuizResults: []model.QuizResult{
			{UserID: 1, CourseID: 2, QuizKey: "final", Score: 40, Passed: false},
		},
	}

	rows := classifyAll(data, now)

	if assert.Len(t, rows, 1) {
		assert.Equal(t, 100, rows[0].TotalProgress)
		assert.False(t, rows[0].IsCompleted)
	}

	// A later passing attempt flips it.
	data.QuizResults = append(data.QuizResults, model.QuizResult{
		UserID: 1, CourseID: 2, QuizKey: "final", Score: 85, Passed: true,
	})
	rows = classifyAll(data, now)
	assert.True(t, rows[0].IsCompleted)
}
