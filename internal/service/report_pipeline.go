package service

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/util"
)

// reportDataset holds the materialized results of one fetch fan-out. Every
// later pipeline stage is a pure function over these slices.
type reportDataset struct {
	Users       []model.User
	Courses     []model.Course
	Enrollments []model.Enrollment
	Progress    []model.VideoProgress
	QuizResults []model.QuizResult
	Onsite      []model.OnsiteCompletion
	Ladders     []model.Ladder
	Groups      []model.CourseGroup
}

// ---- Join/Index Builder ----

func buildUserIndex(users []model.User) map[uint]model.User {
	idx := make(map[uint]model.User, len(users))
	for _, u := range users {
		idx[u.ID] = u
	}
	return idx
}

func buildCourseIndex(courses []model.Course) map[uint]model.Course {
	idx := make(map[uint]model.Course, len(courses))
	for _, c := range courses {
		idx[c.ID] = c
	}
	return idx
}

// buildProgressCounts counts completed videos per (user, course).
func buildProgressCounts(progress []model.VideoProgress) map[model.UserCourse]int {
	counts := make(map[model.UserCourse]int)
	for _, p := range progress {
		if !p.Completed {
			continue
		}
		counts[model.UserCourse{UserID: p.UserID, CourseID: p.CourseID}]++
	}
	return counts
}

// buildPassedQuizIndex collects the set of passed quiz keys per (user, course).
func buildPassedQuizIndex(results []model.QuizResult) map[model.UserCourse]map[string]struct{} {
	idx := make(map[model.UserCourse]map[string]struct{})
	for _, r := range results {
		if !r.Passed {
			continue
		}
		key := model.UserCourse{UserID: r.UserID, CourseID: r.CourseID}
		set, ok := idx[key]
		if !ok {
			set = make(map[string]struct{})
			idx[key] = set
		}
		set[r.QuizKey] = struct{}{}
	}
	return idx
}

func buildOnsiteIndex(rows []model.OnsiteCompletion) map[model.UserCourse]model.OnsiteCompletion {
	idx := make(map[model.UserCourse]model.OnsiteCompletion, len(rows))
	for _, row := range rows {
		// Duplicate rows collapse to one; any existing row is sufficient.
		idx[model.UserCourse{UserID: row.UserID, CourseID: row.CourseID}] = row
	}
	return idx
}

// ---- Completion Classifier ----

// classifyEnrollment normalizes one online enrollment against the course's
// required content. A course with no required videos and no required quizzes
// is complete the moment the enrollment exists; that is accepted behavior
// (attendance-only courses), not a defect.
func classifyEnrollment(
	e model.Enrollment,
	user model.User,
	course model.Course,
	completedVideos int,
	passedQuizzes map[string]struct{},
	now time.Time,
) model.ReportRow {
	totalVideos := len(course.Videos)

	allVideosCompleted := totalVideos == 0 || completedVideos >= totalVideos

	allQuizzesCompleted := true
	for _, q := range course.Quizzes {
		if _, ok := passedQuizzes[q.QuizKey]; !ok {
			allQuizzesCompleted = false
			break
		}
	}

	isCompleted := allVideosCompleted && allQuizzesCompleted

	var totalProgress int
	switch {
	case totalVideos > 0:
		totalProgress = int(math.Round(float64(completedVideos) / float64(totalVideos) * 100))
	case isCompleted:
		totalProgress = 100
	default:
		totalProgress = 0
	}

	enrolledAt := e.EnrolledAt
	row := model.ReportRow{
		ID:             "enrollment-" + strconv.FormatUint(uint64(e.ID), 10),
		UserID:         e.UserID,
		UserName:       user.Name,
		UserCampus:     user.Campus,
		CourseID:       e.CourseID,
		CourseTitle:    course.Title,
		EnrolledAt:     &enrolledAt,
		TotalProgress:  totalProgress,
		IsCompleted:    isCompleted,
		CompletionType: model.CompletionOnline,
	}

	if isCompleted {
		if e.CompletedAt != nil {
			row.CompletedAt = e.CompletedAt
		} else {
			// Completion derived on the fly, no stored stamp yet.
			t := now
			row.CompletedAt = &t
		}
	}

	return row
}

// classifyOnsite normalizes one on-site log row. Always 100% and completed;
// display fields fall back to the values denormalized at write time when the
// live user or course no longer resolves.
func classifyOnsite(
	row model.OnsiteCompletion,
	users map[uint]model.User,
	courses map[uint]model.Course,
) model.ReportRow {
	userName := row.UserName
	userCampus := row.UserCampus
	if u, ok := users[row.UserID]; ok {
		userName = u.Name
		userCampus = u.Campus
	}

	courseTitle := row.CourseTitle
	if c, ok := courses[row.CourseID]; ok {
		courseTitle = c.Title
	}

	completedAt := row.CompletedAt
	return model.ReportRow{
		ID:             "onsite-" + row.ID,
		UserID:         row.UserID,
		UserName:       userName,
		UserCampus:     userCampus,
		CourseID:       row.CourseID,
		CourseTitle:    courseTitle,
		CompletedAt:    &completedAt,
		TotalProgress:  100,
		IsCompleted:    true,
		CompletionType: model.CompletionOnsite,
	}
}

// classifyAll produces the flat report rows for every enrollment and every
// on-site log row. Enrollments referencing unknown users or courses are
// skipped; on-site rows never are, their denormalized fields carry them.
func classifyAll(data *reportDataset, now time.Time) []model.ReportRow {
	users := buildUserIndex(data.Users)
	courses := buildCourseIndex(data.Courses)
	progressCounts := buildProgressCounts(data.Progress)
	passedQuizzes := buildPassedQuizIndex(data.QuizResults)

	rows := make([]model.ReportRow, 0, len(data.Enrollments)+len(data.Onsite))

	for _, e := range data.Enrollments {
		user, ok := users[e.UserID]
		if !ok {
			continue
		}
		course, ok := courses[e.CourseID]
		if !ok {
			continue
		}
		key := model.UserCourse{UserID: e.UserID, CourseID: e.CourseID}
		rows = append(rows, classifyEnrollment(e, user, course, progressCounts[key], passedQuizzes[key], now))
	}

	for _, o := range data.Onsite {
		rows = append(rows, classifyOnsite(o, users, courses))
	}

	return rows
}

// ---- Aggregator ----

// buildCompletionChannels reduces classified rows to the channel each
// completed (user, course) came through. When both channels exist the online
// one wins, so mixed ladders classify as online.
func buildCompletionChannels(rows []model.ReportRow) map[model.UserCourse]model.CompletionType {
	channels := make(map[model.UserCourse]model.CompletionType)
	for _, r := range rows {
		if !r.IsCompleted {
			continue
		}
		key := model.UserCourse{UserID: r.UserID, CourseID: r.CourseID}
		if existing, ok := channels[key]; ok && existing == model.CompletionOnline {
			continue
		}
		channels[key] = r.CompletionType
	}
	return channels
}

// summarizeGroup computes one summary line over one named bag of courses.
// Only courses matching a user's language count for that user; users with no
// matching course are excluded from numerator and denominator alike. The
// returned set holds the ids of users who completed the group.
func summarizeGroup(
	title string,
	memberCourses []model.Course,
	users []model.User,
	channels map[model.UserCourse]model.CompletionType,
) (model.GroupSummary, map[uint]struct{}) {
	summary := model.GroupSummary{Title: title}
	completedUsers := make(map[uint]struct{})

	for _, u := range users {
		matched := 0
		completed := 0
		allOnsite := true
		for _, c := range memberCourses {
			if c.Language != u.Language {
				continue
			}
			matched++
			channel, ok := channels[model.UserCourse{UserID: u.ID, CourseID: c.ID}]
			if !ok {
				continue
			}
			completed++
			if channel != model.CompletionOnsite {
				allOnsite = false
			}
		}

		if matched == 0 || completed < matched {
			continue
		}

		completedUsers[u.ID] = struct{}{}
		summary.FullyCompletedUsers++
		if allOnsite {
			summary.OnsiteCompletions++
		} else {
			summary.OnlineCompletions++
		}
	}

	return summary, completedUsers
}

// aggregateLadders builds the per-ladder summary plus the grand total of
// unique completing users across all ladders (a set union, never a sum).
func aggregateLadders(data *reportDataset, rows []model.ReportRow) model.SummaryReport {
	channels := buildCompletionChannels(rows)

	// Ladder membership comes from the course side of the join table.
	coursesByLadder := make(map[uint][]model.Course)
	for _, c := range data.Courses {
		for _, l := range c.Ladders {
			coursesByLadder[l.ID] = append(coursesByLadder[l.ID], c)
		}
	}

	ladders := make([]model.Ladder, len(data.Ladders))
	copy(ladders, data.Ladders)
	sort.SliceStable(ladders, func(i, j int) bool { return ladders[i].Order < ladders[j].Order })

	report := model.SummaryReport{Groups: make([]model.GroupSummary, 0, len(ladders))}
	unique := make(map[uint]struct{})

	for _, ladder := range ladders {
		summary, completed := summarizeGroup(ladder.Name, coursesByLadder[ladder.ID], data.Users, channels)
		report.Groups = append(report.Groups, summary)
		for id := range completed {
			unique[id] = struct{}{}
		}
	}

	report.TotalUniqueUsers = len(unique)
	return report
}

// aggregateGroups is the learning-path variant of the ladder summary; same
// language restriction and unique grand total.
func aggregateGroups(data *reportDataset, rows []model.ReportRow) model.SummaryReport {
	channels := buildCompletionChannels(rows)

	report := model.SummaryReport{Groups: make([]model.GroupSummary, 0, len(data.Groups))}
	unique := make(map[uint]struct{})

	for _, group := range data.Groups {
		summary, completed := summarizeGroup(group.Name, group.Courses, data.Users, channels)
		report.Groups = append(report.Groups, summary)
		for id := range completed {
			unique[id] = struct{}{}
		}
	}

	report.TotalUniqueUsers = len(unique)
	return report
}

// ---- Presentation Filter/Paginator ----

// applyFilter runs the user-selected filter over the flat rows. Campus
// visibility is governed by the explicit scope: without the all-campuses
// capability the caller sees only their own campus, whatever the campus
// selector says. groupMembers is the resolved course-id set of the selected
// course group (nil when no group filter).
func applyFilter(rows []model.ReportRow, f model.ReportFilter, scope model.Scope, groupMembers map[uint]bool) []model.ReportRow {
	campus := f.Campus
	if !scope.CanViewAllCampuses {
		campus = scope.OwnCampus
	}

	var from, to *time.Time
	if f.From != "" {
		if t, err := time.ParseInLocation(util.DateFormat, f.From, time.Local); err == nil {
			from = &t
		}
	}
	if f.To != "" {
		if t, err := time.ParseInLocation(util.DateFormat, f.To, time.Local); err == nil {
			end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
			to = &end
		}
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))

	filtered := make([]model.ReportRow, 0, len(rows))
	for _, r := range rows {
		if f.CourseID != 0 && r.CourseID != f.CourseID {
			continue
		}
		if groupMembers != nil && !groupMembers[r.CourseID] {
			continue
		}
		if campus != "" && r.UserCampus != campus {
			continue
		}
		if f.CompletionType != "" && r.CompletionType != f.CompletionType {
			continue
		}
		if f.Status == model.StatusCompleted && !r.IsCompleted {
			continue
		}
		if f.Status == model.StatusInProgress && r.IsCompleted {
			continue
		}
		if !f.Bucket.Contains(r.TotalProgress) {
			continue
		}

		if from != nil || to != nil {
			// Date range applies to whichever timestamp the row carries,
			// completion first.
			var at *time.Time
			if r.CompletedAt != nil {
				at = r.CompletedAt
			} else {
				at = r.EnrolledAt
			}
			if at == nil {
				continue
			}
			if from != nil && at.Before(*from) {
				continue
			}
			if to != nil && at.After(*to) {
				continue
			}
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(r.UserName), search) &&
			!strings.Contains(strings.ToLower(r.CourseTitle), search) {
			continue
		}

		filtered = append(filtered, r)
	}

	return filtered
}

// paginate slices the filtered rows by offset. Page numbers are 1-based and
// clamped; totalPages is ceil(total/perPage).
func paginate(rows []model.ReportRow, page, perPage int) model.ReportPage {
	if perPage <= 0 {
		perPage = 10
	}
	if page <= 0 {
		page = 1
	}

	total := len(rows)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return model.ReportPage{
		Rows:       rows[start:end],
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}
}
