package model

import (
	"time"
)

// CompletionType is the channel a completion came through.
type CompletionType string

const (
	CompletionOnline CompletionType = "Online"
	CompletionOnsite CompletionType = "On-site"
)

type CompletionStatus string

const (
	StatusCompleted  CompletionStatus = "completed"
	StatusInProgress CompletionStatus = "in_progress"
)

// UserCourse is the composite key used by the report index maps. A struct
// key instead of string concatenation, so ids can never collide through a
// separator character.
type UserCourse struct {
	UserID   uint
	CourseID uint
}

// Scope is the capability set governing which campuses a report caller may
// see. It is passed explicitly into the filter predicates rather than read
// from ambient request state.
type Scope struct {
	CanViewAllCampuses bool
	OwnCampus          string
}

// ReportRow is one classified enrollment or on-site completion, normalized
// for display and export.
type ReportRow struct {
	ID             string         `json:"id"`
	UserID         uint           `json:"userId"`
	UserName       string         `json:"userName"`
	UserCampus     string         `json:"userCampus"`
	CourseID       uint           `json:"courseId"`
	CourseTitle    string         `json:"courseTitle"`
	EnrolledAt     *time.Time     `json:"enrolledAt,omitempty"`
	CompletedAt    *time.Time     `json:"completedAt,omitempty"`
	TotalProgress  int            `json:"totalProgress"`
	IsCompleted    bool           `json:"isCompleted"`
	CompletionType CompletionType `json:"completionType"`
}

// ProgressBucket is one of the five fixed percentage ranges selectable in the
// course report filter. Zero means "no bucket filter".
type ProgressBucket int

const (
	BucketNone ProgressBucket = iota
	Bucket0to20
	Bucket21to40
	Bucket41to60
	Bucket61to80
	Bucket81to100
)

// Contains reports whether a progress percentage falls in the bucket.
func (b ProgressBucket) Contains(progress int) bool {
	switch b {
	case Bucket0to20:
		return progress >= 0 && progress <= 20
	case Bucket21to40:
		return progress >= 21 && progress <= 40
	case Bucket41to60:
		return progress >= 41 && progress <= 60
	case Bucket61to80:
		return progress >= 61 && progress <= 80
	case Bucket81to100:
		return progress >= 81 && progress <= 100
	default:
		return true
	}
}

// ReportFilter is the user-selected filter state for the flat course report.
type ReportFilter struct {
	CourseID       uint             `form:"courseId"`
	CourseGroupID  uint             `form:"courseGroupId"`
	Campus         string           `form:"campus"`
	CompletionType CompletionType   `form:"completionType"`
	Status         CompletionStatus `form:"status"`
	Bucket         ProgressBucket   `form:"bucket"`
	// Inclusive local-day bounds, applied to CompletedAt when present, else
	// EnrolledAt.
	From   string `form:"from" time_format:"2006-01-02"`
	To     string `form:"to" time_format:"2006-01-02"`
	Search string `form:"search"`
}

// GroupSummary is one ladder or learning-path line in a summary report.
type GroupSummary struct {
	Title               string `json:"title"`
	OnsiteCompletions   int    `json:"onsiteCompletions"`
	OnlineCompletions   int    `json:"onlineCompletions"`
	FullyCompletedUsers int    `json:"fullyCompletedUsers"`
}

// SummaryReport groups per-ladder (or per-path) lines with a grand total of
// unique completing users: a user completing several groups counts once.
type SummaryReport struct {
	Groups           []GroupSummary `json:"groups"`
	TotalUniqueUsers int            `json:"totalUniqueUsers"`
}

// ReportPage is one offset-paginated slice of filtered report rows.
type ReportPage struct {
	Rows       []ReportRow `json:"rows"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PerPage    int         `json:"perPage"`
	TotalPages int         `json:"totalPages"`
}

// CompletionLogPage is one keyset-paginated slice of the on-site completion
// log, with a lookahead-derived HasMore flag and a separately counted total.
type CompletionLogPage struct {
	Rows    []OnsiteCompletion `json:"rows"`
	Total   int64              `json:"total"`
	HasMore bool               `json:"hasMore"`
	// Cursor of the last row, to be echoed back as startAfter for the next page.
	NextAfterTime *time.Time `json:"nextAfterTime,omitempty"`
	NextAfterID   string     `json:"nextAfterId,omitempty"`
}
