package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrCourseNotFound       = errors.New("course not found")
	ErrCourseNotPublished   = errors.New("course not published")
	ErrAlreadyEnrolled      = errors.New("already enrolled in this course")
	ErrEnrollmentNotFound   = errors.New("enrollment not found")
	ErrVideoNotInCourse     = errors.New("video does not belong to this course")
	ErrQuizNotInCourse      = errors.New("quiz is not required by this course")
	ErrLadderNotFound       = errors.New("ladder not found")
	ErrCourseGroupNotFound  = errors.New("course group not found")
	ErrCampusNotFound       = errors.New("campus not found")
	ErrFormNotFound         = errors.New("form not found")
	ErrFormNotPublished     = errors.New("form not published")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrNothingToLog         = errors.New("all selected courses are already logged")
	ErrArchiveNotFound      = errors.New("export archive not found")
)
