package course

import "errors"

// Sentinel errors returned by the course services. Controllers map them to
// stable response codes at the request boundary.
var (
	ErrNotFound          = errors.New("record not found")
	ErrNotAllowed        = errors.New("actor is not allowed to perform this operation")
	ErrInvalidTransition = errors.New("no transition defined from the current status")
	ErrConflict          = errors.New("record was modified concurrently, retry")
	ErrPayloadRequired   = errors.New("material requires a file upload or inline content")
	ErrLinkURLRequired   = errors.New("link material requires a target url")
	ErrInvalidType       = errors.New("unknown material type")
	ErrScoreOutOfRange   = errors.New("score must be between 0 and the assignment max score")
	ErrNotEnrolled       = errors.New("student is not enrolled in this course")
	ErrHasProgress       = errors.New("course has enrollments with progress")
)
