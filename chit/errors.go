package chit

import "errors"

// Sentinel errors returned by the engine. Handlers translate them to HTTP
// statuses; the client shows different screens for "already enrolled",
// "completed" and "not found", so the distinctions matter.
var (
	ErrSchemeNotFound       = errors.New("chit: scheme not found")
	ErrAlreadyEnrolled      = errors.New("chit: user already enrolled in scheme")
	ErrEnrollmentNotFound   = errors.New("chit: no pending enrollment for user and scheme")
	ErrNotActive            = errors.New("chit: enrollment is not active")
	ErrDuplicateInstallment = errors.New("chit: installment already recorded for this month")
	ErrSchemeCompleted      = errors.New("chit: all installments for the scheme are settled")
	ErrInvalidMonth         = errors.New("chit: month index out of range")
)
