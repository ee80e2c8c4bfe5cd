package services

import "errors"

type Kind int

const (
	KindInternal Kind = iota
	KindAuthentication
	KindAuthorization
	KindValidation
	KindRule
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindValidation:
		return "validation"
	case KindRule:
		return "rule"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is an expected failure with a stable code the handlers turn into a message.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrInvalidCredentials = newError(KindAuthentication, "invalid_credentials", "invalid login or password")

	ErrForbidden        = newError(KindAuthorization, "forbidden", "action is not allowed for this user")
	ErrNoStudentProfile = newError(KindAuthorization, "no_student_profile", "account has no student profile")

	ErrInvalidWorkType = newError(KindValidation, "invalid_work_type", "work type must be coursework, vkr or vkr/coursework")
	ErrEmptyTitle      = newError(KindValidation, "empty_title", "topic title is required")
	ErrInvalidDate     = newError(KindValidation, "invalid_date", "date must be in YYYY-MM-DD format")
	ErrInvalidRole     = newError(KindValidation, "invalid_role", "role must be student or teacher")
	ErrFileRead        = newError(KindValidation, "file_read_error", "file cannot be read")
	ErrMissingColumns  = newError(KindValidation, "file_read_error", "required columns are missing")
	ErrWrongPassword   = newError(KindValidation, "wrong_password", "current password is incorrect")
	ErrEmptyPassword   = newError(KindValidation, "empty_password", "new password is required")

	ErrAlreadyAssigned = newError(KindRule, "already_assigned", "student already has a topic")
	ErrTopicTaken      = newError(KindRule, "topic_taken", "topic is already taken")
	ErrNoTopic         = newError(KindRule, "no_topic", "student has no topic")
	ErrTopicApproved   = newError(KindRule, "approved", "topic is approved")
	ErrNotClaimed      = newError(KindRule, "not_claimed", "topic has no student")
	ErrNotApproved     = newError(KindRule, "not_approved", "topic is not approved")
	ErrDeadlinePassed  = newError(KindRule, "deadline_passed", "vkr edit deadline has passed")
	ErrAlreadyApproved = newError(KindRule, "already_approved", "topic is already approved")
	ErrStateChanged    = newError(KindRule, "state_changed", "topic was changed by another request")

	ErrTopicNotFound = newError(KindNotFound, "topic_not_found", "topic not found")
	ErrNoReportData  = newError(KindNotFound, "no_report_data", "no topics to report")
	ErrNoUsersFound  = newError(KindNotFound, "no_users_found", "no accounts with this role")
)

// KindOf classifies err. Anything that is not a *Error is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf returns the failure code, or "" for internal errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
