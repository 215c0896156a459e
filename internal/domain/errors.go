package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure for the request layer. Callers map kinds to
// transport responses; they never interpret the Code.
type Kind string

const (
	KindForbidden  Kind = "forbidden"
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation_failed"
	KindConflict   Kind = "conflict"
	KindInternal   Kind = "internal"
)

type Code string

const (
	CodeForbidden              Code = "FORBIDDEN"
	CodeInvalidInput           Code = "INVALID_INPUT"
	CodeInvalidDuration        Code = "INVALID_DURATION"
	CodeOverlap                Code = "OVERLAP"
	CodeUnknownCareer          Code = "UNKNOWN_CAREER"
	CodeUnknownSubject         Code = "UNKNOWN_SUBJECT"
	CodeUnknownTopic           Code = "UNKNOWN_TOPIC"
	CodeUnknownTerm            Code = "UNKNOWN_TERM"
	CodeUnknownGroup           Code = "UNKNOWN_GROUP"
	CodeUnknownAcademicLoad    Code = "UNKNOWN_ACADEMIC_LOAD"
	CodeUnknownProgress        Code = "UNKNOWN_PROGRESS"
	CodeUnknownProgressLine    Code = "UNKNOWN_PROGRESS_LINE"
	CodeUnknownUser            Code = "UNKNOWN_USER"
	CodeInvalidProfessor       Code = "INVALID_PROFESSOR"
	CodeDuplicateGroup         Code = "DUPLICATE_GROUP"
	CodeDuplicateAssignment    Code = "DUPLICATE_ASSIGNMENT"
	CodeSubjectAlreadyAssigned Code = "SUBJECT_ALREADY_ASSIGNED"
	CodeTermFinished           Code = "TERM_FINISHED"
	CodeTutorConflictProfessor Code = "TUTOR_CONFLICT_PROFESSOR"
	CodeTutorConflictGroup     Code = "TUTOR_CONFLICT_GROUP"
	CodeAlreadyActive          Code = "ALREADY_ACTIVE"
	CodeAlreadyInactive        Code = "ALREADY_INACTIVE"
	CodeDuplicateProgress      Code = "DUPLICATE_PROGRESS"
	CodeTermMismatch           Code = "TERM_MISMATCH"
	CodeDuplicateEmail         Code = "DUPLICATE_EMAIL"
	CodeStoreConflict          Code = "STORE_CONFLICT"
)

// FieldError describes a problem with a single input field.
type FieldError struct {
	Field   string
	Message string
}

// Error is the typed failure every manager returns for a broken invariant.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = strings.ToLower(strings.ReplaceAll(string(e.Code), "_", " "))
	}
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Field+": "+f.Message)
		}
		msg += " (" + strings.Join(parts, "; ") + ")"
	}
	return string(e.Code) + ": " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error carrying the same Code, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// With returns a copy of the sentinel carrying a specific message.
func (e *Error) With(format string, args ...any) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns a copy of the sentinel that wraps a cause.
func (e *Error) Wrap(cause error) *Error {
	msg := e.Message
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: e.Kind, Code: e.Code, Message: msg, Err: cause}
}

func newError(kind Kind, code Code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

var (
	ErrForbidden    = newError(KindForbidden, CodeForbidden, "role lacks permission for this operation")
	ErrInvalidInput = newError(KindValidation, CodeInvalidInput, "invalid input")

	ErrInvalidDuration = newError(KindValidation, CodeInvalidDuration, "term duration out of range")
	ErrOverlap         = newError(KindValidation, CodeOverlap, "term overlaps an existing term")

	ErrUnknownCareer  = newError(KindValidation, CodeUnknownCareer, "career not in catalog")
	ErrUnknownSubject = newError(KindValidation, CodeUnknownSubject, "subject not in catalog for career")
	ErrUnknownTopic   = newError(KindValidation, CodeUnknownTopic, "topic not in catalog for subject")

	ErrUnknownTerm         = newError(KindNotFound, CodeUnknownTerm, "term not found")
	ErrUnknownGroup        = newError(KindNotFound, CodeUnknownGroup, "group not found")
	ErrUnknownAcademicLoad = newError(KindNotFound, CodeUnknownAcademicLoad, "academic load not found")
	ErrUnknownProgress     = newError(KindNotFound, CodeUnknownProgress, "progress tracking not found")
	ErrUnknownProgressLine = newError(KindNotFound, CodeUnknownProgressLine, "progress line not found")
	ErrUnknownUser         = newError(KindNotFound, CodeUnknownUser, "user not found")

	ErrInvalidProfessor       = newError(KindValidation, CodeInvalidProfessor, "user does not hold a teaching role")
	ErrDuplicateGroup         = newError(KindValidation, CodeDuplicateGroup, "group already exists")
	ErrDuplicateAssignment    = newError(KindValidation, CodeDuplicateAssignment, "assignment already exists")
	ErrSubjectAlreadyAssigned = newError(KindValidation, CodeSubjectAlreadyAssigned, "subject already assigned to another professor in this group")
	ErrTermFinished           = newError(KindValidation, CodeTermFinished, "term is finished")
	ErrTutorConflictProfessor = newError(KindValidation, CodeTutorConflictProfessor, "professor already tutors a group this term")
	ErrTutorConflictGroup     = newError(KindValidation, CodeTutorConflictGroup, "group already has a tutor this term")
	ErrAlreadyActive          = newError(KindValidation, CodeAlreadyActive, "already active")
	ErrAlreadyInactive        = newError(KindValidation, CodeAlreadyInactive, "already inactive")
	ErrDuplicateProgress      = newError(KindValidation, CodeDuplicateProgress, "academic load already has progress tracking")
	ErrTermMismatch           = newError(KindValidation, CodeTermMismatch, "term does not match the academic load's term")
	ErrDuplicateEmail         = newError(KindValidation, CodeDuplicateEmail, "email already registered")

	ErrStoreConflict = newError(KindConflict, CodeStoreConflict, "write conflicts with a stored record")
)

// KindOf reports the kind of err. Anything that is not a domain error is internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// CodeOf returns the code of the first domain error in err's chain, if any.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
