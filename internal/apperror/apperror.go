package apperror

import (
	"errors"
	"fmt"
)

// Error classes. Every AppError belongs to exactly one class, which is what
// the HTTP adapter uses to pick a status code.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
)

// kind is a sentinel for one specific failure. It unwraps to its class so
// errors.Is(err, ErrValidation) holds for every validation kind.
type kind struct {
	code  string
	class error
}

func (k *kind) Error() string { return k.code }
func (k *kind) Unwrap() error { return k.class }

// Error kinds. Branch on these with errors.Is, never on message text.
var (
	ErrInvalidUsername  error = &kind{"invalid_username", ErrValidation}
	ErrInvalidPollInput error = &kind{"invalid_poll_input", ErrValidation}
	ErrInvalidInput     error = &kind{"invalid_input", ErrValidation}
	ErrOptionOutOfRange error = &kind{"option_out_of_range", ErrValidation}
	ErrPollNotFound     error = &kind{"poll_not_found", ErrNotFound}
	ErrDuplicateVote    error = &kind{"duplicate_vote", ErrConflict}
	ErrDuplicateUser    error = &kind{"duplicate_user", ErrConflict}
)

// Sub-reasons carried by InvalidPollInput.
const (
	ReasonTitle        = "title"
	ReasonOptionsCount = "options-count"
	ReasonOptionLabel  = "option-label"
	ReasonCreatorID    = "creator-id"
)

type AppError struct {
	Err     error  // kind or class sentinel
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
	Reason  string // Optional: sub-reason, set for InvalidPollInput
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns the machine-readable code for err: the kind code when err
// carries one, else the class name, else "internal_error".
func Code(err error) string {
	var k *kind
	if errors.As(err, &k) {
		return k.code
	}
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	}
	return "internal_error"
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func InvalidUsername(message string) *AppError {
	return &AppError{
		Err:     ErrInvalidUsername,
		Message: message,
		Field:   "username",
	}
}

func InvalidPollInput(reason, message string) *AppError {
	return &AppError{
		Err:     ErrInvalidPollInput,
		Message: message,
		Field:   pollInputField(reason),
		Reason:  reason,
	}
}

// InvalidInput reports a malformed identifier or index on a vote or lookup
// operation. field is the offending parameter name, e.g. "pollId".
func InvalidInput(field, message string) *AppError {
	return &AppError{
		Err:     ErrInvalidInput,
		Message: message,
		Field:   field,
	}
}

func OptionOutOfRange(index, optionCount int) *AppError {
	return &AppError{
		Err:     ErrOptionOutOfRange,
		Message: fmt.Sprintf("optionIndex %d is out of range for a poll with %d options", index, optionCount),
		Field:   "optionIndex",
	}
}

func PollNotFound(id int64) *AppError {
	return &AppError{
		Err:     ErrPollNotFound,
		Message: fmt.Sprintf("poll not found with id %d", id),
	}
}

func DuplicateVote(pollID, userID int64) *AppError {
	return &AppError{
		Err:     ErrDuplicateVote,
		Message: fmt.Sprintf("user %d has already voted on poll %d", userID, pollID),
	}
}

func DuplicateUser(username string) *AppError {
	return &AppError{
		Err:     ErrDuplicateUser,
		Message: fmt.Sprintf("user %s already exists", username),
		Field:   "username",
	}
}

func pollInputField(reason string) string {
	switch reason {
	case ReasonTitle:
		return "title"
	case ReasonOptionsCount, ReasonOptionLabel:
		return "options"
	case ReasonCreatorID:
		return "createdByUserId"
	}
	return ""
}
