package service

import "errors"

var (
	// ErrValidation marks malformed journal input; nothing is changed.
	ErrValidation = errors.New("validation error")
	// ErrFutureDate is returned by EntryDatePolicy for entries dated after today.
	ErrFutureDate = errors.New("entry date is in the future")
	// ErrNotFound is returned for unknown questionnaire or assessment ids.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState is returned when an assessment operation does not fit its phase.
	ErrInvalidState = errors.New("invalid assessment state")
	// ErrIncompleteAnswer is returned when advancing past an unanswered question.
	ErrIncompleteAnswer = errors.New("current question has no answer")
	// ErrInvalidAnswer is returned for answers to a non-current question or unknown option values.
	ErrInvalidAnswer = errors.New("invalid answer")
	// ErrInvalidCatalog reports questionnaire definitions that cannot be scored.
	ErrInvalidCatalog = errors.New("invalid questionnaire catalog")
)
