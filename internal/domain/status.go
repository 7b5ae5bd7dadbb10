package domain

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status is a user's decision about a dog.
//
// StatusUnset means no interaction row exists. StatusUndecided means a row
// exists with a NULL status column (seeded by backfill or reset explicitly).
type Status uint8

const (
	StatusUnset Status = iota
	StatusUndecided
	StatusLiked
	StatusDisliked
)

// Wire words used in URLs and JSON bodies.
const (
	WordLiked     = "liked"
	WordDisliked  = "disliked"
	WordUndecided = "undecided"
)

// Stored single-character codes.
const (
	codeLiked    = "l"
	codeDisliked = "d"
)

// ErrUnknownStatus is returned by ParseStatusWord for words outside
// liked, disliked and undecided.
var ErrUnknownStatus = errors.New("status must be liked, disliked, or undecided")

var statusFold = cases.Fold()

// ParseStatusWord maps a wire word (case-insensitive) to a Status.
func ParseStatusWord(word string) (Status, error) {
	switch statusFold.String(strings.TrimSpace(word)) {
	case WordLiked:
		return StatusLiked, nil
	case WordDisliked:
		return StatusDisliked, nil
	case WordUndecided:
		return StatusUndecided, nil
	}
	return StatusUnset, ErrUnknownStatus
}

// Word returns the wire word for s. StatusUnset has no word.
func (s Status) Word() string {
	switch s {
	case StatusLiked:
		return WordLiked
	case StatusDisliked:
		return WordDisliked
	case StatusUndecided:
		return WordUndecided
	}
	return ""
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if w := s.Word(); w != "" {
		return w
	}
	return "unset"
}

// Code returns the value stored in the status column. Undecided and Unset
// both store NULL.
func (s Status) Code() *string {
	var c string
	switch s {
	case StatusLiked:
		c = codeLiked
	case StatusDisliked:
		c = codeDisliked
	default:
		return nil
	}
	return &c
}

// StatusFromCode decodes a stored status column. NULL is undecided.
func StatusFromCode(code *string) Status {
	if code == nil {
		return StatusUndecided
	}
	switch *code {
	case codeLiked:
		return StatusLiked
	case codeDisliked:
		return StatusDisliked
	}
	return StatusUndecided
}

// Canonical lowercase form for codes and words arriving from clients.
func foldCode(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}
