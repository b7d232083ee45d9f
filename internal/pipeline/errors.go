package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Per-record rejections. The loop skips the record and keeps going.
var (
	ErrMissingField   = errors.New("missing required field")
	ErrUnresolvedDate = errors.New("unresolved publish date")
	ErrEmptyGenres    = errors.New("empty genre list")
)

// ErrMalformedGenres is run-fatal unless the run was started with StrictGenres off.
var ErrMalformedGenres = errors.New("malformed genre list")

// ErrMissingColumns means the input header lacks required columns; nothing is read.
var ErrMissingColumns = errors.New("input is missing required columns")

// Rejection reasons as reported in the run summary
const (
	ReasonMissingField    = "missing_field"
	ReasonUnresolvedDate  = "unresolved_date"
	ReasonEmptyGenres     = "empty_genres"
	ReasonMalformedGenres = "malformed_genres"
)

// rejectionReason maps a soft error to its summary key. ok is false for hard errors.
func rejectionReason(err error, strictGenres bool) (string, bool) {
	switch {
	case errors.Is(err, ErrMissingField):
		return ReasonMissingField, true
	case errors.Is(err, ErrUnresolvedDate):
		return ReasonUnresolvedDate, true
	case errors.Is(err, ErrEmptyGenres):
		return ReasonEmptyGenres, true
	case errors.Is(err, ErrMalformedGenres) && !strictGenres:
		return ReasonMalformedGenres, true
	default:
		return "", false
	}
}

func missingColumnsError(cols []string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(cols, ", "))
}
