// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package library

import "github.com/shelfmark/shelfmark/internal/platform/apperr"

// Status is the reading state of a library entry.
type Status string

// The canonical enumeration. Legacy clients used at least three synonym sets
// for the same three logical states; every inbound value passes through
// [ParseStatus] so only these three ever reach storage.
const (
	StatusWantToRead       Status = "want-to-read"
	StatusCurrentlyReading Status = "currently-reading"
	StatusFinished         Status = "finished"
)

// statusSynonyms is the single translation table for inbound status values.
// Unrecognized values are a validation error, never passed through.
var statusSynonyms = map[string]Status{
	"want-to-read":      StatusWantToRead,
	"to-read":           StatusWantToRead,
	"to_read":           StatusWantToRead,
	"currently-reading": StatusCurrentlyReading,
	"reading":           StatusCurrentlyReading,
	"finished":          StatusFinished,
	"completed":         StatusFinished,
}

// ParseStatus normalizes an inbound status string to the canonical enumeration.
func ParseStatus(raw string) (Status, error) {
	if status, ok := statusSynonyms[raw]; ok {
		return status, nil
	}

	return "", apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   FieldStatus,
		Message: "Must be one of: want-to-read, currently-reading, finished",
	})
}

// IsValid reports whether the status is one of the canonical values.
func (s Status) IsValid() bool {
	switch s {
	case StatusWantToRead, StatusCurrentlyReading, StatusFinished:
		return true
	}
	return false
}
