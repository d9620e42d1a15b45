// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
)

// Postgres SQLSTATE codes relevant to request classification.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations map to client errors. Unique violations back
	// the one-entry-per-(user,book) and one-review-per-(user,book) rules.
	// The original error stays attached as Cause so callers can still detect
	// the SQLSTATE through the wrapper (see [IsUniqueViolation]).
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		var appError *apperr.AppError
		switch pgErr.Code {
		case codeUniqueViolation:
			appError = apperr.Conflict("Resource already exists")
		case codeForeignKeyViolation:
			appError = apperr.ValidationError("Referenced resource does not exist")
		case codeCheckViolation:
			appError = apperr.ValidationError("Value violates a data constraint")
		}
		if appError != nil {
			appError.Cause = err
			return appError
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
