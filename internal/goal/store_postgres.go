// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package goal

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
)

// PostgresRepository implements the goal Repository interface using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL goal repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert creates the user's goal for a year or updates its target.
func (repository *PostgresRepository) Upsert(context context.Context, goal *Goal) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, userid, year, target, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (userid, year) DO UPDATE SET
			target = EXCLUDED.target,
			updatedat = EXCLUDED.updatedat
		RETURNING id, createdat`,
		schema.LibraryReadingGoal.Table)

	err := repository.db.QueryRow(context, query,
		goal.ID, goal.UserID, goal.Year, goal.Target, goal.CreatedAt, goal.UpdatedAt,
	).Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "upsert_reading_goal")
	}

	return nil
}

// GetByUserAndYear returns the user's goal for the given year.
func (repository *PostgresRepository) GetByUserAndYear(context context.Context, userID string, year int) (*Goal, error) {
	query := fmt.Sprintf(`
		SELECT id, userid, year, target, createdat, updatedat
		FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibraryReadingGoal.Table,
		schema.LibraryReadingGoal.UserID, schema.LibraryReadingGoal.Year)

	goal := &Goal{}
	err := repository.db.QueryRow(context, query, userID, year).Scan(
		&goal.ID, &goal.UserID, &goal.Year, &goal.Target,
		&goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.NotFound("Reading goal")
		}
		return nil, dberr.Wrap(err, "get_reading_goal")
	}

	return goal, nil
}

// ListForUser returns all of a user's goals, newest year first.
func (repository *PostgresRepository) ListForUser(context context.Context, userID string) ([]*Goal, error) {
	query := fmt.Sprintf(`
		SELECT id, userid, year, target, createdat, updatedat
		FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		schema.LibraryReadingGoal.Table,
		schema.LibraryReadingGoal.UserID, schema.LibraryReadingGoal.Year)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_reading_goals")
	}
	defer rows.Close()

	goals := make([]*Goal, 0)
	for rows.Next() {
		goal := &Goal{}
		if err := rows.Scan(
			&goal.ID, &goal.UserID, &goal.Year, &goal.Target,
			&goal.CreatedAt, &goal.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_reading_goal")
		}
		goals = append(goals, goal)
	}

	return goals, rows.Err()
}

// Delete removes the user's goal for a year.
func (repository *PostgresRepository) Delete(context context.Context, userID string, year int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibraryReadingGoal.Table,
		schema.LibraryReadingGoal.UserID, schema.LibraryReadingGoal.Year)

	tag, err := repository.db.Exec(context, query, userID, year)
	if err != nil {
		return dberr.Wrap(err, "delete_reading_goal")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Reading goal")
	}

	return nil
}
