// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	// FindByID returns the account with the given ID.
	FindByID(context context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email.
	FindByEmail(context context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(context context.Context, username string) (*User, error)

	// Create persists a brand-new user account to the storage.
	Create(context context.Context, user *User) error

	// Update persists changes to mutable profile fields.
	Update(context context.Context, user *User) error

	// UpdatePassword replaces only the user's password hash.
	UpdatePassword(context context.Context, userID, newHash string) error

	// SoftDelete marks the account as deleted without removing the row.
	SoftDelete(context context.Context, id string) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token sessions.
type SessionRepository interface {

	// Create persists a new tracking session for an authenticated login.
	Create(context context.Context, session *Session) error

	// FindByTokenHash returns the live (non-revoked, non-expired) session
	// matching the given refresh token hash.
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	// Revoke marks a single session as revoked.
	Revoke(context context.Context, sessionID string) error

	// RevokeAll revokes every active session belonging to a user.
	RevokeAll(context context.Context, userID string) error

	// ListForUser returns all active sessions for a user, newest first.
	ListForUser(context context.Context, userID string) ([]*Session, error)
}

// # Revocation Cache

// RevocationCache is a fast-path lookup for revoked sessions, backed by Redis.
//
// The JWT access token is stateless; revoking a refresh session writes a
// short-lived tombstone here so compromised sessions die before the access
// token's natural expiry.
type RevocationCache interface {
	MarkRevoked(context context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(context context.Context, sessionID string) (bool, error)
}
