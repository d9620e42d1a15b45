// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

/*
Package profile exposes reader profiles on top of the auth account store.

It owns two views of the same account row: the public profile served on
reader pages (no email, no role) and the owner's editable profile. Session
listing lives here too because "where am I logged in" is a profile-page
concern, not an authentication one.
*/
package profile

import (
	"time"

	"github.com/shelfmark/shelfmark/internal/users/auth"
)

// PublicProfile is the reader-page view of an account. Contact and security
// fields are deliberately absent.
type PublicProfile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	JoinedAt    time.Time `json:"joined_at"`
}

// NewPublicProfile projects an account onto its public view.
func NewPublicProfile(user *auth.User) *PublicProfile {
	return &PublicProfile{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		Bio:         user.Bio,
		JoinedAt:    user.CreatedAt,
	}
}

// # Field Identifiers

const (
	FieldDisplayName = "display_name"
	FieldAvatarURL   = "avatar_url"
	FieldBio         = "bio"
)

// Length bounds for editable profile fields.
const (
	MaxDisplayNameLength = 100
	MaxAvatarURLLength   = 500
	MaxBioLength         = 1000
)
