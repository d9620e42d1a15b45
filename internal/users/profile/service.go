// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package profile

import (
	"context"
	"strings"
	"time"

	"github.com/shelfmark/shelfmark/internal/platform/validate"
	"github.com/shelfmark/shelfmark/internal/users/auth"
)

// Service implements profile use cases on top of the auth stores.
type Service struct {
	users    auth.UserRepository
	sessions auth.SessionRepository
}

// NewService constructs a profile [Service].
func NewService(users auth.UserRepository, sessions auth.SessionRepository) *Service {
	return &Service{users: users, sessions: sessions}
}

// GetPublic returns the public profile for a username.
func (service *Service) GetPublic(context context.Context, username string) (*PublicProfile, error) {
	user, err := service.users.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	return NewPublicProfile(user), nil
}

// GetOwn returns the full account row for the authenticated user.
func (service *Service) GetOwn(context context.Context, userID string) (*auth.User, error) {
	return service.users.FindByID(context, userID)
}

// UpdateInput holds the editable profile fields. Nil pointers mean "leave
// unchanged" so a PATCH can touch a single field.
type UpdateInput struct {
	DisplayName *string
	AvatarURL   *string
	Bio         *string
}

// Update applies partial changes to the authenticated user's profile.
func (service *Service) Update(context context.Context, userID string, input UpdateInput) (*auth.User, error) {
	validator := &validate.Validator{}
	if input.DisplayName != nil {
		validator.Required(FieldDisplayName, *input.DisplayName).
			MaxLen(FieldDisplayName, *input.DisplayName, MaxDisplayNameLength)
	}
	if input.AvatarURL != nil && *input.AvatarURL != "" {
		validator.MaxLen(FieldAvatarURL, *input.AvatarURL, MaxAvatarURLLength).
			Custom(FieldAvatarURL, !strings.HasPrefix(*input.AvatarURL, "https://"), "Must be an https URL")
	}
	if input.Bio != nil {
		validator.MaxLen(FieldBio, *input.Bio, MaxBioLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	user.UpdatedAt = time.Now()

	if err := service.users.Update(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Sessions returns the user's active sessions, newest first.
func (service *Service) Sessions(context context.Context, userID string) ([]*auth.Session, error) {
	return service.sessions.ListForUser(context, userID)
}
