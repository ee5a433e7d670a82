// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity layer of the Ripple platform.

It defines the core domain entities (User, Role) and the logic for account
registration, credential and Google sign-in, email verification, and the
password recovery flow.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/taibuivan/ripple/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Ripple platform.
type User struct {
	ID           int        `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	Name         string     `json:"name"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	RoleID       sec.RoleID `json:"role_id"`
	IsVerified   bool       `json:"is_verified"`

	// Password recovery state. Stored on the user row so a reset token can
	// be invalidated server-side regardless of its signature lifetime.
	ResetToken        *string    `json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Role represents an access level assignable to user accounts.
type Role struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldName            = "name"
	FieldToken           = "token"
	FieldNewPassword     = "new_password"
	FieldConfirmPassword = "confirm_password"
	FieldCode            = "code"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldUser            = "user"
	FieldMessage         = "message"
	FieldAuthURL         = "auth_url"
)
