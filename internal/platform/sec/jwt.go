// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the [TokenProvider] interface.
package sec

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/ripple/internal/platform/apperr"
)

// Sentinel errors for token verification.
//
// Callers must be able to tell a tampered/malformed token apart from a token
// that was valid once but has expired, so each failure mode carries its own
// machine-readable code.
var (
	// ErrTokenExpired is returned when the token signature is valid but the
	// encoded expiry has passed.
	ErrTokenExpired = &apperr.AppError{
		Code:       "TOKEN_EXPIRED",
		Message:    "Token has expired",
		HTTPStatus: 401,
	}

	// ErrTokenInvalid is returned when the signature does not match or the
	// token is malformed.
	ErrTokenInvalid = &apperr.AppError{
		Code:       "UNAUTHORIZED",
		Message:    "Invalid token",
		HTTPStatus: 401,
	}
)

// AuthClaims represents the payload embedded inside a signed session token.
//
// # Why custom claims?
//
// By embedding the UserID, RoleID, and Email directly inside the JWT, the
// [middleware.Authenticate] can reconstruct the active user context WITHOUT
// querying the database on every single API request.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID int    `json:"uid,omitempty"`
	RoleID RoleID `json:"rid,omitempty"`
	Email  string `json:"eml,omitempty"`
}

// TokenService handles generation and verification of JWT tokens using HS256
// with a process-wide secret.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService around the shared signing secret.
func NewTokenService(secret, issuer string) *TokenService {
	return &TokenService{secret: []byte(secret), issuer: issuer}
}

// GenerateSessionToken creates a signed session token carrying the full
// identity claim set for an authenticated user.
func (service *TokenService) GenerateSessionToken(userID int, roleID RoleID, email string, timeToLive time.Duration) (string, error) {
	return service.sign(AuthClaims{
		RegisteredClaims: service.registeredClaims(email, timeToLive),
		UserID:           userID,
		RoleID:           roleID,
		Email:            email,
	})
}

// GenerateEmailToken creates a single-purpose token carrying only an email
// claim. It is used for email verification and password reset links, which
// must never double as session tokens.
func (service *TokenService) GenerateEmailToken(email string, timeToLive time.Duration) (string, error) {
	return service.sign(AuthClaims{
		RegisteredClaims: service.registeredClaims(email, timeToLive),
		Email:            email,
	})
}

// VerifyToken checks the signature and validity of a JWT string.
//
// # Failure Modes
//
// Returns [ErrTokenExpired] when the encoded expiry has passed and
// [ErrTokenInvalid] for every other verification failure, so callers can
// surface distinct user-facing errors.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return service.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// registeredClaims builds the standard claim set shared by all token kinds.
func (service *TokenService) registeredClaims(subject string, timeToLive time.Duration) jwt.RegisteredClaims {
	currentTime := time.Now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    service.issuer,
		IssuedAt:  jwt.NewNumericDate(currentTime),
		ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
	}
}

func (service *TokenService) sign(claims AuthClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}
