// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mail implements the outbound email notifier over SMTP.

It delivers the verification and password-reset messages generated by the
authentication flows. Delivery is a collaborator call: the caller decides
whether a failure aborts the surrounding operation.

Core Responsibilities:

  - Transport: Authenticated SMTP submission via gomail.
  - Templating: Plain-text bodies with the action link injected.
  - Isolation: Domain code only sees the auth.Notifier interface.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/taibuivan/ripple/internal/platform/apperr"
)

// Mailer sends transactional mail through a single SMTP account.
type Mailer struct {
	dialer *gomail.Dialer
	sender string

	// publicBaseURL is the API origin used in verification links.
	publicBaseURL string
	// frontendURL is where password-reset links land.
	frontendURL string

	logger *slog.Logger
}

// New constructs a Mailer from SMTP credentials.
func New(host string, port int, username, password, sender, publicBaseURL, frontendURL string, logger *slog.Logger) *Mailer {
	return &Mailer{
		dialer:        gomail.NewDialer(host, port, username, password),
		sender:        sender,
		publicBaseURL: publicBaseURL,
		frontendURL:   frontendURL,
		logger:        logger,
	}
}

// SendVerification delivers the email-verification link for a new account.
//
// The token only ever travels through this side channel — it is never
// returned over the API response.
func (mailer *Mailer) SendVerification(ctx context.Context, email, token string) error {
	verifyURL := fmt.Sprintf("%s/api/v1/auth/verify-email/%s", mailer.publicBaseURL, token)
	body := "Thank you for registering. Please verify your email by clicking the link below:\n\n" + verifyURL

	return mailer.send(ctx, email, "Email Verification", body)
}

// SendPasswordReset delivers the password-reset link.
func (mailer *Mailer) SendPasswordReset(ctx context.Context, email, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", mailer.frontendURL, token)
	body := "You requested a password reset. Click the link below to reset your password:\n\n" + resetURL

	return mailer.send(ctx, email, "Password Reset Request", body)
}

// send submits one message, honoring context cancellation before dialing.
func (mailer *Mailer) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return apperr.Upstream("Mail delivery aborted", err)
	}

	message := gomail.NewMessage()
	message.SetHeader("From", mailer.sender)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	if err := mailer.dialer.DialAndSend(message); err != nil {
		mailer.logger.Error("mail_send_failed",
			slog.String("subject", subject),
			slog.Any("error", err),
		)
		return apperr.Upstream("Failed to send email", err)
	}

	mailer.logger.Info("mail_sent", slog.String("subject", subject))
	return nil
}
