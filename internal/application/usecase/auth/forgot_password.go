// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reading-tracker/backend/internal/application/adapter"
	domainerror "github.com/reading-tracker/backend/internal/domain/error"
)

// The response is identical whether or not the account exists, so the
// endpoint cannot be used to enumerate emails.
const forgotPasswordMessage = "If an account with that email exists, we have sent a password reset link"

// ForgotPasswordInput represents the input for a forgot password request.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordOutput represents the output of a forgot password request.
type ForgotPasswordOutput struct {
	Message string
}

// ForgotPasswordUseCase handles forgot password logic.
type ForgotPasswordUseCase struct {
	userRepo          adapter.UserRepository
	resetTokenService adapter.PasswordResetTokenService
	emailSender       adapter.EmailSender
	appBaseURL        string
}

// NewForgotPasswordUseCase creates a new ForgotPasswordUseCase instance.
func NewForgotPasswordUseCase(
	userRepo adapter.UserRepository,
	resetTokenService adapter.PasswordResetTokenService,
	emailSender adapter.EmailSender,
	appBaseURL string,
) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{
		userRepo:          userRepo,
		resetTokenService: resetTokenService,
		emailSender:       emailSender,
		appBaseURL:        appBaseURL,
	}
}

// Execute performs the forgot password request. It always reports success.
func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordOutput, error) {
	if !isValidEmail(input.Email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	user, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		slog.Debug("forgot password requested for unknown email", "email", input.Email)
		return &ForgotPasswordOutput{Message: forgotPasswordMessage}, nil
	}

	resetToken, err := uc.resetTokenService.GenerateResetToken(ctx, user.ID, user.Email)
	if err != nil {
		slog.Error("failed to generate reset token", "error", err, "userID", user.ID)
		return &ForgotPasswordOutput{Message: forgotPasswordMessage}, nil
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", uc.appBaseURL, resetToken.Token)

	if uc.emailSender != nil {
		err = uc.emailSender.Send(ctx, adapter.SendEmailInput{
			To:      user.Email,
			Name:    user.Name,
			Subject: "Reset your Reading Tracker password",
			HTML:    passwordResetHTML(user.Name, resetURL),
			Text:    passwordResetText(user.Name, resetURL),
		})
		if err != nil {
			slog.Error("failed to send password reset email", "error", err, "userID", user.ID)
		} else {
			slog.Info("password reset email sent", "userID", user.ID, "email", user.Email)
		}
	} else {
		// Development fallback when no email provider is configured.
		slog.Info("password reset token generated",
			"userID", user.ID,
			"email", user.Email,
			"resetURL", resetURL,
		)
	}

	return &ForgotPasswordOutput{Message: forgotPasswordMessage}, nil
}

func passwordResetHTML(name, resetURL string) string {
	return fmt.Sprintf(
		`<p>Hi %s,</p><p>We received a request to reset your password. The link below is valid for one hour.</p><p><a href="%s">Reset password</a></p><p>If you did not request this, you can ignore this email.</p>`,
		name, resetURL,
	)
}

func passwordResetText(name, resetURL string) string {
	return fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset your password. The link below is valid for one hour.\n\n%s\n\nIf you did not request this, you can ignore this email.\n",
		name, resetURL,
	)
}
