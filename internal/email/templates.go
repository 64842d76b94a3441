package email

import (
	"context"
	"fmt"
	"time"
)

func (s *Service) SendVerificationEmail(ctx context.Context, to, name, clientURL, token string) error {
	verificationURL := fmt.Sprintf("%s/verify-email?token=%s", clientURL, token)
	body := fmt.Sprintf(`Hi %s,

Welcome to Disciplix! Please confirm your email address to activate your account:

%s

The link is valid for 24 hours. If you didn't create an account, you can ignore this message.

- The Disciplix Team`, name, verificationURL)

	return s.enqueue(ctx, Job{
		Type:    "verification",
		To:      to,
		Name:    name,
		Subject: "Verify Your Disciplix Account",
		Body:    body,
		Created: time.Now(),
	})
}

func (s *Service) SendPasswordResetEmail(ctx context.Context, to, name, clientURL, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", clientURL, token)
	body := fmt.Sprintf(`Hi %s,

We received a request to reset your Disciplix password. Use the link below to choose a new one:

%s

The link expires in one hour. If you didn't request a reset, no action is needed.

- The Disciplix Team`, name, resetURL)

	return s.enqueue(ctx, Job{
		Type:    "password_reset",
		To:      to,
		Name:    name,
		Subject: "Reset Your Disciplix Password",
		Body:    body,
		Created: time.Now(),
	})
}

func (s *Service) SendBookingConfirmation(ctx context.Context, to, name, trainerName string, scheduledAt time.Time, durationMinutes int) error {
	body := fmt.Sprintf(`Hi %s,

Your training session is booked!

Trainer: %s
When: %s
Duration: %d minutes

You can cancel up to 24 hours before the session from your dashboard.

- The Disciplix Team`, name, trainerName, scheduledAt.Format("Jan 2, 2006 at 3:04 PM"), durationMinutes)

	return s.enqueue(ctx, Job{
		Type:    "booking_confirmation",
		To:      to,
		Name:    name,
		Subject: "Session Booked - " + trainerName,
		Body:    body,
		Created: time.Now(),
	})
}

func (s *Service) SendCancellationNotice(ctx context.Context, to, name, trainerName string, scheduledAt time.Time) error {
	body := fmt.Sprintf(`Hi %s,

Your training session has been cancelled:

Trainer: %s
Was scheduled for: %s

The slot is available again for other bookings.

- The Disciplix Team`, name, trainerName, scheduledAt.Format("Jan 2, 2006 at 3:04 PM"))

	return s.enqueue(ctx, Job{
		Type:    "cancellation",
		To:      to,
		Name:    name,
		Subject: "Session Cancelled - " + trainerName,
		Body:    body,
		Created: time.Now(),
	})
}
