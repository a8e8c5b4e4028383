package ports

import "context"

// Mailer delivers outbound platform mail.
type Mailer interface {
	SendRecovery(ctx context.Context, email, token string) error
}

// RecoveryMailJob is one queued password-recovery mail.
type RecoveryMailJob struct {
	Email string
	Token string
}

// MailQueue accepts recovery mails for asynchronous delivery so a slow SMTP
// server never blocks a request handler.
type MailQueue interface {
	Enqueue(job RecoveryMailJob)
}
