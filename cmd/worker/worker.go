package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dev13-Vishnu/deep-learn-server/internal/tasks"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// UserTokenRepository defines the token cleanup operation the worker runs
type UserTokenRepository interface {
	// DeleteOlderThan removes refresh tokens created before the cutoff.
	//
	// "ctx" is the context for the request.
	// "cutoff" is the oldest creation time to keep.
	//
	// Returns the number of deleted rows and an error if any.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// Worker processes queued background tasks
type Worker struct {
	logger        *zap.Logger
	userTokenRepo UserTokenRepository
	tokenExpiry   time.Duration
	smtpHost      string
	smtpPort      int
	smtpUsername  string
	smtpPassword  string
	smtpFrom      string
}

// NewWorker creates a new worker instance
func NewWorker(
	logger *zap.Logger,
	userTokenRepo UserTokenRepository,
	tokenExpiry time.Duration,
	smtpHost string,
	smtpPort int,
	smtpUsername, smtpPassword, smtpFrom string,
) *Worker {
	return &Worker{
		logger:        logger,
		userTokenRepo: userTokenRepo,
		tokenExpiry:   tokenExpiry,
		smtpHost:      smtpHost,
		smtpPort:      smtpPort,
		smtpUsername:  smtpUsername,
		smtpPassword:  smtpPassword,
		smtpFrom:      smtpFrom,
	}
}

// HandleEmailDelivery handles email:deliver task processing
func (w *Worker) HandleEmailDelivery(ctx context.Context, t *asynq.Task) error {
	var payload tasks.EmailDeliveryPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to parse email payload: %w", err)
	}

	if err := w.sendEmail(payload.To, payload.Subject, payload.Body); err != nil {
		w.logger.Error("failed to deliver email", zap.Error(err), zap.String("subject", payload.Subject))
		return err
	}

	w.logger.Info("email delivered", zap.String("subject", payload.Subject))
	return nil
}

// CleanExpiredTokens removes refresh tokens that outlived their JWT expiry.
// Scheduled with cron, not asynq, since it has no payload.
func (w *Worker) CleanExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-w.tokenExpiry)
	deleted, err := w.userTokenRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		w.logger.Error("failed to clean expired tokens", zap.Error(err))
		return
	}

	if deleted > 0 {
		w.logger.Info("cleaned expired tokens", zap.Int("count", deleted))
	}
}

// sendEmail sends an email using gopkg.in/mail.v2
func (w *Worker) sendEmail(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", w.smtpFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := mail.NewDialer(w.smtpHost, w.smtpPort, w.smtpUsername, w.smtpPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
