package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/dev13-Vishnu/deep-learn-server/internal/tasks"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// OTP purposes accepted by the request and verify endpoints
const (
	OtpPurposeSignup         = "signup"
	OtpPurposeForgotPassword = "forgot-password"
)

const (
	otpTTL         = 2 * time.Minute
	otpMaxAttempts = 5
	otpVerifiedTTL = 15 * time.Minute
	otpCodeDigits  = 6
)

// TaskEnqueuer wraps the asynq client method used to hand tasks to the worker
type TaskEnqueuer interface {
	// EnqueueContext enqueues a task for background processing
	//
	// "ctx" is the context for the request.
	// "task" is the task to enqueue.
	// "opts" are optional asynq options.
	//
	// Returns task info and an error if any.
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// otpService implements one-time code issuance and verification. Codes are
// stored hashed in Redis under otp:<purpose>:<email>; a successful
// verification leaves a short-lived marker that Register and ResetPassword
// consume.
type otpService struct {
	redis    *redis.Client
	enqueuer TaskEnqueuer
	logger   *zap.Logger
}

// NewOtpService creates a new OTP service
func NewOtpService(redisClient *redis.Client, enqueuer TaskEnqueuer, logger *zap.Logger) *otpService {
	return &otpService{
		redis:    redisClient,
		enqueuer: enqueuer,
		logger:   logger,
	}
}

// RequestOtp generates a code for the email and purpose and queues its
// delivery. Requesting again overwrites the previous code.
func (s *otpService) RequestOtp(ctx context.Context, email, purpose string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validateOtpPurpose(purpose); err != nil {
		return err
	}

	code, err := generateOtpCode()
	if err != nil {
		return fmt.Errorf("failed to generate OTP code: %w", err)
	}

	key := otpKey(purpose, email)
	if err := s.redis.HSet(ctx, key, "hash", hashOtpCode(code), "attempts", 0).Err(); err != nil {
		s.logger.Error("failed to store OTP", zap.Error(err), zap.String("purpose", purpose))
		return fmt.Errorf("failed to store OTP: %w", err)
	}
	if err := s.redis.Expire(ctx, key, otpTTL).Err(); err != nil {
		return fmt.Errorf("failed to set OTP expiry: %w", err)
	}

	subject, body := otpEmail(purpose, code)
	task, err := tasks.NewEmailDeliveryTask(email, subject, body)
	if err != nil {
		return err
	}
	if _, err := s.enqueuer.EnqueueContext(ctx, task); err != nil {
		s.logger.Error("failed to enqueue OTP email", zap.Error(err))
		return fmt.Errorf("failed to enqueue OTP email: %w", err)
	}

	s.logger.Info("OTP requested", zap.String("purpose", purpose))
	return nil
}

// VerifyOtp checks a submitted code. After five failed attempts the code is
// invalidated; a correct code is consumed and leaves a verification marker.
func (s *otpService) VerifyOtp(ctx context.Context, email, purpose, code string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validateOtpPurpose(purpose); err != nil {
		return err
	}

	key := otpKey(purpose, email)
	storedHash, err := s.redis.HGet(ctx, key, "hash").Result()
	if err == redis.Nil {
		return fmt.Errorf("OTP expired or not requested")
	}
	if err != nil {
		s.logger.Error("failed to read OTP", zap.Error(err))
		return fmt.Errorf("failed to read OTP: %w", err)
	}

	attempts, err := s.redis.HIncrBy(ctx, key, "attempts", 1).Result()
	if err != nil {
		return fmt.Errorf("failed to count OTP attempt: %w", err)
	}
	if attempts > otpMaxAttempts {
		s.redis.Del(ctx, key)
		return fmt.Errorf("too many attempts, request a new code")
	}

	if hashOtpCode(code) != storedHash {
		return fmt.Errorf("invalid code")
	}

	// Consume the code and leave the verification marker
	s.redis.Del(ctx, key)
	markerKey := otpVerifiedKey(purpose, email)
	if err := s.redis.Set(ctx, markerKey, "1", otpVerifiedTTL).Err(); err != nil {
		return fmt.Errorf("failed to mark OTP verified: %w", err)
	}

	return nil
}

// ConsumeVerification checks and removes the verification marker for the
// email and purpose. It returns an error when no verification happened.
func (s *otpService) ConsumeVerification(ctx context.Context, email, purpose string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	key := otpVerifiedKey(purpose, email)

	deleted, err := s.redis.Del(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to consume OTP verification: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("email is not verified")
	}

	return nil
}

func validateOtpPurpose(purpose string) error {
	if purpose != OtpPurposeSignup && purpose != OtpPurposeForgotPassword {
		return fmt.Errorf("invalid OTP purpose")
	}
	return nil
}

func otpKey(purpose, email string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, email)
}

func otpVerifiedKey(purpose, email string) string {
	return fmt.Sprintf("otp:verified:%s:%s", purpose, email)
}

// generateOtpCode produces a zero-padded 6 digit code
func generateOtpCode() (string, error) {
	max := big.NewInt(1)
	for range otpCodeDigits {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpCodeDigits, n), nil
}

func hashOtpCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func otpEmail(purpose, code string) (string, string) {
	switch purpose {
	case OtpPurposeForgotPassword:
		return "Reset your password",
			fmt.Sprintf("<p>Your password reset code is <b>%s</b>. It expires in 2 minutes.</p>", code)
	default:
		return "Verify your email",
			fmt.Sprintf("<p>Your verification code is <b>%s</b>. It expires in 2 minutes.</p>", code)
	}
}
