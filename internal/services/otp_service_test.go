package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dev13-Vishnu/deep-learn-server/internal/tasks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestOtpService_RejectsUnknownPurpose(t *testing.T) {
	otpService := NewOtpService(nil, nil, zap.NewNop())

	err := otpService.RequestOtp(context.Background(), "student@example.com", "unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid OTP purpose")

	err = otpService.VerifyOtp(context.Background(), "student@example.com", "unknown", "123456")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid OTP purpose")
}

func TestGenerateOtpCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := generateOtpCode()
		assert.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
		seen[code] = true
	}
	// 20 draws from a million values colliding down to one is not a thing
	assert.Greater(t, len(seen), 1)
}

func TestHashOtpCode(t *testing.T) {
	assert.Equal(t, hashOtpCode("123456"), hashOtpCode("123456"))
	assert.NotEqual(t, hashOtpCode("123456"), hashOtpCode("123457"))
	assert.Len(t, hashOtpCode("123456"), 64)
}

func TestOtpEmail(t *testing.T) {
	subject, body := otpEmail(OtpPurposeSignup, "482913")
	assert.Equal(t, "Verify your email", subject)
	assert.Contains(t, body, "482913")

	subject, body = otpEmail(OtpPurposeForgotPassword, "482913")
	assert.Equal(t, "Reset your password", subject)
	assert.Contains(t, body, "482913")
}

func TestNewEmailDeliveryTask(t *testing.T) {
	task, err := tasks.NewEmailDeliveryTask("student@example.com", "Verify your email", "<p>hi</p>")

	assert.NoError(t, err)
	assert.Equal(t, tasks.TypeEmailDelivery, task.Type())

	var payload tasks.EmailDeliveryPayload
	assert.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "student@example.com", payload.To)
	assert.Equal(t, "Verify your email", payload.Subject)
}
