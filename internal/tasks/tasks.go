// Package tasks defines the asynq task types shared by the API and the worker
package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// TypeEmailDelivery is the task type for transactional email delivery
	TypeEmailDelivery = "email:deliver"
)

// EmailDeliveryPayload is the payload of an email delivery task
type EmailDeliveryPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewEmailDeliveryTask creates an email delivery task
func NewEmailDeliveryTask(to, subject, body string) (*asynq.Task, error) {
	payload, err := json.Marshal(EmailDeliveryPayload{To: to, Subject: subject, Body: body})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal email payload: %w", err)
	}
	return asynq.NewTask(TypeEmailDelivery, payload, asynq.MaxRetry(3)), nil
}
