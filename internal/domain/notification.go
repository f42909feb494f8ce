package domain

import "time"

type Notification struct {
	NotificationID string    `json:"id" dynamodbav:"notification_id"`
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	Kind           string    `json:"kind" dynamodbav:"kind"`
	Message        string    `json:"message" dynamodbav:"message"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
}

// Notification kinds.
const (
	NotificationLogin = "user_login"
)
