package model

import "time"

type ChatStatus string

const (
	ChatActive   ChatStatus = "ACTIVE"
	ChatResolved ChatStatus = "RESOLVED"
	ChatArchived ChatStatus = "ARCHIVED"
)

type Chat struct {
	ID             string       `json:"id"`
	OrganizationID string       `json:"organization_id"`
	UserID         string       `json:"user_id"`
	Title          string       `json:"title"`
	Status         ChatStatus   `json:"status"`
	Messages       []Message    `json:"messages"`
	Metadata       ChatMetadata `json:"metadata"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type ChatMetadata struct {
	Tags     []string `json:"tags"`
	Category string   `json:"category,omitempty"`
}

type Message struct {
	Role      string    `json:"role"` // "user", "assistant" or "system"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
