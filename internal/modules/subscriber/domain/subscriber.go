package domain

import "time"

// Subscriber is a user who has initiated contact with the bot and is
// eligible to receive broadcasts. Created once, never mutated.
type Subscriber struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"display_name,omitempty"`
	JoinedAt    time.Time `json:"joined_at"`
}
