package domain

import "time"

// ChannelTemplate is the operator-supplied caption template for one
// channel. A channel has at most one active template; re-setting
// overwrites it.
type ChannelTemplate struct {
	ChannelID string    `json:"channel_id"`
	Template  string    `json:"template"`
	UpdatedBy int64     `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}
