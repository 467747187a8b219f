package errors

import "errors"

var (
	ErrMissingBotToken = errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	ErrMissingChannel  = errors.New("CHANNEL_USERNAME environment variable is required")

	ErrTemplateNotFound   = errors.New("template not found")
	ErrSubscriberNotFound = errors.New("subscriber not found")

	ErrEmptyTemplate  = errors.New("template text is required")
	ErrEmptyBroadcast = errors.New("broadcast text is required")
	ErrUnauthorized   = errors.New("unauthorized user")
)
