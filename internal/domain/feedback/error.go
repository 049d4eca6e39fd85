package feedback

import "errors"

var (
	ErrNotFound       = errors.New("feedback not found")
	ErrInvalidInput   = errors.New("invalid feedback")
	ErrMessageMissing = errors.New("Feedback message is required")
	ErrReplyMissing   = errors.New("Reply message is required")
)
