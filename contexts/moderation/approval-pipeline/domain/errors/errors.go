package errors

import "errors"

var (
	ErrCronNotConfigured  = errors.New("cron trigger secret is not configured")
	ErrUnauthorized       = errors.New("cron trigger token mismatch")
	ErrRunInProgress      = errors.New("approval run already in progress")
	ErrInvalidRunConfig   = errors.New("invalid batch size or max batches")
	ErrClassifierFailed   = errors.New("classifier call failed")
	ErrPendingQueueUnread = errors.New("pending submission queue unavailable")
)
