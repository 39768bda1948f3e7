package service

import "errors"

var (
	ErrDraftNotFound         = errors.New("draft not found")
	ErrScheduledPostNotFound = errors.New("scheduled post not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrSamplesTooShort       = errors.New("at least 50 characters of sample content required")
	ErrNoPlatforms           = errors.New("no platforms selected")
)
