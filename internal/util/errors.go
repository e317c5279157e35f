package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPostNotFound        = errors.New("post not found")
	ErrClassNotFound       = errors.New("class not found")
	ErrClassClosed         = errors.New("class is not open for applications")
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationDecided  = errors.New("application already decided")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrSessionNotFound     = errors.New("test session not found or expired")
	ErrQuestionPoolEmpty   = errors.New("no active questions available")
	ErrSessionFinished     = errors.New("test session already finished")
	ErrSpamDetected        = errors.New("spam detected")
	ErrEmailSendFailed     = errors.New("notification email could not be sent")
)
