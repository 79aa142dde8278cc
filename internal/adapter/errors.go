package adapter

import "errors"

var (
	// ErrRemoteUnavailable covers network errors, timeouts and 5xx answers.
	ErrRemoteUnavailable = errors.New("remote unavailable")
	// ErrRemoteRejected covers 4xx answers.
	ErrRemoteRejected = errors.New("remote rejected request")
	// ErrIntegrity is returned when a signed response does not match its
	// HashSHA256 header. It always comes wrapped in ErrRemoteUnavailable.
	ErrIntegrity = errors.New("response integrity check failed")
)
