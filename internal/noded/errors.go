package noded

import "errors"

// Error kinds returned by Node methods and translated to HTTP status codes
// by the api package.
var (
	// ErrBadRequest marks a malformed transaction or one missing its
	// sender or recipient.
	ErrBadRequest = errors.New("noded: bad request")

	// ErrConfigOutOfRange marks a difficulty update outside [config.MinDifficulty, config.MaxDifficulty].
	ErrConfigOutOfRange = errors.New("noded: difficulty out of range")
)
