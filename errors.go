package featherdb

import "errors"

var (
	// ErrInvalidOptions reports an invalid combination of call options,
	// detected before any request is issued.
	ErrInvalidOptions = errors.New("featherdb: invalid options")
	// ErrMissingRev reports a destructive document operation attempted
	// without a revision.
	ErrMissingRev = errors.New("featherdb: revision required")
)
