package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds    = errors.New("index out of range")
	ErrNoLoader       = errors.New("no file loader configured")
	ErrUnknownCommand = errors.New("unknown command (try 'help')")
	ErrUsage          = errors.New("invalid usage")
)
