package errors

import "errors"

// ErrDuplicateKey a unique index rejected the write. Callers surface it as a
// generic server error, the same as any other store failure.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrInvalidID a path identifier is not a valid document id.
var ErrInvalidID = errors.New("invalid document id")
