package anim

import "errors"

// Errors returned by document operations. They are always
// wrapped with context, so match them with errors.Is.
var (
	ErrDuplicateName     = errors.New("duplicate state name")
	ErrNotFound          = errors.New("not found")
	ErrIndexOutOfRange   = errors.New("frame index out of range")
	ErrOutOfRange        = errors.New("value out of range")
	ErrInvalidSize       = errors.New("invalid tile size")
	ErrInvalidName       = errors.New("invalid state name")
	ErrPathOutsideAssets = errors.New("path outside assets root")
	ErrNoImageReference  = errors.New("no image reference")
	ErrMalformedDocument = errors.New("malformed document")
)
