package decode

import "errors"

var (
	ErrNoMatch   = errors.New("decode: no matching entry")
	ErrTruncated = errors.New("decode: input truncated")
)
