package decode

import "errors"

// ScanTable returns the first item of items that matches the cursor, trying
// them in order. It is the reference behavior an index built from the same
// items must reproduce.
func ScanTable[T Item](items []T, c Cursor) (T, Cursor, error) {
	var zero T
	for _, item := range items {
		next, err := Match(item, c)
		switch {
		case err == nil:
			return item, next, nil
		case errors.Is(err, ErrTruncated):
			return zero, c, err
		}
	}
	return zero, c, ErrNoMatch
}
