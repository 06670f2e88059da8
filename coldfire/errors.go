package coldfire

import "errors"

var (
	// ErrUnrecognized means no encoding matches the input.
	ErrUnrecognized = errors.New("unrecognized opcode")
	// ErrTruncated means the input ended before the instruction did.
	ErrTruncated = errors.New("truncated input")
	// ErrInvalidOperand means an operand's fields hold a value the
	// architecture does not define, such as a malformed extension word.
	ErrInvalidOperand = errors.New("invalid operand")
	// ErrUnsupported means the instruction exists but not on the selected
	// hardware variants.
	ErrUnsupported = errors.New("unsupported on selected variants")
)
