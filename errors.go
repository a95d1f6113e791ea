package cubesolver

import (
	"errors"

	"github.com/SeamusWaldron/cubesolver/internal/search"
)

// Sentinel errors for the cubesolver package.
var (
	// Input errors, returned before any search starts
	ErrMalformedInput   = errors.New("cubesolver: malformed facelet string")
	ErrUndecodableState = errors.New("cubesolver: stickers do not form cube pieces")
	ErrInvalidCubeState = errors.New("cubesolver: cube state is not reachable by face turns")

	// Resource errors
	ErrResource = errors.New("cubesolver: pruning table unavailable")

	// Search outcomes, see Solution.Err
	ErrSearchTimeout         = errors.New("cubesolver: search timed out")
	ErrNoSolutionWithinBound = errors.New("cubesolver: no solution within move bound")
	ErrSearchFault           = errors.New("cubesolver: search failed")

	// Parsing errors
	ErrInvalidNotation = errors.New("cubesolver: invalid move notation")
	ErrInvalidOption   = errors.New("cubesolver: invalid option")

	// Device errors
	ErrNotConnected   = errors.New("cubesolver: not connected to device")
	ErrDeviceNotFound = errors.New("cubesolver: device not found")
)

// ErrorKind returns a stable snake_case name for the sentinel err wraps, or
// "internal" when it wraps none of them.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedInput):
		return "malformed_input"
	case errors.Is(err, ErrUndecodableState):
		return "undecodable_state"
	case errors.Is(err, ErrInvalidCubeState):
		return "invalid_cube_state"
	case errors.Is(err, ErrResource):
		return "resource"
	case errors.Is(err, ErrSearchTimeout):
		return "timeout"
	case errors.Is(err, ErrNoSolutionWithinBound):
		return "no_solution"
	case errors.Is(err, ErrSearchFault):
		return "search_fault"
	case errors.Is(err, ErrInvalidNotation):
		return "invalid_notation"
	case errors.Is(err, ErrInvalidOption), errors.Is(err, search.ErrInvalidDepth):
		return "invalid_option"
	default:
		return "internal"
	}
}

// IsInputError reports whether err means the caller's input was rejected.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrUndecodableState) ||
		errors.Is(err, ErrInvalidCubeState) ||
		errors.Is(err, ErrInvalidNotation) ||
		errors.Is(err, ErrInvalidOption)
}
