package playlist

import "errors"

var (
	// ErrAllocation means slot storage could not be obtained or grown.
	ErrAllocation = errors.New("playlist: allocation failed")
	// ErrIndexOutOfRange means an index fell outside [0, Len()).
	ErrIndexOutOfRange = errors.New("playlist: index out of range")
	// ErrReleased is returned by every operation after Release.
	ErrReleased = errors.New("playlist: used after release")
)
