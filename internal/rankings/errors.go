package rankings

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches a LoadError whose source file does not exist.
	ErrNotFound = errors.New("dataset not found")
	// ErrMalformed matches a LoadError for unreadable or schema-less input.
	ErrMalformed = errors.New("dataset malformed")
	// ErrInvalidN matches a SelectorError.
	ErrInvalidN = errors.New("invalid n")
)

// LoadErrorKind classifies load failures.
type LoadErrorKind int

const (
	NotFound LoadErrorKind = iota + 1
	Malformed
)

func (k LoadErrorKind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// LoadError is returned by Load. It is terminal for a session.
type LoadError struct {
	Kind LoadErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case NotFound:
		return fmt.Sprintf("dataset not found at %s", e.Path)
	case Malformed:
		if e.Err != nil {
			return fmt.Sprintf("malformed dataset %s: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("malformed dataset %s", e.Path)
	default:
		return fmt.Sprintf("load %s: %v", e.Path, e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is lets errors.Is match the package sentinels by kind.
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == NotFound
	case ErrMalformed:
		return e.Kind == Malformed
	}
	return false
}

func malformed(path string, err error) *LoadError {
	return &LoadError{Kind: Malformed, Path: path, Err: err}
}

// SelectorError reports an n outside [1, size] passed to SelectTopN.
type SelectorError struct {
	N    int
	Size int
}

func (e *SelectorError) Error() string {
	if e.Size == 0 {
		return fmt.Sprintf("invalid n=%d: dataset is empty", e.N)
	}
	return fmt.Sprintf("invalid n=%d: must be between 1 and %d", e.N, e.Size)
}

func (e *SelectorError) Is(target error) bool { return target == ErrInvalidN }
