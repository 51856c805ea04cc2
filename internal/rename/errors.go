package rename

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotDirectory is returned when the target path is not a directory
	ErrNotDirectory = errors.New("not a directory")

	// ErrNoFiles is returned when the directory holds no regular files
	ErrNoFiles = errors.New("directory has no files")

	// ErrCollision is returned when two files would end up with the same name
	ErrCollision = errors.New("sanitized names collide")

	// ErrTargetExists is returned when a rename target appeared after planning
	ErrTargetExists = errors.New("target already exists")

	// ErrUnknownPolicy is returned for an unrecognized collision policy name
	ErrUnknownPolicy = errors.New("unknown collision policy")
)

// PathError records the operation and path that failed.
type PathError struct {
	Path string
	Op   string
	Err  error
}

func (e *PathError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("path error %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Conflict describes one file whose sanitized name is already taken.
type Conflict struct {
	Source string
	Target string
	Holder string
}

// CollisionError lists every conflict found while planning.
type CollisionError struct {
	Conflicts []Conflict
}

func (e *CollisionError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%q -> %q (taken by %q)", c.Source, c.Target, c.Holder))
	}
	return fmt.Sprintf("%v: %s", ErrCollision, strings.Join(parts, ", "))
}

func (e *CollisionError) Unwrap() error {
	return ErrCollision
}

func wrapList(path string, err error) error {
	return &PathError{
		Path: path,
		Op:   "list",
		Err:  err,
	}
}

func wrapRename(path string, err error) error {
	return &PathError{
		Path: path,
		Op:   "rename",
		Err:  err,
	}
}
