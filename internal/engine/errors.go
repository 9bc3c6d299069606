package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidIndex      = errors.New("invalid task index")
	ErrUnknownTemplate   = errors.New("unknown template")
	ErrMalformedSnapshot = errors.New("malformed snapshot")
	ErrPathNotFound      = errors.New("path not found")
	ErrInvalidTemplate   = errors.New("invalid template")
)

// IndexError is returned when a task is addressed outside the path's task list.
type IndexError struct {
	Index int
	Len   int
	// TaskID is set when the task was addressed by id.
	TaskID string
}

func (e *IndexError) Error() string {
	if e.TaskID != "" {
		return fmt.Sprintf("task %q not found in path", e.TaskID)
	}
	return fmt.Sprintf("task index %d out of range (path has %d tasks)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrInvalidIndex }

type UnknownTemplateError struct {
	Key string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template: %s", e.Key)
}

func (e *UnknownTemplateError) Unwrap() error { return ErrUnknownTemplate }

// MalformedSnapshotError reports a persisted snapshot that failed validation.
type MalformedSnapshotError struct {
	Reason string
	Err    error
}

func (e *MalformedSnapshotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed snapshot: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed snapshot: %s", e.Reason)
}

func (e *MalformedSnapshotError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedSnapshot, e.Err}
	}
	return []error{ErrMalformedSnapshot}
}

// TemplateError describes why a template or inline path definition was rejected.
type TemplateError struct {
	Key    string
	Reason string
}

func (e *TemplateError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("invalid template: %s", e.Reason)
	}
	return fmt.Sprintf("invalid template %q: %s", e.Key, e.Reason)
}

func (e *TemplateError) Unwrap() error { return ErrInvalidTemplate }
